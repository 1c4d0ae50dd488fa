// Package search keeps a fuzzy index of stored items.
//
// The corpus is one entry per distinct item id, searchable by id, display name
// and mod id. The index is rebuilt at startup, after reconciliation cycles that
// insert or remove items and after an asset import. Amount-only cycles leave it
// alone. Ranking is delegated to github.com/sahilm/fuzzy.
//
// Index also implements inventory.Finder, which filters the item listing.
package search
