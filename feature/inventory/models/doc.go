// Package models contains the GORM models and read views of the inventory.
//
// Tables:
//   - stored_items: the last reconciled snapshot, keyed by fingerprint
//   - item_limits: optional min/max rules, keyed by fingerprint
//   - item_assets, mod_assets: display metadata written by the asset import
package models
