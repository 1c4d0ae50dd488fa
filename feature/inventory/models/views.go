package models

import "time"

// ItemView is a stored item joined with its limit and display metadata.
type ItemView struct {
	Fingerprint  string    `json:"fingerprint"`
	ItemID       string    `json:"itemId"`
	ModID        string    `json:"modId"`
	DisplayName  string    `json:"displayName"`
	ModName      string    `json:"modName"`
	Amount       int64     `json:"amount"`
	IsCraftable  bool      `json:"isCraftable"`
	LastModified time.Time `json:"lastModified"`
	Min          *int64    `json:"min,omitempty"`
	Max          *int64    `json:"max,omitempty"`
}

// Stats aggregates the whole inventory.
type Stats struct {
	UniqueItems int64 `json:"uniqueItems"`
	TotalAmount int64 `json:"totalAmount"`
}

// LimitedItem pairs a stored item with the rule that applies to it.
type LimitedItem struct {
	Item  StoredItem
	Limit ItemLimit
}

// SearchEntry is one row of the search corpus.
type SearchEntry struct {
	ItemID      string
	DisplayName string
	ModID       string
}
