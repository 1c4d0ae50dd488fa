package models

import "time"

// DefaultModID is the namespace assumed when an item id carries none.
const DefaultModID = "minecraft"

// StoredItem represents the 'stored_items' table.
// One row per fingerprint currently present in the storage system.
type StoredItem struct {
	Fingerprint  string    `gorm:"column:fingerprint;primaryKey;size:191" json:"fingerprint"`
	ItemID       string    `gorm:"column:item_id;size:191;not null;index" json:"itemId"`
	ModID        string    `gorm:"column:mod_id;size:191;not null" json:"modId"`
	Amount       int64     `gorm:"column:amount;not null" json:"amount"`
	IsCraftable  bool      `gorm:"column:is_craftable;not null" json:"isCraftable"`
	LastModified time.Time `gorm:"column:last_modified;not null" json:"lastModified"`
}

func (StoredItem) TableName() string { return "stored_items" }

// ItemLimit represents the 'item_limits' table.
// Both bounds are optional; a row with neither bound is never stored.
type ItemLimit struct {
	Fingerprint string    `gorm:"column:fingerprint;primaryKey;size:191" json:"fingerprint"`
	Min         *int64    `gorm:"column:min" json:"min,omitempty"`
	Max         *int64    `gorm:"column:max" json:"max,omitempty"`
	DateCreated time.Time `gorm:"column:date_created;not null" json:"dateCreated"`
}

func (ItemLimit) TableName() string { return "item_limits" }

// Empty reports whether the rule has no thresholds.
func (l *ItemLimit) Empty() bool {
	return l == nil || (l.Min == nil && l.Max == nil)
}

// ItemAsset represents the 'item_assets' table.
type ItemAsset struct {
	ItemID      string `gorm:"column:item_id;primaryKey;size:191" json:"itemId"`
	DisplayName string `gorm:"column:display_name;not null" json:"displayName"`
	ModID       string `gorm:"column:mod_id;size:191;not null" json:"modId"`
}

func (ItemAsset) TableName() string { return "item_assets" }

// ModAsset represents the 'mod_assets' table.
type ModAsset struct {
	ModID       string `gorm:"column:mod_id;primaryKey;size:191" json:"modId"`
	DisplayName string `gorm:"column:display_name;not null" json:"displayName"`
}

func (ModAsset) TableName() string { return "mod_assets" }

// Tables returns every model owned by the inventory, in migration order.
func Tables() []any {
	return []any{&StoredItem{}, &ItemLimit{}, &ItemAsset{}, &ModAsset{}}
}
