package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"storage-bridge/feature/inventory/models"
)

// ErrInvalidCatalog is returned when the catalog object cannot be parsed.
var ErrInvalidCatalog = errors.New("invalid asset catalog")

// Catalog is the pre-extracted display metadata for items and mods.
//
//	{
//	  "mods":  [{"modId": "create", "displayName": "Create"}],
//	  "items": [{"id": "create:cogwheel", "displayName": "Cogwheel"}]
//	}
//
// Item ids use the same "modId:itemId" form as the storage system.
type Catalog struct {
	Mods  []CatalogMod  `json:"mods"`
	Items []CatalogItem `json:"items"`
}

// CatalogMod is one mod entry.
type CatalogMod struct {
	ModID       string `json:"modId"`
	DisplayName string `json:"displayName"`
}

// CatalogItem is one item entry.
type CatalogItem struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// ParseCatalog decodes a catalog document.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return &c, nil
}

// Rows converts the catalog into table rows. Entries without an id or a name are
// skipped and counted; a repeated id keeps its last entry.
func (c *Catalog) Rows() (items []models.ItemAsset, mods []models.ModAsset, skipped int) {
	modIndex := make(map[string]int)
	for _, m := range c.Mods {
		id := strings.TrimSpace(m.ModID)
		if id == "" || m.DisplayName == "" {
			skipped++
			continue
		}
		row := models.ModAsset{ModID: id, DisplayName: m.DisplayName}
		if i, ok := modIndex[id]; ok {
			mods[i] = row
			continue
		}
		modIndex[id] = len(mods)
		mods = append(mods, row)
	}

	itemIndex := make(map[string]int)
	for _, it := range c.Items {
		modID, itemID := splitID(it.ID)
		if itemID == "" || it.DisplayName == "" {
			skipped++
			continue
		}
		row := models.ItemAsset{ItemID: itemID, ModID: modID, DisplayName: it.DisplayName}
		if i, ok := itemIndex[itemID]; ok {
			items[i] = row
			continue
		}
		itemIndex[itemID] = len(items)
		items = append(items, row)
	}
	return items, mods, skipped
}

func splitID(id string) (modID, itemID string) {
	mod, item, found := strings.Cut(strings.TrimSpace(id), ":")
	if !found {
		return models.DefaultModID, mod
	}
	if mod == "" {
		mod = models.DefaultModID
	}
	return mod, item
}
