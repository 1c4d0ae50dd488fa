package inventory

import (
	"context"
	"testing"
	"time"

	"storage-bridge/core/database"
	"storage-bridge/feature/inventory/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	store := NewStore(db)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return store
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func ptr(v int64) *int64 { return &v }

func seedItems(t *testing.T, store *Store, items ...models.StoredItem) {
	t.Helper()
	for i := range items {
		if items[i].LastModified.IsZero() {
			items[i].LastModified = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		}
		require.NoError(t, store.DB().Create(&items[i]).Error)
	}
}

func TestStore_ListItems(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	seedItems(t, store,
		models.StoredItem{Fingerprint: "fp-iron", ItemID: "iron_ingot", ModID: "minecraft", Amount: 64},
		models.StoredItem{Fingerprint: "fp-gold", ItemID: "gold_ingot", ModID: "minecraft", Amount: 5,
			LastModified: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		models.StoredItem{Fingerprint: "fp-gear", ItemID: "gear", ModID: "create", Amount: 12},
	)
	require.NoError(t, store.ReplaceAssets(ctx,
		[]models.ItemAsset{{ItemID: "iron_ingot", DisplayName: "Iron Ingot", ModID: "minecraft"}},
		[]models.ModAsset{{ModID: "minecraft", DisplayName: "Minecraft"}},
	))
	require.NoError(t, store.SaveLimit(ctx, &models.ItemLimit{Fingerprint: "fp-iron", Min: ptr(10), Max: ptr(100)}))

	t.Run("DefaultAmountDesc", func(t *testing.T) {
		views, err := store.ListItems(ctx, ListQuery{})
		require.NoError(t, err)
		require.Len(t, views, 3)

		assert.Equal(t, "fp-iron", views[0].Fingerprint)
		assert.Equal(t, "Iron Ingot", views[0].DisplayName)
		assert.Equal(t, "Minecraft", views[0].ModName)
		assert.Equal(t, ptr(10), views[0].Min)
		assert.Equal(t, ptr(100), views[0].Max)

		assert.Equal(t, "gear", views[1].DisplayName)
		assert.Equal(t, "create", views[1].ModName)
		assert.Nil(t, views[1].Min)
	})

	t.Run("LastModifiedAsc", func(t *testing.T) {
		views, err := store.ListItems(ctx, ListQuery{Sort: SortLastModified, Asc: true})
		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, "fp-gold", views[2].Fingerprint)
	})

	t.Run("FilteredByItemID", func(t *testing.T) {
		views, err := store.ListItems(ctx, ListQuery{ItemIDs: []string{"gear"}})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "fp-gear", views[0].Fingerprint)
	})

	t.Run("EmptyFilterMatchesNothing", func(t *testing.T) {
		views, err := store.ListItems(ctx, ListQuery{ItemIDs: []string{}})
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}

func TestStore_GetItemAndStats(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{}, stats)

	seedItems(t, store,
		models.StoredItem{Fingerprint: "a", ItemID: "stone", ModID: "minecraft", Amount: 100},
		models.StoredItem{Fingerprint: "b", ItemID: "dirt", ModID: "minecraft", Amount: 28},
	)

	stats, err = store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{UniqueItems: 2, TotalAmount: 128}, stats)

	view, err := store.GetItem(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "dirt", view.ItemID)

	_, err = store.GetItem(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Limits(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	seedItems(t, store, models.StoredItem{Fingerprint: "a", ItemID: "stone", ModID: "minecraft", Amount: 3})

	require.NoError(t, store.SaveLimit(ctx, &models.ItemLimit{Fingerprint: "a", Min: ptr(10)}))
	first, err := store.GetLimit(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, store.SaveLimit(ctx, &models.ItemLimit{Fingerprint: "a", Min: ptr(20), Max: ptr(40)}))
	second, err := store.GetLimit(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, ptr(20), second.Min)
	assert.Equal(t, ptr(40), second.Max)
	assert.True(t, first.DateCreated.Equal(second.DateCreated), "date_created survives updates")

	// A rule for an item that is not stored is kept but not swept.
	require.NoError(t, store.SaveLimit(ctx, &models.ItemLimit{Fingerprint: "ghost", Max: ptr(1)}))

	limited, err := store.ItemsWithLimits(ctx)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, int64(3), limited[0].Item.Amount)
	assert.Equal(t, ptr(20), limited[0].Limit.Min)

	byFP, err := store.LimitsFor(ctx, []string{"a", "ghost", "nope"})
	require.NoError(t, err)
	assert.Len(t, byFP, 2)

	require.NoError(t, store.DeleteLimit(ctx, "a"))
	require.NoError(t, store.DeleteLimit(ctx, "a"))
	gone, err := store.GetLimit(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestStore_SearchEntries(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	seedItems(t, store,
		models.StoredItem{Fingerprint: "a1", ItemID: "iron_ingot", ModID: "minecraft", Amount: 1},
		models.StoredItem{Fingerprint: "a2", ItemID: "iron_ingot", ModID: "minecraft", Amount: 2},
		models.StoredItem{Fingerprint: "b", ItemID: "gear", ModID: "create", Amount: 1},
	)
	require.NoError(t, store.ReplaceAssets(ctx, []models.ItemAsset{{ItemID: "gear", DisplayName: "Cogwheel", ModID: "create"}}, nil))

	entries, err := store.SearchEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.SearchEntry{
		{ItemID: "gear", DisplayName: "Cogwheel", ModID: "create"},
		{ItemID: "iron_ingot", DisplayName: "iron_ingot", ModID: "minecraft"},
	}, entries)
}

func TestStore_CheckSchema(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE TABLE stored_items (fingerprint TEXT PRIMARY KEY, amount INTEGER)").Error)

	err = NewStore(db).CheckSchema(ctx)
	require.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "stored_items missing item_id,mod_id,is_craftable,last_modified")
}
