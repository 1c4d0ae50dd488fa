package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"storage-bridge/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	mu      sync.Mutex
	entries []models.SearchEntry
	err     error
	calls   atomic.Int32
	gate    chan struct{}
}

func (f *fakeSource) SearchEntries(ctx context.Context) ([]models.SearchEntry, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SearchEntry(nil), f.entries...), f.err
}

func corpus() []models.SearchEntry {
	return []models.SearchEntry{
		{ItemID: "iron_ingot", DisplayName: "Iron Ingot", ModID: "minecraft"},
		{ItemID: "iron_block", DisplayName: "Block of Iron", ModID: "minecraft"},
		{ItemID: "gear", DisplayName: "Cogwheel", ModID: "create"},
		{ItemID: "dirt", DisplayName: "dirt", ModID: "minecraft"},
	}
}

func TestIndex_Search(t *testing.T) {
	idx := NewIndex(&fakeSource{entries: corpus()}, zap.NewNop())
	require.NoError(t, idx.Rebuild(context.Background()))
	assert.Equal(t, 4, idx.Size())
	assert.False(t, idx.BuiltAt().IsZero())

	t.Run("ByItemID", func(t *testing.T) {
		got := idx.Search("iron", 0)
		assert.ElementsMatch(t, []string{"iron_ingot", "iron_block"}, got)
	})

	t.Run("ByDisplayName", func(t *testing.T) {
		assert.Equal(t, []string{"gear"}, idx.Search("Cogwheel", 0))
	})

	t.Run("ByModID", func(t *testing.T) {
		assert.Equal(t, []string{"gear"}, idx.Search("create", 0))
	})

	t.Run("DistinctIDs", func(t *testing.T) {
		got := idx.Search("i", 0)
		seen := map[string]bool{}
		for _, id := range got {
			assert.False(t, seen[id], "duplicate %s", id)
			seen[id] = true
		}
	})

	t.Run("Limit", func(t *testing.T) {
		assert.Len(t, idx.Search("iron", 1), 1)
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		assert.Nil(t, idx.Search("   ", 10))
	})

	t.Run("NoMatch", func(t *testing.T) {
		assert.Empty(t, idx.Search("zzz", 10))
	})
}

func TestIndex_RebuildError(t *testing.T) {
	idx := NewIndex(&fakeSource{err: errors.New("db gone")}, zap.NewNop())
	assert.ErrorContains(t, idx.Rebuild(context.Background()), "db gone")
	assert.Equal(t, 0, idx.Size())
}

func TestIndex_RebuildPicksUpChanges(t *testing.T) {
	src := &fakeSource{entries: corpus()[:1]}
	idx := NewIndex(src, zap.NewNop())
	require.NoError(t, idx.Rebuild(context.Background()))
	assert.Empty(t, idx.Search("gear", 0))

	src.mu.Lock()
	src.entries = corpus()
	src.mu.Unlock()

	require.NoError(t, idx.Rebuild(context.Background()))
	assert.Equal(t, []string{"gear"}, idx.Search("gear", 0))
}

func TestIndex_ConcurrentRebuildsCollapse(t *testing.T) {
	src := &fakeSource{entries: corpus(), gate: make(chan struct{})}
	idx := NewIndex(src, zap.NewNop())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, idx.Rebuild(context.Background()))
		}()
	}
	close(src.gate)
	wg.Wait()

	assert.Equal(t, 4, idx.Size())
	assert.LessOrEqual(t, int(src.calls.Load()), 8)
	assert.GreaterOrEqual(t, int(src.calls.Load()), 1)
}

func TestHandleSearch(t *testing.T) {
	idx := NewIndex(&fakeSource{entries: corpus()}, zap.NewNop())
	require.NoError(t, idx.Rebuild(context.Background()))

	app := fiber.New()
	require.NoError(t, NewFeature(idx).Load(app))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/search?q=cog&limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/search", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
