package search

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"storage-bridge/feature/inventory/models"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// EntrySource loads the corpus the index is built from.
type EntrySource interface {
	SearchEntries(ctx context.Context) ([]models.SearchEntry, error)
}

// target is one searchable string pointing back at its entry.
type target struct {
	entry int
	text  string
}

// targets adapts a slice of target to fuzzy.Source.
type targets []target

func (t targets) String(i int) string { return t[i].text }
func (t targets) Len() int            { return len(t) }

// Index is an in-memory fuzzy index over item id, display name and mod id.
// Search is safe for concurrent use with Rebuild.
type Index struct {
	source EntrySource
	logger *zap.Logger

	mu      sync.RWMutex
	entries []models.SearchEntry
	targets targets
	built   time.Time

	sf        singleflight.Group
	requested atomic.Uint64
}

// NewIndex creates an empty index over source.
func NewIndex(source EntrySource, logger *zap.Logger) *Index {
	return &Index{source: source, logger: logger}
}

// Rebuild reloads the corpus. Concurrent calls share one build, and a call that
// arrives while a build is running is covered by a follow-up load.
func (i *Index) Rebuild(ctx context.Context) error {
	i.requested.Add(1)

	_, err, _ := i.sf.Do("rebuild", func() (any, error) {
		for {
			gen := i.requested.Load()
			if err := i.load(ctx); err != nil {
				return nil, err
			}
			if i.requested.Load() == gen {
				return nil, nil
			}
		}
	})
	return err
}

func (i *Index) load(ctx context.Context) error {
	start := time.Now()
	entries, err := i.source.SearchEntries(ctx)
	if err != nil {
		return err
	}

	ts := make(targets, 0, len(entries)*3)
	for idx, e := range entries {
		ts = append(ts, target{entry: idx, text: strings.ToLower(e.ItemID)})
		if e.DisplayName != "" && e.DisplayName != e.ItemID {
			ts = append(ts, target{entry: idx, text: strings.ToLower(e.DisplayName)})
		}
		if e.ModID != "" {
			ts = append(ts, target{entry: idx, text: strings.ToLower(e.ModID)})
		}
	}

	i.mu.Lock()
	i.entries = entries
	i.targets = ts
	i.built = time.Now()
	i.mu.Unlock()

	i.logger.Debug("Search index rebuilt",
		zap.Int("entries", len(entries)),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// Search returns distinct item ids ranked by match quality.
// A limit of zero or less returns every match. An empty query returns nil.
func (i *Index) Search(query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	out := []string{}
	seen := make(map[string]struct{})
	for _, m := range fuzzy.FindFrom(query, i.targets) {
		id := i.entries[i.targets[m.Index].entry].ItemID
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Size returns the number of indexed entries.
func (i *Index) Size() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// BuiltAt returns when the index was last rebuilt.
func (i *Index) BuiltAt() time.Time {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.built
}
