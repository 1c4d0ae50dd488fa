package inventory

import (
	"context"
	"fmt"
	"time"

	"storage-bridge/core/reconcile"
	"storage-bridge/feature/inventory/models"

	"gorm.io/gorm"
)

// deleteChunk bounds the size of one IN list.
const deleteChunk = 500

// Record is one decoded item entry of a snapshot.
type Record struct {
	Fingerprint string `json:"fingerprint"`
	ItemID      string `json:"itemId"`
	ModID       string `json:"modId"`
	Amount      int64  `json:"amount"`
	IsCraftable bool   `json:"isCraftable"`
	// IsCrafting is reported by the storage system but not persisted.
	IsCrafting bool `json:"isCrafting"`
}

// Snapshot is the complete set of items reported at one moment.
type Snapshot []Record

// Outcome is the result of one reconciliation cycle.
type Outcome struct {
	*reconcile.Result

	// Changed holds the inserted and updated items with their rules, as committed.
	Changed []models.LimitedItem
}

// Reconciler converges stored_items onto snapshots.
type Reconciler struct {
	store *Store
	now   func() time.Time
}

// NewReconciler creates a reconciler over store.
func NewReconciler(store *Store) *Reconciler {
	return &Reconciler{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the time source used for last_modified.
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	r.now = now
	return r
}

// Reconcile applies snapshot in a single transaction.
// On error nothing is committed and the outcome is nil.
func (r *Reconciler) Reconcile(ctx context.Context, snapshot Snapshot) (*Outcome, error) {
	return r.run(ctx, snapshot, false)
}

// Plan computes what Reconcile would do without writing.
func (r *Reconciler) Plan(ctx context.Context, snapshot Snapshot) (*reconcile.Result, error) {
	out, err := r.run(ctx, snapshot, true)
	if err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (r *Reconciler) run(ctx context.Context, snapshot Snapshot, dryRun bool) (*Outcome, error) {
	items := make([]models.StoredItem, 0, len(snapshot))
	for _, rec := range snapshot {
		items = append(items, models.StoredItem{
			Fingerprint: rec.Fingerprint,
			ItemID:      rec.ItemID,
			ModID:       rec.ModID,
			Amount:      rec.Amount,
			IsCraftable: rec.IsCraftable,
		})
	}

	var outcome *Outcome
	err := r.store.Transaction(ctx, func(tx *Store) error {
		adapter := &itemAdapter{db: tx.db, now: r.now()}

		plan, err := reconcile.Run[models.StoredItem](ctx, adapter, items, reconcile.Options{DryRun: dryRun})
		if err != nil {
			return err
		}

		outcome = &Outcome{Result: plan.Result(), Changed: []models.LimitedItem{}}
		if dryRun {
			return nil
		}

		changed := outcome.Result.Changed()
		if len(changed) == 0 {
			return nil
		}

		limits, err := tx.LimitsFor(ctx, changed)
		if err != nil {
			return err
		}
		committed := make(map[string]models.StoredItem, len(changed))
		for _, a := range plan.Actions {
			if a.Type != reconcile.ActionDelete {
				committed[a.Key] = adapter.stamp(a.Item)
			}
		}
		for _, fp := range changed {
			outcome.Changed = append(outcome.Changed, models.LimitedItem{Item: committed[fp], Limit: limits[fp]})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reconcile cycle rolled back: %w", err)
	}
	return outcome, nil
}

// itemAdapter binds stored_items to the reconcile engine for one transaction.
type itemAdapter struct {
	db  *gorm.DB
	now time.Time
}

func (a *itemAdapter) Name() string { return "stored_items" }

func (a *itemAdapter) Key(item models.StoredItem) string { return item.Fingerprint }

func (a *itemAdapter) LoadIndex(ctx context.Context) (map[string]models.StoredItem, error) {
	var rows []models.StoredItem
	if err := a.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	index := make(map[string]models.StoredItem, len(rows))
	for _, row := range rows {
		index[row.Fingerprint] = row
	}
	return index, nil
}

func (a *itemAdapter) SameIdentity(stored, incoming models.StoredItem) bool {
	return stored.ItemID == incoming.ItemID && stored.ModID == incoming.ModID
}

// Equal ignores last_modified; it only moves when amount or craftability does.
func (a *itemAdapter) Equal(stored, incoming models.StoredItem) bool {
	return stored.Amount == incoming.Amount && stored.IsCraftable == incoming.IsCraftable
}

func (a *itemAdapter) stamp(item models.StoredItem) models.StoredItem {
	item.LastModified = a.now
	return item
}

func (a *itemAdapter) Insert(ctx context.Context, item models.StoredItem) error {
	item = a.stamp(item)
	return a.db.WithContext(ctx).Create(&item).Error
}

func (a *itemAdapter) InsertBatch(ctx context.Context, items []models.StoredItem) error {
	stamped := make([]models.StoredItem, len(items))
	for i, item := range items {
		stamped[i] = a.stamp(item)
	}
	return a.db.WithContext(ctx).CreateInBatches(stamped, deleteChunk).Error
}

func (a *itemAdapter) Update(ctx context.Context, stored, incoming models.StoredItem) error {
	return a.db.WithContext(ctx).
		Model(&models.StoredItem{}).
		Where("fingerprint = ?", stored.Fingerprint).
		Updates(map[string]any{
			"amount":        incoming.Amount,
			"is_craftable":  incoming.IsCraftable,
			"last_modified": a.now,
		}).Error
}

func (a *itemAdapter) Delete(ctx context.Context, keys []string) error {
	for start := 0; start < len(keys); start += deleteChunk {
		end := min(start+deleteChunk, len(keys))
		if err := a.db.WithContext(ctx).Where("fingerprint IN ?", keys[start:end]).Delete(&models.StoredItem{}).Error; err != nil {
			return err
		}
	}
	return nil
}
