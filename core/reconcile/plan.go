package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyKey is returned when an incoming item has no key.
var ErrEmptyKey = errors.New("item has an empty key")

// BuildPlan diffs incoming against the persisted index.
// Duplicate keys in incoming resolve to the last occurrence. Every persisted key
// absent from incoming is planned for deletion. The index is not modified.
func BuildPlan[T any](adapter Adapter[T], index map[string]T, incoming []T) (*Plan[T], error) {
	latest := make(map[string]T, len(incoming))
	for _, item := range incoming {
		key := adapter.Key(item)
		if key == "" {
			return nil, ErrEmptyKey
		}
		latest[key] = item
	}

	keys := make([]string, 0, len(latest))
	for key := range latest {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	plan := &Plan[T]{Actions: []Action[T]{}, Unchanged: []string{}}

	for _, key := range keys {
		item := latest[key]
		stored, exists := index[key]

		switch {
		case !exists:
			plan.Actions = append(plan.Actions, Action[T]{Type: ActionInsert, Key: key, Item: item})
			plan.Summary.Inserts++
		case !adapter.SameIdentity(stored, item):
			plan.Actions = append(plan.Actions, Action[T]{Type: ActionReplace, Key: key, Stored: stored, Item: item})
			plan.Summary.Replaces++
		case !adapter.Equal(stored, item):
			plan.Actions = append(plan.Actions, Action[T]{Type: ActionUpdate, Key: key, Stored: stored, Item: item})
			plan.Summary.Updates++
		default:
			plan.Unchanged = append(plan.Unchanged, key)
			plan.Summary.Unchanged++
		}
	}

	// Final sweep
	var removed []string
	for key := range index {
		if _, seen := latest[key]; !seen {
			removed = append(removed, key)
		}
	}
	sort.Strings(removed)
	for _, key := range removed {
		plan.Actions = append(plan.Actions, Action[T]{Type: ActionDelete, Key: key, Stored: index[key]})
		plan.Summary.Deletes++
	}

	return plan, nil
}

// ApplyPlan executes the actions in a plan through the adapter's Mutator.
// Returns the number of actions executed and the first error encountered.
// Callers are expected to run this inside a transaction and roll back on error.
func ApplyPlan[T any](ctx context.Context, adapter Adapter[T], plan *Plan[T]) (executed int, err error) {
	mutator, ok := adapter.(Mutator[T])
	if !ok {
		return 0, fmt.Errorf("adapter %s does not implement Mutator interface", adapter.Name())
	}

	var (
		deleteKeys []string
		inserts    []T
	)

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDelete:
			deleteKeys = append(deleteKeys, action.Key)
		case ActionReplace:
			// Drop the old identity before the insert below reuses the key.
			if err := mutator.Delete(ctx, []string{action.Key}); err != nil {
				return executed, fmt.Errorf("failed to replace key %s: %w", action.Key, err)
			}
			inserts = append(inserts, action.Item)
		case ActionInsert:
			inserts = append(inserts, action.Item)
		case ActionUpdate:
			if err := mutator.Update(ctx, action.Stored, action.Item); err != nil {
				return executed, fmt.Errorf("failed to update key %s: %w", action.Key, err)
			}
			executed++
		}
	}

	if len(inserts) > 0 {
		if batch, ok := mutator.(BatchInserter[T]); ok {
			if err := batch.InsertBatch(ctx, inserts); err != nil {
				return executed, fmt.Errorf("failed to batch insert %d items: %w", len(inserts), err)
			}
			executed += len(inserts)
		} else {
			for _, item := range inserts {
				if err := mutator.Insert(ctx, item); err != nil {
					return executed, fmt.Errorf("failed to insert key %s: %w", adapter.Key(item), err)
				}
				executed++
			}
		}
	}

	if len(deleteKeys) > 0 {
		if err := mutator.Delete(ctx, deleteKeys); err != nil {
			return executed, fmt.Errorf("failed to delete %d keys: %w", len(deleteKeys), err)
		}
		executed += len(deleteKeys)
	}

	return executed, nil
}
