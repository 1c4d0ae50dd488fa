package reconcile

import (
	"context"
	"fmt"
)

// Options controls reconcile behavior.
type Options struct {
	// DryRun computes the plan without executing it.
	DryRun bool
}

// Run loads the persisted index, plans the diff against incoming and applies it.
// Run does not open a transaction; pass an adapter bound to one.
func Run[T any](ctx context.Context, adapter Adapter[T], incoming []T, opts Options) (*Plan[T], error) {
	index, err := adapter.LoadIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s index: %w", adapter.Name(), err)
	}

	plan, err := BuildPlan(adapter, index, incoming)
	if err != nil {
		return nil, err
	}

	if opts.DryRun || plan.Empty() {
		return plan, nil
	}

	if _, err := ApplyPlan(ctx, adapter, plan); err != nil {
		return nil, err
	}

	return plan, nil
}
