// Package reconcile provides a generic engine for converging persisted state onto
// a full-replace snapshot.
//
// A snapshot is the complete set of items that should exist. The engine diffs it
// against the persisted index and produces a Plan: inserts for new keys, updates
// for changed items, replaces for keys whose identity moved, and deletes for every
// persisted key the snapshot no longer contains.
//
// # Architecture
//
// 1. Adapter: model-specific logic. It loads the persisted index in one batch query,
//    extracts keys and decides equality. Adapters are usually bound to a transaction.
//
// 2. Plan: the pure diff, BuildPlan. No I/O, deterministic key order.
//
// 3. Apply: ApplyPlan executes a plan through the adapter's Mutator, preferring
//    batch methods when the adapter provides them.
//
// # Usage Example
//
//	err := db.Transaction(func(tx *gorm.DB) error {
//	    plan, err := reconcile.Run(ctx, newAdapter(tx), items, reconcile.Options{})
//	    if err != nil {
//	        return err
//	    }
//	    result = plan.Result()
//	    return nil
//	})
//
// Running the same snapshot twice yields an empty second plan.
package reconcile
