// Package inventory owns the persisted view of the storage system.
//
// It converges stored_items onto full snapshots, holds the per-item limit rules
// and decides which items need crafting or discarding.
//
// # Reconciliation
//
// Reconciler.Reconcile applies one Snapshot inside a single transaction: the
// persisted index is loaded once, each record is inserted, updated or left alone,
// and every fingerprint the snapshot no longer contains is deleted. A failure at
// any step rolls the whole cycle back. last_modified only moves when the amount or
// craftability changes, so replaying a snapshot is a no-op.
//
// # Limits
//
// Evaluate is a pure function of an item and its rule:
//
//	amount > max              -> DiscardExcess(amount - max)
//	amount < min, craftable   -> RequestMore(min - amount)
//	amount < min, otherwise   -> Unremediable
//
// Rules are written through Service.UpdateLimits, which rejects max <= min and
// deletes the rule when both bounds are omitted.
//
// # HTTP
//
//	GET    /inventory/items
//	GET    /inventory/items/:fingerprint
//	PUT    /inventory/items/:fingerprint/limits
//	DELETE /inventory/items/:fingerprint/limits
//	GET    /inventory/stats
//	POST   /inventory/craft
package inventory
