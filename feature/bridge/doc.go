// Package bridge connects the in-game storage system to the inventory.
//
// # Sockets
//
// The storage system connects to /storage, or to the bare address as in-game
// clients do, and streams its contents as JSON text frames:
//
//	{"type":"storedItem","data":{"id":"minecraft:stone","amount":64,"fingerprint":"…","isCraftable":true}}
//	{"type":"storedItemEol"}
//
// Each connection accumulates storedItem records in its own Accumulator; the end
// marker hands the complete set to the Processor as one snapshot. A single
// storedItems frame carrying the whole list in "data" is accepted as an
// equivalent cycle. gameChat frames are stored by the chat feature. Anything else
// is ignored. Malformed frames are logged and dropped; they never end a session.
// Malformed entries inside a storedItems batch are dropped the same way and the
// rest of the batch is reconciled, so a dropped fingerprint is removed until a
// later snapshot reports it correctly.
//
// Commands flow the other way through a bounded outbox per connection:
// craftItem, setLimit, webChat and, when enabled, discardItem.
//
// Observers connect to /events and receive updateItems, updateChat and
// updateStorageStatus pings. The same events can be mirrored to Redis.
//
// # Cycles
//
// Processor serializes cycles across connections. A cycle reconciles the
// snapshot, evaluates the changed items against their rules, emits commands and
// pings observers once. A failed cycle commits nothing and emits nothing.
// Scheduler re-evaluates every rule on a fixed interval so rule changes take
// effect without waiting for the inventory to move.
package bridge
