package bridge

import (
	"sort"

	"storage-bridge/feature/inventory"
)

// Accumulator collects streamed storedItem records until the end-of-list marker.
// It belongs to one connection and is not safe for concurrent use.
type Accumulator struct {
	records map[string]inventory.Record
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{records: make(map[string]inventory.Record)}
}

// Add stores a record. A later record with the same fingerprint replaces it.
func (a *Accumulator) Add(rec inventory.Record) {
	a.records[rec.Fingerprint] = rec
}

// Len returns the number of distinct fingerprints collected.
func (a *Accumulator) Len() int {
	return len(a.records)
}

// Flush returns the collected records as a snapshot sorted by fingerprint and resets.
func (a *Accumulator) Flush() inventory.Snapshot {
	snap := make(inventory.Snapshot, 0, len(a.records))
	for _, rec := range a.records {
		snap = append(snap, rec)
	}
	sort.Slice(snap, func(i, j int) bool { return snap[i].Fingerprint < snap[j].Fingerprint })
	a.Reset()
	return snap
}

// Reset discards everything collected.
func (a *Accumulator) Reset() {
	a.records = make(map[string]inventory.Record)
}
