// Package engine implements the in-memory widget storage engine.
//
// The engine keeps every widget in a slot arena and maintains six views of it
// that must stay in lockstep:
//   - Identity index: id → slot
//   - Z-index: slots ordered by z, no duplicate z values
//   - Spatial indexes: left/right/upper/lower bound → set of slots
//
// # Z ordering
//
// Inserting a widget at an occupied z shifts the contiguous run of widgets
// starting at that z up by one. The run ends at the first gap, so widgets
// above the gap keep their z:
//
//	before: 1 2 3 _ 5     insert at 2
//	after:  1 2 3 4 5     (old 2 → 3, old 3 → 4, 5 untouched)
//
// # Containment
//
// Box queries return widgets whose bounding box is fully contained in the query
// rectangle. The left index supplies the candidate set, the other three indexes
// filter it by membership.
//
// # Concurrency
//
// A single sync.RWMutex guards the arena and all indexes. Writers are
// serialized; readers share the lock and always observe a state between two
// complete writes.
package engine
