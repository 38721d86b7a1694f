package engine

import (
	"errors"
	"fmt"
)

// CheckInvariants verifies that the identity index, the z-index and the four
// spatial indexes describe the same set of widgets. It returns nil when the
// engine is coherent.
func (e *Engine) CheckInvariants() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var errs []error
	n := e.arena.len()

	if e.z.len() != n {
		errs = append(errs, fmt.Errorf("z-index holds %d widgets, identity index %d", e.z.len(), n))
	}
	for _, si := range e.spatial {
		if si.len() != n {
			errs = append(errs, fmt.Errorf("%s index holds %d entries, identity index %d", si.name, si.len(), n))
		}
	}

	seen := make(map[uint32]struct{}, n)
	for i, slot := range e.z.all() {
		r := e.arena.get(slot)
		if r == nil {
			errs = append(errs, fmt.Errorf("z-index position %d refers to free slot %d", i, slot))
			continue
		}
		if _, dup := seen[slot]; dup {
			errs = append(errs, fmt.Errorf("z-index holds slot %d twice", slot))
		}
		seen[slot] = struct{}{}
		if i > 0 {
			if prev := e.arena.get(e.z.slots[i-1]); prev != nil && prev.z >= r.z {
				errs = append(errs, fmt.Errorf("z-index out of order at position %d: %d then %d", i, prev.z, r.z))
			}
		}
	}

	for id, slot := range e.arena.ids {
		r := e.arena.get(slot)
		if r == nil || r.id != id || r.slot != slot {
			errs = append(errs, fmt.Errorf("identity index entry %s points to wrong slot %d", id, slot))
			continue
		}
		if _, ok := seen[slot]; !ok {
			errs = append(errs, fmt.Errorf("widget %s missing from z-index", id))
		}
		if r.width <= 0 || r.height <= 0 {
			errs = append(errs, fmt.Errorf("widget %s has non-positive size %dx%d", id, r.width, r.height))
		}
		if r.bounds != boundsOf(r.x, r.y, r.width, r.height) {
			errs = append(errs, fmt.Errorf("widget %s has stale bounds", id))
		}
		for _, si := range e.spatial {
			b, ok := si.bucket(si.keyOf(r.bounds))
			if !ok || !b.slots.Contains(slot) {
				errs = append(errs, fmt.Errorf("widget %s missing from %s index bucket %d", id, si.name, si.keyOf(r.bounds)))
			}
		}
	}

	return errors.Join(errs...)
}
