package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hupe1980/widgetstore/internal/conv"
)

// arena owns every live record and doubles as the identity index.
// Slots are stable for a record's lifetime and are reused after release.
type arena struct {
	records []*record
	free    []uint32
	ids     map[uuid.UUID]uint32
}

func newArena() *arena {
	return &arena{
		records: make([]*record, 0, 64),
		ids:     make(map[uuid.UUID]uint32),
	}
}

// alloc stores r, assigns its slot and registers its id.
func (a *arena) alloc(r *record) (uint32, error) {
	var slot uint32
	if n := len(a.free); n > 0 {
		slot = a.free[n-1]
		a.free = a.free[:n-1]
		a.records[slot] = r
	} else {
		next, err := conv.IntToUint32(len(a.records))
		if err != nil {
			return 0, fmt.Errorf("arena full: %w", err)
		}
		slot = next
		a.records = append(a.records, r)
	}
	r.slot = slot
	a.ids[r.id] = slot
	return slot, nil
}

// release removes the record held in slot and frees the slot.
func (a *arena) release(slot uint32) *record {
	r := a.records[slot]
	if r == nil {
		return nil
	}
	delete(a.ids, r.id)
	a.records[slot] = nil
	a.free = append(a.free, slot)
	return r
}

// get returns the record in slot. The slot must be live.
func (a *arena) get(slot uint32) *record {
	return a.records[slot]
}

// lookup resolves id to its record.
func (a *arena) lookup(id uuid.UUID) (*record, bool) {
	slot, ok := a.ids[id]
	if !ok {
		return nil, false
	}
	return a.records[slot], true
}

func (a *arena) len() int {
	return len(a.ids)
}
