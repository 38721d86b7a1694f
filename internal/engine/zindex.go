package engine

import (
	"cmp"
	"slices"
	"time"
)

// zIndex keeps slots sorted ascending by z with no duplicate z values.
//
// A sorted slice gives binary search for positioning and O(1) positional
// access for paging; the shift on insert walks the slice in place.
type zIndex struct {
	arena *arena
	slots []uint32
}

func newZIndex(a *arena) *zIndex {
	return &zIndex{
		arena: a,
		slots: make([]uint32, 0, 64),
	}
}

func (zi *zIndex) len() int {
	return len(zi.slots)
}

// search returns the position of z, or the position where z would be inserted.
func (zi *zIndex) search(z int32) (int, bool) {
	return slices.BinarySearchFunc(zi.slots, z, func(slot uint32, target int32) int {
		return cmp.Compare(zi.arena.get(slot).z, target)
	})
}

// topZ returns the z that places a record above all others.
// It wraps around at math.MaxInt32.
func (zi *zIndex) topZ() int32 {
	if len(zi.slots) == 0 {
		return 0
	}
	return zi.arena.get(zi.slots[len(zi.slots)-1]).z + 1
}

// appendTop places slot at the end. Its z must already be topZ().
func (zi *zIndex) appendTop(slot uint32) {
	zi.slots = append(zi.slots, slot)
}

// insert places slot at its record's z. On collision the contiguous run of
// records starting at that z is shifted up by one, each shifted record being
// touched with now. The run ends at the first gap. It returns the number of
// shifted records.
func (zi *zIndex) insert(slot uint32, now time.Time) int {
	pos, found := zi.search(zi.arena.get(slot).z)
	if !found {
		zi.slots = slices.Insert(zi.slots, pos, slot)
		return 0
	}

	shifted := 0
	incoming := zi.arena.get(slot)
	i := pos
	for ; i < len(zi.slots); i++ {
		occupant := zi.arena.get(zi.slots[i])
		if occupant.z != incoming.z {
			break
		}
		zi.slots[i] = incoming.slot
		occupant.setZ(occupant.z+1, now)
		incoming = occupant
		shifted++
	}
	zi.slots = slices.Insert(zi.slots, i, incoming.slot)
	return shifted
}

// remove deletes the slot holding z. It reports whether z was present.
func (zi *zIndex) remove(z int32) bool {
	pos, found := zi.search(z)
	if !found {
		return false
	}
	zi.removeAt(pos)
	return true
}

// removeAt deletes the slot at position pos and returns it.
func (zi *zIndex) removeAt(pos int) uint32 {
	slot := zi.slots[pos]
	zi.slots = slices.Delete(zi.slots, pos, pos+1)
	return slot
}

// window returns up to take slots starting at position skip.
// The returned slice aliases the index and must not outlive the lock.
func (zi *zIndex) window(skip, take int) []uint32 {
	if skip >= len(zi.slots) {
		return nil
	}
	end := len(zi.slots)
	if take < end-skip {
		end = skip + take
	}
	return zi.slots[skip:end]
}

// all returns every slot in ascending z order.
// The returned slice aliases the index and must not outlive the lock.
func (zi *zIndex) all() []uint32 {
	return zi.slots
}
