package engine

import (
	"github.com/google/btree"
	"github.com/hupe1980/widgetstore/internal/bitmap"
)

const spatialDegree = 32

// bucket groups every slot sharing one bound value.
type bucket struct {
	key   int32
	slots *bitmap.Bitmap
}

func bucketLess(a, b *bucket) bool { return a.key < b.key }

// spatialIndex is an ordered multimap from a derived bound value to the slots
// currently holding that value.
type spatialIndex struct {
	name  string
	keyOf func(bounds) int32
	tree  *btree.BTreeG[*bucket]
	count int
}

func newSpatialIndex(name string, keyOf func(bounds) int32) *spatialIndex {
	return &spatialIndex{
		name:  name,
		keyOf: keyOf,
		tree:  btree.NewG(spatialDegree, bucketLess),
	}
}

func newSpatialIndexes() [4]*spatialIndex {
	return [4]*spatialIndex{
		newSpatialIndex("left", func(b bounds) int32 { return b.left }),
		newSpatialIndex("right", func(b bounds) int32 { return b.right }),
		newSpatialIndex("upper", func(b bounds) int32 { return b.upper }),
		newSpatialIndex("lower", func(b bounds) int32 { return b.lower }),
	}
}

// len returns the total number of entries over all buckets.
func (si *spatialIndex) len() int {
	return si.count
}

func (si *spatialIndex) bucket(key int32) (*bucket, bool) {
	return si.tree.Get(&bucket{key: key})
}

// put adds slot to the bucket for key.
func (si *spatialIndex) put(key int32, slot uint32) {
	b, ok := si.bucket(key)
	if !ok {
		b = &bucket{key: key, slots: bitmap.New()}
		si.tree.ReplaceOrInsert(b)
	}
	if b.slots.CheckedAdd(slot) {
		si.count++
	}
}

// remove drops slot from the bucket for key, deleting the bucket once empty.
// It reports whether the slot was present.
func (si *spatialIndex) remove(key int32, slot uint32) bool {
	b, ok := si.bucket(key)
	if !ok || !b.slots.CheckedRemove(slot) {
		return false
	}
	si.count--
	if b.slots.IsEmpty() {
		si.tree.Delete(b)
	}
	return true
}

// move re-buckets slot when its bound changed from old to cur.
func (si *spatialIndex) move(old, cur bounds, slot uint32) {
	from, to := si.keyOf(old), si.keyOf(cur)
	if from == to {
		return
	}
	si.remove(from, slot)
	si.put(to, slot)
}

// atOrAbove returns the slice of keys >= bound.
func (si *spatialIndex) atOrAbove(bound int32) keyRange {
	return keyRange{index: si, lo: bound, hasLo: true}
}

// atOrBelow returns the slice of keys <= bound.
func (si *spatialIndex) atOrBelow(bound int32) keyRange {
	return keyRange{index: si, hi: bound, hasHi: true}
}

// keyRange is a view over a contiguous part of a spatial index's key space.
type keyRange struct {
	index *spatialIndex
	lo    int32
	hi    int32
	hasLo bool
	hasHi bool
}

func (kr keyRange) includes(key int32) bool {
	if kr.hasLo && key < kr.lo {
		return false
	}
	if kr.hasHi && key > kr.hi {
		return false
	}
	return true
}

// contains reports whether slot is stored under key and key lies in the range.
func (kr keyRange) contains(key int32, slot uint32) bool {
	if !kr.includes(key) {
		return false
	}
	b, ok := kr.index.bucket(key)
	return ok && b.slots.Contains(slot)
}

// ascend visits the buckets of the range in ascending key order.
func (kr keyRange) ascend(fn func(b *bucket) bool) {
	visit := func(b *bucket) bool {
		if kr.hasHi && b.key > kr.hi {
			return false
		}
		return fn(b)
	}
	if kr.hasLo {
		kr.index.tree.AscendGreaterOrEqual(&bucket{key: kr.lo}, visit)
		return
	}
	kr.index.tree.Ascend(visit)
}

// unionInto ORs every bucket of the range into dst.
func (kr keyRange) unionInto(dst *bitmap.Bitmap) {
	kr.ascend(func(b *bucket) bool {
		dst.Or(b.slots)
		return true
	})
}
