package bitmap

import (
	"iter"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Bitmap is a set of arena slots backed by a Roaring bitmap.
type Bitmap struct {
	rb *roaring.Bitmap
}

var pool = sync.Pool{
	New: func() any {
		return &Bitmap{rb: roaring.New()}
	},
}

// New creates a new empty bitmap.
func New() *Bitmap {
	return &Bitmap{rb: roaring.New()}
}

// Of creates a bitmap holding the given slots.
func Of(slots ...uint32) *Bitmap {
	return &Bitmap{rb: roaring.BitmapOf(slots...)}
}

// Get gets an empty bitmap from the pool. Call Put when done.
func Get() *Bitmap {
	b := pool.Get().(*Bitmap)
	b.rb.Clear()
	return b
}

// Put returns a bitmap to the pool.
func Put(b *Bitmap) {
	if b == nil {
		return
	}
	// Clear before returning to pool to release container memory
	b.rb.Clear()
	pool.Put(b)
}

// Add adds a slot to the bitmap.
func (b *Bitmap) Add(slot uint32) {
	b.rb.Add(slot)
}

// CheckedAdd adds a slot and reports whether it was absent before.
func (b *Bitmap) CheckedAdd(slot uint32) bool {
	return b.rb.CheckedAdd(slot)
}

// Remove removes a slot from the bitmap.
func (b *Bitmap) Remove(slot uint32) {
	b.rb.Remove(slot)
}

// CheckedRemove removes a slot and reports whether it was present.
func (b *Bitmap) CheckedRemove(slot uint32) bool {
	return b.rb.CheckedRemove(slot)
}

// Contains checks if a slot is in the bitmap.
func (b *Bitmap) Contains(slot uint32) bool {
	return b.rb.Contains(slot)
}

// ForEach iterates over the bitmap in ascending slot order.
// Iteration stops when fn returns false.
func (b *Bitmap) ForEach(fn func(slot uint32) bool) {
	it := b.rb.Iterator()
	for it.HasNext() {
		if !fn(it.Next()) {
			break
		}
	}
}

// All returns an iterator over the bitmap in ascending slot order.
func (b *Bitmap) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := b.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// IsEmpty returns true if the bitmap is empty.
func (b *Bitmap) IsEmpty() bool {
	return b.rb.IsEmpty()
}

// Cardinality returns the number of slots in the bitmap.
func (b *Bitmap) Cardinality() uint64 {
	return b.rb.GetCardinality()
}

// Clone returns a deep copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{rb: b.rb.Clone()}
}

// And computes the intersection of two bitmaps in place.
func (b *Bitmap) And(other *Bitmap) {
	b.rb.And(other.rb)
}

// Or computes the union of two bitmaps in place.
func (b *Bitmap) Or(other *Bitmap) {
	b.rb.Or(other.rb)
}

// Clear removes all slots from the bitmap.
func (b *Bitmap) Clear() {
	b.rb.Clear()
}

// ToArray returns the slots in ascending order.
func (b *Bitmap) ToArray() []uint32 {
	return b.rb.ToArray()
}
