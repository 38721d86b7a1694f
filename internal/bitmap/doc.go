// Package bitmap provides the slot sets used by the spatial indexes.
//
// A Bitmap is a 32-bit Roaring bitmap of arena slots. Each spatial index bucket
// owns one Bitmap holding every record that currently shares the bucket's bound
// value; range scans OR the buckets together and the containment query filters
// the union.
//
// # Pooling
//
// Scratch bitmaps built during a query are pooled:
//
//	b := bitmap.Get()
//	defer bitmap.Put(b)
//
//	b.Or(bucket)
//	b.ForEach(func(slot uint32) bool {
//	    // process slot
//	    return true
//	})
//
// Bitmaps are not safe for concurrent mutation. Callers hold the engine lock.
package bitmap
