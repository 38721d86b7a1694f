package engine

import (
	"testing"

	"github.com/hupe1980/widgetstore/internal/bitmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(si *spatialIndex) []int32 {
	var keys []int32
	si.tree.Ascend(func(b *bucket) bool {
		keys = append(keys, b.key)
		return true
	})
	return keys
}

func TestSpatialIndex_PutRemove(t *testing.T) {
	si := newSpatialIndex("left", func(b bounds) int32 { return b.left })

	si.put(5, 1)
	si.put(5, 2)
	si.put(-3, 3)
	si.put(5, 2) // idempotent

	assert.Equal(t, 3, si.len())
	assert.Equal(t, []int32{-3, 5}, keysOf(si))

	require.True(t, si.remove(5, 1))
	require.False(t, si.remove(5, 1))
	require.False(t, si.remove(42, 1))
	assert.Equal(t, 2, si.len())
	assert.Equal(t, []int32{-3, 5}, keysOf(si))

	// Removing the last slot drops the bucket.
	require.True(t, si.remove(5, 2))
	assert.Equal(t, []int32{-3}, keysOf(si))
	assert.Equal(t, 1, si.len())
}

func TestSpatialIndex_Move(t *testing.T) {
	si := newSpatialIndex("right", func(b bounds) int32 { return b.right })
	si.put(10, 7)

	si.move(bounds{right: 10}, bounds{right: 10, left: -4}, 7)
	assert.Equal(t, []int32{10}, keysOf(si))

	si.move(bounds{right: 10}, bounds{right: 12}, 7)
	assert.Equal(t, []int32{12}, keysOf(si))
	assert.Equal(t, 1, si.len())
}

func TestSpatialIndex_Ranges(t *testing.T) {
	si := newSpatialIndex("left", func(b bounds) int32 { return b.left })
	for slot, key := range []int32{-14, -14, 5, 6, 20} {
		si.put(key, uint32(slot))
	}

	tests := []struct {
		name string
		kr   keyRange
		want []uint32
	}{
		{"at or above inclusive", si.atOrAbove(5), []uint32{2, 3, 4}},
		{"at or above below all", si.atOrAbove(-100), []uint32{0, 1, 2, 3, 4}},
		{"at or above beyond all", si.atOrAbove(21), nil},
		{"at or below inclusive", si.atOrBelow(5), []uint32{0, 1, 2}},
		{"at or below below all", si.atOrBelow(-15), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bitmap.New()
			tt.kr.unionInto(got)
			if tt.want == nil {
				assert.True(t, got.IsEmpty())
				return
			}
			assert.Equal(t, tt.want, got.ToArray())
		})
	}
}

func TestKeyRange_Contains(t *testing.T) {
	si := newSpatialIndex("upper", func(b bounds) int32 { return b.upper })
	si.put(14, 1)
	si.put(15, 2)

	below := si.atOrBelow(14)
	assert.True(t, below.contains(14, 1))
	assert.False(t, below.contains(15, 2), "key outside range")
	assert.False(t, below.contains(14, 2), "slot not in bucket")
	assert.False(t, below.contains(3, 1), "bucket does not exist")

	above := si.atOrAbove(15)
	assert.True(t, above.contains(15, 2))
	assert.False(t, above.contains(14, 1))
}
