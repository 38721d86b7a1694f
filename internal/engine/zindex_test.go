package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zFixture places detached records with the given z values into a fresh z-index.
func zFixture(t *testing.T, zs ...int32) (*arena, *zIndex) {
	t.Helper()
	a := newArena()
	zi := newZIndex(a)
	for _, z := range zs {
		slot := mustAlloc(t, a, &record{id: uuid.New(), z: z, width: 1, height: 1})
		zi.insert(slot, time.Now())
	}
	return a, zi
}

func mustAlloc(t *testing.T, a *arena, r *record) uint32 {
	t.Helper()
	slot, err := a.alloc(r)
	require.NoError(t, err)
	return slot
}

func zValues(a *arena, zi *zIndex) []int32 {
	out := make([]int32, 0, zi.len())
	for _, slot := range zi.all() {
		out = append(out, a.get(slot).z)
	}
	return out
}

func TestZIndex_TopZ(t *testing.T) {
	_, zi := zFixture(t)
	assert.Equal(t, int32(0), zi.topZ())

	_, zi = zFixture(t, -10)
	assert.Equal(t, int32(-9), zi.topZ())

	_, zi = zFixture(t, 1, 3)
	assert.Equal(t, int32(4), zi.topZ())
}

func TestZIndex_InsertWithoutCollision(t *testing.T) {
	a, zi := zFixture(t, 5, 1, 3)
	assert.Equal(t, []int32{1, 3, 5}, zValues(a, zi))
}

func TestZIndex_InsertShiftsContiguousRun(t *testing.T) {
	tests := []struct {
		name    string
		initial []int32
		insert  int32
		want    []int32
		shifted int
	}{
		{"shift whole run", []int32{1, 2, 3}, 2, []int32{1, 2, 3, 4}, 2},
		{"gap stops shift", []int32{1, 5, 6}, 2, []int32{1, 2, 5, 6}, 0},
		{"only colliding widget moves before gap", []int32{1, 2, 4}, 2, []int32{1, 2, 3, 4}, 1},
		{"run closes gap exactly", []int32{1, 2, 3, 5}, 2, []int32{1, 2, 3, 4, 5}, 2},
		{"collision at bottom", []int32{0, 1, 2}, 0, []int32{0, 1, 2, 3}, 3},
		{"collision at top", []int32{0, 1, 2}, 2, []int32{0, 1, 2, 3}, 1},
		{"negative z", []int32{-2, -1}, -2, []int32{-2, -1, 0}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, zi := zFixture(t, tt.initial...)
			slot := mustAlloc(t, a, &record{id: uuid.New(), z: tt.insert, width: 1, height: 1})

			shifted := zi.insert(slot, time.Now())

			assert.Equal(t, tt.shifted, shifted)
			assert.Equal(t, tt.want, zValues(a, zi))
			assert.Equal(t, tt.insert, a.get(slot).z, "inserted record keeps its requested z")
		})
	}
}

func TestZIndex_InsertTouchesOnlyShiftedRecords(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := newArena()
	zi := newZIndex(a)

	var slots []uint32
	for _, z := range []int32{1, 2, 4} {
		slot := mustAlloc(t, a, &record{id: uuid.New(), z: z, width: 1, height: 1, lastModified: start})
		zi.insert(slot, start)
		slots = append(slots, slot)
	}

	later := start.Add(time.Hour)
	incoming := mustAlloc(t, a, &record{id: uuid.New(), z: 2, width: 1, height: 1})
	zi.insert(incoming, later)

	assert.Equal(t, start, a.get(slots[0]).lastModified, "below the insert point")
	assert.Equal(t, later, a.get(slots[1]).lastModified, "shifted from 2 to 3")
	assert.Equal(t, start, a.get(slots[2]).lastModified, "beyond the gap")
}

func TestZIndex_Remove(t *testing.T) {
	a, zi := zFixture(t, 1, 2, 3)

	require.True(t, zi.remove(2))
	require.False(t, zi.remove(2))
	assert.Equal(t, []int32{1, 3}, zValues(a, zi))

	pos, found := zi.search(3)
	require.True(t, found)
	slot := zi.removeAt(pos)
	assert.Equal(t, int32(3), a.get(slot).z)
	assert.Equal(t, []int32{1}, zValues(a, zi))
}

func TestZIndex_Window(t *testing.T) {
	a, zi := zFixture(t)
	for z := range int32(50) {
		zi.appendTop(mustAlloc(t, a, &record{id: uuid.New(), z: z, width: 1, height: 1}))
	}

	window := zi.window(25, 20)
	require.Len(t, window, 20)
	assert.Equal(t, int32(25), a.get(window[0]).z)
	assert.Equal(t, int32(44), a.get(window[19]).z)

	assert.Len(t, zi.window(45, 10), 5)
	assert.Empty(t, zi.window(50, 10))
	assert.Empty(t, zi.window(100, 10))
	assert.Empty(t, zi.window(0, 0))
}
