package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_AllocLookupRelease(t *testing.T) {
	a := newArena()
	r1 := &record{id: uuid.New(), width: 1, height: 1}
	r2 := &record{id: uuid.New(), width: 1, height: 1}

	s1 := mustAlloc(t, a, r1)
	s2 := mustAlloc(t, a, r2)
	assert.Equal(t, uint32(0), s1)
	assert.Equal(t, uint32(1), s2)
	assert.Equal(t, s1, r1.slot)
	assert.Equal(t, 2, a.len())

	got, ok := a.lookup(r2.id)
	require.True(t, ok)
	assert.Same(t, r2, got)

	assert.Same(t, r1, a.release(s1))
	assert.Nil(t, a.release(s1), "second release is a no-op")
	_, ok = a.lookup(r1.id)
	assert.False(t, ok)
	assert.Equal(t, 1, a.len())

	r3 := &record{id: uuid.New(), width: 1, height: 1}
	assert.Equal(t, s1, mustAlloc(t, a, r3), "freed slot is reused")
	assert.Len(t, a.records, 2)
}
