package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/widgetstore/model"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by one millisecond on every reading.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(WithClock(newFakeClock().Now))
}

// addWidgets creates count unit widgets at z = fromZ, fromZ+1, ...
// and returns their ids in creation order.
func addWidgets(t *testing.T, e *Engine, fromZ int32, count int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, count)
	for i := range int32(count) {
		z := fromZ + i
		w, err := e.Create(model.CreateRequest{X: z, Y: z, Z: model.Int32(z), Width: 1, Height: 1})
		require.NoError(t, err)
		ids = append(ids, w.ID)
	}
	return ids
}

func zsOf(widgets []model.Widget) []int32 {
	out := make([]int32, len(widgets))
	for i, w := range widgets {
		out[i] = w.Z
	}
	return out
}

func idsOf(widgets []model.Widget) []uuid.UUID {
	out := make([]uuid.UUID, len(widgets))
	for i, w := range widgets {
		out[i] = w.ID
	}
	return out
}

func requireCoherent(t *testing.T, e *Engine) {
	t.Helper()
	require.NoError(t, e.CheckInvariants())
}
