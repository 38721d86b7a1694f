package engine

import (
	"testing"
	"time"

	"github.com/hupe1980/widgetstore/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastModified_SetOnCreate(t *testing.T) {
	e := New()

	before := time.Now()
	w, err := e.Create(model.CreateRequest{X: 1, Y: 1, Z: model.Int32(1), Width: 1, Height: 1})
	require.NoError(t, err)
	after := time.Now()

	got, err := e.Get(w.ID)
	require.NoError(t, err)
	assert.False(t, got.LastModified.Before(before))
	assert.False(t, got.LastModified.After(after))
}

func TestLastModified_AdvancesOnEveryFieldUpdate(t *testing.T) {
	fields := map[string]func(v int32) model.UpdateRequest{
		"x":      func(v int32) model.UpdateRequest { return model.UpdateRequest{X: model.Int32(v)} },
		"y":      func(v int32) model.UpdateRequest { return model.UpdateRequest{Y: model.Int32(v)} },
		"z":      func(v int32) model.UpdateRequest { return model.UpdateRequest{Z: model.Int32(v)} },
		"width":  func(v int32) model.UpdateRequest { return model.UpdateRequest{Width: model.Int32(v)} },
		"height": func(v int32) model.UpdateRequest { return model.UpdateRequest{Height: model.Int32(v)} },
	}

	for name, build := range fields {
		for _, same := range []bool{true, false} {
			v := int32(2)
			if same {
				v = 1
			}
			t.Run(name, func(t *testing.T) {
				e := newTestEngine(t)
				w, err := e.Create(model.CreateRequest{X: 1, Y: 1, Z: model.Int32(1), Width: 1, Height: 1})
				require.NoError(t, err)

				updated, err := e.Update(w.ID, build(v))
				require.NoError(t, err)
				assert.True(t, updated.LastModified.After(w.LastModified), "same=%v", same)
			})
		}
	}
}

func TestLastModified_ShiftTouchesShiftedWidget(t *testing.T) {
	e := newTestEngine(t)
	w, err := e.Create(model.CreateRequest{X: 1, Y: 1, Z: model.Int32(1), Width: 1, Height: 1})
	require.NoError(t, err)

	_, err = e.Create(model.CreateRequest{X: 1, Y: 1, Z: model.Int32(1), Width: 1, Height: 1})
	require.NoError(t, err)

	got, err := e.Get(w.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), got.Z)
	assert.True(t, got.LastModified.After(w.LastModified))
}

func TestLastModified_UntouchedByShiftAbove(t *testing.T) {
	e := newTestEngine(t)
	w, err := e.Create(model.CreateRequest{X: 1, Y: 1, Z: model.Int32(1), Width: 1, Height: 1})
	require.NoError(t, err)

	for range 2 {
		_, err = e.Create(model.CreateRequest{X: 1, Y: 1, Z: model.Int32(2), Width: 1, Height: 1})
		require.NoError(t, err)
	}

	got, err := e.Get(w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.LastModified, got.LastModified)
}

func TestLastModified_UntouchedByShiftStoppingBelow(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Create(model.CreateRequest{X: 1, Y: 1, Z: model.Int32(1), Width: 1, Height: 1})
	require.NoError(t, err)
	unshifted, err := e.Create(model.CreateRequest{X: 1, Y: 1, Z: model.Int32(3), Width: 1, Height: 1})
	require.NoError(t, err)

	_, err = e.Create(model.CreateRequest{X: 1, Y: 1, Z: model.Int32(1), Width: 1, Height: 1})
	require.NoError(t, err)

	got, err := e.Get(unshifted.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(3), got.Z)
	assert.Equal(t, unshifted.LastModified, got.LastModified)
}

func TestLastModified_UntouchedByReads(t *testing.T) {
	e := newTestEngine(t)
	w, err := e.Create(model.CreateRequest{X: 1, Y: 1, Z: model.Int32(1), Width: 1, Height: 1})
	require.NoError(t, err)

	_, err = e.List(nil)
	require.NoError(t, err)
	_, err = e.List(model.Box{Left: -10, Right: 10, Upper: 10, Lower: -10})
	require.NoError(t, err)
	_, err = e.Get(w.ID)
	require.NoError(t, err)

	got, err := e.Get(w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.LastModified, got.LastModified)
}

func TestLastModified_StrictlyIncreasesWithFrozenClock(t *testing.T) {
	frozen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := New(WithClock(func() time.Time { return frozen }))

	w, err := e.Create(model.CreateRequest{Width: 1, Height: 1})
	require.NoError(t, err)

	prev := w.LastModified
	for i := range int32(3) {
		updated, err := e.Update(w.ID, model.UpdateRequest{X: model.Int32(i)})
		require.NoError(t, err)
		assert.True(t, updated.LastModified.After(prev))
		prev = updated.LastModified
	}
}
