package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidget_Bounds(t *testing.T) {
	tests := []struct {
		name                      string
		w                         Widget
		left, right, upper, lower int32
	}{
		{"odd size", Widget{X: -10, Y: 10, Width: 9, Height: 9}, -14, -6, 14, 6},
		{"even size", Widget{X: 10, Y: 10, Width: 10, Height: 10}, 5, 15, 15, 5},
		{"unit", Widget{X: 0, Y: 0, Width: 1, Height: 1}, 0, 0, 0, 0},
		{"negative center truncates toward zero", Widget{X: -3, Y: -3, Width: 3, Height: 5}, -4, -2, -1, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.left, tt.w.Left())
			assert.Equal(t, tt.right, tt.w.Right())
			assert.Equal(t, tt.upper, tt.w.Upper())
			assert.Equal(t, tt.lower, tt.w.Lower())
		})
	}
}

func TestBox_Contains(t *testing.T) {
	box := Box{Left: 0, Right: 100, Upper: 150, Lower: 0}

	assert.True(t, box.Contains(Widget{X: 50, Y: 50, Width: 100, Height: 100}))
	assert.True(t, box.Contains(Widget{X: 50, Y: 100, Width: 100, Height: 100}))
	// Overlapping but extending to the right is not contained.
	assert.False(t, box.Contains(Widget{X: 100, Y: 100, Width: 100, Height: 100}))
}

func TestUpdateRequest_IsEmpty(t *testing.T) {
	assert.True(t, UpdateRequest{}.IsEmpty())
	assert.False(t, UpdateRequest{Z: Int32(0)}.IsEmpty())
}

func TestQuery_String(t *testing.T) {
	var q Query = DefaultPage
	assert.Equal(t, "page(skip=0,take=10)", q.String())

	q = Box{Left: -1, Right: 1, Upper: 2, Lower: -2}
	assert.Equal(t, "box(left=-1,right=1,upper=2,lower=-2)", q.String())
}
