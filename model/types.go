package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTake is the page size used when a collection read does not specify one.
	DefaultTake = 10

	// MaxTake is the largest page size accepted by a collection read.
	MaxTake = 500
)

// Widget is an immutable snapshot of a stored widget.
type Widget struct {
	ID           uuid.UUID `json:"id"`
	X            int32     `json:"x"`
	Y            int32     `json:"y"`
	Z            int32     `json:"z"`
	Width        int32     `json:"width"`
	Height       int32     `json:"height"`
	LastModified time.Time `json:"lastModifiedDate"`
}

// Left returns the left bound of the widget's bounding box.
func (w Widget) Left() int32 { return w.X - w.Width/2 }

// Right returns the right bound of the widget's bounding box.
func (w Widget) Right() int32 { return w.X + w.Width/2 }

// Upper returns the upper bound of the widget's bounding box.
func (w Widget) Upper() int32 { return w.Y + w.Height/2 }

// Lower returns the lower bound of the widget's bounding box.
func (w Widget) Lower() int32 { return w.Y - w.Height/2 }

// CreateRequest describes a new widget.
// When Z is nil the widget is placed on top of all existing widgets.
type CreateRequest struct {
	X      int32  `json:"x"`
	Y      int32  `json:"y"`
	Z      *int32 `json:"z,omitempty"`
	Width  int32  `json:"width"`
	Height int32  `json:"height"`
}

// UpdateRequest describes a partial update. Nil fields are left untouched.
type UpdateRequest struct {
	X      *int32 `json:"x,omitempty"`
	Y      *int32 `json:"y,omitempty"`
	Z      *int32 `json:"z,omitempty"`
	Width  *int32 `json:"width,omitempty"`
	Height *int32 `json:"height,omitempty"`
}

// IsEmpty reports whether the request carries no fields.
func (r UpdateRequest) IsEmpty() bool {
	return r.X == nil && r.Y == nil && r.Z == nil && r.Width == nil && r.Height == nil
}

// Int32 returns a pointer to v. Handy for building requests.
func Int32(v int32) *int32 { return &v }
