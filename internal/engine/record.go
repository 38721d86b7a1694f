package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/widgetstore/model"
)

// bounds is the axis-aligned bounding box derived from a record's geometry.
type bounds struct {
	left  int32
	right int32
	upper int32
	lower int32
}

func boundsOf(x, y, width, height int32) bounds {
	// Go integer division truncates toward zero, so odd sizes lose half a unit
	// on both sides.
	return bounds{
		left:  x - width/2,
		right: x + width/2,
		upper: y + height/2,
		lower: y - height/2,
	}
}

// record is the mutable, arena-owned representation of a widget.
// Indexes refer to it by slot, never by pointer.
type record struct {
	id   uuid.UUID
	slot uint32

	x      int32
	y      int32
	z      int32
	width  int32
	height int32

	bounds       bounds
	lastModified time.Time
}

func validateSize(field string, v int32) error {
	if v <= 0 {
		return invalid(field, "must be greater than zero")
	}
	return nil
}

// newRecord builds a detached record. It is placed at z=0 until the engine
// assigns its final z under the write lock.
func newRecord(id uuid.UUID, req model.CreateRequest, now time.Time) (*record, error) {
	if err := validateSize("width", req.Width); err != nil {
		return nil, err
	}
	if err := validateSize("height", req.Height); err != nil {
		return nil, err
	}

	r := &record{
		id:     id,
		x:      req.X,
		y:      req.Y,
		width:  req.Width,
		height: req.Height,
	}
	r.bounds = boundsOf(r.x, r.y, r.width, r.height)
	r.touch(now)
	return r, nil
}

// touch advances lastModified. Timestamps of a single record strictly increase
// even when the clock does not move between two mutations.
func (r *record) touch(now time.Time) {
	if !now.After(r.lastModified) {
		now = r.lastModified.Add(time.Nanosecond)
	}
	r.lastModified = now
}

func (r *record) setX(x int32, now time.Time) {
	r.x = x
	r.bounds = boundsOf(r.x, r.y, r.width, r.height)
	r.touch(now)
}

func (r *record) setY(y int32, now time.Time) {
	r.y = y
	r.bounds = boundsOf(r.x, r.y, r.width, r.height)
	r.touch(now)
}

func (r *record) setZ(z int32, now time.Time) {
	r.z = z
	r.touch(now)
}

func (r *record) setWidth(width int32, now time.Time) error {
	if err := validateSize("width", width); err != nil {
		return err
	}
	r.width = width
	r.bounds = boundsOf(r.x, r.y, r.width, r.height)
	r.touch(now)
	return nil
}

func (r *record) setHeight(height int32, now time.Time) error {
	if err := validateSize("height", height); err != nil {
		return err
	}
	r.height = height
	r.bounds = boundsOf(r.x, r.y, r.width, r.height)
	r.touch(now)
	return nil
}

// snapshot copies the record into an immutable Widget.
func (r *record) snapshot() model.Widget {
	return model.Widget{
		ID:           r.id,
		X:            r.x,
		Y:            r.y,
		Z:            r.z,
		Width:        r.width,
		Height:       r.height,
		LastModified: r.lastModified,
	}
}
