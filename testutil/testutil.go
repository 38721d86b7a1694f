package testutil

import (
	"cmp"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/widgetstore/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int32Range returns a pseudo-random number in [lo, hi].
func (r *RNG) Int32Range(lo, hi int32) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rand.Int31n(hi-lo+1)
}

// CreateRequest returns a request with a center in [-extent, extent], a size in
// [1, extent] and no z.
func (r *RNG) CreateRequest(extent int32) model.CreateRequest {
	return model.CreateRequest{
		X:      r.Int32Range(-extent, extent),
		Y:      r.Int32Range(-extent, extent),
		Width:  r.Int32Range(1, extent),
		Height: r.Int32Range(1, extent),
	}
}

// CreateRequestAt is like CreateRequest but sets z in [0, zMax].
func (r *RNG) CreateRequestAt(extent, zMax int32) model.CreateRequest {
	req := r.CreateRequest(extent)
	req.Z = model.Int32(r.Int32Range(0, zMax))
	return req
}

// UpdateRequest returns a partial update where each field is present with
// probability one half.
func (r *RNG) UpdateRequest(extent, zMax int32) model.UpdateRequest {
	var req model.UpdateRequest
	if r.Intn(2) == 0 {
		req.X = model.Int32(r.Int32Range(-extent, extent))
	}
	if r.Intn(2) == 0 {
		req.Y = model.Int32(r.Int32Range(-extent, extent))
	}
	if r.Intn(2) == 0 {
		req.Width = model.Int32(r.Int32Range(1, extent))
	}
	if r.Intn(2) == 0 {
		req.Height = model.Int32(r.Int32Range(1, extent))
	}
	if r.Intn(2) == 0 {
		req.Z = model.Int32(r.Int32Range(0, zMax))
	}
	return req
}

// Box returns a well-formed query box inside [-2*extent, 2*extent]².
func (r *RNG) Box(extent int32) model.Box {
	a, b := r.Int32Range(-2*extent, 2*extent), r.Int32Range(-2*extent, 2*extent)
	c, d := r.Int32Range(-2*extent, 2*extent), r.Int32Range(-2*extent, 2*extent)
	return model.Box{
		Left:  min(a, b),
		Right: max(a, b),
		Lower: min(c, d),
		Upper: max(c, d),
	}
}

// SortByZ sorts widgets ascending by z in place.
func SortByZ(widgets []model.Widget) {
	slices.SortFunc(widgets, func(a, b model.Widget) int { return cmp.Compare(a.Z, b.Z) })
}

// Contained returns the widgets fully contained in box, ordered by z.
// It is the brute-force oracle for box queries.
func Contained(widgets []model.Widget, box model.Box) []model.Widget {
	var out []model.Widget
	for _, w := range widgets {
		if box.Contains(w) {
			out = append(out, w)
		}
	}
	SortByZ(out)
	return out
}

// Zs returns the z values of widgets in order.
func Zs(widgets []model.Widget) []int32 {
	out := make([]int32, len(widgets))
	for i, w := range widgets {
		out[i] = w.Z
	}
	return out
}
