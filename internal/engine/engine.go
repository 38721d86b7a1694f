package engine

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/widgetstore/internal/bitmap"
	"github.com/hupe1980/widgetstore/model"
)

const (
	leftIndex = iota
	rightIndex
	upperIndex
	lowerIndex
)

// Stats is a point-in-time summary of the engine.
type Stats struct {
	Count   int
	MinZ    int32
	MaxZ    int32
	Version uint64
}

// Engine is the in-memory widget store.
type Engine struct {
	mu sync.RWMutex

	arena   *arena
	z       *zIndex
	spatial [4]*spatialIndex

	// version is bumped once per completed mutation, under the write lock.
	version atomic.Uint64

	clock  func() time.Time
	logger *slog.Logger
}

// New creates an empty engine.
func New(optFns ...Option) *Engine {
	opts := applyOptions(optFns)
	a := newArena()
	return &Engine{
		arena:   a,
		z:       newZIndex(a),
		spatial: newSpatialIndexes(),
		clock:   opts.clock,
		logger:  opts.logger,
	}
}

// Create stores a new widget. When req.Z is nil the widget goes on top;
// otherwise it is inserted at req.Z, shifting colliding widgets up.
func (e *Engine) Create(req model.CreateRequest) (model.Widget, error) {
	// Validate before touching the lock.
	r, err := newRecord(uuid.New(), req, e.clock())
	if err != nil {
		return model.Widget{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	slot, err := e.arena.alloc(r)
	if err != nil {
		return model.Widget{}, err
	}
	for _, si := range e.spatial {
		si.put(si.keyOf(r.bounds), slot)
	}

	shifted := 0
	if req.Z == nil {
		r.setZ(e.z.topZ(), now)
		e.z.appendTop(slot)
	} else {
		r.setZ(*req.Z, now)
		shifted = e.z.insert(slot, now)
	}
	e.version.Add(1)

	if shifted > 0 {
		e.logger.Debug("z run shifted", "id", r.id, "z", r.z, "shifted", shifted)
	}
	return r.snapshot(), nil
}

// Get returns the widget with the given id.
func (e *Engine) Get(id uuid.UUID) (model.Widget, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	r, ok := e.arena.lookup(id)
	if !ok {
		return model.Widget{}, notFound(id)
	}
	return r.snapshot(), nil
}

// List returns a collection of widgets ordered ascending by z.
// A nil query selects model.DefaultPage.
func (e *Engine) List(q model.Query) ([]model.Widget, error) {
	switch q := q.(type) {
	case nil:
		return e.page(model.DefaultPage), nil
	case model.Page:
		if err := ValidatePage(q); err != nil {
			return nil, err
		}
		return e.page(q), nil
	case *model.Page:
		if q == nil {
			return e.page(model.DefaultPage), nil
		}
		return e.List(*q)
	case model.Box:
		if err := ValidateBox(q); err != nil {
			return nil, err
		}
		return e.box(q), nil
	case *model.Box:
		if q == nil {
			return nil, invalid("query", "nil box")
		}
		return e.List(*q)
	default:
		return nil, invalid("query", fmt.Sprintf("unsupported type %T", q))
	}
}

// ValidatePage checks paging parameters.
func ValidatePage(p model.Page) error {
	if p.Skip < 0 {
		return invalid("skip", "must not be negative")
	}
	if p.Take < 0 {
		return invalid("take", "must not be negative")
	}
	if p.Take > model.MaxTake {
		return invalid("take", fmt.Sprintf("must not exceed %d", model.MaxTake))
	}
	return nil
}

// ValidateBox checks that the box is well-formed.
func ValidateBox(b model.Box) error {
	if b.Left > b.Right {
		return invalid("leftBound", "must not exceed rightBound")
	}
	if b.Lower > b.Upper {
		return invalid("lowerBound", "must not exceed upperBound")
	}
	return nil
}

func (e *Engine) page(p model.Page) []model.Widget {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.snapshots(e.z.window(p.Skip, p.Take))
}

// box runs the containment query. The left index supplies the candidates;
// the right, upper and lower indexes filter them by membership.
func (e *Engine) box(b model.Box) []model.Widget {
	e.mu.RLock()
	defer e.mu.RUnlock()

	right := e.spatial[rightIndex].atOrBelow(b.Right)
	upper := e.spatial[upperIndex].atOrBelow(b.Upper)
	lower := e.spatial[lowerIndex].atOrAbove(b.Lower)

	candidates := bitmap.Get()
	defer bitmap.Put(candidates)
	e.spatial[leftIndex].atOrAbove(b.Left).unionInto(candidates)

	matches := make([]*record, 0, candidates.Cardinality())
	candidates.ForEach(func(slot uint32) bool {
		r := e.arena.get(slot)
		if right.contains(r.bounds.right, slot) &&
			upper.contains(r.bounds.upper, slot) &&
			lower.contains(r.bounds.lower, slot) {
			matches = append(matches, r)
		}
		return true
	})
	slices.SortFunc(matches, func(a, b *record) int { return cmp.Compare(a.z, b.z) })

	out := make([]model.Widget, len(matches))
	for i, r := range matches {
		out[i] = r.snapshot()
	}
	return out
}

// ReadAll returns every widget ordered ascending by z.
func (e *Engine) ReadAll() []model.Widget {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.snapshots(e.z.all())
}

func (e *Engine) snapshots(slots []uint32) []model.Widget {
	out := make([]model.Widget, len(slots))
	for i, slot := range slots {
		out[i] = e.arena.get(slot).snapshot()
	}
	return out
}

// ValidateUpdate checks the fields of a partial update.
func ValidateUpdate(req model.UpdateRequest) error {
	if req.Width != nil {
		if err := validateSize("width", *req.Width); err != nil {
			return err
		}
	}
	if req.Height != nil {
		if err := validateSize("height", *req.Height); err != nil {
			return err
		}
	}
	return nil
}

// Update applies the non-nil fields of req to the widget with the given id.
// Fields are applied in the order x, y, width, height, z. A z change may shift
// other widgets exactly like Create.
func (e *Engine) Update(id uuid.UUID, req model.UpdateRequest) (model.Widget, error) {
	if err := ValidateUpdate(req); err != nil {
		return model.Widget{}, err
	}

	// Resolve under the shared lock first so misses never wait for writers.
	if !e.contains(id) {
		return model.Widget{}, notFound(id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// The widget may have been deleted between the two lock sections.
	r, ok := e.arena.lookup(id)
	if !ok {
		return model.Widget{}, notFound(id)
	}
	if req.IsEmpty() {
		return r.snapshot(), nil
	}

	now := e.clock()
	old := r.bounds
	shifted, err := e.apply(r, req, now)
	for _, si := range e.spatial {
		si.move(old, r.bounds, r.slot)
	}
	e.version.Add(1)
	if err != nil {
		return model.Widget{}, err
	}

	if shifted > 0 {
		e.logger.Debug("z run shifted", "id", r.id, "z", r.z, "shifted", shifted)
	}
	return r.snapshot(), nil
}

// apply mutates r in place and keeps the z-index in order.
// Spatial indexes are re-bucketed by the caller.
func (e *Engine) apply(r *record, req model.UpdateRequest, now time.Time) (int, error) {
	if req.X != nil {
		r.setX(*req.X, now)
	}
	if req.Y != nil {
		r.setY(*req.Y, now)
	}
	if req.Width != nil {
		if err := r.setWidth(*req.Width, now); err != nil {
			return 0, err
		}
	}
	if req.Height != nil {
		if err := r.setHeight(*req.Height, now); err != nil {
			return 0, err
		}
	}
	if req.Z == nil {
		return 0, nil
	}
	if *req.Z == r.z {
		r.setZ(r.z, now)
		return 0, nil
	}

	pos, found := e.z.search(r.z)
	if !found {
		return 0, fmt.Errorf("z-index lost widget %s at z=%d", r.id, r.z)
	}
	e.z.removeAt(pos)
	r.setZ(*req.Z, now)
	return e.z.insert(r.slot, now), nil
}

// Delete removes the widget with the given id from every index and returns
// its last state.
func (e *Engine) Delete(id uuid.UUID) (model.Widget, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.arena.lookup(id)
	if !ok {
		return model.Widget{}, notFound(id)
	}

	e.z.remove(r.z)
	for _, si := range e.spatial {
		si.remove(si.keyOf(r.bounds), r.slot)
	}
	e.arena.release(r.slot)
	e.version.Add(1)

	return r.snapshot(), nil
}

func (e *Engine) contains(id uuid.UUID) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	_, ok := e.arena.lookup(id)
	return ok
}

// Len returns the number of stored widgets.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.arena.len()
}

// Version returns the number of completed mutations.
func (e *Engine) Version() uint64 {
	return e.version.Load()
}

// Stats returns a consistent summary of the engine.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := Stats{
		Count:   e.arena.len(),
		Version: e.version.Load(),
	}
	if n := e.z.len(); n > 0 {
		s.MinZ = e.arena.get(e.z.slots[0]).z
		s.MaxZ = e.arena.get(e.z.slots[n-1]).z
	}
	return s
}
