package widgetstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/widgetstore/internal/engine"
	"github.com/hupe1980/widgetstore/model"
)

// List modes reported to MetricsCollector.RecordList.
const (
	ListModePage = "page"
	ListModeBox  = "box"
)

// Stats is a point-in-time summary of a Store.
type Stats struct {
	Count   int    `json:"count"`
	MinZ    int32  `json:"minZ"`
	MaxZ    int32  `json:"maxZ"`
	Version uint64 `json:"version"`
}

// Store is a concurrent in-memory widget store.
type Store struct {
	engine  *engine.Engine
	metrics MetricsCollector
	logger  *Logger
}

// New creates an empty Store.
func New(optFns ...Option) *Store {
	opts := applyOptions(optFns)
	return &Store{
		engine: engine.New(
			engine.WithClock(opts.clock),
			engine.WithLogger(opts.logger.WithComponent("engine").Logger),
		),
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}
}

// Create stores a new widget and returns its snapshot.
//
// Without req.Z the widget is placed above every existing widget. With req.Z
// set, widgets occupying the contiguous run starting at that z move up by one.
func (s *Store) Create(ctx context.Context, req model.CreateRequest) (model.Widget, error) {
	start := time.Now()
	w, err := s.engine.Create(req)
	err = translateError(err)
	s.metrics.RecordCreate(time.Since(start), err)
	s.logger.LogCreate(ctx, w, err)
	return w, err
}

// Get returns the widget with the given id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (model.Widget, error) {
	start := time.Now()
	w, err := s.engine.Get(id)
	err = translateError(err)
	s.metrics.RecordGet(time.Since(start), err)
	if err != nil {
		s.logger.DebugContext(ctx, "get failed", "id", id, "error", err)
	}
	return w, err
}

// List returns widgets ordered ascending by z. q is a model.Page, a
// model.Box or nil for the first model.DefaultTake widgets.
func (s *Store) List(ctx context.Context, q model.Query) ([]model.Widget, error) {
	start := time.Now()
	widgets, err := s.engine.List(q)
	err = translateError(err)
	s.metrics.RecordList(listMode(q), len(widgets), time.Since(start), err)
	s.logger.LogList(ctx, q, len(widgets), err)
	return widgets, err
}

// ReadAll returns every widget ordered ascending by z.
func (s *Store) ReadAll(ctx context.Context) []model.Widget {
	start := time.Now()
	widgets := s.engine.ReadAll()
	s.metrics.RecordList(ListModePage, len(widgets), time.Since(start), nil)
	return widgets
}

// Update applies the non-nil fields of req to the widget with the given id and
// returns the new snapshot.
func (s *Store) Update(ctx context.Context, id uuid.UUID, req model.UpdateRequest) (model.Widget, error) {
	start := time.Now()
	w, err := s.engine.Update(id, req)
	err = translateError(err)
	s.metrics.RecordUpdate(time.Since(start), err)
	s.logger.LogUpdate(ctx, id, err)
	return w, err
}

// Delete removes the widget with the given id and returns its last snapshot.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) (model.Widget, error) {
	start := time.Now()
	w, err := s.engine.Delete(id)
	err = translateError(err)
	s.metrics.RecordDelete(time.Since(start), err)
	s.logger.LogDelete(ctx, id, err)
	return w, err
}

// Len returns the number of stored widgets.
func (s *Store) Len() int {
	return s.engine.Len()
}

// Stats returns count, z range and write version taken under one read lock.
func (s *Store) Stats() Stats {
	st := s.engine.Stats()
	return Stats{
		Count:   st.Count,
		MinZ:    st.MinZ,
		MaxZ:    st.MaxZ,
		Version: st.Version,
	}
}

// CheckInvariants verifies that all internal indexes agree with each other.
// It returns nil for a coherent store.
func (s *Store) CheckInvariants() error {
	return s.engine.CheckInvariants()
}

func listMode(q model.Query) string {
	switch q.(type) {
	case model.Box, *model.Box:
		return ListModeBox
	default:
		return ListModePage
	}
}
