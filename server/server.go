package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/hupe1980/widgetstore"
	"github.com/hupe1980/widgetstore/codec"
	"github.com/hupe1980/widgetstore/internal/resource"
	"github.com/klauspost/compress/gzhttp"
)

// ErrUnknownCodec is returned by New when Config.Codec names no built-in codec.
var ErrUnknownCodec = errors.New("unknown codec")

// Server serves a widgetstore.Store over HTTP.
type Server struct {
	store  *widgetstore.Store
	cfg    Config
	codec  codec.Codec
	logger *widgetstore.Logger

	admission  *resource.Controller
	onRejected func(reason string)
	metrics    http.Handler

	handler http.Handler
	http    *http.Server
}

// WithLogger sets the request logger.
func WithLogger(l *widgetstore.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsHandler serves h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithRejectionObserver registers fn to be called with "rate" or "overload"
// whenever admission control turns a request away.
func WithRejectionObserver(fn func(reason string)) Option {
	return func(s *Server) {
		s.onRejected = fn
	}
}

// New creates a Server for store.
func New(store *widgetstore.Store, cfg Config, optFns ...Option) (*Server, error) {
	c, ok := codec.ByName(cfg.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, cfg.Codec)
	}

	s := &Server{
		store:  store,
		cfg:    cfg,
		codec:  c,
		logger: widgetstore.NoopLogger(),
		admission: resource.NewController(resource.Config{
			RequestsPerSecond: cfg.RequestsPerSecond,
			Burst:             cfg.Burst,
			MaxInFlight:       cfg.MaxInFlight,
		}),
		onRejected: func(string) {},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(s)
		}
	}
	s.logger = s.logger.WithComponent("http")

	s.handler = s.routes()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	widgets := http.NewServeMux()
	widgets.HandleFunc("POST /widgets", s.handleCreate)
	widgets.HandleFunc("GET /widgets", s.handleList)
	widgets.HandleFunc("GET /widgets/{id}", s.handleGet)
	widgets.HandleFunc("PATCH /widgets/{id}", s.handleUpdate)
	widgets.HandleFunc("DELETE /widgets/{id}", s.handleDelete)

	mux := http.NewServeMux()
	mux.Handle("/widgets", s.admit(widgets))
	mux.Handle("/widgets/", s.admit(widgets))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /debug/invariants", s.handleInvariants)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}

	var h http.Handler = mux
	if s.cfg.Gzip {
		h = gzhttp.GzipHandler(h)
	}
	return s.logRequests(h)
}

// Handler returns the root handler, including middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on Config.Addr and serves until Shutdown.
// It returns http.ErrServerClosed after a graceful shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", "addr", s.cfg.Addr, "codec", s.codec.Name())
	return s.http.ListenAndServe()
}

// Serve serves on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("listening", "addr", ln.Addr().String(), "codec", s.codec.Name())
	return s.http.Serve(ln)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down", "in_flight", s.admission.InFlight())
	return s.http.Shutdown(ctx)
}
