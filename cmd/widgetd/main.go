// Command widgetd serves an in-memory widget store over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"

	"github.com/hupe1980/widgetstore"
	wsprom "github.com/hupe1980/widgetstore/metrics/prometheus"
	"github.com/hupe1980/widgetstore/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Getenv, os.Stderr, nil))
}

// run starts the server and blocks until ctx is done or serving fails.
// When ln is nil it listens on the configured address.
func run(ctx context.Context, args []string, getenv func(string) string, stderr io.Writer, ln net.Listener) int {
	cfg, err := parseConfig(args, getenv, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "widgetd:", err)
		return 2
	}

	logger := newLogger(cfg, stderr)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := wsprom.New(reg)

	store := widgetstore.New(
		widgetstore.WithLogger(logger),
		widgetstore.WithMetricsCollector(metrics),
	)
	metrics.WatchStore(store)

	srv, err := server.New(store, cfg.server,
		server.WithLogger(logger),
		server.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg, DisableCompression: true})),
		server.WithRejectionObserver(metrics.RecordRejected),
	)
	if err != nil {
		fmt.Fprintln(stderr, "widgetd:", err)
		return 2
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if ln != nil {
			err = srv.Serve(ln)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "error", err)
		return 1
	}
	logger.Info("server stopped", "widgets", store.Len())
	return 0
}

func newLogger(cfg config, w io.Writer) *widgetstore.Logger {
	opts := &slog.HandlerOptions{Level: cfg.logLevel}
	if cfg.logFormat == "json" {
		return widgetstore.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return widgetstore.NewLogger(slog.NewTextHandler(w, opts))
}
