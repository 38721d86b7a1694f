package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/widgetstore/server"
)

type config struct {
	server          server.Config
	logLevel        slog.Level
	logFormat       string
	shutdownTimeout time.Duration
}

// parseConfig reads flags from args. Every flag falls back to a WIDGETD_*
// environment variable, then to the server defaults.
func parseConfig(args []string, getenv func(string) string, output io.Writer) (config, error) {
	def := server.DefaultConfig()

	env := func(name, fallback string) string {
		if v := getenv("WIDGETD_" + name); v != "" {
			return v
		}
		return fallback
	}

	fs := flag.NewFlagSet("widgetd", flag.ContinueOnError)
	fs.SetOutput(output)

	addr := fs.String("addr", env("ADDR", def.Addr), "listen address (WIDGETD_ADDR)")
	logLevel := fs.String("log-level", env("LOG_LEVEL", "info"), "debug, info, warn or error (WIDGETD_LOG_LEVEL)")
	logFormat := fs.String("log-format", env("LOG_FORMAT", "text"), "text or json (WIDGETD_LOG_FORMAT)")
	codecName := fs.String("codec", env("CODEC", def.Codec), "body codec: json or go-json (WIDGETD_CODEC)")
	rps := fs.String("rps", env("RPS", "0"), "sustained requests per second, 0 for unlimited (WIDGETD_RPS)")
	burst := fs.String("burst", env("BURST", "0"), "request burst above the sustained rate (WIDGETD_BURST)")
	maxInFlight := fs.String("max-inflight", env("MAX_INFLIGHT", "0"), "concurrent requests, 0 for unlimited (WIDGETD_MAX_INFLIGHT)")
	gzip := fs.String("gzip", env("GZIP", strconv.FormatBool(def.Gzip)), "compress responses (WIDGETD_GZIP)")
	shutdown := fs.Duration("shutdown-timeout", 15*time.Second, "grace period for in-flight requests")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	cfg := config{
		server:          def,
		logFormat:       strings.ToLower(*logFormat),
		shutdownTimeout: *shutdown,
	}
	cfg.server.Addr = *addr
	cfg.server.Codec = *codecName

	var errs []error
	if err := cfg.logLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if cfg.logFormat != "text" && cfg.logFormat != "json" {
		errs = append(errs, fmt.Errorf("log format: unknown %q", *logFormat))
	}

	var err error
	if cfg.server.RequestsPerSecond, err = strconv.ParseFloat(*rps, 64); err != nil || cfg.server.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("rps: invalid %q", *rps))
	}
	if cfg.server.Burst, err = strconv.Atoi(*burst); err != nil || cfg.server.Burst < 0 {
		errs = append(errs, fmt.Errorf("burst: invalid %q", *burst))
	}
	if cfg.server.MaxInFlight, err = strconv.ParseInt(*maxInFlight, 10, 64); err != nil || cfg.server.MaxInFlight < 0 {
		errs = append(errs, fmt.Errorf("max-inflight: invalid %q", *maxInFlight))
	}
	if cfg.server.Gzip, err = strconv.ParseBool(*gzip); err != nil {
		errs = append(errs, fmt.Errorf("gzip: invalid %q", *gzip))
	}

	return cfg, errors.Join(errs...)
}
