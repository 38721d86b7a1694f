package server

import (
	"time"

	"github.com/hupe1980/widgetstore/codec"
)

// Config holds HTTP server settings.
type Config struct {
	// Addr is the TCP address to listen on.
	Addr string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// MaxBodyBytes caps request bodies. Larger bodies are rejected with 400.
	MaxBodyBytes int64

	// Codec names the body codec, see codec.ByName.
	Codec string

	// Gzip enables response compression for clients that accept it.
	Gzip bool

	// RequestsPerSecond and Burst limit the request rate. 0 disables the limit.
	RequestsPerSecond float64
	Burst             int

	// MaxInFlight caps concurrently served requests. 0 disables the cap.
	MaxInFlight int64
}

// DefaultConfig returns the settings used by widgetd unless overridden.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxBodyBytes:      1 << 20,
		Codec:             codec.Default.Name(),
		Gzip:              true,
	}
}

// Option configures a Server.
type Option func(*Server)
