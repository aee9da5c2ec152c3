// Package timeouts provides centralized timeout values for handler
// operations.
//
// Every store call and external request runs under context.WithTimeout
// using one of these durations:
//   - Ping: health checks
//   - Short: single-document reads and lookups
//   - Medium: list queries and ordinary writes
//   - Long: multi-collection writes (cascading deletes, media swaps)
//   - Upload: synchronous blob-store calls on the request path
package timeouts

import (
	"context"
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
	DefaultUpload = 20 * time.Second
)

var (
	mu sync.RWMutex

	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
	upload = DefaultUpload
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and ordinary writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for writes touching several collections.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// Upload returns the timeout for blob-store upload/delete calls.
func Upload() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return upload
}

// WithPing returns a child context bounded by the Ping timeout.
func WithPing(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, Ping())
}

// WithShort returns a child context bounded by the Short timeout.
func WithShort(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, Short())
}

// WithMedium returns a child context bounded by the Medium timeout.
func WithMedium(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, Medium())
}

// WithLong returns a child context bounded by the Long timeout.
func WithLong(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, Long())
}

// WithUpload returns a child context bounded by the Upload timeout.
func WithUpload(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, Upload())
}

// Config holds timeout overrides. Zero values are ignored.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	Upload time.Duration
}

// Configure sets custom timeout values during startup, before handlers
// are registered. Zero values keep the current settings.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Long > 0 {
		long = cfg.Long
	}
	if cfg.Upload > 0 {
		upload = cfg.Upload
	}
}

// Reset restores the defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
	long = DefaultLong
	upload = DefaultUpload
}
