// Package timeouts centralizes timeout values for backend round-trips.
//
// Every handler wraps its backend calls in context.WithTimeout using one of
// these values, so adjusting them is a single-file change.
//
// Guidelines:
//   - Ping: health checks against the backend
//   - Short: single-entity reads, form prefills
//   - Medium: list fetches that repopulate a cache key
//   - Long: mutations and multi-request operations
//   - Bulk: bulk cancel and other fan-out operations
package timeouts

import (
	"os"
	"sync"
	"time"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
	DefaultBulk   = 60 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
	bulk   = DefaultBulk
)

// Ping returns the timeout for backend health probes.
func Ping() time.Duration { mu.RLock(); defer mu.RUnlock(); return ping }

// Short returns the timeout for single-entity reads.
func Short() time.Duration { mu.RLock(); defer mu.RUnlock(); return short }

// Medium returns the timeout for list fetches.
func Medium() time.Duration { mu.RLock(); defer mu.RUnlock(); return medium }

// Long returns the timeout for mutations.
func Long() time.Duration { mu.RLock(); defer mu.RUnlock(); return long }

// Bulk returns the timeout for fan-out operations like bulk cancel.
func Bulk() time.Duration { mu.RLock(); defer mu.RUnlock(); return bulk }

// Config holds timeout overrides. Zero values keep the current setting.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	Bulk   time.Duration
}

// Configure applies overrides. Call during startup, before handlers run.
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
	if cfg.Bulk > 0 {
		bulk = cfg.Bulk
	}
}

// Reset restores the defaults. Useful for testing.
func Reset() {
	Configure(Config{
		Ping:   DefaultPing,
		Short:  DefaultShort,
		Medium: DefaultMedium,
		Long:   DefaultLong,
		Bulk:   DefaultBulk,
	})
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_SHORT, TIMEOUT_MEDIUM,
// TIMEOUT_LONG and TIMEOUT_BULK duration strings from the environment.
// Returns how many were applied.
func ConfigureFromEnv() int {
	applied := 0
	set := func(envKey string, dst *time.Duration) {
		if v := os.Getenv(envKey); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				mu.Lock()
				*dst = d
				mu.Unlock()
				applied++
			}
		}
	}
	set("TIMEOUT_PING", &ping)
	set("TIMEOUT_SHORT", &short)
	set("TIMEOUT_MEDIUM", &medium)
	set("TIMEOUT_LONG", &long)
	set("TIMEOUT_BULK", &bulk)
	return applied
}
