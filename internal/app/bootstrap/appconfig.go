// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is where
// everything specific to this admin frontend lives: where the HRS REST
// backend is, how sessions are signed, and how long cached backend
// queries stay warm.
type AppConfig struct {
	// HRS backend REST API configuration
	BackendBaseURL string        // Base URL of the backend API (e.g., http://localhost:8080)
	BackendTimeout time.Duration // Per-request HTTP client timeout

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: hrsadmin-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Query cache configuration
	CacheTTL     time.Duration // How long cached backend lists stay fresh
	CacheCleanup time.Duration // How often expired entries are swept
}
