// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/cache"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after backend clients
// are built, but before the HTTP handler is. Timeout overrides are read
// from the environment here, and cache invalidations get a log subscriber
// so refetch storms are visible in the logs.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeout overrides applied from environment", zap.Int("count", n))
	}

	logInvalidation := func(k cache.Key) {
		logger.Info("cache invalidated", zap.String("key", string(k)))
	}
	for _, k := range []cache.Key{cache.KeyClases, cache.KeyAlumnos, cache.KeyInstructores, cache.KeyCaballos} {
		deps.Cache.Subscribe(k, logInvalidation)
	}

	return nil
}
