// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/cache"
)

// ConnectDB builds the backend API client and the query cache.
//
// There is no database connection to open; the client is cheap to
// construct and the first real network traffic happens on login. A
// startup ping is deliberately not required so the frontend can come up
// before the backend does.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	api, err := hrsapi.New(appCfg.BackendBaseURL, appCfg.BackendTimeout, logger)
	if err != nil {
		logger.Error("backend client init failed", zap.Error(err))
		return DBDeps{}, err
	}

	c := cache.New(appCfg.CacheTTL, appCfg.CacheCleanup, logger)

	logger.Info("backend client ready",
		zap.String("base_url", appCfg.BackendBaseURL),
		zap.Duration("timeout", appCfg.BackendTimeout))

	return DBDeps{API: api, Cache: c}, nil
}

// EnsureSchema is a no-op: schema belongs to the backend, not this app.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
