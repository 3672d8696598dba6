// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down app resources. The backend client holds no
// persistent connections, so only the cache needs flushing.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Cache != nil {
		logger.Info("flushing query cache")
		deps.Cache.Flush()
	}
	return nil
}
