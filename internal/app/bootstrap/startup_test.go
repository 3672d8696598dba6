package bootstrap

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestBackendBaseURLDefaultIncludesAPIPrefix(t *testing.T) {
	for _, k := range appConfigKeys {
		if k.Name != "backend_base_url" {
			continue
		}
		def, ok := k.Default.(string)
		if !ok || !strings.HasSuffix(def, "/api/v1") {
			t.Errorf("backend_base_url default %v must end in /api/v1; the client appends resource paths directly", k.Default)
		}
		return
	}
	t.Fatal("backend_base_url config key missing")
}

func TestValidateConfig_AcceptsGoodConfig(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}
	appCfg := AppConfig{
		BackendBaseURL: "http://localhost:8080",
		BackendTimeout: 30 * time.Second,
		SessionKey:     "dev-only-change-me-please-0123456789ABCDEF",
	}

	if err := ValidateConfig(coreCfg, appCfg, testLogger()); err != nil {
		t.Fatalf("ValidateConfig failed: %v", err)
	}
}

func TestValidateConfig_RejectsBadBackendURL(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}

	for _, bad := range []string{"", "not a url", "localhost:8080", "/just/a/path"} {
		appCfg := AppConfig{BackendBaseURL: bad}
		if err := ValidateConfig(coreCfg, appCfg, testLogger()); err == nil {
			t.Errorf("ValidateConfig accepted backend URL %q", bad)
		}
	}
}

func TestValidateConfig_RequiresStrongSessionKeyInProd(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "prod"}
	appCfg := AppConfig{
		BackendBaseURL: "https://api.example.com",
		SessionKey:     "short",
	}

	if err := ValidateConfig(coreCfg, appCfg, testLogger()); err == nil {
		t.Error("ValidateConfig accepted a short session key in prod")
	}

	appCfg.SessionKey = "0123456789abcdef0123456789abcdef"
	if err := ValidateConfig(coreCfg, appCfg, testLogger()); err != nil {
		t.Errorf("ValidateConfig rejected a 32-char session key: %v", err)
	}
}
