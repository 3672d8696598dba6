// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	alumnosfeature "github.com/hrs-ecuestre/hrsadmin/internal/app/features/alumnos"
	caballosfeature "github.com/hrs-ecuestre/hrsadmin/internal/app/features/caballos"
	calendariofeature "github.com/hrs-ecuestre/hrsadmin/internal/app/features/calendario"
	errorsfeature "github.com/hrs-ecuestre/hrsadmin/internal/app/features/errors"
	healthfeature "github.com/hrs-ecuestre/hrsadmin/internal/app/features/health"
	homefeature "github.com/hrs-ecuestre/hrsadmin/internal/app/features/home"
	instructoresfeature "github.com/hrs-ecuestre/hrsadmin/internal/app/features/instructores"
	loginfeature "github.com/hrs-ecuestre/hrsadmin/internal/app/features/login"
	logoutfeature "github.com/hrs-ecuestre/hrsadmin/internal/app/features/logout"
	reportesfeature "github.com/hrs-ecuestre/hrsadmin/internal/app/features/reportes"
	_ "github.com/hrs-ecuestre/hrsadmin/internal/app/features/shared/views"
	clasesstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/clases"
	recursosstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/recursos"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend clients, and any Startup
// hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: the backend API client and query cache bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// It initializes the session store and template engine, applies the
// session-loading middleware, and mounts feature routers for every area
// of the app: the calendar, the three resource registries, reports,
// authentication, and health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Shared cached stores over the backend API.
	clases := clasesstore.New(deps.API, deps.Cache, logger)
	recursos := recursosstore.New(deps.API, deps.Cache, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Root redirect to the calendar or the login page. Registered directly
	// instead of mounted so unmatched paths reach the NotFound page below.
	homeHandler := homefeature.NewHandler(logger)
	r.Get("/", homeHandler.ServeRoot)

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.API, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)
	r.NotFound(errorsHandler.NotFound)

	// Calendar: the heart of the app
	calendarioHandler := calendariofeature.NewHandler(deps.API, clases, recursos, logger)
	r.Mount("/calendario", calendariofeature.Routes(calendarioHandler))

	// Resource registries
	alumnosHandler := alumnosfeature.NewHandler(deps.API, recursos, logger)
	r.Mount("/alumnos", alumnosfeature.Routes(alumnosHandler))

	instructoresHandler := instructoresfeature.NewHandler(deps.API, recursos, logger)
	r.Mount("/instructores", instructoresfeature.Routes(instructoresHandler))

	caballosHandler := caballosfeature.NewHandler(deps.API, recursos, logger)
	r.Mount("/caballos", caballosfeature.Routes(caballosHandler))

	// Reports
	reportesHandler := reportesfeature.NewHandler(clases, logger)
	r.Mount("/reportes", reportesfeature.Routes(reportesHandler))

	return r, nil
}
