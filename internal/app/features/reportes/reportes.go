// Package reportes aggregates the class collection into attendance and
// activity summaries, on screen and as an xlsx download.
package reportes

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	clasesstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/clases"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/auth"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/flash"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timegrid"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timeouts"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/viewdata"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Log    *zap.Logger
	Clases *clasesstore.Store
}

func NewHandler(clases *clasesstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Clases: clases}
}

// Conteo is one aggregation row.
type Conteo struct {
	Clave    string
	Cantidad int
}

// Resumen is the aggregated report over a date range.
type Resumen struct {
	Desde string
	Hasta string
	Total int

	PorEstado       []Conteo
	PorEspecialidad []Conteo
}

// Resumir aggregates the classes inside the inclusive [desde, hasta] range.
// Estado rows follow the fixed UI order; especialidad likewise. Zero rows
// are kept so the report shape is stable.
func Resumir(clases []models.ClaseDetallada, desde, hasta string) Resumen {
	res := Resumen{Desde: desde, Hasta: hasta}

	estados := make(map[models.Estado]int)
	especialidades := make(map[models.Especialidad]int)
	for _, c := range clases {
		if c.Dia < desde || c.Dia > hasta {
			continue
		}
		res.Total++
		estados[c.Estado]++
		especialidades[c.Especialidad]++
	}

	for _, e := range models.Estados {
		res.PorEstado = append(res.PorEstado, Conteo{Clave: string(e), Cantidad: estados[e]})
	}
	for _, e := range models.Especialidades {
		res.PorEspecialidad = append(res.PorEspecialidad, Conteo{Clave: string(e), Cantidad: especialidades[e]})
	}
	return res
}

// parseRange defaults to the current month when the query is empty or bad.
func parseRange(r *http.Request) (string, string) {
	q := r.URL.Query()
	desde, okD := timegrid.ParseDay(q.Get("desde"))
	hasta, okH := timegrid.ParseDay(q.Get("hasta"))
	if !okD || !okH || hasta.Before(desde) {
		now := time.Now()
		primero := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		ultimo := primero.AddDate(0, 1, -1)
		return timegrid.DayKey(primero), timegrid.DayKey(ultimo)
	}
	return timegrid.DayKey(desde), timegrid.DayKey(hasta)
}

type reportData struct {
	viewdata.BaseVM
	Resumen     Resumen
	ExportarURL string
}

// ServeReportes renders the aggregated report for the requested range.
func (h *Handler) ServeReportes(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	desde, hasta := parseRange(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	clases, err := h.Clases.List(ctx, hrsapi.Token(u.Token))
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			auth.SignOut(w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.Log.Warn("report fetch failed", zap.Error(err))
		flash.Add(w, r, flash.Error, err.Error())
	}

	q := url.Values{}
	q.Set("desde", desde)
	q.Set("hasta", hasta)

	templates.Render(w, r, "reportes", reportData{
		BaseVM:      viewdata.NewBaseVM(w, r, "Reportes", "/calendario"),
		Resumen:     Resumir(clases, desde, hasta),
		ExportarURL: "/reportes/exportar?" + q.Encode(),
	})
}

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServeReportes)
		pr.Get("/exportar", h.ServeExportar)
	})

	return r
}
