package calendario

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	clasesstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/clases"
	recursosstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/recursos"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/auth"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/flash"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timegrid"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timeouts"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
	"go.uber.org/zap"
)

// ServeCalendario is the single calendar entry point. The URL decides which
// grid (month, week, day) is rendered and with what filters.
func (h *Handler) ServeCalendario(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	vs := parseViewState(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	clases, err := h.Clases.List(ctx, tok)
	var dir *recursosstore.Directory
	if err == nil {
		dir, err = h.Recursos.Snapshot(ctx, tok)
	}
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			auth.SignOut(w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		// Render the empty grid with the failure as a notice so the user
		// can keep navigating and retry.
		h.Log.Warn("calendar fetch failed", zap.Error(err))
		flash.Add(w, r, flash.Error, err.Error())
		clases = nil
		dir = recursosstore.EmptyDirectory()
	}

	visibles := vs.Filtro.Apply(clases)

	switch vs.Vista {
	case timegrid.ViewWeek:
		h.renderWeek(w, r, vs, visibles, dir)
	case timegrid.ViewDay:
		h.renderDay(w, r, vs, visibles, dir)
	default:
		h.renderMonth(w, r, vs, visibles, dir)
	}
}

// popKey is the URL key identifying a class's detail popover.
func popKey(claseID int) string {
	return "c" + strconv.Itoa(claseID)
}

// createURL links to the class dialog in creation mode, optionally
// prefilled with the horse and slot of a clicked empty day cell.
func createURL(vs viewState, dia string, caballoID int, hora string) string {
	q := url.Values{}
	q.Set("dia", dia)
	if caballoID != 0 {
		q.Set("caballo", strconv.Itoa(caballoID))
	}
	if hora != "" {
		q.Set("hora", hora)
	}
	q.Set("return", vs.URL())
	return "/calendario/clases/nueva?" + q.Encode()
}

// alumnoNombre prefers the backend's embedded student over the directory.
func alumnoNombre(c models.ClaseDetallada, dir *recursosstore.Directory) string {
	if c.Alumno != nil {
		return c.Alumno.Nombre
	}
	return dir.AlumnoNombre(c.AlumnoID)
}

func alumnoNombreCompleto(c models.ClaseDetallada, dir *recursosstore.Directory) string {
	if c.Alumno != nil {
		return c.Alumno.NombreCompleto()
	}
	return dir.AlumnoNombreCompleto(c.AlumnoID)
}

func instructorNombre(c models.ClaseDetallada, dir *recursosstore.Directory) string {
	if c.Instructor != nil {
		return c.Instructor.NombreCompleto()
	}
	return dir.InstructorNombre(c.InstructorID)
}

func caballoNombre(c models.ClaseDetallada, dir *recursosstore.Directory) string {
	if c.Caballo != nil {
		return c.Caballo.Nombre
	}
	return dir.CaballoNombre(c.CaballoID)
}

// buildPopover assembles the detail popover for one class. Observations are
// sanitized before they reach the template.
func (h *Handler) buildPopover(vs viewState, c models.ClaseDetallada, dir *recursosstore.Directory) *popoverVM {
	id := strconv.Itoa(c.ID)
	ret := vs.URL()
	return &popoverVM{
		Clase:          c,
		AlumnoNombre:   alumnoNombreCompleto(c, dir),
		InstructorName: instructorNombre(c, dir),
		CaballoNombre:  caballoNombre(c, dir),
		Observaciones:  h.sanitize.Sanitize(c.Observaciones),

		EditURL:   "/calendario/clases/" + id + "/editar?return=" + url.QueryEscape(ret),
		DeleteURL: "/calendario/clases/" + id + "/eliminar",
		EstadoURL: "/calendario/clases/" + id + "/estado",
		CloseURL:  ret,
		Estados:   models.Estados,
		ReturnURL: ret,
	}
}

// buildBadges turns one day's classes into at most max chips plus an
// overflow count. max <= 0 means no cap.
func (h *Handler) buildBadges(vs viewState, list []models.ClaseDetallada, dir *recursosstore.Directory, max int) ([]claseBadge, int) {
	shown := list
	more := 0
	if max > 0 && len(list) > max {
		shown = list[:max]
		more = len(list) - max
	}

	badges := make([]claseBadge, 0, len(shown))
	for _, c := range shown {
		key := popKey(c.ID)
		open := vs.Pop == key
		b := claseBadge{
			ID:          c.ID,
			Hora:        c.HoraKey(),
			Estado:      c.Estado,
			Label:       c.Estado.Glyph() + alumnoNombre(c, dir),
			PopoverURL:  vs.withPop(key),
			PopoverOpen: open,
		}
		if open {
			b.Popover = h.buildPopover(vs, c, dir)
		}
		badges = append(badges, b)
	}
	return badges, more
}

// buildToolbar assembles the shared toolbar. cancelables is only meaningful
// in day view; other views pass 0.
func buildToolbar(vs viewState, dir *recursosstore.Directory, cancelables int) toolbarVM {
	tb := toolbarVM{
		Heading:     headingFor(vs),
		controlURLs: vs.controls(),
		Vista:       string(vs.Vista),
		Fecha:       timegrid.DayKey(vs.Fecha),

		FilterActive: vs.Filtro.Active(),

		NewClaseURL:      createURL(vs, timegrid.DayKey(vs.Fecha), 0, ""),
		CopiarSemanaURL:  "/calendario/copiar-semana?return=" + url.QueryEscape(vs.URL()),
		EliminarRangoURL: "/calendario/eliminar-periodo?return=" + url.QueryEscape(vs.URL()),
	}

	cleared := vs
	cleared.Filtro = clasesstore.Filtro{}
	tb.ClearFilterURL = cleared.URL()

	for _, a := range dir.AlumnosOrdenados() {
		tb.AlumnoOptions = append(tb.AlumnoOptions, filterOption{
			ID:       a.ID,
			Label:    a.NombreCompleto(),
			Selected: a.ID == vs.Filtro.AlumnoID,
		})
	}
	for _, i := range dir.InstructoresOrdenados() {
		tb.InstructorOptions = append(tb.InstructorOptions, filterOption{
			ID:       i.ID,
			Label:    i.NombreCompleto(),
			Selected: i.ID == vs.Filtro.InstructorID,
		})
	}

	if vs.Vista == timegrid.ViewDay {
		q := url.Values{}
		q.Set("fecha", timegrid.DayKey(vs.Fecha))
		if vs.Filtro.InstructorID != 0 {
			q.Set("instructor", strconv.Itoa(vs.Filtro.InstructorID))
		}
		if vs.Filtro.AlumnoID != 0 {
			q.Set("alumno", strconv.Itoa(vs.Filtro.AlumnoID))
		}
		tb.ExportarURL = "/calendario/exportar?" + q.Encode()

		cq := url.Values{}
		cq.Set("dia", timegrid.DayKey(vs.Fecha))
		if vs.Filtro.InstructorID != 0 {
			cq.Set("instructor", strconv.Itoa(vs.Filtro.InstructorID))
		}
		if vs.Filtro.AlumnoID != 0 {
			cq.Set("alumno", strconv.Itoa(vs.Filtro.AlumnoID))
		}
		cq.Set("return", vs.URL())
		tb.CancelarDiaURL = "/calendario/cancelar-dia?" + cq.Encode()
		tb.CancelableCount = cancelables
	}
	return tb
}

// todayKey is the day key the grids compare against to highlight today.
func todayKey() string {
	return timegrid.DayKey(time.Now())
}
