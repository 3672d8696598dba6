package calendario

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	clasesstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/clases"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/flash"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timegrid"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timeouts"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/viewdata"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
	"go.uber.org/zap"
)

// motivosCancelacion are the preset reasons offered by the cancel-day form.
var motivosCancelacion = []string{
	"Lluvia",
	"Feriado",
	"Mantenimiento",
	"Evento Especial",
	"Emergencia",
	"Otro",
}

// BulkResult reports a fan-out of per-class calls. Outcomes are judged per
// class, so a partial failure is visible instead of collapsing into a
// single yes/no.
type BulkResult struct {
	Total     int
	Succeeded int
	Errors    []error
}

// Failed is the number of calls that errored.
func (br BulkResult) Failed() int { return br.Total - br.Succeeded }

// AllSucceeded reports a clean sweep over a non-empty set.
func (br BulkResult) AllSucceeded() bool { return br.Total > 0 && br.Succeeded == br.Total }

// NoneSucceeded reports total failure over a non-empty set.
func (br BulkResult) NoneSucceeded() bool { return br.Total > 0 && br.Succeeded == 0 }

// Partial reports a mixed outcome.
func (br BulkResult) Partial() bool {
	return br.Succeeded > 0 && br.Succeeded < br.Total
}

// runBulk issues fn once per id concurrently and tallies the outcomes.
func runBulk(ctx context.Context, ids []int, fn func(ctx context.Context, id int) error) BulkResult {
	br := BulkResult{Total: len(ids)}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			err := fn(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				br.Errors = append(br.Errors, err)
				return
			}
			br.Succeeded++
		}(id)
	}
	wg.Wait()
	return br
}

// finishBulk turns the tally into a notice and redirects. Any success at
// all invalidates the class collection.
func (h *Handler) finishBulk(w http.ResponseWriter, r *http.Request, br BulkResult, verbo, back string) {
	if br.Succeeded > 0 {
		h.Clases.Invalidate()
	}
	switch {
	case br.AllSucceeded():
		flash.Add(w, r, flash.Success, strconv.Itoa(br.Succeeded)+" clases "+verbo)
	case br.Partial():
		h.Log.Warn("bulk operation partially failed",
			zap.Int("succeeded", br.Succeeded), zap.Int("failed", br.Failed()))
		flash.Add(w, r, flash.Error,
			strconv.Itoa(br.Succeeded)+" de "+strconv.Itoa(br.Total)+" clases "+verbo)
	case br.NoneSucceeded():
		h.Log.Warn("bulk operation failed", zap.Int("total", br.Total), zap.Errors("errors", br.Errors))
		flash.Add(w, r, flash.Error, "No se pudo completar la operación: "+br.Errors[0].Error())
	default:
		flash.Add(w, r, flash.Error, "No hay clases para procesar")
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

/* ---------- cancel day ---------- */

// ServeCancelarDia shows the cancel-day confirmation with the reason picker
// and how many classes the cancellation will touch. The day view's active
// filters ride along so the count here matches the grid the user came from.
func (h *Handler) ServeCancelarDia(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	q := r.URL.Query()
	dia := q.Get("dia")
	if _, ok := timegrid.ParseDay(dia); !ok {
		http.NotFound(w, r)
		return
	}
	filtro := clasesstore.Filtro{
		AlumnoID:     parseFilterID(q.Get("alumno")),
		InstructorID: parseFilterID(q.Get("instructor")),
	}
	ret := returnURL(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	clases, err := h.Clases.List(ctx, tok)
	if err != nil {
		h.failBack(w, r, err, ret)
		return
	}

	data := bulkDialogData{
		BaseVM:           viewdata.NewBaseVM(w, r, "Cancelar día", ret),
		ActionURL:        "/calendario/cancelar-dia",
		CancelURL:        ret,
		ReturnURL:        ret,
		Dia:              dia,
		FiltroAlumno:     filtro.AlumnoID,
		FiltroInstructor: filtro.InstructorID,
		CancelableCount:  len(clasesstore.Cancelables(clasesstore.DelDia(filtro.Apply(clases), dia))),
		Motivos:          motivosCancelacion,
	}
	templates.Render(w, r, "calendario_cancelar_dia", data)
}

// HandleCancelarDia cancels the day's cancelable classes with the shared
// reason, one status patch per class. Only classes the submitted filters
// admit are touched; completed and already cancelled classes are left
// alone either way.
func (h *Handler) HandleCancelarDia(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	back := returnURL(r)

	dia := r.PostFormValue("dia")
	if _, ok := timegrid.ParseDay(dia); !ok {
		flash.Add(w, r, flash.Error, "Fecha inválida")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	motivo := strings.TrimSpace(r.PostFormValue("motivo"))
	if motivo == "" {
		flash.Add(w, r, flash.Error, "Seleccione un motivo de cancelación")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	motivo = h.sanitize.Sanitize(motivo)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Bulk())
	defer cancel()

	clases, err := h.Clases.List(ctx, tok)
	if err != nil {
		h.failBack(w, r, err, back)
		return
	}
	filtro := clasesstore.Filtro{
		AlumnoID:     parseFilterID(r.PostFormValue("alumno")),
		InstructorID: parseFilterID(r.PostFormValue("instructor")),
	}
	objetivo := clasesstore.Cancelables(clasesstore.DelDia(filtro.Apply(clases), dia))
	if len(objetivo) == 0 {
		flash.Add(w, r, flash.Error, "No hay clases para cancelar ese día")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	ids := make([]int, 0, len(objetivo))
	for _, c := range objetivo {
		ids = append(ids, c.ID)
	}
	in := hrsapi.EstadoInput{Estado: models.EstadoCancelada, Observaciones: motivo}
	br := runBulk(ctx, ids, func(ctx context.Context, id int) error {
		_, err := h.API.CambiarEstado(ctx, tok, id, in)
		return err
	})
	h.finishBulk(w, r, br, "canceladas", back)
}

/* ---------- copy week ---------- */

// ServeCopiarSemana shows the copy-week form, defaulting the source to the
// currently anchored week and the target to the one after it.
func (h *Handler) ServeCopiarSemana(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.token(r); !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	ret := returnURL(r)
	vs := parseViewState(r)

	origen := timegrid.ComputeVisibleDays(vs.Fecha, timegrid.ViewWeek)[0]
	destino := timegrid.Navigate(origen, timegrid.ViewWeek, true)

	data := bulkDialogData{
		BaseVM:        viewdata.NewBaseVM(w, r, "Copiar semana", ret),
		ActionURL:     "/calendario/copiar-semana",
		CancelURL:     ret,
		ReturnURL:     ret,
		InicioOrigen:  timegrid.DayKey(origen),
		InicioDestino: timegrid.DayKey(destino),
	}
	templates.Render(w, r, "calendario_copiar_semana", data)
}

// HandleCopiarSemana submits the copy. The backend duplicates every class
// of the source week into the target week in one call.
func (h *Handler) HandleCopiarSemana(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	back := returnURL(r)

	origen, okO := timegrid.ParseDay(r.PostFormValue("inicio_origen"))
	destino, okD := timegrid.ParseDay(r.PostFormValue("inicio_destino"))
	if !okO || !okD {
		flash.Add(w, r, flash.Error, "Fechas inválidas")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	if origen.Equal(destino) {
		flash.Add(w, r, flash.Error, "La semana de destino debe ser distinta a la de origen")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Bulk())
	defer cancel()

	mensaje, err := h.API.CopiarSemana(ctx, tok, timegrid.DayKey(origen), timegrid.DayKey(destino))
	if err != nil {
		h.failBack(w, r, err, back)
		return
	}
	h.succeed(w, r, mensaje, "Semana copiada", back)
}

/* ---------- delete range ---------- */

// ServeEliminarPeriodo shows the delete-range confirmation form.
func (h *Handler) ServeEliminarPeriodo(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.token(r); !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	ret := returnURL(r)
	vs := parseViewState(r)

	days := timegrid.ComputeVisibleDays(vs.Fecha, timegrid.ViewWeek)

	data := bulkDialogData{
		BaseVM:        viewdata.NewBaseVM(w, r, "Eliminar período", ret),
		ActionURL:     "/calendario/eliminar-periodo",
		CancelURL:     ret,
		ReturnURL:     ret,
		InicioOrigen:  timegrid.DayKey(days[0]),
		InicioDestino: timegrid.DayKey(days[6]),
	}
	templates.Render(w, r, "calendario_eliminar_periodo", data)
}

// HandleEliminarPeriodo deletes every class in the inclusive date range.
func (h *Handler) HandleEliminarPeriodo(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	back := returnURL(r)

	desde, okD := timegrid.ParseDay(r.PostFormValue("desde"))
	hasta, okH := timegrid.ParseDay(r.PostFormValue("hasta"))
	if !okD || !okH || hasta.Before(desde) {
		flash.Add(w, r, flash.Error, "Rango de fechas inválido")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Bulk())
	defer cancel()

	mensaje, err := h.API.EliminarPeriodo(ctx, tok, timegrid.DayKey(desde), timegrid.DayKey(hasta))
	if err != nil {
		h.failBack(w, r, err, back)
		return
	}
	h.succeed(w, r, mensaje, "Período eliminado", back)
}
