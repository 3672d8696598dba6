package calendario

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	recursosstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/recursos"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timegrid"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timeouts"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/viewdata"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
)

// returnURL preserves the calendar state across the dialog round-trip. An
// absent or off-site value falls back to the calendar root.
func returnURL(r *http.Request) string {
	ret := r.FormValue("return")
	if ret == "" || !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") {
		return "/calendario"
	}
	return ret
}

// dialogOptions fills the three select lists, marking the selected IDs.
func dialogOptions(dir *recursosstore.Directory, vals dialogValues) (alumnos, instructores, caballos []filterOption) {
	for _, a := range dir.AlumnosOrdenados() {
		alumnos = append(alumnos, filterOption{ID: a.ID, Label: a.NombreCompleto(), Selected: a.ID == vals.AlumnoID})
	}
	for _, i := range dir.InstructoresOrdenados() {
		instructores = append(instructores, filterOption{ID: i.ID, Label: i.NombreCompleto(), Selected: i.ID == vals.InstructorID})
	}
	for _, c := range dir.CaballosOrdenados() {
		caballos = append(caballos, filterOption{ID: c.ID, Label: c.Nombre, Selected: c.ID == vals.CaballoID})
	}
	return alumnos, instructores, caballos
}

// renderDialog draws the class form for either mode.
func (h *Handler) renderDialog(w http.ResponseWriter, r *http.Request, state DialogState, vals dialogValues, dir *recursosstore.Directory, errMsg string) {
	ret := returnURL(r)
	data := dialogData{
		BaseVM:         viewdata.NewBaseVM(w, r, "Clase", ret),
		CancelURL:      ret,
		ErrorMsg:       errMsg,
		Especialidades: models.Especialidades,
		Estados:        models.Estados,
		Values:         vals,
	}

	switch st := state.(type) {
	case DialogCreate:
		data.Dia = st.Dia
		data.ActionURL = "/calendario/clases?return=" + url.QueryEscape(ret)
	case DialogEdit:
		data.Dia = st.Clase.Dia
		data.EditID = strconv.Itoa(st.Clase.ID)
		data.ActionURL = "/calendario/clases/" + data.EditID + "/editar?return=" + url.QueryEscape(ret)
	default:
		http.Redirect(w, r, ret, http.StatusSeeOther)
		return
	}

	data.Alumnos, data.Instructores, data.Caballos = dialogOptions(dir, vals)
	templates.Render(w, r, "calendario_dialog", data)
}

// ServeNuevaClase opens the dialog in creation mode. A day-cell click
// prefills the horse and the slot; defaults cover the rest.
func (h *Handler) ServeNuevaClase(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	dir, err := h.Recursos.Snapshot(ctx, tok)
	if err != nil {
		h.failBack(w, r, err, returnURL(r))
		return
	}

	q := r.URL.Query()
	st := DialogCreate{Dia: q.Get("dia")}
	if st.Dia == "" {
		st.Dia = todayKey()
	}
	if n, err := strconv.Atoi(q.Get("caballo")); err == nil && n > 0 {
		st.CaballoID = n
	}
	if hora := q.Get("hora"); hora != "" {
		st.Hora = hora
	}

	vals := dialogValues{
		CaballoID:    st.CaballoID,
		Hora:         st.Hora,
		Especialidad: models.EspecialidadEquitacion,
		Estado:       models.EstadoProgramada,
	}
	if vals.Hora == "" {
		vals.Hora = timegrid.TimeSlots()[0]
	}
	h.renderDialog(w, r, st, vals, dir, "")
}

// ServeEditarClase opens the dialog bound to an existing class.
func (h *Handler) ServeEditarClase(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	clase, err := h.findClase(ctx, tok, id)
	if err != nil {
		h.failBack(w, r, err, returnURL(r))
		return
	}
	dir, err := h.Recursos.Snapshot(ctx, tok)
	if err != nil {
		h.failBack(w, r, err, returnURL(r))
		return
	}

	vals := dialogValues{
		AlumnoID:      clase.AlumnoID,
		InstructorID:  clase.InstructorID,
		CaballoID:     clase.CaballoID,
		Especialidad:  clase.Especialidad,
		Hora:          clase.HoraKey(),
		Estado:        clase.Estado,
		Observaciones: clase.Observaciones,
	}
	h.renderDialog(w, r, DialogEdit{Clase: clase}, vals, dir, "")
}

// findClase resolves one class from the cached collection.
func (h *Handler) findClase(ctx context.Context, tok hrsapi.Token, id int) (models.ClaseDetallada, error) {
	clases, err := h.Clases.List(ctx, tok)
	if err != nil {
		return models.ClaseDetallada{}, err
	}
	for _, c := range clases {
		if c.ID == id {
			return c, nil
		}
	}
	return models.ClaseDetallada{}, errors.New("la clase no existe")
}

// parseClaseForm reads and validates the dialog submission. Observations
// are sanitized on the way in.
func (h *Handler) parseClaseForm(r *http.Request) (dialogValues, string, error) {
	if err := r.ParseForm(); err != nil {
		return dialogValues{}, "", err
	}
	vals := dialogValues{
		Hora:          strings.TrimSpace(r.PostFormValue("hora")),
		Especialidad:  models.Especialidad(r.PostFormValue("especialidad")),
		Estado:        models.Estado(r.PostFormValue("estado")),
		Observaciones: h.sanitize.Sanitize(strings.TrimSpace(r.PostFormValue("observaciones"))),
	}
	vals.AlumnoID, _ = strconv.Atoi(r.PostFormValue("alumno"))
	vals.InstructorID, _ = strconv.Atoi(r.PostFormValue("instructor"))
	vals.CaballoID, _ = strconv.Atoi(r.PostFormValue("caballo"))
	dia := strings.TrimSpace(r.PostFormValue("dia"))

	switch {
	case dia == "":
		return vals, dia, errors.New("la fecha es obligatoria")
	case vals.Hora == "":
		return vals, dia, errors.New("la hora es obligatoria")
	case vals.AlumnoID < 1:
		return vals, dia, errors.New("seleccione un alumno")
	case vals.InstructorID < 1:
		return vals, dia, errors.New("seleccione un instructor")
	case vals.CaballoID < 1:
		return vals, dia, errors.New("seleccione un caballo")
	case !vals.Estado.Valid():
		return vals, dia, errors.New("estado inválido")
	}
	return vals, dia, nil
}

func claseInput(dia string, vals dialogValues) hrsapi.ClaseInput {
	return hrsapi.ClaseInput{
		Especialidad:  vals.Especialidad,
		Dia:           dia,
		Hora:          vals.Hora,
		Estado:        vals.Estado,
		Observaciones: vals.Observaciones,
		AlumnoID:      vals.AlumnoID,
		InstructorID:  vals.InstructorID,
		CaballoID:     vals.CaballoID,
	}
}

// HandleCrearClase submits the creation form. Validation and backend
// failures re-render the dialog with the message; success notices carry the
// backend's mensaje.
func (h *Handler) HandleCrearClase(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	vals, dia, err := h.parseClaseForm(r)
	if err != nil {
		h.rerenderDialog(w, r, tok, DialogCreate{Dia: dia}, vals, err)
		return
	}

	_, mensaje, err := h.API.CrearClase(ctx, tok, claseInput(dia, vals))
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			h.failBack(w, r, err, returnURL(r))
			return
		}
		h.rerenderDialog(w, r, tok, DialogCreate{Dia: dia}, vals, err)
		return
	}
	h.succeed(w, r, mensaje, "Clase creada", returnURL(r))
}

// HandleActualizarClase submits the edit form.
func (h *Handler) HandleActualizarClase(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	vals, dia, err := h.parseClaseForm(r)
	if err != nil {
		clase, findErr := h.findClase(ctx, tok, id)
		if findErr != nil {
			h.failBack(w, r, findErr, returnURL(r))
			return
		}
		h.rerenderDialog(w, r, tok, DialogEdit{Clase: clase}, vals, err)
		return
	}

	mensaje, err := h.API.ActualizarClase(ctx, tok, id, claseInput(dia, vals))
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			h.failBack(w, r, err, returnURL(r))
			return
		}
		clase, findErr := h.findClase(ctx, tok, id)
		if findErr != nil {
			h.failBack(w, r, err, returnURL(r))
			return
		}
		h.rerenderDialog(w, r, tok, DialogEdit{Clase: clase}, vals, err)
		return
	}
	h.succeed(w, r, mensaje, "Clase actualizada", returnURL(r))
}

// rerenderDialog reopens the dialog with the submitted values and the error.
func (h *Handler) rerenderDialog(w http.ResponseWriter, r *http.Request, tok hrsapi.Token, state DialogState, vals dialogValues, cause error) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	dir, err := h.Recursos.Snapshot(ctx, tok)
	if err != nil {
		dir = recursosstore.EmptyDirectory()
	}
	h.renderDialog(w, r, state, vals, dir, cause.Error())
}

// HandleEliminarClase deletes one class from the popover.
func (h *Handler) HandleEliminarClase(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	mensaje, err := h.API.EliminarClase(ctx, tok, id)
	if err != nil {
		h.failBack(w, r, err, returnURL(r))
		return
	}
	h.succeed(w, r, mensaje, "Clase eliminada", returnURL(r))
}
