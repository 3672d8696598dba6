// Package alumnos is the student directory admin: list, create, edit,
// delete. Every mutation goes through the backend and invalidates the
// cached student list.
package alumnos

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	recursosstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/recursos"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/auth"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/cache"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/flash"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timeouts"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/viewdata"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type Handler struct {
	Log      *zap.Logger
	API      *hrsapi.Client
	Recursos *recursosstore.Store

	sanitize *bluemonday.Policy
}

func NewHandler(api *hrsapi.Client, recursos *recursosstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		API:      api,
		Recursos: recursos,
		sanitize: bluemonday.StrictPolicy(),
	}
}

type listData struct {
	viewdata.BaseVM
	Alumnos []models.Alumno
}

type formData struct {
	viewdata.BaseVM
	EditID    string
	ActionURL string
	CancelURL string
	ErrorMsg  string
	Alumno    models.Alumno
}

func (h *Handler) token(r *http.Request) (hrsapi.Token, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", false
	}
	return hrsapi.Token(u.Token), true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, backURL string) {
	if hrsapi.IsUnauthorized(err) {
		auth.SignOut(w, r)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.Log.Warn("alumnos operation failed", zap.Error(err))
	flash.Add(w, r, flash.Error, err.Error())
	http.Redirect(w, r, backURL, http.StatusSeeOther)
}

func (h *Handler) succeed(w http.ResponseWriter, r *http.Request, mensaje, fallback string) {
	h.Recursos.Invalidate(cache.KeyAlumnos)
	if mensaje == "" {
		mensaje = fallback
	}
	flash.Add(w, r, flash.Success, mensaje)
	http.Redirect(w, r, "/alumnos", http.StatusSeeOther)
}

// ServeList renders the student table.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	alumnos, err := h.Recursos.Alumnos(ctx, tok)
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			auth.SignOut(w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.Log.Warn("alumnos list failed", zap.Error(err))
		flash.Add(w, r, flash.Error, err.Error())
	}

	templates.Render(w, r, "alumnos_list", listData{
		BaseVM:  viewdata.NewBaseVM(w, r, "Alumnos", "/calendario"),
		Alumnos: alumnos,
	})
}

// ServeNew renders an empty student form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "alumnos_form", formData{
		BaseVM:    viewdata.NewBaseVM(w, r, "Nuevo alumno", "/alumnos"),
		ActionURL: "/alumnos",
		CancelURL: "/alumnos",
		Alumno:    models.Alumno{Activo: true},
	})
}

// ServeEdit renders the form bound to an existing student.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
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
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	alumnos, err := h.Recursos.Alumnos(ctx, tok)
	if err != nil {
		h.fail(w, r, err, "/alumnos")
		return
	}
	for _, a := range alumnos {
		if a.ID == id {
			templates.Render(w, r, "alumnos_form", formData{
				BaseVM:    viewdata.NewBaseVM(w, r, "Editar alumno", "/alumnos"),
				EditID:    strconv.Itoa(a.ID),
				ActionURL: "/alumnos/" + strconv.Itoa(a.ID) + "/editar",
				CancelURL: "/alumnos",
				Alumno:    a,
			})
			return
		}
	}
	http.NotFound(w, r)
}

func (h *Handler) parseForm(r *http.Request) (models.Alumno, error) {
	if err := r.ParseForm(); err != nil {
		return models.Alumno{}, err
	}
	a := models.Alumno{
		DNI:              strings.TrimSpace(r.PostFormValue("dni")),
		Nombre:           h.sanitize.Sanitize(strings.TrimSpace(r.PostFormValue("nombre"))),
		Apellido:         h.sanitize.Sanitize(strings.TrimSpace(r.PostFormValue("apellido"))),
		FechaNacimiento:  r.PostFormValue("fechaNacimiento"),
		Telefono:         strings.TrimSpace(r.PostFormValue("telefono")),
		Email:            strings.TrimSpace(r.PostFormValue("email")),
		FechaInscripcion: r.PostFormValue("fechaInscripcion"),
		Propietario:      r.PostFormValue("propietario") == "on",
		Activo:           r.PostFormValue("activo") == "on",
	}
	a.CantidadClases, _ = strconv.Atoi(r.PostFormValue("cantidadClases"))
	return a, nil
}

// HandleCreate submits the new-student form.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	a, err := h.parseForm(r)
	if err != nil || a.Nombre == "" || a.Apellido == "" {
		h.rerender(w, r, "", a, "Nombre y apellido son obligatorios")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	_, mensaje, err := h.API.CrearAlumno(ctx, tok, a)
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			h.fail(w, r, err, "/alumnos")
			return
		}
		h.rerender(w, r, "", a, err.Error())
		return
	}
	h.succeed(w, r, mensaje, "Alumno creado")
}

// HandleUpdate submits the edit form.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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
	a, err := h.parseForm(r)
	if err != nil || a.Nombre == "" || a.Apellido == "" {
		h.rerender(w, r, strconv.Itoa(id), a, "Nombre y apellido son obligatorios")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	mensaje, err := h.API.ActualizarAlumno(ctx, tok, id, a)
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			h.fail(w, r, err, "/alumnos")
			return
		}
		h.rerender(w, r, strconv.Itoa(id), a, err.Error())
		return
	}
	h.succeed(w, r, mensaje, "Alumno actualizado")
}

// HandleDelete removes one student.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	mensaje, err := h.API.EliminarAlumno(ctx, tok, id)
	if err != nil {
		h.fail(w, r, err, "/alumnos")
		return
	}
	h.succeed(w, r, mensaje, "Alumno eliminado")
}

func (h *Handler) rerender(w http.ResponseWriter, r *http.Request, editID string, a models.Alumno, errMsg string) {
	action := "/alumnos"
	title := "Nuevo alumno"
	if editID != "" {
		action = "/alumnos/" + editID + "/editar"
		title = "Editar alumno"
	}
	templates.Render(w, r, "alumnos_form", formData{
		BaseVM:    viewdata.NewBaseVM(w, r, title, "/alumnos"),
		EditID:    editID,
		ActionURL: action,
		CancelURL: "/alumnos",
		ErrorMsg:  errMsg,
		Alumno:    a,
	})
}
