// Package instructores is the instructor directory admin.
package instructores

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
	Instructores []models.Instructor
}

type formData struct {
	viewdata.BaseVM
	EditID     string
	ActionURL  string
	CancelURL  string
	ErrorMsg   string
	Instructor models.Instructor
}

func (h *Handler) token(r *http.Request) (hrsapi.Token, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", false
	}
	return hrsapi.Token(u.Token), true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if hrsapi.IsUnauthorized(err) {
		auth.SignOut(w, r)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.Log.Warn("instructores operation failed", zap.Error(err))
	flash.Add(w, r, flash.Error, err.Error())
	http.Redirect(w, r, "/instructores", http.StatusSeeOther)
}

func (h *Handler) succeed(w http.ResponseWriter, r *http.Request, mensaje, fallback string) {
	h.Recursos.Invalidate(cache.KeyInstructores)
	if mensaje == "" {
		mensaje = fallback
	}
	flash.Add(w, r, flash.Success, mensaje)
	http.Redirect(w, r, "/instructores", http.StatusSeeOther)
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	instructores, err := h.Recursos.Instructores(ctx, tok)
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			auth.SignOut(w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.Log.Warn("instructores list failed", zap.Error(err))
		flash.Add(w, r, flash.Error, err.Error())
	}

	templates.Render(w, r, "instructores_list", listData{
		BaseVM:       viewdata.NewBaseVM(w, r, "Instructores", "/calendario"),
		Instructores: instructores,
	})
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "instructores_form", formData{
		BaseVM:     viewdata.NewBaseVM(w, r, "Nuevo instructor", "/instructores"),
		ActionURL:  "/instructores",
		CancelURL:  "/instructores",
		Instructor: models.Instructor{Activo: true},
	})
}

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

	instructores, err := h.Recursos.Instructores(ctx, tok)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	for _, ins := range instructores {
		if ins.ID == id {
			templates.Render(w, r, "instructores_form", formData{
				BaseVM:     viewdata.NewBaseVM(w, r, "Editar instructor", "/instructores"),
				EditID:     strconv.Itoa(ins.ID),
				ActionURL:  "/instructores/" + strconv.Itoa(ins.ID) + "/editar",
				CancelURL:  "/instructores",
				Instructor: ins,
			})
			return
		}
	}
	http.NotFound(w, r)
}

func (h *Handler) parseForm(r *http.Request) (models.Instructor, error) {
	if err := r.ParseForm(); err != nil {
		return models.Instructor{}, err
	}
	return models.Instructor{
		DNI:             strings.TrimSpace(r.PostFormValue("dni")),
		Nombre:          h.sanitize.Sanitize(strings.TrimSpace(r.PostFormValue("nombre"))),
		Apellido:        h.sanitize.Sanitize(strings.TrimSpace(r.PostFormValue("apellido"))),
		FechaNacimiento: r.PostFormValue("fechaNacimiento"),
		Telefono:        strings.TrimSpace(r.PostFormValue("telefono")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Activo:          r.PostFormValue("activo") == "on",
	}, nil
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	ins, err := h.parseForm(r)
	if err != nil || ins.Nombre == "" || ins.Apellido == "" {
		h.rerender(w, r, "", ins, "Nombre y apellido son obligatorios")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	_, mensaje, err := h.API.CrearInstructor(ctx, tok, ins)
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			h.fail(w, r, err)
			return
		}
		h.rerender(w, r, "", ins, err.Error())
		return
	}
	h.succeed(w, r, mensaje, "Instructor creado")
}

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
	ins, err := h.parseForm(r)
	if err != nil || ins.Nombre == "" || ins.Apellido == "" {
		h.rerender(w, r, strconv.Itoa(id), ins, "Nombre y apellido son obligatorios")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	mensaje, err := h.API.ActualizarInstructor(ctx, tok, id, ins)
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			h.fail(w, r, err)
			return
		}
		h.rerender(w, r, strconv.Itoa(id), ins, err.Error())
		return
	}
	h.succeed(w, r, mensaje, "Instructor actualizado")
}

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

	mensaje, err := h.API.EliminarInstructor(ctx, tok, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.succeed(w, r, mensaje, "Instructor eliminado")
}

func (h *Handler) rerender(w http.ResponseWriter, r *http.Request, editID string, ins models.Instructor, errMsg string) {
	action := "/instructores"
	title := "Nuevo instructor"
	if editID != "" {
		action = "/instructores/" + editID + "/editar"
		title = "Editar instructor"
	}
	templates.Render(w, r, "instructores_form", formData{
		BaseVM:     viewdata.NewBaseVM(w, r, title, "/instructores"),
		EditID:     editID,
		ActionURL:  action,
		CancelURL:  "/instructores",
		ErrorMsg:   errMsg,
		Instructor: ins,
	})
}
