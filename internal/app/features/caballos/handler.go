// Package caballos is the horse directory admin. Private horses carry a
// reference to their owning student.
package caballos

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

type caballoRow struct {
	models.Caballo
	Dueno string
}

type listData struct {
	viewdata.BaseVM
	Caballos []caballoRow
}

type ownerOption struct {
	ID       int
	Label    string
	Selected bool
}

type formData struct {
	viewdata.BaseVM
	EditID    string
	ActionURL string
	CancelURL string
	ErrorMsg  string
	Caballo   models.Caballo
	Alumnos   []ownerOption
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
	h.Log.Warn("caballos operation failed", zap.Error(err))
	flash.Add(w, r, flash.Error, err.Error())
	http.Redirect(w, r, "/caballos", http.StatusSeeOther)
}

func (h *Handler) succeed(w http.ResponseWriter, r *http.Request, mensaje, fallback string) {
	h.Recursos.Invalidate(cache.KeyCaballos)
	if mensaje == "" {
		mensaje = fallback
	}
	flash.Add(w, r, flash.Success, mensaje)
	http.Redirect(w, r, "/caballos", http.StatusSeeOther)
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	dir, err := h.Recursos.Snapshot(ctx, tok)
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			auth.SignOut(w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.Log.Warn("caballos list failed", zap.Error(err))
		flash.Add(w, r, flash.Error, err.Error())
		dir = recursosstore.EmptyDirectory()
	}

	rows := make([]caballoRow, 0, len(dir.CaballosOrdenados()))
	for _, c := range dir.CaballosOrdenados() {
		row := caballoRow{Caballo: c}
		if c.AlumnoID != nil {
			row.Dueno = dir.AlumnoNombreCompleto(*c.AlumnoID)
		}
		rows = append(rows, row)
	}

	templates.Render(w, r, "caballos_list", listData{
		BaseVM:   viewdata.NewBaseVM(w, r, "Caballos", "/calendario"),
		Caballos: rows,
	})
}

func (h *Handler) ownerOptions(ctx context.Context, tok hrsapi.Token, selected int) []ownerOption {
	dir, err := h.Recursos.Snapshot(ctx, tok)
	if err != nil {
		return nil
	}
	opts := make([]ownerOption, 0)
	for _, a := range dir.AlumnosOrdenados() {
		opts = append(opts, ownerOption{ID: a.ID, Label: a.NombreCompleto(), Selected: a.ID == selected})
	}
	return opts
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	templates.Render(w, r, "caballos_form", formData{
		BaseVM:    viewdata.NewBaseVM(w, r, "Nuevo caballo", "/caballos"),
		ActionURL: "/caballos",
		CancelURL: "/caballos",
		Caballo:   models.Caballo{Tipo: models.CaballoEscuela, Disponible: true},
		Alumnos:   h.ownerOptions(ctx, tok, 0),
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

	caballos, err := h.Recursos.Caballos(ctx, tok)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	for _, c := range caballos {
		if c.ID == id {
			owner := 0
			if c.AlumnoID != nil {
				owner = *c.AlumnoID
			}
			templates.Render(w, r, "caballos_form", formData{
				BaseVM:    viewdata.NewBaseVM(w, r, "Editar caballo", "/caballos"),
				EditID:    strconv.Itoa(c.ID),
				ActionURL: "/caballos/" + strconv.Itoa(c.ID) + "/editar",
				CancelURL: "/caballos",
				Caballo:   c,
				Alumnos:   h.ownerOptions(ctx, tok, owner),
			})
			return
		}
	}
	http.NotFound(w, r)
}

func (h *Handler) parseForm(r *http.Request) (models.Caballo, error) {
	if err := r.ParseForm(); err != nil {
		return models.Caballo{}, err
	}
	c := models.Caballo{
		Nombre:     h.sanitize.Sanitize(strings.TrimSpace(r.PostFormValue("nombre"))),
		Tipo:       models.TipoCaballo(r.PostFormValue("tipo")),
		Disponible: r.PostFormValue("disponible") == "on",
	}
	if c.Tipo != models.CaballoPrivado {
		c.Tipo = models.CaballoEscuela
	}
	if c.Tipo == models.CaballoPrivado {
		if owner, err := strconv.Atoi(r.PostFormValue("alumno")); err == nil && owner > 0 {
			c.AlumnoID = &owner
		}
	}
	return c, nil
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	c, err := h.parseForm(r)
	if err != nil || c.Nombre == "" {
		h.rerender(w, r, tok, "", c, "El nombre es obligatorio")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	_, mensaje, err := h.API.CrearCaballo(ctx, tok, c)
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			h.fail(w, r, err)
			return
		}
		h.rerender(w, r, tok, "", c, err.Error())
		return
	}
	h.succeed(w, r, mensaje, "Caballo creado")
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
	c, err := h.parseForm(r)
	if err != nil || c.Nombre == "" {
		h.rerender(w, r, tok, strconv.Itoa(id), c, "El nombre es obligatorio")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	mensaje, err := h.API.ActualizarCaballo(ctx, tok, id, c)
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			h.fail(w, r, err)
			return
		}
		h.rerender(w, r, tok, strconv.Itoa(id), c, err.Error())
		return
	}
	h.succeed(w, r, mensaje, "Caballo actualizado")
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

	mensaje, err := h.API.EliminarCaballo(ctx, tok, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.succeed(w, r, mensaje, "Caballo eliminado")
}

func (h *Handler) rerender(w http.ResponseWriter, r *http.Request, tok hrsapi.Token, editID string, c models.Caballo, errMsg string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	action := "/caballos"
	title := "Nuevo caballo"
	if editID != "" {
		action = "/caballos/" + editID + "/editar"
		title = "Editar caballo"
	}
	owner := 0
	if c.AlumnoID != nil {
		owner = *c.AlumnoID
	}
	templates.Render(w, r, "caballos_form", formData{
		BaseVM:    viewdata.NewBaseVM(w, r, title, "/caballos"),
		EditID:    editID,
		ActionURL: action,
		CancelURL: "/caballos",
		ErrorMsg:  errMsg,
		Caballo:   c,
		Alumnos:   h.ownerOptions(ctx, tok, owner),
	})
}
