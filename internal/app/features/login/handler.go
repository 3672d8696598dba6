// Package login signs the administrator in against the backend.
//
// There is no local password store: the submitted credentials are encoded
// as a Basic-Auth token and validated by POSTing to the backend's login
// endpoint. On success the token and profile ride the session; every later
// backend call replays the same token.
package login

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/auth"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timeouts"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/viewdata"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
	API *hrsapi.Client
}

func NewHandler(api *hrsapi.Client, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, API: api}
}

type loginData struct {
	viewdata.BaseVM
	ReturnURL string
	Username  string
	ErrorMsg  string
}

// safeReturn keeps the post-login redirect on this site.
func safeReturn(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/calendario"
	}
	return raw
}

// ServeLogin renders the login form. Already signed-in users skip it.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/calendario", http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "login", loginData{
		BaseVM:    viewdata.NewBaseVM(w, r, "Iniciar sesión", "/"),
		ReturnURL: safeReturn(r.URL.Query().Get("return")),
	})
}

// HandleLogin validates the credentials against the backend and starts the
// session.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	ret := safeReturn(r.PostFormValue("return"))

	if username == "" || password == "" {
		h.rerender(w, r, username, ret, "Usuario y contraseña son obligatorios")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tok := hrsapi.BasicToken(username, password)
	perfil, err := h.API.Login(ctx, tok)
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			h.Log.Info("login rejected", zap.String("username", username))
			h.rerender(w, r, username, ret, "Usuario o contraseña incorrectos")
			return
		}
		h.Log.Warn("login failed", zap.Error(err))
		h.rerender(w, r, username, ret, err.Error())
		return
	}

	user := auth.SessionUser{
		ID:    strconv.Itoa(perfil.ID),
		Name:  perfil.Username,
		Token: string(tok),
	}
	if err := auth.SignIn(w, r, user); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		h.rerender(w, r, username, ret, "No se pudo iniciar la sesión")
		return
	}

	h.Log.Info("user signed in", zap.String("username", perfil.Username))
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

func (h *Handler) rerender(w http.ResponseWriter, r *http.Request, username, ret, errMsg string) {
	templates.Render(w, r, "login", loginData{
		BaseVM:    viewdata.NewBaseVM(w, r, "Iniciar sesión", "/"),
		ReturnURL: ret,
		Username:  username,
		ErrorMsg:  errMsg,
	})
}
