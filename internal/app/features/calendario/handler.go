// Package calendario is the scheduling core: the month/week/day calendar,
// the class dialog, status changes, bulk operations and the day export.
package calendario

import (
	"net/http"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	clasesstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/clases"
	recursosstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/recursos"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/auth"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/flash"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// Handler owns the calendar's interaction state and translates user intents
// into backend calls, invalidating the class collection on success.
type Handler struct {
	Log      *zap.Logger
	API      *hrsapi.Client
	Clases   *clasesstore.Store
	Recursos *recursosstore.Store

	sanitize *bluemonday.Policy
}

// NewHandler constructs the calendar handler.
func NewHandler(api *hrsapi.Client, clases *clasesstore.Store, recursos *recursosstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		API:      api,
		Clases:   clases,
		Recursos: recursos,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// token returns the signed-in user's backend credential.
func (h *Handler) token(r *http.Request) (hrsapi.Token, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", false
	}
	return hrsapi.Token(u.Token), true
}

// failBack handles a mutation or fetch error: a backend 401 clears the
// session and forces re-login; anything else becomes an error notice and a
// redirect back to the calendar, leaving the view usable for retry.
func (h *Handler) failBack(w http.ResponseWriter, r *http.Request, err error, backURL string) {
	if hrsapi.IsUnauthorized(err) {
		auth.SignOut(w, r)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.Log.Warn("calendar operation failed", zap.Error(err))
	flash.Add(w, r, flash.Error, err.Error())
	http.Redirect(w, r, backURL, http.StatusSeeOther)
}

// succeed invalidates the class collection, queues the success notice
// (backend mensaje when present, fallback otherwise) and redirects.
func (h *Handler) succeed(w http.ResponseWriter, r *http.Request, mensaje, fallback, backURL string) {
	h.Clases.Invalidate()
	if mensaje == "" {
		mensaje = fallback
	}
	flash.Add(w, r, flash.Success, mensaje)
	http.Redirect(w, r, backURL, http.StatusSeeOther)
}
