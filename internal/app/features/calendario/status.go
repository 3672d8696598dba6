package calendario

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/flash"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timeouts"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
)

// HandleCambiarEstado patches one class's status from the popover select.
// Any state can be set from any other, including reactivating a cancelled
// class; setting the current state again is a no-op round-trip.
func (h *Handler) HandleCambiarEstado(w http.ResponseWriter, r *http.Request) {
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
	back := returnURL(r)

	estado := models.Estado(r.PostFormValue("estado"))
	if !estado.Valid() {
		flash.Add(w, r, flash.Error, "Estado inválido")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	in := hrsapi.EstadoInput{
		Estado:        estado,
		Observaciones: h.sanitize.Sanitize(r.PostFormValue("observaciones")),
	}
	mensaje, err := h.API.CambiarEstado(ctx, tok, id, in)
	if err != nil {
		h.failBack(w, r, err, back)
		return
	}
	h.succeed(w, r, mensaje, "Estado actualizado", back)
}
