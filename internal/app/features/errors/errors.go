// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/viewdata"
)

type pageData struct {
	viewdata.BaseVM
	Message string
}

// Handler is the errors feature handler. No dependencies; it just renders
// templates.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "error_page", pageData{
		BaseVM:  viewdata.NewBaseVM(w, r, "Acceso denegado", "/calendario"),
		Message: "No tiene permiso para ver esta página.",
	})
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "error_page", pageData{
		BaseVM:  viewdata.NewBaseVM(w, r, "Sesión requerida", "/login"),
		Message: "Inicie sesión para continuar.",
	})
}

// NotFound renders the 404 page for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_page", pageData{
		BaseVM:  viewdata.NewBaseVM(w, r, "Página no encontrada", "/calendario"),
		Message: "La página solicitada no existe.",
	})
}
