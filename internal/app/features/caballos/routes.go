package caballos

import (
	"github.com/go-chi/chi/v5"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/nuevo", h.ServeNew)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}/editar", h.ServeEdit)
		pr.Post("/{id}/editar", h.HandleUpdate)
		pr.Post("/{id}/eliminar", h.HandleDelete)
	})

	return r
}
