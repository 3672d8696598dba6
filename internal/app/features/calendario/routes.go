package calendario

import (
	"github.com/go-chi/chi/v5"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		// GRID (month / week / day via ?vista=)
		pr.Get("/", h.ServeCalendario)

		// CLASS DIALOG
		pr.Get("/clases/nueva", h.ServeNuevaClase)
		pr.Post("/clases", h.HandleCrearClase)
		pr.Get("/clases/{id}/editar", h.ServeEditarClase)
		pr.Post("/clases/{id}/editar", h.HandleActualizarClase)
		pr.Post("/clases/{id}/eliminar", h.HandleEliminarClase)
		pr.Post("/clases/{id}/estado", h.HandleCambiarEstado)

		// BULK
		pr.Get("/cancelar-dia", h.ServeCancelarDia)
		pr.Post("/cancelar-dia", h.HandleCancelarDia)
		pr.Get("/copiar-semana", h.ServeCopiarSemana)
		pr.Post("/copiar-semana", h.HandleCopiarSemana)
		pr.Get("/eliminar-periodo", h.ServeEliminarPeriodo)
		pr.Post("/eliminar-periodo", h.HandleEliminarPeriodo)

		// EXPORT
		pr.Get("/exportar", h.ServeExportar)
	})

	return r
}
