package hrsapi

import (
	"context"
	"net/http"
)

// rangoSemanas is the wire shape shared by the two week-range operations.
// Both field names say "inicio" because the backend anchors each range to
// the first day of a week.
type rangoSemanas struct {
	DiaInicioOrigen  string `json:"diaInicioOrigen"`
	DiaInicioDestino string `json:"diaInicioDestino"`
}

// CopiarSemana asks the backend to duplicate all classes of the week
// anchored at origen into the week anchored at destino. Duplication
// semantics (time normalization, conflicts) are entirely backend-owned.
func (c *Client) CopiarSemana(ctx context.Context, tok Token, origen, destino string) (string, error) {
	in := rangoSemanas{DiaInicioOrigen: origen, DiaInicioDestino: destino}
	return c.do(ctx, tok, http.MethodPost, "/calendario/copiar-semana", in, nil)
}

// EliminarPeriodo asks the backend to delete every class in the inclusive
// day range [desde, hasta].
func (c *Client) EliminarPeriodo(ctx context.Context, tok Token, desde, hasta string) (string, error) {
	in := rangoSemanas{DiaInicioOrigen: desde, DiaInicioDestino: hasta}
	return c.do(ctx, tok, http.MethodDelete, "/calendario/eliminar-periodo", in, nil)
}
