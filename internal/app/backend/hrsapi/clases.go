package hrsapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
)

// ClaseInput is the payload for creating or fully updating a class.
type ClaseInput struct {
	Especialidad  models.Especialidad `json:"especialidad"`
	Dia           string              `json:"dia"`
	Hora          string              `json:"hora"`
	Estado        models.Estado       `json:"estado"`
	Observaciones string              `json:"observaciones,omitempty"`
	AlumnoID      int                 `json:"alumnoId"`
	InstructorID  int                 `json:"instructorId"`
	CaballoID     int                 `json:"caballoId"`
}

// EstadoInput is the payload for the status-only patch. Observaciones is
// attached by bulk cancel (the shared reason) and omitted otherwise.
type EstadoInput struct {
	Estado        models.Estado `json:"estado"`
	Observaciones string        `json:"observaciones,omitempty"`
}

// ListarClasesDetalladas fetches every scheduled class with embedded
// student/instructor/horse records.
func (c *Client) ListarClasesDetalladas(ctx context.Context, tok Token) ([]models.ClaseDetallada, error) {
	var out []models.ClaseDetallada
	_, err := c.do(ctx, tok, http.MethodGet, "/clases/detalles", nil, &out)
	return out, err
}

// CrearClase creates a class. Returns the created record and the backend's
// success mensaje, if any.
func (c *Client) CrearClase(ctx context.Context, tok Token, in ClaseInput) (models.Clase, string, error) {
	var out models.Clase
	msg, err := c.do(ctx, tok, http.MethodPost, "/clases", in, &out)
	return out, msg, err
}

// ActualizarClase fully rewrites the class with the given id.
func (c *Client) ActualizarClase(ctx context.Context, tok Token, id int, in ClaseInput) (string, error) {
	return c.do(ctx, tok, http.MethodPut, fmt.Sprintf("/clases/%d", id), in, nil)
}

// CambiarEstado patches just the status field.
func (c *Client) CambiarEstado(ctx context.Context, tok Token, id int, in EstadoInput) (string, error) {
	return c.do(ctx, tok, http.MethodPatch, fmt.Sprintf("/clases/%d/estado", id), in, nil)
}

// EliminarClase deletes one class.
func (c *Client) EliminarClase(ctx context.Context, tok Token, id int) (string, error) {
	return c.do(ctx, tok, http.MethodDelete, fmt.Sprintf("/clases/%d", id), nil, nil)
}
