package hrsapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
)

// Login validates the credential against the backend's auth endpoint and
// returns the user profile. A 401 means bad credentials.
func (c *Client) Login(ctx context.Context, tok Token) (models.Perfil, error) {
	var out models.Perfil
	_, err := c.do(ctx, tok, http.MethodPost, "/auth/login", nil, &out)
	return out, err
}

// ListarAlumnos fetches the student directory.
func (c *Client) ListarAlumnos(ctx context.Context, tok Token) ([]models.Alumno, error) {
	var out []models.Alumno
	_, err := c.do(ctx, tok, http.MethodGet, "/alumnos", nil, &out)
	return out, err
}

// CrearAlumno creates a student.
func (c *Client) CrearAlumno(ctx context.Context, tok Token, in models.Alumno) (models.Alumno, string, error) {
	var out models.Alumno
	msg, err := c.do(ctx, tok, http.MethodPost, "/alumnos", in, &out)
	return out, msg, err
}

// ActualizarAlumno rewrites a student record.
func (c *Client) ActualizarAlumno(ctx context.Context, tok Token, id int, in models.Alumno) (string, error) {
	return c.do(ctx, tok, http.MethodPut, fmt.Sprintf("/alumnos/%d", id), in, nil)
}

// EliminarAlumno deletes a student.
func (c *Client) EliminarAlumno(ctx context.Context, tok Token, id int) (string, error) {
	return c.do(ctx, tok, http.MethodDelete, fmt.Sprintf("/alumnos/%d", id), nil, nil)
}

// ListarInstructores fetches the instructor directory.
func (c *Client) ListarInstructores(ctx context.Context, tok Token) ([]models.Instructor, error) {
	var out []models.Instructor
	_, err := c.do(ctx, tok, http.MethodGet, "/instructores", nil, &out)
	return out, err
}

// CrearInstructor creates an instructor.
func (c *Client) CrearInstructor(ctx context.Context, tok Token, in models.Instructor) (models.Instructor, string, error) {
	var out models.Instructor
	msg, err := c.do(ctx, tok, http.MethodPost, "/instructores", in, &out)
	return out, msg, err
}

// ActualizarInstructor rewrites an instructor record.
func (c *Client) ActualizarInstructor(ctx context.Context, tok Token, id int, in models.Instructor) (string, error) {
	return c.do(ctx, tok, http.MethodPut, fmt.Sprintf("/instructores/%d", id), in, nil)
}

// EliminarInstructor deletes an instructor.
func (c *Client) EliminarInstructor(ctx context.Context, tok Token, id int) (string, error) {
	return c.do(ctx, tok, http.MethodDelete, fmt.Sprintf("/instructores/%d", id), nil, nil)
}

// ListarCaballos fetches the horse directory.
func (c *Client) ListarCaballos(ctx context.Context, tok Token) ([]models.Caballo, error) {
	var out []models.Caballo
	_, err := c.do(ctx, tok, http.MethodGet, "/caballos", nil, &out)
	return out, err
}

// CrearCaballo creates a horse.
func (c *Client) CrearCaballo(ctx context.Context, tok Token, in models.Caballo) (models.Caballo, string, error) {
	var out models.Caballo
	msg, err := c.do(ctx, tok, http.MethodPost, "/caballos", in, &out)
	return out, msg, err
}

// ActualizarCaballo rewrites a horse record.
func (c *Client) ActualizarCaballo(ctx context.Context, tok Token, id int, in models.Caballo) (string, error) {
	return c.do(ctx, tok, http.MethodPut, fmt.Sprintf("/caballos/%d", id), in, nil)
}

// EliminarCaballo deletes a horse.
func (c *Client) EliminarCaballo(ctx context.Context, tok Token, id int) (string, error) {
	return c.do(ctx, tok, http.MethodDelete, fmt.Sprintf("/caballos/%d", id), nil, nil)
}

// Ping probes the backend for the health endpoint. Any HTTP answer counts
// as reachable; 401 in particular proves the server is up.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, "", http.MethodGet, "/alumnos", nil, nil)
	if err != nil && IsUnauthorized(err) {
		return nil
	}
	return err
}
