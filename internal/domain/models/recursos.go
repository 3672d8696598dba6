package models

// Resource entities are owned by the backend. This app holds read-only cached
// copies refreshed on cache invalidation; the calendar core never mutates
// them (the CRUD pages do, through the backend, and then invalidate).

// Alumno is a student record.
type Alumno struct {
	ID               int    `json:"id"`
	DNI              string `json:"dni"`
	Nombre           string `json:"nombre"`
	Apellido         string `json:"apellido"`
	FechaNacimiento  string `json:"fechaNacimiento,omitempty"`
	Telefono         string `json:"telefono,omitempty"`
	Email            string `json:"email,omitempty"`
	FechaInscripcion string `json:"fechaInscripcion,omitempty"`
	CantidadClases   int    `json:"cantidadClases"`
	Propietario      bool   `json:"propietario"`
	Activo           bool   `json:"activo"`
}

// NombreCompleto returns "Nombre Apellido".
func (a Alumno) NombreCompleto() string {
	return a.Nombre + " " + a.Apellido
}

// Instructor is an instructor record.
type Instructor struct {
	ID              int    `json:"id"`
	DNI             string `json:"dni"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	FechaNacimiento string `json:"fechaNacimiento,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	Email           string `json:"email,omitempty"`
	Activo          bool   `json:"activo"`
}

// NombreCompleto returns "Nombre Apellido".
func (i Instructor) NombreCompleto() string {
	return i.Nombre + " " + i.Apellido
}

// TipoCaballo distinguishes school-owned horses from privately owned ones.
type TipoCaballo string

const (
	CaballoEscuela TipoCaballo = "ESCUELA"
	CaballoPrivado TipoCaballo = "PRIVADO"
)

// Caballo is a horse record. AlumnoID is set for privately owned horses.
type Caballo struct {
	ID         int         `json:"id"`
	Nombre     string      `json:"nombre"`
	Tipo       TipoCaballo `json:"tipoCaballo"`
	Disponible bool        `json:"disponible"`
	AlumnoID   *int        `json:"alumnoId,omitempty"`
}

// Perfil is the signed-in backend user, captured at login and kept in the
// session alongside the Basic-Auth credential.
type Perfil struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Rol      string `json:"rol,omitempty"`
}
