package models

// Estado is the lifecycle state of a scheduled class.
//
// The backend imposes no transition rules and neither do we: any estado can
// be set to any other estado from the calendar UI. CANCELADA and COMPLETADA
// are terminal in practice only.
type Estado string

const (
	EstadoProgramada Estado = "PROGRAMADA"
	EstadoEnCurso    Estado = "EN_CURSO"
	EstadoCompletada Estado = "COMPLETADA"
	EstadoCancelada  Estado = "CANCELADA"
	EstadoACA        Estado = "ACA" // ausencia con aviso
	EstadoASA        Estado = "ASA" // ausencia sin aviso
)

// Estados lists all estados in the order they are offered in the UI.
var Estados = []Estado{
	EstadoProgramada,
	EstadoEnCurso,
	EstadoCompletada,
	EstadoCancelada,
	EstadoACA,
	EstadoASA,
}

// Valid reports whether e is one of the six known estados.
func (e Estado) Valid() bool {
	switch e {
	case EstadoProgramada, EstadoEnCurso, EstadoCompletada,
		EstadoCancelada, EstadoACA, EstadoASA:
		return true
	}
	return false
}

// Glyph returns the status prefix used in exports and day-grid cells:
// a blue dot for ACA, a yellow dot for ASA, empty otherwise.
func (e Estado) Glyph() string {
	switch e {
	case EstadoACA:
		return "🔵 "
	case EstadoASA:
		return "🟡 "
	}
	return ""
}

// Especialidad is the discipline taught in a class.
type Especialidad string

const (
	EspecialidadAdiestramiento Especialidad = "ADIESTRAMIENTO"
	EspecialidadEquinoterapia  Especialidad = "EQUINOTERAPIA"
	EspecialidadEquitacion     Especialidad = "EQUITACION"
)

// Especialidades lists the disciplines offered in forms.
var Especialidades = []Especialidad{
	EspecialidadEquinoterapia,
	EspecialidadEquitacion,
	EspecialidadAdiestramiento,
}

// Clase is one scheduled lesson slot as the backend stores it. Dia carries a
// calendar date only ("2006-01-02"); Hora is a time of day with minute
// granularity ("15:04" or "15:04:05" depending on the backend).
type Clase struct {
	ID            int          `json:"id"`
	Especialidad  Especialidad `json:"especialidad"`
	Dia           string       `json:"dia"`
	Hora          string       `json:"hora"`
	Estado        Estado       `json:"estado"`
	Observaciones string       `json:"observaciones,omitempty"`
	AlumnoID      int          `json:"alumnoId"`
	InstructorID  int          `json:"instructorId"`
	CaballoID     int          `json:"caballoId"`
}

// HoraKey truncates Hora to HH:MM, the granularity used by grid slot keys.
func (c Clase) HoraKey() string {
	if len(c.Hora) > 5 {
		return c.Hora[:5]
	}
	return c.Hora
}

// Cancelable reports whether the class may still be bulk-cancelled.
// Already-cancelled and completed classes are excluded.
func (c Clase) Cancelable() bool {
	return c.Estado != EstadoCancelada && c.Estado != EstadoCompletada
}

// ClaseDetallada is a Clase enriched with the referenced entities as returned
// by GET /clases/detalles. The embedded records may be nil when the backend
// could not resolve a reference; display code falls back to the Resource
// Directory lookups in that case.
type ClaseDetallada struct {
	Clase
	Alumno     *Alumno     `json:"alumno,omitempty"`
	Instructor *Instructor `json:"instructor,omitempty"`
	Caballo    *Caballo    `json:"caballo,omitempty"`
}
