package testutil

import "github.com/hrs-ecuestre/hrsadmin/internal/domain/models"

// Clase builds a detailed class fixture with sensible defaults.
func Clase(id int, dia, hora string, caballoID int, estado models.Estado) models.ClaseDetallada {
	return models.ClaseDetallada{Clase: models.Clase{
		ID:           id,
		Especialidad: models.EspecialidadEquitacion,
		Dia:          dia,
		Hora:         hora,
		Estado:       estado,
		AlumnoID:     3,
		InstructorID: 2,
		CaballoID:    caballoID,
	}}
}

// Alumno builds a student fixture.
func Alumno(id int, nombre, apellido string) models.Alumno {
	return models.Alumno{
		ID:       id,
		DNI:      "30111222",
		Nombre:   nombre,
		Apellido: apellido,
		Activo:   true,
	}
}

// Instructor builds an instructor fixture.
func Instructor(id int, nombre, apellido string) models.Instructor {
	return models.Instructor{
		ID:       id,
		DNI:      "27333444",
		Nombre:   nombre,
		Apellido: apellido,
		Activo:   true,
	}
}

// Caballo builds a horse fixture.
func Caballo(id int, nombre string) models.Caballo {
	return models.Caballo{
		ID:         id,
		Nombre:     nombre,
		Tipo:       models.CaballoEscuela,
		Disponible: true,
	}
}
