// Package recursos is the Resource Directory: read-only cached lookups from
// entity IDs to display names for students, instructors and horses.
//
// The directory is populated by bulk-fetching the backend lists and is
// rebuilt whenever its cache key is invalidated (the CRUD pages invalidate
// after every mutation). The calendar core only ever reads it.
package recursos

import (
	"context"
	"sort"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/cache"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Store serves the three resource directories.
type Store struct {
	api   *hrsapi.Client
	cache *cache.Service
	log   *zap.Logger
}

// New builds a Store over the backend client and the shared cache.
func New(api *hrsapi.Client, c *cache.Service, logger *zap.Logger) *Store {
	return &Store{api: api, cache: c, log: logger}
}

// Alumnos returns the cached student list.
func (s *Store) Alumnos(ctx context.Context, tok hrsapi.Token) ([]models.Alumno, error) {
	if v, ok := s.cache.Get(cache.KeyAlumnos); ok {
		if alumnos, ok := v.([]models.Alumno); ok {
			return alumnos, nil
		}
	}
	alumnos, err := s.api.ListarAlumnos(ctx, tok)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cache.KeyAlumnos, alumnos)
	return alumnos, nil
}

// Instructores returns the cached instructor list.
func (s *Store) Instructores(ctx context.Context, tok hrsapi.Token) ([]models.Instructor, error) {
	if v, ok := s.cache.Get(cache.KeyInstructores); ok {
		if instructores, ok := v.([]models.Instructor); ok {
			return instructores, nil
		}
	}
	instructores, err := s.api.ListarInstructores(ctx, tok)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cache.KeyInstructores, instructores)
	return instructores, nil
}

// Caballos returns the cached horse list.
func (s *Store) Caballos(ctx context.Context, tok hrsapi.Token) ([]models.Caballo, error) {
	if v, ok := s.cache.Get(cache.KeyCaballos); ok {
		if caballos, ok := v.([]models.Caballo); ok {
			return caballos, nil
		}
	}
	caballos, err := s.api.ListarCaballos(ctx, tok)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cache.KeyCaballos, caballos)
	return caballos, nil
}

// Invalidate drops one directory's cache key.
func (s *Store) Invalidate(key cache.Key) {
	s.cache.Invalidate(key)
}

// Directory is an immutable snapshot of all three directories with O(1)
// name lookups, built once per render pass.
type Directory struct {
	alumnos      map[int]models.Alumno
	instructores map[int]models.Instructor
	caballos     map[int]models.Caballo

	alumnosOrd      []models.Alumno
	instructoresOrd []models.Instructor
	caballosOrd     []models.Caballo
}

// EmptyDirectory returns a directory with no entries. Used to keep a page
// renderable when the backend fetch failed; every lookup answers "-".
func EmptyDirectory() *Directory {
	return &Directory{
		alumnos:      map[int]models.Alumno{},
		instructores: map[int]models.Instructor{},
		caballos:     map[int]models.Caballo{},
	}
}

// Snapshot fetches (or serves from cache) all three lists and indexes them.
func (s *Store) Snapshot(ctx context.Context, tok hrsapi.Token) (*Directory, error) {
	alumnos, err := s.Alumnos(ctx, tok)
	if err != nil {
		return nil, err
	}
	instructores, err := s.Instructores(ctx, tok)
	if err != nil {
		return nil, err
	}
	caballos, err := s.Caballos(ctx, tok)
	if err != nil {
		return nil, err
	}

	d := &Directory{
		alumnos:      make(map[int]models.Alumno, len(alumnos)),
		instructores: make(map[int]models.Instructor, len(instructores)),
		caballos:     make(map[int]models.Caballo, len(caballos)),
	}
	for _, a := range alumnos {
		d.alumnos[a.ID] = a
	}
	for _, i := range instructores {
		d.instructores[i.ID] = i
	}
	for _, c := range caballos {
		d.caballos[c.ID] = c
	}

	d.alumnosOrd = make([]models.Alumno, len(alumnos))
	copy(d.alumnosOrd, alumnos)
	sort.Slice(d.alumnosOrd, func(i, j int) bool {
		a, b := d.alumnosOrd[i], d.alumnosOrd[j]
		if a.Apellido != b.Apellido {
			return a.Apellido < b.Apellido
		}
		return a.Nombre < b.Nombre
	})

	d.instructoresOrd = make([]models.Instructor, len(instructores))
	copy(d.instructoresOrd, instructores)
	sort.Slice(d.instructoresOrd, func(i, j int) bool {
		a, b := d.instructoresOrd[i], d.instructoresOrd[j]
		if a.Apellido != b.Apellido {
			return a.Apellido < b.Apellido
		}
		return a.Nombre < b.Nombre
	})

	d.caballosOrd = make([]models.Caballo, len(caballos))
	copy(d.caballosOrd, caballos)
	sort.Slice(d.caballosOrd, func(i, j int) bool {
		return d.caballosOrd[i].Nombre < d.caballosOrd[j].Nombre
	})
	return d, nil
}

// The lookup helpers fall back to "-" for unknown IDs, matching what grids
// and exports print for a dangling reference.

// AlumnoNombre returns the student's first name.
func (d *Directory) AlumnoNombre(id int) string {
	if a, ok := d.alumnos[id]; ok {
		return a.Nombre
	}
	return "-"
}

// AlumnoNombreCompleto returns the student's full name.
func (d *Directory) AlumnoNombreCompleto(id int) string {
	if a, ok := d.alumnos[id]; ok {
		return a.NombreCompleto()
	}
	return "-"
}

// InstructorNombre returns the instructor's full name.
func (d *Directory) InstructorNombre(id int) string {
	if i, ok := d.instructores[id]; ok {
		return i.NombreCompleto()
	}
	return "-"
}

// CaballoNombre returns the horse's name.
func (d *Directory) CaballoNombre(id int) string {
	if c, ok := d.caballos[id]; ok {
		return c.Nombre
	}
	return "-"
}

// CaballosOrdenados returns all horses sorted by name, the column order of
// the day grid and the export.
func (d *Directory) CaballosOrdenados() []models.Caballo {
	return d.caballosOrd
}

// AlumnosOrdenados returns all students sorted by surname, for filter and
// form option lists.
func (d *Directory) AlumnosOrdenados() []models.Alumno {
	return d.alumnosOrd
}

// InstructoresOrdenados returns all instructors sorted by surname.
func (d *Directory) InstructoresOrdenados() []models.Instructor {
	return d.instructoresOrd
}
