// Package clases is the Class Collection: the cached set of scheduled
// classes the calendar works from.
//
// Reads go through the cache; any mutation elsewhere invalidates the
// "clases" key and the next read refetches from the backend. The store never
// mutates a cached list in place.
package clases

import (
	"context"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/cache"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Store serves the detailed class list.
type Store struct {
	api   *hrsapi.Client
	cache *cache.Service
	log   *zap.Logger
}

// New builds a Store over the backend client and the shared cache.
func New(api *hrsapi.Client, c *cache.Service, logger *zap.Logger) *Store {
	return &Store{api: api, cache: c, log: logger}
}

// List returns every scheduled class (detailed), served from cache when
// fresh. The returned slice is shared; callers must not modify it.
func (s *Store) List(ctx context.Context, tok hrsapi.Token) ([]models.ClaseDetallada, error) {
	if v, ok := s.cache.Get(cache.KeyClases); ok {
		if clases, ok := v.([]models.ClaseDetallada); ok {
			return clases, nil
		}
	}

	clases, err := s.api.ListarClasesDetalladas(ctx, tok)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cache.KeyClases, clases)
	s.log.Debug("class collection refreshed", zap.Int("count", len(clases)))
	return clases, nil
}

// Invalidate drops the cached list. Called after every successful mutation.
func (s *Store) Invalidate() {
	s.cache.Invalidate(cache.KeyClases)
}

// Filtro is the calendar's filter state. The zero value means "all"; IDs are
// matched exactly when set.
type Filtro struct {
	AlumnoID     int // 0 = all
	InstructorID int // 0 = all
}

// Active reports whether any filter is narrowing the collection.
func (f Filtro) Active() bool {
	return f.AlumnoID != 0 || f.InstructorID != 0
}

// Apply returns the classes matching the filter. A pure predicate applied
// before any grid derivation; the input is never modified.
func (f Filtro) Apply(clases []models.ClaseDetallada) []models.ClaseDetallada {
	if !f.Active() {
		return clases
	}
	out := make([]models.ClaseDetallada, 0, len(clases))
	for _, c := range clases {
		if f.AlumnoID != 0 && c.AlumnoID != f.AlumnoID {
			continue
		}
		if f.InstructorID != 0 && c.InstructorID != f.InstructorID {
			continue
		}
		out = append(out, c)
	}
	return out
}

// DelDia returns the subset of clases scheduled on the given day key.
func DelDia(clases []models.ClaseDetallada, dia string) []models.ClaseDetallada {
	var out []models.ClaseDetallada
	for _, c := range clases {
		if c.Dia == dia {
			out = append(out, c)
		}
	}
	return out
}

// Cancelables returns the classes still eligible for bulk cancel:
// everything except CANCELADA and COMPLETADA.
func Cancelables(clases []models.ClaseDetallada) []models.ClaseDetallada {
	var out []models.ClaseDetallada
	for _, c := range clases {
		if c.Cancelable() {
			out = append(out, c)
		}
	}
	return out
}
