package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/store/clases"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/store/recursos"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/cache"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Backend is a fake riding-school backend for handler tests. It serves the
// directory/list endpoints from in-memory fixtures and records every
// mutation request it receives.
type Backend struct {
	t   *testing.T
	srv *httptest.Server

	mu           sync.Mutex
	Clases       []models.ClaseDetallada
	Alumnos      []models.Alumno
	Instructores []models.Instructor
	Caballos     []models.Caballo

	// Mutations holds one entry per non-GET request, in arrival order.
	Mutations []RecordedRequest

	gets map[string]int

	// FailWith, when non-zero, makes every mutation answer that status with
	// {"mensaje": FailMensaje}.
	FailWith    int
	FailMensaje string
}

// RecordedRequest is one captured mutation.
type RecordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

// NewBackend starts the fake backend.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{t: t, gets: map[string]int{}}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

// Client returns a hrsapi client pointed at the fake backend.
func (b *Backend) Client() *hrsapi.Client {
	c, err := hrsapi.New(b.srv.URL+"/api/v1", 5*time.Second, zap.NewNop())
	if err != nil {
		b.t.Fatalf("backend client: %v", err)
	}
	return c
}

// Stores returns a class store and resource store wired to the fake backend
// through a fresh cache.
func (b *Backend) Stores() (*clases.Store, *recursos.Store, *cache.Service) {
	api := b.Client()
	svc := cache.New(time.Minute, time.Minute, zap.NewNop())
	return clases.New(api, svc, zap.NewNop()), recursos.New(api, svc, zap.NewNop()), svc
}

// GetCount returns how many GETs hit the given path so far.
func (b *Backend) GetCount(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gets[path]
}

// MutationCount returns how many mutations arrived so far.
func (b *Backend) MutationCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Mutations)
}

// MutationsSnapshot copies the recorded mutations.
func (b *Backend) MutationsSnapshot() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.Mutations))
	copy(out, b.Mutations)
	return out
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodGet {
		b.gets[r.URL.Path]++
		switch r.URL.Path {
		case "/api/v1/clases/detalles":
			_ = json.NewEncoder(w).Encode(b.Clases)
		case "/api/v1/alumnos":
			_ = json.NewEncoder(w).Encode(b.Alumnos)
		case "/api/v1/instructores":
			_ = json.NewEncoder(w).Encode(b.Instructores)
		case "/api/v1/caballos":
			_ = json.NewEncoder(w).Encode(b.Caballos)
		default:
			http.NotFound(w, r)
		}
		return
	}

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	b.Mutations = append(b.Mutations, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Body:   body,
	})

	if b.FailWith != 0 {
		w.WriteHeader(b.FailWith)
		_ = json.NewEncoder(w).Encode(map[string]string{"mensaje": b.FailMensaje})
		return
	}

	if r.URL.Path == "/api/v1/auth/login" {
		_ = json.NewEncoder(w).Encode(models.Perfil{ID: 1, Username: "admin"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"id": 42, "mensaje": "ok"})
}
