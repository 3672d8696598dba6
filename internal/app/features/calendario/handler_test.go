package calendario_test

import (
	"net/http"
	"sort"
	"testing"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/features/calendario"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
	"github.com/hrs-ecuestre/hrsadmin/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T, b *testutil.Backend) *calendario.Handler {
	t.Helper()
	clases, recursos, _ := b.Stores()
	return calendario.NewHandler(b.Client(), clases, recursos, zap.NewNop())
}

func TestCrearClasePayload(t *testing.T) {
	b := testutil.NewBackend(t)
	h := newHandler(t, b)

	req := testutil.NewFormRequest("/calendario/clases", map[string]string{
		"dia":          "2024-03-15",
		"hora":         "10:30",
		"alumno":       "3",
		"instructor":   "2",
		"caballo":      "7",
		"especialidad": "EQUITACION",
		"estado":       "PROGRAMADA",
		"return":       "/calendario?fecha=2024-03-15&vista=day",
	})
	rec := testutil.NewRecorder()
	h.HandleCrearClase(rec, req)

	rec.AssertRedirect(t, "/calendario?fecha=2024-03-15&vista=day")

	if b.MutationCount() != 1 {
		t.Fatalf("mutations: got %d, want 1", b.MutationCount())
	}
	m := b.MutationsSnapshot()[0]
	if m.Method != http.MethodPost || m.Path != "/api/v1/clases" {
		t.Errorf("request: got %s %s, want POST /api/v1/clases", m.Method, m.Path)
	}

	want := map[string]any{
		"dia":          "2024-03-15",
		"hora":         "10:30",
		"caballoId":    float64(7),
		"alumnoId":     float64(3),
		"instructorId": float64(2),
		"especialidad": "EQUITACION",
		"estado":       "PROGRAMADA",
	}
	for k, v := range want {
		if m.Body[k] != v {
			t.Errorf("payload %s: got %v, want %v", k, m.Body[k], v)
		}
	}
	if _, ok := m.Body["observaciones"]; ok {
		t.Error("empty observaciones should be omitted from the payload")
	}
}

func TestCambiarEstadoUsesPatchAndRepeats(t *testing.T) {
	b := testutil.NewBackend(t)
	h := newHandler(t, b)

	// Issuing the same change twice is two identical no-op patches, not an
	// error: transitions are unconstrained.
	for i := 0; i < 2; i++ {
		req := testutil.NewFormRequest("/calendario/clases/9/estado", map[string]string{
			"estado": "COMPLETADA",
			"return": "/calendario?vista=week",
		})
		req = testutil.WithChiURLParam(req, "id", "9")
		rec := testutil.NewRecorder()
		h.HandleCambiarEstado(rec, req)
		rec.AssertRedirect(t, "/calendario?vista=week")
	}

	muts := b.MutationsSnapshot()
	if len(muts) != 2 {
		t.Fatalf("mutations: got %d, want 2", len(muts))
	}
	for _, m := range muts {
		if m.Method != http.MethodPatch || m.Path != "/api/v1/clases/9/estado" {
			t.Errorf("request: got %s %s, want PATCH /api/v1/clases/9/estado", m.Method, m.Path)
		}
		if m.Body["estado"] != "COMPLETADA" {
			t.Errorf("estado: got %v, want COMPLETADA", m.Body["estado"])
		}
	}
}

func TestCambiarEstadoRejectsUnknown(t *testing.T) {
	b := testutil.NewBackend(t)
	h := newHandler(t, b)

	req := testutil.NewFormRequest("/calendario/clases/9/estado", map[string]string{
		"estado": "PENDIENTE",
		"return": "/calendario",
	})
	req = testutil.WithChiURLParam(req, "id", "9")
	rec := testutil.NewRecorder()
	h.HandleCambiarEstado(rec, req)

	rec.AssertRedirect(t, "/calendario")
	if b.MutationCount() != 0 {
		t.Errorf("invalid estado must not reach the backend, got %d mutations", b.MutationCount())
	}
}

func TestEliminarClase(t *testing.T) {
	b := testutil.NewBackend(t)
	h := newHandler(t, b)

	req := testutil.NewFormRequest("/calendario/clases/5/eliminar", map[string]string{
		"return": "/calendario",
	})
	req = testutil.WithChiURLParam(req, "id", "5")
	rec := testutil.NewRecorder()
	h.HandleEliminarClase(rec, req)

	rec.AssertRedirect(t, "/calendario")
	muts := b.MutationsSnapshot()
	if len(muts) != 1 || muts[0].Method != http.MethodDelete || muts[0].Path != "/api/v1/clases/5" {
		t.Errorf("expected a single DELETE /api/v1/clases/5, got %+v", muts)
	}
}

func TestCancelarDiaPatchesOnlyCancelables(t *testing.T) {
	b := testutil.NewBackend(t)
	b.Clases = []models.ClaseDetallada{
		testutil.Clase(1, "2024-03-15", "09:00", 7, models.EstadoProgramada),
		testutil.Clase(2, "2024-03-15", "10:30", 8, models.EstadoEnCurso),
		testutil.Clase(3, "2024-03-15", "11:00", 9, models.EstadoCompletada),
		testutil.Clase(4, "2024-03-15", "12:00", 10, models.EstadoCancelada),
		testutil.Clase(5, "2024-03-16", "09:00", 7, models.EstadoProgramada),
	}
	h := newHandler(t, b)

	req := testutil.NewFormRequest("/calendario/cancelar-dia", map[string]string{
		"dia":    "2024-03-15",
		"motivo": "Lluvia",
		"return": "/calendario?fecha=2024-03-15&vista=day",
	})
	rec := testutil.NewRecorder()
	h.HandleCancelarDia(rec, req)

	rec.AssertRedirect(t, "/calendario?fecha=2024-03-15&vista=day")

	muts := b.MutationsSnapshot()
	if len(muts) != 2 {
		t.Fatalf("mutations: got %d, want 2 (only the cancelable classes)", len(muts))
	}

	paths := []string{muts[0].Path, muts[1].Path}
	sort.Strings(paths)
	want := []string{"/api/v1/clases/1/estado", "/api/v1/clases/2/estado"}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("patched paths: got %v, want %v", paths, want)
		}
	}
	for _, m := range muts {
		if m.Method != http.MethodPatch {
			t.Errorf("method: got %s, want PATCH", m.Method)
		}
		if m.Body["estado"] != "CANCELADA" || m.Body["observaciones"] != "Lluvia" {
			t.Errorf("payload: got %v, want estado CANCELADA with motivo Lluvia", m.Body)
		}
	}
}

func TestCancelarDiaHonorsInstructorFilter(t *testing.T) {
	b := testutil.NewBackend(t)
	conInstructor1 := testutil.Clase(1, "2024-03-15", "09:00", 7, models.EstadoProgramada)
	conInstructor1.InstructorID = 1
	b.Clases = []models.ClaseDetallada{
		conInstructor1,
		testutil.Clase(2, "2024-03-15", "10:30", 8, models.EstadoProgramada),
	}
	h := newHandler(t, b)

	req := testutil.NewFormRequest("/calendario/cancelar-dia", map[string]string{
		"dia":        "2024-03-15",
		"instructor": "2",
		"motivo":     "Lluvia",
		"return":     "/calendario?fecha=2024-03-15&instructor=2&vista=day",
	})
	rec := testutil.NewRecorder()
	h.HandleCancelarDia(rec, req)

	rec.AssertRedirect(t, "/calendario?fecha=2024-03-15&instructor=2&vista=day")

	muts := b.MutationsSnapshot()
	if len(muts) != 1 {
		t.Fatalf("mutations: got %d, want 1 (only the filtered instructor's class)", len(muts))
	}
	if muts[0].Path != "/api/v1/clases/2/estado" {
		t.Errorf("patched path: got %s, want /api/v1/clases/2/estado", muts[0].Path)
	}
}

func TestCancelarDiaRequiresMotivo(t *testing.T) {
	b := testutil.NewBackend(t)
	b.Clases = []models.ClaseDetallada{
		testutil.Clase(1, "2024-03-15", "09:00", 7, models.EstadoProgramada),
	}
	h := newHandler(t, b)

	req := testutil.NewFormRequest("/calendario/cancelar-dia", map[string]string{
		"dia":    "2024-03-15",
		"return": "/calendario",
	})
	rec := testutil.NewRecorder()
	h.HandleCancelarDia(rec, req)

	rec.AssertRedirect(t, "/calendario")
	if b.MutationCount() != 0 {
		t.Errorf("missing motivo must not cancel anything, got %d mutations", b.MutationCount())
	}
}

func TestCopiarSemanaPayload(t *testing.T) {
	b := testutil.NewBackend(t)
	h := newHandler(t, b)

	req := testutil.NewFormRequest("/calendario/copiar-semana", map[string]string{
		"inicio_origen":  "2024-03-11",
		"inicio_destino": "2024-03-18",
		"return":         "/calendario",
	})
	rec := testutil.NewRecorder()
	h.HandleCopiarSemana(rec, req)

	rec.AssertRedirect(t, "/calendario")
	muts := b.MutationsSnapshot()
	if len(muts) != 1 || muts[0].Path != "/api/v1/calendario/copiar-semana" {
		t.Fatalf("expected one POST to copiar-semana, got %+v", muts)
	}
	if muts[0].Body["diaInicioOrigen"] != "2024-03-11" || muts[0].Body["diaInicioDestino"] != "2024-03-18" {
		t.Errorf("payload: got %v", muts[0].Body)
	}
}

func TestCopiarSemanaRejectsSameWeek(t *testing.T) {
	b := testutil.NewBackend(t)
	h := newHandler(t, b)

	req := testutil.NewFormRequest("/calendario/copiar-semana", map[string]string{
		"inicio_origen":  "2024-03-11",
		"inicio_destino": "2024-03-11",
		"return":         "/calendario",
	})
	rec := testutil.NewRecorder()
	h.HandleCopiarSemana(rec, req)

	rec.AssertRedirect(t, "/calendario")
	if b.MutationCount() != 0 {
		t.Errorf("same-week copy must not reach the backend, got %d mutations", b.MutationCount())
	}
}

func TestEliminarPeriodoValidatesRange(t *testing.T) {
	b := testutil.NewBackend(t)
	h := newHandler(t, b)

	req := testutil.NewFormRequest("/calendario/eliminar-periodo", map[string]string{
		"desde":  "2024-03-18",
		"hasta":  "2024-03-11",
		"return": "/calendario",
	})
	rec := testutil.NewRecorder()
	h.HandleEliminarPeriodo(rec, req)

	rec.AssertRedirect(t, "/calendario")
	if b.MutationCount() != 0 {
		t.Errorf("inverted range must not reach the backend, got %d mutations", b.MutationCount())
	}
}

func TestMutationFailureRedirectsBack(t *testing.T) {
	b := testutil.NewBackend(t)
	b.FailWith = http.StatusInternalServerError
	b.FailMensaje = "Error interno"
	h := newHandler(t, b)

	req := testutil.NewFormRequest("/calendario/clases/5/eliminar", map[string]string{
		"return": "/calendario?vista=week",
	})
	req = testutil.WithChiURLParam(req, "id", "5")
	rec := testutil.NewRecorder()
	h.HandleEliminarClase(rec, req)

	// Errors never produce an error page here: the user lands back on the
	// calendar with a notice.
	rec.AssertRedirect(t, "/calendario?vista=week")
}

func TestUnauthorizedForcesLogin(t *testing.T) {
	b := testutil.NewBackend(t)
	b.FailWith = http.StatusUnauthorized
	h := newHandler(t, b)

	req := testutil.NewFormRequest("/calendario/clases/5/eliminar", map[string]string{
		"return": "/calendario",
	})
	req = testutil.WithChiURLParam(req, "id", "5")
	rec := testutil.NewRecorder()
	h.HandleEliminarClase(rec, req)

	rec.AssertRedirect(t, "/login")
}
