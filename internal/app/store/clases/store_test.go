package clases_test

import (
	"context"
	"testing"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/store/clases"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
	"github.com/hrs-ecuestre/hrsadmin/internal/testutil"
)

func testToken() hrsapi.Token {
	return hrsapi.Token(testutil.User().Token)
}

func TestListServesFromCache(t *testing.T) {
	b := testutil.NewBackend(t)
	b.Clases = []models.ClaseDetallada{
		testutil.Clase(1, "2024-03-15", "09:00", 7, models.EstadoProgramada),
	}
	store, _, _ := b.Stores()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := store.List(ctx, testToken())
		if err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
		if len(got) != 1 {
			t.Fatalf("list %d: got %d classes, want 1", i, len(got))
		}
	}

	if n := b.GetCount("/api/v1/clases/detalles"); n != 1 {
		t.Errorf("backend fetches: got %d, want 1 (cache-through)", n)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	b := testutil.NewBackend(t)
	store, _, _ := b.Stores()
	ctx := context.Background()

	if _, err := store.List(ctx, testToken()); err != nil {
		t.Fatalf("first list: %v", err)
	}
	store.Invalidate()
	if _, err := store.List(ctx, testToken()); err != nil {
		t.Fatalf("second list: %v", err)
	}

	if n := b.GetCount("/api/v1/clases/detalles"); n != 2 {
		t.Errorf("backend fetches: got %d, want 2 after invalidate", n)
	}
}

func TestFiltroApply(t *testing.T) {
	base := []models.ClaseDetallada{
		testutil.Clase(1, "2024-03-15", "09:00", 7, models.EstadoProgramada),
		testutil.Clase(2, "2024-03-15", "10:00", 8, models.EstadoProgramada),
		testutil.Clase(3, "2024-03-16", "09:00", 7, models.EstadoProgramada),
	}
	base[1].AlumnoID = 5
	base[2].InstructorID = 9

	cases := []struct {
		name   string
		filtro clases.Filtro
		want   []int
	}{
		{"none", clases.Filtro{}, []int{1, 2, 3}},
		{"alumno", clases.Filtro{AlumnoID: 3}, []int{1, 3}},
		{"instructor", clases.Filtro{InstructorID: 9}, []int{3}},
		{"both", clases.Filtro{AlumnoID: 3, InstructorID: 2}, []int{1}},
		{"no match", clases.Filtro{AlumnoID: 99}, nil},
	}
	for _, tc := range cases {
		got := tc.filtro.Apply(base)
		if len(got) != len(tc.want) {
			t.Errorf("%s: got %d classes, want %d", tc.name, len(got), len(tc.want))
			continue
		}
		for i, c := range got {
			if c.ID != tc.want[i] {
				t.Errorf("%s[%d]: got id %d, want %d", tc.name, i, c.ID, tc.want[i])
			}
		}
	}

	if len(base) != 3 {
		t.Error("Apply must not modify its input")
	}
}

func TestDelDia(t *testing.T) {
	all := []models.ClaseDetallada{
		testutil.Clase(1, "2024-03-15", "09:00", 7, models.EstadoProgramada),
		testutil.Clase(2, "2024-03-16", "09:00", 7, models.EstadoProgramada),
		testutil.Clase(3, "2024-03-15", "10:00", 8, models.EstadoCancelada),
	}
	got := clases.DelDia(all, "2024-03-15")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("DelDia: got %+v, want classes 1 and 3", got)
	}
	if clases.DelDia(all, "2024-03-17") != nil {
		t.Error("DelDia on an empty day should return nil")
	}
}

func TestCancelables(t *testing.T) {
	all := []models.ClaseDetallada{
		testutil.Clase(1, "2024-03-15", "09:00", 7, models.EstadoProgramada),
		testutil.Clase(2, "2024-03-15", "10:00", 7, models.EstadoEnCurso),
		testutil.Clase(3, "2024-03-15", "11:00", 7, models.EstadoCompletada),
		testutil.Clase(4, "2024-03-15", "12:00", 7, models.EstadoCancelada),
		testutil.Clase(5, "2024-03-15", "13:00", 7, models.EstadoACA),
		testutil.Clase(6, "2024-03-15", "14:00", 7, models.EstadoASA),
	}
	got := clases.Cancelables(all)
	want := []int{1, 2, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("cancelables: got %d, want %d", len(got), len(want))
	}
	for i, c := range got {
		if c.ID != want[i] {
			t.Errorf("cancelables[%d]: got id %d, want %d", i, c.ID, want[i])
		}
	}
}
