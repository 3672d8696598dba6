package calendario

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	clasesstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/clases"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timegrid"
)

func TestParseViewStateDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/calendario", nil)
	vs := parseViewState(r)

	if vs.Vista != timegrid.ViewMonth {
		t.Errorf("vista: got %q, want %q", vs.Vista, timegrid.ViewMonth)
	}
	if vs.Filtro.Active() {
		t.Error("expected no active filter by default")
	}
	if got, want := timegrid.DayKey(vs.Fecha), timegrid.DayKey(time.Now()); got != want {
		t.Errorf("fecha: got %s, want %s", got, want)
	}
}

func TestParseViewStateReadsQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/calendario?vista=day&fecha=2024-03-15&alumno=3&instructor=all&pop=c9", nil)
	vs := parseViewState(r)

	if vs.Vista != timegrid.ViewDay {
		t.Errorf("vista: got %q, want day", vs.Vista)
	}
	if got := timegrid.DayKey(vs.Fecha); got != "2024-03-15" {
		t.Errorf("fecha: got %s, want 2024-03-15", got)
	}
	if vs.Filtro.AlumnoID != 3 {
		t.Errorf("alumno filter: got %d, want 3", vs.Filtro.AlumnoID)
	}
	if vs.Filtro.InstructorID != 0 {
		t.Errorf("instructor filter: got %d, want 0 for %q", vs.Filtro.InstructorID, "all")
	}
	if vs.Pop != "c9" {
		t.Errorf("pop: got %q, want c9", vs.Pop)
	}
}

func TestViewStateURLDropsPopover(t *testing.T) {
	vs := viewState{
		Fecha: time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local),
		Vista: timegrid.ViewWeek,
		Pop:   "c9",
	}
	u := vs.URL()
	if strings.Contains(u, "pop=") {
		t.Errorf("URL %q should not carry the popover key", u)
	}
	if !strings.Contains(u, "fecha=2024-03-15") || !strings.Contains(u, "vista=week") {
		t.Errorf("URL %q missing state", u)
	}
}

func TestCreateURLPrefillsDayCell(t *testing.T) {
	vs := viewState{
		Fecha: time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local),
		Vista: timegrid.ViewDay,
	}
	u := createURL(vs, "2024-03-15", 7, "10:30")

	for _, want := range []string{"dia=2024-03-15", "caballo=7", "hora=10%3A30"} {
		if !strings.Contains(u, want) {
			t.Errorf("createURL %q missing %q", u, want)
		}
	}
}

func TestCreateURLWithoutPrefill(t *testing.T) {
	vs := viewState{Fecha: time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), Vista: timegrid.ViewMonth}
	u := createURL(vs, "2024-03-01", 0, "")
	if strings.Contains(u, "caballo=") || strings.Contains(u, "hora=") {
		t.Errorf("createURL %q should not prefill horse or slot", u)
	}
}

func TestHeadingFor(t *testing.T) {
	base := viewState{Fecha: time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)}

	cases := []struct {
		vista timegrid.ViewMode
		want  string
	}{
		{timegrid.ViewMonth, "marzo de 2024"},
		{timegrid.ViewDay, "15 de marzo de 2024"},
		{timegrid.ViewWeek, "Semana del 11 al 17 de marzo de 2024"},
	}
	for _, tc := range cases {
		vs := base
		vs.Vista = tc.vista
		if got := headingFor(vs); got != tc.want {
			t.Errorf("heading %s: got %q, want %q", tc.vista, got, tc.want)
		}
	}
}

func TestFilterRoundTrip(t *testing.T) {
	vs := viewState{
		Fecha:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local),
		Vista:  timegrid.ViewMonth,
		Filtro: clasesstore.Filtro{AlumnoID: 3, InstructorID: 2},
	}
	r := httptest.NewRequest("GET", vs.URL(), nil)
	got := parseViewState(r)

	if got.Filtro != vs.Filtro {
		t.Errorf("filtro round trip: got %+v, want %+v", got.Filtro, vs.Filtro)
	}
	if got.Vista != vs.Vista || timegrid.DayKey(got.Fecha) != timegrid.DayKey(vs.Fecha) {
		t.Errorf("state round trip: got %+v", got)
	}
}

func TestExportFileName(t *testing.T) {
	cases := []struct {
		dia, instructor, want string
	}{
		{"2024-03-15", "", "Clases_2024-03-15.xlsx"},
		{"2024-03-15", "-", "Clases_2024-03-15.xlsx"},
		{"2024-03-15", "Juan Pérez", "Clases_2024-03-15_Juan_Pérez.xlsx"},
	}
	for _, tc := range cases {
		if got := exportFileName(tc.dia, tc.instructor); got != tc.want {
			t.Errorf("exportFileName(%q, %q): got %q, want %q", tc.dia, tc.instructor, got, tc.want)
		}
	}
}
