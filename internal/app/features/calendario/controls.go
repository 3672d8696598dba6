package calendario

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	clasesstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/clases"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timegrid"
)

// viewState is what the user is looking at: anchor date, view mode, filters
// and which popover (if any) is open. It lives entirely in the URL so that
// navigation, refresh and back/forward all behave.
type viewState struct {
	Fecha  time.Time
	Vista  timegrid.ViewMode
	Filtro clasesstore.Filtro
	Pop    string // open popover cell key, "" when closed
}

// parseViewState reads the calendar state from the request. Missing or
// malformed values fall back to today/month/no filter.
func parseViewState(r *http.Request) viewState {
	q := r.URL.Query()

	vs := viewState{
		Fecha: time.Now(),
		Vista: timegrid.ParseViewMode(q.Get("vista")),
		Pop:   q.Get("pop"),
	}
	if t, ok := timegrid.ParseDay(q.Get("fecha")); ok {
		vs.Fecha = t
	}
	vs.Filtro.AlumnoID = parseFilterID(q.Get("alumno"))
	vs.Filtro.InstructorID = parseFilterID(q.Get("instructor"))
	return vs
}

// parseFilterID maps "all", "" and garbage to 0 (no filter).
func parseFilterID(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// URL renders the state back into a calendar link. The popover key is
// deliberately dropped: every state change closes the popover.
func (vs viewState) URL() string {
	q := url.Values{}
	q.Set("vista", string(vs.Vista))
	q.Set("fecha", timegrid.DayKey(vs.Fecha))
	if vs.Filtro.AlumnoID != 0 {
		q.Set("alumno", strconv.Itoa(vs.Filtro.AlumnoID))
	}
	if vs.Filtro.InstructorID != 0 {
		q.Set("instructor", strconv.Itoa(vs.Filtro.InstructorID))
	}
	return "/calendario?" + q.Encode()
}

// withPop returns the same state with a popover open on the given cell key.
func (vs viewState) withPop(key string) string {
	return vs.URL() + "&pop=" + url.QueryEscape(key)
}

// withFecha returns a copy anchored to t.
func (vs viewState) withFecha(t time.Time) viewState {
	vs.Fecha = t
	return vs
}

// withVista returns a copy in the given mode. The anchor date is kept; only
// its granularity interpretation changes.
func (vs viewState) withVista(m timegrid.ViewMode) viewState {
	vs.Vista = m
	return vs
}

// controlURLs are the toolbar links derived from the current state.
type controlURLs struct {
	PrevURL  string
	NextURL  string
	TodayURL string

	MonthURL string
	WeekURL  string
	DayURL   string
}

func (vs viewState) controls() controlURLs {
	return controlURLs{
		PrevURL:  vs.withFecha(timegrid.Navigate(vs.Fecha, vs.Vista, false)).URL(),
		NextURL:  vs.withFecha(timegrid.Navigate(vs.Fecha, vs.Vista, true)).URL(),
		TodayURL: vs.withFecha(time.Now()).URL(),
		MonthURL: vs.withVista(timegrid.ViewMonth).URL(),
		WeekURL:  vs.withVista(timegrid.ViewWeek).URL(),
		DayURL:   vs.withVista(timegrid.ViewDay).URL(),
	}
}

// meses translates month names for the toolbar heading.
var meses = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// diasSemana are the Monday-first column headings.
var diasSemana = [...]string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"}

// headingFor renders the toolbar heading for the current state.
func headingFor(vs viewState) string {
	mes := meses[vs.Fecha.Month()-1]
	switch vs.Vista {
	case timegrid.ViewDay:
		return strconv.Itoa(vs.Fecha.Day()) + " de " + mes + " de " + strconv.Itoa(vs.Fecha.Year())
	case timegrid.ViewWeek:
		days := timegrid.ComputeVisibleDays(vs.Fecha, timegrid.ViewWeek)
		lun, dom := days[0], days[6]
		return "Semana del " + strconv.Itoa(lun.Day()) + " al " +
			strconv.Itoa(dom.Day()) + " de " + meses[dom.Month()-1] + " de " + strconv.Itoa(dom.Year())
	default:
		return mes + " de " + strconv.Itoa(vs.Fecha.Year())
	}
}
