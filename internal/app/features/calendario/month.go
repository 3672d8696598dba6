package calendario

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	recursosstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/recursos"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timegrid"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/viewdata"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
)

// renderMonth draws the month grid: full Monday-to-Sunday weeks covering the
// anchor month, at most MonthMaxBadges chips per cell.
func (h *Handler) renderMonth(w http.ResponseWriter, r *http.Request, vs viewState, clases []models.ClaseDetallada, dir *recursosstore.Directory) {
	days := timegrid.ComputeVisibleDays(vs.Fecha, timegrid.ViewMonth)
	byDay := timegrid.GroupByDay(clases)
	hoy := todayKey()

	weeks := make([][]monthCell, 0, len(days)/7)
	for start := 0; start < len(days); start += 7 {
		week := make([]monthCell, 0, 7)
		for _, d := range days[start : start+7] {
			key := timegrid.DayKey(d)
			cell := monthCell{
				Dia:          key,
				DiaNum:       d.Day(),
				IsToday:      key == hoy,
				IsOtherMonth: d.Month() != vs.Fecha.Month(),
				CreateURL:    createURL(vs, key, 0, ""),
			}
			cell.Badges, cell.MoreCount = h.buildBadges(vs, byDay[key], dir, timegrid.MonthMaxBadges)
			if cell.MoreCount > 0 {
				cell.MoreURL = vs.withFecha(d).withVista(timegrid.ViewDay).URL()
			}
			week = append(week, cell)
		}
		weeks = append(weeks, week)
	}

	data := monthData{
		BaseVM:     viewdata.NewBaseVM(w, r, "Calendario", "/"),
		Toolbar:    buildToolbar(vs, dir, 0),
		DiasSemana: diasSemana[:],
		Weeks:      weeks,
	}
	templates.Render(w, r, "calendario_month", data)
}
