package calendario

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/templates"
	recursosstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/recursos"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timegrid"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/viewdata"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
)

// renderWeek draws the Monday-to-Sunday columns of the anchor week, at most
// WeekMaxBadges chips per column.
func (h *Handler) renderWeek(w http.ResponseWriter, r *http.Request, vs viewState, clases []models.ClaseDetallada, dir *recursosstore.Directory) {
	days := timegrid.ComputeVisibleDays(vs.Fecha, timegrid.ViewWeek)
	byDay := timegrid.GroupByDay(clases)
	hoy := todayKey()

	cols := make([]weekCol, 0, len(days))
	for i, d := range days {
		key := timegrid.DayKey(d)
		col := weekCol{
			Dia:       key,
			Heading:   diasSemana[i] + " " + strconv.Itoa(d.Day()),
			IsToday:   key == hoy,
			CreateURL: createURL(vs, key, 0, ""),
		}
		col.Badges, col.MoreCount = h.buildBadges(vs, byDay[key], dir, timegrid.WeekMaxBadges)
		if col.MoreCount > 0 {
			col.MoreURL = vs.withFecha(d).withVista(timegrid.ViewDay).URL()
		}
		cols = append(cols, col)
	}

	data := weekData{
		BaseVM:  viewdata.NewBaseVM(w, r, "Calendario", "/"),
		Toolbar: buildToolbar(vs, dir, 0),
		Days:    cols,
	}
	templates.Render(w, r, "calendario_week", data)
}
