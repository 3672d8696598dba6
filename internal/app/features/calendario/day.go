package calendario

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	clasesstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/clases"
	recursosstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/recursos"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timegrid"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/viewdata"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
)

// renderDay draws the slot matrix: one row per half-hour slot, one column
// per horse (sorted by name), each cell either the scheduled class or a
// prefilled creation link.
func (h *Handler) renderDay(w http.ResponseWriter, r *http.Request, vs viewState, clases []models.ClaseDetallada, dir *recursosstore.Directory) {
	dia := timegrid.DayKey(vs.Fecha)
	delDia := clasesstore.DelDia(clases, dia)
	idx := timegrid.BuildSlotIndex(delDia)
	caballos := dir.CaballosOrdenados()

	rows := make([]dayRow, 0, len(timegrid.TimeSlots()))
	for _, hora := range timegrid.TimeSlots() {
		row := dayRow{Hora: hora, Cells: make([]dayCell, 0, len(caballos))}
		for _, cb := range caballos {
			c, ok := idx[timegrid.SlotKey{CaballoID: cb.ID, Hora: hora}]
			if !ok {
				row.Cells = append(row.Cells, dayCell{
					Empty:     true,
					CreateURL: createURL(vs, dia, cb.ID, hora),
				})
				continue
			}
			key := popKey(c.ID)
			open := vs.Pop == key
			cell := dayCell{
				ClaseID:      c.ID,
				Estado:       c.Estado,
				Glyph:        c.Estado.Glyph(),
				AlumnoNombre: alumnoNombre(c, dir),
				PopoverURL:   vs.withPop(key),
				PopoverOpen:  open,
			}
			if open {
				cell.Popover = h.buildPopover(vs, c, dir)
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}

	nombres := make([]string, 0, len(caballos))
	for _, cb := range caballos {
		nombres = append(nombres, cb.Nombre)
	}

	data := dayData{
		BaseVM:   viewdata.NewBaseVM(w, r, "Calendario", "/"),
		Toolbar:  buildToolbar(vs, dir, len(clasesstore.Cancelables(delDia))),
		Caballos: nombres,
		Rows:     rows,
	}
	templates.Render(w, r, "calendario_day", data)
}
