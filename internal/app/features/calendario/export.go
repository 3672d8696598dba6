package calendario

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	clasesstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/clases"
	recursosstore "github.com/hrs-ecuestre/hrsadmin/internal/app/store/recursos"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timegrid"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timeouts"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Clases"

// BuildDayWorkbook lays out one day as the day grid does: the "Hora" column
// with every half-hour slot, then one column per horse sorted by name, with
// the student's full name (status glyph prefixed) in each occupied cell.
func BuildDayWorkbook(dia string, clases []models.ClaseDetallada, dir *recursosstore.Directory) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	caballos := dir.CaballosOrdenados()
	idx := timegrid.BuildSlotIndex(clasesstore.DelDia(clases, dia))

	headers := make([]string, 0, len(caballos)+1)
	headers = append(headers, "Hora")
	for _, cb := range caballos {
		headers = append(headers, cb.Nombre)
	}
	for i, head := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, head); err != nil {
			return nil, err
		}
	}

	for row, hora := range timegrid.TimeSlots() {
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, hora); err != nil {
			return nil, err
		}
		for col, cb := range caballos {
			c, ok := idx[timegrid.SlotKey{CaballoID: cb.ID, Hora: hora}]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+2, row+2)
			if err != nil {
				return nil, err
			}
			valor := c.Estado.Glyph() + alumnoNombreCompleto(c, dir)
			if err := f.SetCellValue(exportSheet, cell, valor); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "A", 8); err != nil {
		return nil, err
	}
	for i, cb := range caballos {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return nil, err
		}
		width := float64(utf8.RuneCountInString(cb.Nombre) + 2)
		if width < 18 {
			width = 18
		}
		if err := f.SetColWidth(exportSheet, col, col, width); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// exportFileName is Clases_{fecha}.xlsx, with the instructor's name
// appended when the export is filtered to one instructor.
func exportFileName(dia, instructor string) string {
	name := "Clases_" + dia
	if instructor != "" && instructor != "-" {
		name += "_" + strings.ReplaceAll(instructor, " ", "_")
	}
	return name + ".xlsx"
}

// ServeExportar streams the day grid as an xlsx download. The active
// student/instructor filters apply, so the sheet matches what is on screen.
func (h *Handler) ServeExportar(w http.ResponseWriter, r *http.Request) {
	tok, ok := h.token(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	vs := parseViewState(r)
	dia := timegrid.DayKey(vs.Fecha)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	clases, err := h.Clases.List(ctx, tok)
	if err != nil {
		h.failBack(w, r, err, vs.withVista(timegrid.ViewDay).URL())
		return
	}
	dir, err := h.Recursos.Snapshot(ctx, tok)
	if err != nil {
		h.failBack(w, r, err, vs.withVista(timegrid.ViewDay).URL())
		return
	}

	f, err := BuildDayWorkbook(dia, vs.Filtro.Apply(clases), dir)
	if err != nil {
		h.failBack(w, r, err, vs.withVista(timegrid.ViewDay).URL())
		return
	}
	defer f.Close()

	instructor := ""
	if vs.Filtro.InstructorID != 0 {
		instructor = dir.InstructorNombre(vs.Filtro.InstructorID)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFileName(dia, instructor)+`"`)
	if err := f.Write(w); err != nil {
		h.Log.Warn("export write failed", zap.Error(err))
	}
}
