package reportes

import (
	"context"
	"net/http"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/auth"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/flash"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timeouts"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const reportSheet = "Resumen"

// BuildWorkbook lays the summary out as two labelled blocks, estado first.
func BuildWorkbook(res Resumen) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	row := 1
	set := func(col int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(reportSheet, cell, v)
	}

	if err := set(1, "Reporte de clases"); err != nil {
		return nil, err
	}
	row++
	if err := set(1, "Desde"); err != nil {
		return nil, err
	}
	if err := set(2, res.Desde); err != nil {
		return nil, err
	}
	row++
	if err := set(1, "Hasta"); err != nil {
		return nil, err
	}
	if err := set(2, res.Hasta); err != nil {
		return nil, err
	}
	row++
	if err := set(1, "Total"); err != nil {
		return nil, err
	}
	if err := set(2, res.Total); err != nil {
		return nil, err
	}
	row += 2

	writeBlock := func(title string, conteos []Conteo) error {
		if err := set(1, title); err != nil {
			return err
		}
		row++
		for _, c := range conteos {
			if err := set(1, c.Clave); err != nil {
				return err
			}
			if err := set(2, c.Cantidad); err != nil {
				return err
			}
			row++
		}
		row++
		return nil
	}

	if err := writeBlock("Por estado", res.PorEstado); err != nil {
		return nil, err
	}
	if err := writeBlock("Por especialidad", res.PorEspecialidad); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(reportSheet, "A", "A", 22); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(reportSheet, "B", "B", 12); err != nil {
		return nil, err
	}
	return f, nil
}

// ServeExportar streams the summary workbook for the requested range.
func (h *Handler) ServeExportar(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	desde, hasta := parseRange(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	clases, err := h.Clases.List(ctx, hrsapi.Token(u.Token))
	if err != nil {
		if hrsapi.IsUnauthorized(err) {
			auth.SignOut(w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.Log.Warn("report export fetch failed", zap.Error(err))
		flash.Add(w, r, flash.Error, err.Error())
		http.Redirect(w, r, "/reportes", http.StatusSeeOther)
		return
	}

	f, err := BuildWorkbook(Resumir(clases, desde, hasta))
	if err != nil {
		h.Log.Warn("report workbook failed", zap.Error(err))
		flash.Add(w, r, flash.Error, err.Error())
		http.Redirect(w, r, "/reportes", http.StatusSeeOther)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="Reporte_`+desde+`_`+hasta+`.xlsx"`)
	if err := f.Write(w); err != nil {
		h.Log.Warn("report write failed", zap.Error(err))
	}
}
