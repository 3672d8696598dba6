package reportes_test

import (
	"testing"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/features/reportes"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
	"github.com/hrs-ecuestre/hrsadmin/internal/testutil"
)

func TestResumirCountsInsideRange(t *testing.T) {
	clases := []models.ClaseDetallada{
		testutil.Clase(1, "2024-03-01", "09:00", 7, models.EstadoProgramada),
		testutil.Clase(2, "2024-03-15", "10:00", 7, models.EstadoCancelada),
		testutil.Clase(3, "2024-03-31", "11:00", 8, models.EstadoProgramada),
		testutil.Clase(4, "2024-04-01", "09:00", 8, models.EstadoProgramada), // fuera de rango
		testutil.Clase(5, "2024-02-29", "09:00", 8, models.EstadoCompletada), // fuera de rango
	}

	res := reportes.Resumir(clases, "2024-03-01", "2024-03-31")

	if res.Total != 3 {
		t.Errorf("total: got %d, want 3", res.Total)
	}

	porEstado := map[string]int{}
	for _, c := range res.PorEstado {
		porEstado[c.Clave] = c.Cantidad
	}
	if porEstado["PROGRAMADA"] != 2 || porEstado["CANCELADA"] != 1 {
		t.Errorf("por estado: got %v", porEstado)
	}
	if porEstado["COMPLETADA"] != 0 {
		t.Errorf("out-of-range class leaked into the count: %v", porEstado)
	}

	// Every estado appears even with a zero count.
	if len(res.PorEstado) != len(models.Estados) {
		t.Errorf("estado rows: got %d, want %d", len(res.PorEstado), len(models.Estados))
	}
	if len(res.PorEspecialidad) != len(models.Especialidades) {
		t.Errorf("especialidad rows: got %d, want %d", len(res.PorEspecialidad), len(models.Especialidades))
	}
}

func TestResumirEmptyRange(t *testing.T) {
	res := reportes.Resumir(nil, "2024-03-01", "2024-03-31")
	if res.Total != 0 {
		t.Errorf("total: got %d, want 0", res.Total)
	}
	for _, c := range res.PorEstado {
		if c.Cantidad != 0 {
			t.Errorf("estado %s: got %d, want 0", c.Clave, c.Cantidad)
		}
	}
}

func TestBuildWorkbookShape(t *testing.T) {
	clases := []models.ClaseDetallada{
		testutil.Clase(1, "2024-03-01", "09:00", 7, models.EstadoProgramada),
	}
	f, err := reportes.BuildWorkbook(reportes.Resumir(clases, "2024-03-01", "2024-03-31"))
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Resumen")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) == 0 || rows[0][0] != "Reporte de clases" {
		t.Fatalf("workbook head: got %v", rows)
	}

	var sawEstado, sawEspecialidad bool
	for _, row := range rows {
		if len(row) > 0 && row[0] == "Por estado" {
			sawEstado = true
		}
		if len(row) > 0 && row[0] == "Por especialidad" {
			sawEspecialidad = true
		}
	}
	if !sawEstado || !sawEspecialidad {
		t.Error("workbook is missing an aggregation block")
	}
}
