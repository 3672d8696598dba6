package timegrid_test

import (
	"testing"
	"time"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/timegrid"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func clase(id int, dia, hora string, caballo int) models.ClaseDetallada {
	return models.ClaseDetallada{Clase: models.Clase{
		ID:           id,
		Dia:          dia,
		Hora:         hora,
		CaballoID:    caballo,
		Especialidad: models.EspecialidadEquitacion,
		Estado:       models.EstadoProgramada,
	}}
}

func TestComputeVisibleDaysMonth(t *testing.T) {
	anchors := []time.Time{
		day(2024, time.March, 15),
		day(2024, time.February, 1),  // leap February
		day(2024, time.September, 30),
		day(2025, time.June, 1),  // June 2025 starts on a Sunday
		day(2026, time.March, 1), // March 2026 also starts on a Sunday
	}

	for _, anchor := range anchors {
		days := timegrid.ComputeVisibleDays(anchor, timegrid.ViewMonth)

		if len(days) == 0 || len(days)%7 != 0 {
			t.Fatalf("%v: grid length %d is not a positive multiple of 7", anchor, len(days))
		}
		if days[0].Weekday() != time.Monday {
			t.Errorf("%v: grid starts on %v, want Monday", anchor, days[0].Weekday())
		}
		if days[len(days)-1].Weekday() != time.Sunday {
			t.Errorf("%v: grid ends on %v, want Sunday", anchor, days[len(days)-1].Weekday())
		}

		// Every day of the anchor's month must be present, in order.
		seen := make(map[string]bool, len(days))
		for i, d := range days {
			seen[timegrid.DayKey(d)] = true
			if i > 0 && !d.Equal(days[i-1].AddDate(0, 0, 1)) {
				t.Fatalf("%v: grid is not contiguous at index %d", anchor, i)
			}
		}
		first := day(anchor.Year(), anchor.Month(), 1)
		last := first.AddDate(0, 1, -1)
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if !seen[timegrid.DayKey(d)] {
				t.Errorf("%v: grid is missing %s", anchor, timegrid.DayKey(d))
			}
		}
	}
}

func TestComputeVisibleDaysWeek(t *testing.T) {
	for wd := 0; wd < 7; wd++ {
		anchor := day(2024, time.March, 11).AddDate(0, 0, wd) // Mon..Sun of one week
		days := timegrid.ComputeVisibleDays(anchor, timegrid.ViewWeek)

		if len(days) != 7 {
			t.Fatalf("week grid has %d days, want 7", len(days))
		}
		if days[0].Weekday() != time.Monday || days[6].Weekday() != time.Sunday {
			t.Errorf("week runs %v..%v, want Monday..Sunday", days[0].Weekday(), days[6].Weekday())
		}
		found := false
		for _, d := range days {
			if timegrid.DayKey(d) == timegrid.DayKey(anchor) {
				found = true
			}
		}
		if !found {
			t.Errorf("week for %v does not contain the anchor", anchor)
		}
	}
}

func TestComputeVisibleDaysDay(t *testing.T) {
	anchor := day(2024, time.March, 15)
	days := timegrid.ComputeVisibleDays(anchor, timegrid.ViewDay)
	if len(days) != 1 || timegrid.DayKey(days[0]) != "2024-03-15" {
		t.Fatalf("day grid: got %v", days)
	}
}

func TestNavigateMonthKeepsDayOfMonth(t *testing.T) {
	got := timegrid.Navigate(day(2024, time.March, 15), timegrid.ViewMonth, true)
	if timegrid.DayKey(got) != "2024-04-15" {
		t.Errorf("next month from 2024-03-15: got %s, want 2024-04-15", timegrid.DayKey(got))
	}

	got = timegrid.Navigate(day(2024, time.March, 15), timegrid.ViewMonth, false)
	if timegrid.DayKey(got) != "2024-02-15" {
		t.Errorf("prev month from 2024-03-15: got %s, want 2024-02-15", timegrid.DayKey(got))
	}
}

func TestNavigateMonthClampsToLastDay(t *testing.T) {
	got := timegrid.Navigate(day(2024, time.January, 31), timegrid.ViewMonth, true)
	if timegrid.DayKey(got) != "2024-02-29" {
		t.Errorf("Jan 31 + 1 month in a leap year: got %s, want 2024-02-29", timegrid.DayKey(got))
	}

	got = timegrid.Navigate(day(2023, time.March, 31), timegrid.ViewMonth, false)
	if timegrid.DayKey(got) != "2023-02-28" {
		t.Errorf("Mar 31 - 1 month: got %s, want 2023-02-28", timegrid.DayKey(got))
	}
}

func TestNavigateWeekAndDay(t *testing.T) {
	if got := timegrid.Navigate(day(2024, time.March, 15), timegrid.ViewWeek, true); timegrid.DayKey(got) != "2024-03-22" {
		t.Errorf("next week: got %s", timegrid.DayKey(got))
	}
	if got := timegrid.Navigate(day(2024, time.March, 15), timegrid.ViewDay, false); timegrid.DayKey(got) != "2024-03-14" {
		t.Errorf("prev day: got %s", timegrid.DayKey(got))
	}
}

func TestGroupByDayPreservesMultisetAndOrders(t *testing.T) {
	in := []models.ClaseDetallada{
		clase(1, "2024-03-15", "10:30", 7),
		clase(2, "2024-03-15", "09:00", 3),
		clase(3, "2024-03-16", "11:00", 7),
		clase(4, "2024-03-15", "09:00", 9), // same hora as id 2
		clase(5, "2024-03-16", "09:30", 1),
	}

	grouped := timegrid.GroupByDay(in)

	total := 0
	seen := map[int]bool{}
	for dia, bucket := range grouped {
		for i, c := range bucket {
			if c.Dia != dia {
				t.Errorf("class %d filed under %s but has dia %s", c.ID, dia, c.Dia)
			}
			if i > 0 && bucket[i-1].Hora > c.Hora {
				t.Errorf("bucket %s not sorted: %s after %s", dia, c.Hora, bucket[i-1].Hora)
			}
			seen[c.ID] = true
			total++
		}
	}
	if total != len(in) {
		t.Fatalf("grouped %d classes, want %d", total, len(in))
	}
	for _, c := range in {
		if !seen[c.ID] {
			t.Errorf("class %d lost in grouping", c.ID)
		}
	}
}

func TestGroupByDayStringOrder(t *testing.T) {
	// Zero-padded HH:MM strings sort correctly lexicographically; that string
	// compare is the contract, so 09:30 must precede 10:00.
	grouped := timegrid.GroupByDay([]models.ClaseDetallada{
		clase(1, "2024-03-15", "10:00", 1),
		clase(2, "2024-03-15", "09:30", 2),
	})
	bucket := grouped["2024-03-15"]
	if len(bucket) != 2 || bucket[0].ID != 2 {
		t.Fatalf("bucket order: got %+v", bucket)
	}
}

func TestBuildSlotIndex(t *testing.T) {
	in := []models.ClaseDetallada{
		clase(1, "2024-03-15", "10:30:00", 7), // seconds truncated to HH:MM
		clase(2, "2024-03-15", "09:00", 3),
	}

	idx := timegrid.BuildSlotIndex(in)

	if got, ok := idx[timegrid.SlotKey{CaballoID: 7, Hora: "10:30"}]; !ok || got.ID != 1 {
		t.Errorf("lookup (7, 10:30): got %+v, ok=%v", got, ok)
	}
	if got, ok := idx[timegrid.SlotKey{CaballoID: 3, Hora: "09:00"}]; !ok || got.ID != 2 {
		t.Errorf("lookup (3, 09:00): got %+v, ok=%v", got, ok)
	}
	if _, ok := idx[timegrid.SlotKey{CaballoID: 7, Hora: "09:00"}]; ok {
		t.Error("lookup on empty cell returned a class")
	}
}

func TestTimeSlots(t *testing.T) {
	slots := timegrid.TimeSlots()
	if len(slots) != 20 {
		t.Fatalf("slot count: got %d, want 20", len(slots))
	}
	if slots[0] != "09:00" || slots[len(slots)-1] != "18:30" {
		t.Errorf("window: got %s..%s, want 09:00..18:30", slots[0], slots[len(slots)-1])
	}
	for i := 1; i < len(slots); i++ {
		if slots[i-1] >= slots[i] {
			t.Errorf("slots not strictly ascending at %d: %s >= %s", i, slots[i-1], slots[i])
		}
	}

	// Mutating the returned slice must not affect the table.
	slots[0] = "00:00"
	if timegrid.TimeSlots()[0] != "09:00" {
		t.Error("TimeSlots returned a shared slice")
	}
}
