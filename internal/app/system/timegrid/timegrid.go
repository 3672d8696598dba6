// Package timegrid derives calendar grids from the class collection.
//
// Everything here is a pure function of (anchor date, view mode, class list):
// no clocks except where a caller passes "today" in, no I/O, no state. The
// handlers in features/calendario call these to build view models; the same
// functions back the day-view export.
package timegrid

import (
	"sort"
	"time"

	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
)

// ViewMode is the calendar granularity.
type ViewMode string

const (
	ViewMonth ViewMode = "month"
	ViewWeek  ViewMode = "week"
	ViewDay   ViewMode = "day"
)

// ParseViewMode maps a query value to a ViewMode, defaulting to month.
func ParseViewMode(s string) ViewMode {
	switch ViewMode(s) {
	case ViewWeek:
		return ViewWeek
	case ViewDay:
		return ViewDay
	}
	return ViewMonth
}

// Badge caps per view. Month and week cells collapse the remainder into a
// "+N más" indicator; the day grid has one cell per (horse, slot) so it
// never needs one.
const (
	MonthMaxBadges = 3
	WeekMaxBadges  = 10
)

// DayKey formats t the way the backend keys days: "2006-01-02".
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDay parses a backend day key in local time. Returns ok=false for
// anything that is not a bare date.
func ParseDay(s string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// startOfWeek returns the Monday on/before t, at midnight.
func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return t.AddDate(0, 0, -offset)
}

// ComputeVisibleDays returns the ordered day list the grid renders.
//
// Month mode covers every day from the Monday on/before the 1st of the
// anchor's month through the Sunday on/after its last day, so the result is
// always a whole number of Monday-started weeks containing the full month.
// Week mode is the Monday..Sunday containing the anchor. Day mode is the
// anchor day alone.
func ComputeVisibleDays(anchor time.Time, mode ViewMode) []time.Time {
	switch mode {
	case ViewDay:
		d := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
		return []time.Time{d}
	case ViewWeek:
		start := startOfWeek(anchor)
		days := make([]time.Time, 7)
		for i := range days {
			days[i] = start.AddDate(0, 0, i)
		}
		return days
	default:
		first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		last := first.AddDate(0, 1, -1)
		start := startOfWeek(first)
		end := startOfWeek(last).AddDate(0, 0, 6)

		var days []time.Time
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			days = append(days, d)
		}
		return days
	}
}

// Navigate shifts the anchor by one unit of the view mode. Month navigation
// keeps the day-of-month, clamping to the target month's last day (Jan 31 →
// Feb 29 on leap years), the same arithmetic the grid was built against.
func Navigate(anchor time.Time, mode ViewMode, next bool) time.Time {
	step := 1
	if !next {
		step = -1
	}
	switch mode {
	case ViewWeek:
		return anchor.AddDate(0, 0, 7*step)
	case ViewDay:
		return anchor.AddDate(0, 0, step)
	default:
		return addMonthsClamped(anchor, step)
	}
}

// addMonthsClamped adds months keeping the day-of-month, clamping instead of
// letting the stdlib normalize Mar 31 + 1 month into May 1.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

// GroupByDay partitions classes into per-day buckets keyed by Dia, each
// bucket sorted ascending by the zero-padded HH:MM string. The string
// compare is the contract; callers rely on it matching the slot table order.
func GroupByDay(clases []models.ClaseDetallada) map[string][]models.ClaseDetallada {
	grouped := make(map[string][]models.ClaseDetallada)
	for _, c := range clases {
		grouped[c.Dia] = append(grouped[c.Dia], c)
	}
	for key, bucket := range grouped {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Hora < bucket[j].Hora
		})
		grouped[key] = bucket
	}
	return grouped
}

// SlotKey addresses one day-view cell: a horse at a half-hour slot.
type SlotKey struct {
	CaballoID int
	Hora      string // HH:MM
}

// BuildSlotIndex maps (horse, HH:MM) to the class occupying that cell, so a
// render pass over |horses| x |slots| cells answers occupancy in constant
// time per cell. When two classes collide on a cell (double-booking, which
// nothing client-side prevents) the last one in input order wins, mirroring
// how the grid paints.
func BuildSlotIndex(clasesDelDia []models.ClaseDetallada) map[SlotKey]models.ClaseDetallada {
	idx := make(map[SlotKey]models.ClaseDetallada, len(clasesDelDia))
	for _, c := range clasesDelDia {
		idx[SlotKey{CaballoID: c.CaballoID, Hora: c.HoraKey()}] = c
	}
	return idx
}
