package timegrid

// Operating window for the day grid: half-hour slots from 09:00 to 18:30.
var timeSlots = []string{
	"09:00", "09:30",
	"10:00", "10:30",
	"11:00", "11:30",
	"12:00", "12:30",
	"13:00", "13:30",
	"14:00", "14:30",
	"15:00", "15:30",
	"16:00", "16:30",
	"17:00", "17:30",
	"18:00", "18:30",
}

// TimeSlots returns the fixed slot table. Callers get a copy; the table
// itself never changes at runtime.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}
