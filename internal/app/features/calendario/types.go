package calendario

import (
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/viewdata"
	"github.com/hrs-ecuestre/hrsadmin/internal/domain/models"
)

// DialogState is what the class dialog is doing. Exactly one of the three
// shapes is ever in play, so illegal mixes of prefill and edit targets are
// unrepresentable.
type DialogState interface {
	isDialogState()
}

// DialogClosed is the no-dialog state.
type DialogClosed struct{}

// DialogCreate opens the dialog in creation mode. CaballoID and Hora are
// zero/"" except when the click came from an empty day-view cell, which
// prefills both.
type DialogCreate struct {
	Dia       string
	CaballoID int
	Hora      string
}

// DialogEdit opens the dialog bound to an existing class's current values.
type DialogEdit struct {
	Clase models.ClaseDetallada
}

func (DialogClosed) isDialogState() {}
func (DialogCreate) isDialogState() {}
func (DialogEdit) isDialogState()   {}

/* ---------- shared view-model pieces ---------- */

// filterOption is one entry in the student/instructor filter selects.
type filterOption struct {
	ID       int
	Label    string
	Selected bool
}

// toolbarVM is everything the toolbar template needs.
type toolbarVM struct {
	Heading string
	controlURLs

	Vista string
	Fecha string

	AlumnoOptions     []filterOption
	InstructorOptions []filterOption
	FilterActive      bool
	ClearFilterURL    string

	NewClaseURL      string
	CopiarSemanaURL  string
	EliminarRangoURL string
	ExportarURL      string // day view only
	CancelarDiaURL   string // day view only
	CancelableCount  int    // day view only
}

// popoverVM is the detail popover on an occupied cell. One popover is open
// per page at most, keyed by the cell key in the URL.
type popoverVM struct {
	Clase          models.ClaseDetallada
	AlumnoNombre   string
	InstructorName string
	CaballoNombre  string
	Observaciones  string

	EditURL   string
	DeleteURL string
	EstadoURL string
	CloseURL  string
	Estados   []models.Estado
	ReturnURL string
}

// claseBadge is one class chip in a month/week cell.
type claseBadge struct {
	ID          int
	Hora        string
	Estado      models.Estado
	Label       string
	PopoverURL  string
	PopoverOpen bool
	Popover     *popoverVM
}

/* ---------- month ---------- */

type monthCell struct {
	Dia          string
	DiaNum       int
	IsToday      bool
	IsOtherMonth bool
	CreateURL    string
	Badges       []claseBadge
	MoreCount    int
	MoreURL      string
}

type monthData struct {
	viewdata.BaseVM
	Toolbar    toolbarVM
	DiasSemana []string
	Weeks      [][]monthCell
}

/* ---------- week ---------- */

type weekCol struct {
	Dia       string
	Heading   string
	IsToday   bool
	CreateURL string
	Badges    []claseBadge
	MoreCount int
	MoreURL   string
}

type weekData struct {
	viewdata.BaseVM
	Toolbar toolbarVM
	Days    []weekCol
}

/* ---------- day ---------- */

type dayCell struct {
	Empty bool

	// empty cell
	CreateURL string

	// occupied cell
	ClaseID      int
	Estado       models.Estado
	Glyph        string
	AlumnoNombre string
	PopoverURL   string
	PopoverOpen  bool
	Popover      *popoverVM
}

type dayRow struct {
	Hora  string
	Cells []dayCell
}

type dayData struct {
	viewdata.BaseVM
	Toolbar  toolbarVM
	Caballos []string
	Rows     []dayRow
}

/* ---------- dialog ---------- */

// dialogData renders the create/edit form. Values echoes submitted or
// current field values; ErrorMsg keeps the dialog open with the backend's
// message after a failed submit.
type dialogData struct {
	viewdata.BaseVM

	EditID    string // "" for create, class id for edit
	ActionURL string
	CancelURL string
	ErrorMsg  string

	Dia string

	Alumnos      []filterOption
	Instructores []filterOption
	Caballos     []filterOption

	Especialidades []models.Especialidad
	Estados        []models.Estado

	Values dialogValues
}

// dialogValues are the form fields echoed back into the dialog.
type dialogValues struct {
	AlumnoID      int
	InstructorID  int
	CaballoID     int
	Especialidad  models.Especialidad
	Hora          string
	Estado        models.Estado
	Observaciones string
}

/* ---------- bulk dialogs ---------- */

// bulkDialogData serves the copy-week / delete-range / cancel-day forms.
type bulkDialogData struct {
	viewdata.BaseVM

	ActionURL string
	CancelURL string
	ReturnURL string

	// copy/delete range
	InicioOrigen  string
	InicioDestino string

	// cancel-day. The filter ids are echoed into the form so the submit
	// cancels exactly what the filtered day view showed.
	Dia              string
	FiltroAlumno     int
	FiltroInstructor int
	CancelableCount  int
	Motivos          []string
}
