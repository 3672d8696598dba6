// Package viewdata holds the view-model base embedded by every page.
package viewdata

import (
	"net/http"

	nav "github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/auth"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/flash"
)

// BaseVM contains the fields every page template expects.
// Embed it in feature view models:
//
//	type pageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	Title      string
	IsLoggedIn bool
	UserName   string

	BackURL     string
	CurrentPath string

	Notices []flash.Notice
}

// NewBaseVM assembles the base view model for a page render. Taking w is
// deliberate: rendering a page consumes the queued flash notices.
func NewBaseVM(w http.ResponseWriter, r *http.Request, title, defaultBack string) BaseVM {
	vm := BaseVM{
		Title:       title,
		BackURL:     nav.ResolveBackURL(r, defaultBack),
		CurrentPath: nav.CurrentPath(r),
		Notices:     flash.Take(w, r),
	}
	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.UserName = u.Name
	}
	return vm
}
