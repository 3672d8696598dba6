// internal/app/features/caballos/templates.go
package caballos

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "caballos",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
