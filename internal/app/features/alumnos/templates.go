// internal/app/features/alumnos/templates.go
package alumnos

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "alumnos",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
