// internal/app/features/instructores/templates.go
package instructores

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "instructores",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
