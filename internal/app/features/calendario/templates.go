// internal/app/features/calendario/templates.go
package calendario

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "calendario",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
