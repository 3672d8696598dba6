// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/hrs-ecuestre/hrsadmin/internal/app/backend/hrsapi"
	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/cache"
)

// DBDeps holds backend dependencies for the app.
//
// This frontend has no database of its own; all persistent state lives
// behind the HRS REST API. The API client and the query cache in front
// of it fill the role a database client would in other WAFFLE apps.
type DBDeps struct {
	API   *hrsapi.Client
	Cache *cache.Service
}
