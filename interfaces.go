package permkit

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// Database defines the database operations interface for dependency injection
type Database interface {
	dbkit.IDB
}

// RoleSource provides role definitions to registry builds and hot-swaps.
// Store implements it; so does any loader over files, config services or
// other storage.
type RoleSource interface {
	LoadRoles(ctx context.Context) ([]Role, error)
}

// ReloadFrom loads every role definition from the source, compiles a fresh
// registry and installs it into the service as one atomic publish. On any
// load or compile failure the service is left unchanged.
func ReloadFrom(ctx context.Context, source RoleSource, service *Service) error {
	roles, err := source.LoadRoles(ctx)
	if err != nil {
		return err
	}
	return service.UpdaterClean().LoadRoles(roles).Update(service)
}
