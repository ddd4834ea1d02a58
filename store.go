package permkit

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// Store persists role definitions in PostgreSQL through dbkit.
// It is an optional layer on top of the in-memory core: applications that
// keep role definitions elsewhere can feed the builder/updater directly.
//
// Error Handling:
// All database operations use dbkit's chainable error wrapping to provide
// detailed context about failed operations. Use dbkit.IsNotFound and
// dbkit.IsDuplicate to classify failures.
//
// Example:
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	store := permkit.NewStore(db)
//	_, _ = db.Migrate(ctx, store.Migrations())
//
//	_ = store.SaveRole(ctx, permkit.Role{Name: "Admin", Permissions: []string{"*"}})
//	_ = store.Reload(ctx, service) // load all roles and hot-swap them in
type Store struct {
	db dbkit.IDB
}

// NewStore creates a role definition store on an existing database handle.
func NewStore(db dbkit.IDB) *Store {
	return &Store{db: db}
}

// Migrations returns all database migrations required for the store.
// Use db.Migrate(ctx, store.Migrations()) to run them.
func (st *Store) Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "permkit-001",
			Description: "Create role_definitions table",
			SQL: `
                CREATE TABLE IF NOT EXISTS role_definitions (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    name TEXT NOT NULL UNIQUE,
                    permissions TEXT[] NOT NULL DEFAULT '{}',
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
	}
}

// SaveRole inserts or updates one role definition. The definition is
// compiled first so malformed patterns never reach the database.
func (st *Store) SaveRole(ctx context.Context, role Role) error {
	if role.Name == "" {
		return NewError(ErrInvalidRole, "role name cannot be empty")
	}
	if _, err := CompileRole(role); err != nil {
		return err
	}

	record := NewRoleRecord(role)
	result, err := st.db.NewInsert().
		Model(record).
		On("CONFLICT (name) DO UPDATE").
		Set("permissions = EXCLUDED.permissions").
		Set("updated_at = current_timestamp").
		Exec(ctx)

	return dbkit.WithErr(result, err, "SaveRole").Err()
}

// DeleteRole removes one role definition by name. Deleting a name that is
// not stored is not an error.
func (st *Store) DeleteRole(ctx context.Context, name string) error {
	result, err := st.db.NewDelete().
		Model((*RoleRecord)(nil)).
		Where("name = ?", name).
		Exec(ctx)

	return dbkit.WithErr(result, err, "DeleteRole").Err()
}

// GetRole retrieves one role definition by name.
// Returns dbkit's not-found classification when the role is not stored.
func (st *Store) GetRole(ctx context.Context, name string) (Role, error) {
	var record RoleRecord
	err := dbkit.WithErr1(st.db.NewSelect().Model(&record).Where("name = ?", name).Limit(1).Scan(ctx), "GetRole").Err()
	if err != nil {
		return Role{}, err
	}
	return record.ToRole(), nil
}

// LoadRoles retrieves all stored role definitions ordered by name.
func (st *Store) LoadRoles(ctx context.Context) ([]Role, error) {
	var records []RoleRecord
	err := dbkit.WithErr1(st.db.NewSelect().Model(&records).Order("name ASC").Scan(ctx), "LoadRoles").Err()
	if err != nil {
		return nil, err
	}

	roles := make([]Role, 0, len(records))
	for i := range records {
		roles = append(roles, records[i].ToRole())
	}
	return roles, nil
}

// ListRoles retrieves stored role definitions with optional filters.
func (st *Store) ListRoles(ctx context.Context, filter RoleFilter) ([]Role, error) {
	var records []RoleRecord
	q := st.db.NewSelect().Model(&records)
	if filter.NamePrefix != "" {
		q = q.Where("name LIKE ?", filter.NamePrefix+"%")
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 100 // Default limit
	}
	q = q.Limit(limit)

	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	q = q.Order("name ASC")
	err := dbkit.WithErr1(q.Scan(ctx), "ListRoles").Err()
	if err != nil {
		return nil, err
	}

	roles := make([]Role, 0, len(records))
	for i := range records {
		roles = append(roles, records[i].ToRole())
	}
	return roles, nil
}

// CountRoles returns the number of stored role definitions.
func (st *Store) CountRoles(ctx context.Context) (int, error) {
	count, err := st.db.NewSelect().Model((*RoleRecord)(nil)).Count(ctx)
	if err != nil {
		return 0, dbkit.WithErr1(err, "CountRoles").Err()
	}
	return count, nil
}

// Reload loads every stored role definition, compiles it into a fresh
// registry and installs it into the service as one atomic publish.
// On any load or compile failure the service is left unchanged.
func (st *Store) Reload(ctx context.Context, service *Service) error {
	return ReloadFrom(ctx, st, service)
}
