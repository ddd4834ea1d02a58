package permkit

import (
	"time"

	"github.com/uptrace/bun"
)

// RoleRecord is the persisted form of a role definition. One row per role;
// the pattern strings are stored verbatim and compiled on load.
type RoleRecord struct {
	bun.BaseModel `bun:"table:role_definitions,alias:rd"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name        string    `bun:"name,notnull,unique"`
	Permissions []string  `bun:"permissions,type:text[]"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// ToRole converts the record to a raw role definition.
func (r *RoleRecord) ToRole() Role {
	permissions := make([]string, len(r.Permissions))
	copy(permissions, r.Permissions)
	return Role{Name: r.Name, Permissions: permissions}
}

// NewRoleRecord creates a record from a raw role definition.
func NewRoleRecord(role Role) *RoleRecord {
	permissions := make([]string, len(role.Permissions))
	copy(permissions, role.Permissions)
	return &RoleRecord{Name: role.Name, Permissions: permissions}
}
