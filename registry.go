package permkit

import "fmt"

// defaultFallbackRoles is used when a registry is built without an explicit
// fallback list. Subjects with no roles of their own are checked against it.
var defaultFallbackRoles = []string{"Default"}

// Registry maps role names to compiled matchers. A Registry is built as one
// unit, is immutable after publication, and is replaced wholesale when roles
// change (see Updater). Role names are unique and case-sensitive within one
// generation.
type Registry struct {
	roles    map[string]*CompiledRole
	names    []string // role names in insertion order
	fallback []string
}

// GetRole returns the compiled role for a name, or nil if the registry has
// no role with that name.
func (r *Registry) GetRole(name string) *CompiledRole {
	return r.roles[name]
}

// GetRoles returns all role names in the order the roles were added.
func (r *Registry) GetRoles() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Len returns the number of roles in the registry.
func (r *Registry) Len() int {
	return len(r.roles)
}

// FallbackRoles returns the role names applied to subjects with no roles.
func (r *Registry) FallbackRoles() []string {
	fallback := make([]string, len(r.fallback))
	copy(fallback, r.fallback)
	return fallback
}

// Definitions reconstructs the raw role definitions of the registry, in
// insertion order. The result is fully independent of the registry and of
// any compiled state; mutating it cannot affect published registries.
func (r *Registry) Definitions() []Role {
	definitions := make([]Role, 0, len(r.names))
	for _, name := range r.names {
		definitions = append(definitions, r.roles[name].Definition())
	}
	return definitions
}

func emptyRegistry() *Registry {
	return &Registry{
		roles:    make(map[string]*CompiledRole),
		fallback: defaultFallbackRoles,
	}
}

// RegistryBuilder accumulates role definitions and compiles them into a
// Registry in one pass.
//
// Example:
//
//	registry, err := permkit.NewRegistryBuilder().
//	    AddRole(permkit.Role{Name: "OrderManager", Permissions: []string{"Orders::Order::*"}}).
//	    AddRole(permkit.Role{Name: "Admin", Permissions: []string{"*"}}).
//	    Build()
type RegistryBuilder struct {
	roles    []Role
	fallback []string
}

// NewRegistryBuilder creates an empty RegistryBuilder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{}
}

// AddRole adds one role definition. Duplicate names are not resolved here;
// Build reports them as ErrDuplicateRole.
func (b *RegistryBuilder) AddRole(role Role) *RegistryBuilder {
	b.roles = append(b.roles, role)
	return b
}

// LoadRoles adds multiple role definitions.
func (b *RegistryBuilder) LoadRoles(roles []Role) *RegistryBuilder {
	b.roles = append(b.roles, roles...)
	return b
}

// SetFallbackRoles sets the role names checked for subjects that have no
// roles of their own. Defaults to ["Default"] when never called.
func (b *RegistryBuilder) SetFallbackRoles(names ...string) *RegistryBuilder {
	b.fallback = make([]string, len(names))
	copy(b.fallback, names)
	return b
}

// Build validates and compiles the accumulated roles into a Registry.
// It fails with ErrDuplicateRole if two roles share a name, and with the
// underlying pattern error if any role fails compilation. Failure is
// all-or-nothing; no partially built registry is ever returned.
func (b *RegistryBuilder) Build() (*Registry, error) {
	registry := &Registry{
		roles: make(map[string]*CompiledRole, len(b.roles)),
		names: make([]string, 0, len(b.roles)),
	}

	for _, role := range b.roles {
		if role.Name == "" {
			return nil, NewError(ErrInvalidRole, "role name cannot be empty")
		}
		if _, exists := registry.roles[role.Name]; exists {
			return nil, NewError(ErrDuplicateRole, fmt.Sprintf("role %q defined more than once", role.Name)).WithRole(role.Name)
		}
		compiled, err := CompileRole(role)
		if err != nil {
			return nil, err
		}
		registry.roles[role.Name] = compiled
		registry.names = append(registry.names, role.Name)
	}

	if b.fallback != nil {
		registry.fallback = b.fallback
	} else {
		registry.fallback = defaultFallbackRoles
	}

	return registry, nil
}

// BuildRegistry compiles a slice of role definitions into a Registry.
// Shorthand for NewRegistryBuilder().LoadRoles(roles).Build().
func BuildRegistry(roles []Role) (*Registry, error) {
	return NewRegistryBuilder().LoadRoles(roles).Build()
}
