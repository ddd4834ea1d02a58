package permkit

import (
	"fmt"
	"sort"
)

// Updater stages a role set off to the side and installs it into a running
// Service as a single atomic publish. In-flight checks that already loaded
// the previous snapshot complete against it; every check that starts after
// Update returns observes exclusively the new registry. No caller is ever
// blocked, and no caller ever observes a mix of old and new roles.
//
// An Updater is not safe for concurrent use by multiple goroutines. Running
// several Updaters against the same Service is safe but unserialized: each
// publish is internally consistent and the last one to call Update wins.
//
// Example:
//
//	updater := service.UpdaterCopy()
//	updater.SetRole(permkit.Role{
//	    Name:        "OrderManager",
//	    Permissions: []string{"Orders::Order::*", "Orders::Invoice::{Read,Generate,Send}"},
//	})
//	if err := updater.Update(service); err != nil {
//	    // staged set was invalid; the live registry is unchanged
//	}
type Updater struct {
	names      []string // staged role names in insertion order
	staged     map[string]Role
	duplicates map[string]struct{} // AddRole collisions, reported at Update
	fallback   []string            // nil means keep the live registry's fallback roles
}

// UpdaterClean creates an Updater with empty staging, unconnected to the
// service's current roles.
func (s *Service) UpdaterClean() *Updater {
	return &Updater{staged: make(map[string]Role), duplicates: make(map[string]struct{})}
}

// UpdaterCopy creates an Updater pre-seeded with an independent copy of
// every currently installed role's raw definition. Handy when only a few
// roles should be added, changed or removed.
func (s *Service) UpdaterCopy() *Updater {
	updater := &Updater{staged: make(map[string]Role), duplicates: make(map[string]struct{})}
	for _, definition := range s.registry.Load().Definitions() {
		updater.names = append(updater.names, definition.Name)
		updater.staged[definition.Name] = definition
	}
	return updater
}

// AddRole stages a new role for the next generation. Adding a name that is
// already staged is an error, reported by Update before anything is
// installed; use SetRole to modify an existing role.
func (u *Updater) AddRole(role Role) *Updater {
	if _, exists := u.staged[role.Name]; exists {
		u.duplicates[role.Name] = struct{}{}
		return u
	}
	u.names = append(u.names, role.Name)
	u.staged[role.Name] = role.Clone()
	return u
}

// SetRole stages a role, replacing any staged role with the same name.
// This is the path for modifying an existing role's grants.
func (u *Updater) SetRole(role Role) *Updater {
	if _, exists := u.staged[role.Name]; !exists {
		u.names = append(u.names, role.Name)
	}
	u.staged[role.Name] = role.Clone()
	return u
}

// RemoveRole drops a staged role from the next generation, along with any
// AddRole collision recorded for that name. Removing a name that is not
// staged is a no-op.
func (u *Updater) RemoveRole(name string) *Updater {
	if _, exists := u.staged[name]; !exists {
		return u
	}
	delete(u.staged, name)
	for i, staged := range u.names {
		if staged == name {
			u.names = append(u.names[:i], u.names[i+1:]...)
			break
		}
	}
	delete(u.duplicates, name)
	return u
}

// LoadRoles stages multiple roles with SetRole semantics.
func (u *Updater) LoadRoles(roles []Role) *Updater {
	for _, role := range roles {
		u.SetRole(role)
	}
	return u
}

// SetFallbackRoles sets new fallback roles for the next generation. When
// never called, the live registry's fallback roles carry forward.
func (u *Updater) SetFallbackRoles(names ...string) *Updater {
	u.fallback = make([]string, len(names))
	copy(u.fallback, names)
	return u
}

// Update validates and compiles the full staged role set into one new
// Registry and installs it into the service with a single atomic store.
// On any validation or compilation failure the service's installed
// registry is left unchanged.
func (u *Updater) Update(s *Service) error {
	if len(u.duplicates) > 0 {
		collisions := make([]string, 0, len(u.duplicates))
		for name := range u.duplicates {
			collisions = append(collisions, name)
		}
		sort.Strings(collisions)
		return NewError(ErrDuplicateRole, fmt.Sprintf("role %q staged more than once", collisions[0])).WithRole(collisions[0])
	}

	builder := NewRegistryBuilder()
	for _, name := range u.names {
		builder.AddRole(u.staged[name])
	}
	if u.fallback != nil {
		builder.SetFallbackRoles(u.fallback...)
	} else {
		builder.SetFallbackRoles(s.registry.Load().fallback...)
	}

	registry, err := builder.Build()
	if err != nil {
		return err
	}

	s.registry.Store(registry)
	return nil
}
