package permkit

import "sync/atomic"

// Service holds the currently installed Registry and answers permission
// checks against it.
//
// The live registry sits behind an atomic pointer: HasPermission takes a
// local reference to the current snapshot before using it, so checks are
// lock-free, safe from any number of goroutines, and unaffected by a
// concurrent Update. See Updater for replacing the registry at runtime.
//
// Example:
//
//	registry, _ := permkit.BuildRegistry([]permkit.Role{
//	    {Name: "OrderManager", Permissions: []string{"Orders::Order::*"}},
//	})
//	service := permkit.NewService(registry)
//
//	user := permkit.NewSubject("alice", "OrderManager")
//	err := service.HasPermission(user, permkit.NewPermissionID("Orders", "Order", "Update"))
type Service struct {
	registry atomic.Pointer[Registry]
}

// NewService creates a Service with the given registry installed as the
// initial generation. A nil registry installs an empty one.
func NewService(registry *Registry) *Service {
	if registry == nil {
		registry = emptyRegistry()
	}
	s := &Service{}
	s.registry.Store(registry)
	return s
}

// Registry returns the currently installed registry snapshot. The snapshot
// is immutable; holding it across an Update simply keeps the old generation
// alive for the holder.
func (s *Service) Registry() *Registry {
	return s.registry.Load()
}

// HasPermission checks whether the subject holds the permission through any
// of its roles.
//
// The check reads one consistent registry snapshot. Role names unknown to
// the registry are silently skipped; a subject with an empty role list is
// checked against the registry's fallback roles. Returns nil when some role
// grants the permission, otherwise an error wrapping ErrPermissionDenied
// that carries the subject name and the permission.
//
// Denial is a normal control-flow result: the service performs no logging
// and keeps no state about failed checks.
func (s *Service) HasPermission(subject Subject, permission PermissionID) error {
	registry := s.registry.Load()

	roles := subject.Roles()
	if len(roles) == 0 {
		roles = registry.fallback
	}

	for _, name := range roles {
		compiled := registry.roles[name]
		if compiled == nil {
			continue
		}
		if compiled.Matches(permission) {
			return nil
		}
	}

	return NewError(ErrPermissionDenied, permission.String()).
		WithSubject(subject.Name()).
		WithPermission(permission.String())
}

// Allowed reports whether the subject holds the permission. Convenience
// wrapper around HasPermission for callers that don't need the error.
func (s *Service) Allowed(subject Subject, permission PermissionID) bool {
	return s.HasPermission(subject, permission) == nil
}

// Checker returns a Checker bound to the subject for repeated checks.
func (s *Service) Checker(subject Subject) *Checker {
	return NewChecker(subject, s)
}
