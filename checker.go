package permkit

import "sort"

// Checker binds a Subject to a Service for repeated permission checks.
// It is typically created per request and stored in context for use in
// handlers. A Checker holds no snapshot of its own; every call reads the
// service's currently installed registry.
type Checker struct {
	subject Subject
	service *Service
}

// NewChecker creates a new Checker for a subject.
func NewChecker(subject Subject, service *Service) *Checker {
	return &Checker{subject: subject, service: service}
}

// SubjectName returns the name of the subject this checker is for.
func (c *Checker) SubjectName() string {
	return c.subject.Name()
}

// Allowed reports whether the subject holds the permission.
//
// Example:
//
//	if checker.Allowed(OrderUpdate) {
//	    // subject may update orders
//	}
func (c *Checker) Allowed(permission PermissionID) bool {
	return c.service.HasPermission(c.subject, permission) == nil
}

// AllowedAny reports whether the subject holds at least one of the
// permissions.
func (c *Checker) AllowedAny(permissions ...PermissionID) bool {
	for _, permission := range permissions {
		if c.Allowed(permission) {
			return true
		}
	}
	return false
}

// AllowedAll reports whether the subject holds all of the permissions.
func (c *Checker) AllowedAll(permissions ...PermissionID) bool {
	for _, permission := range permissions {
		if !c.Allowed(permission) {
			return false
		}
	}
	return true
}

// HasRole reports whether the subject's role list contains the role name.
// This consults the subject only; the role does not have to exist in the
// registry.
func (c *Checker) HasRole(name string) bool {
	for _, role := range c.subject.Roles() {
		if role == name {
			return true
		}
	}
	return false
}

// Grants returns the union of raw pattern strings granted by the subject's
// roles, deduplicated and sorted. Role names unknown to the registry
// contribute nothing. The union is computed from one registry snapshot.
func (c *Checker) Grants() []string {
	registry := c.service.Registry()

	roles := c.subject.Roles()
	if len(roles) == 0 {
		roles = registry.fallback
	}

	set := make(map[string]struct{})
	for _, name := range roles {
		compiled := registry.roles[name]
		if compiled == nil {
			continue
		}
		for _, pattern := range compiled.Patterns() {
			set[pattern] = struct{}{}
		}
	}

	grants := make([]string, 0, len(set))
	for pattern := range set {
		grants = append(grants, pattern)
	}
	sort.Strings(grants)
	return grants
}
