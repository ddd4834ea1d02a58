package permkit

import "strings"

// PermissionID identifies a single permission as a (domain, object, action)
// triple, rendered as "Domain::Object::Action".
//
// PermissionID values are typically produced once at startup from a Catalog
// and passed around as opaque constants:
//
//	var OrderRead = permkit.NewPermissionID("Orders", "Order", "Read")
//
// The zero value is not a valid permission.
type PermissionID struct {
	Domain string
	Object string
	Action string
}

// NewPermissionID creates a PermissionID from its three parts.
func NewPermissionID(domain, object, action string) PermissionID {
	return PermissionID{Domain: domain, Object: object, Action: action}
}

// String returns the full permission name, e.g. "Orders::Order::Read".
func (p PermissionID) String() string {
	return p.Domain + segmentSeparator + p.Object + segmentSeparator + p.Action
}

// IsZero reports whether all three parts are empty.
func (p PermissionID) IsZero() bool {
	return p.Domain == "" && p.Object == "" && p.Action == ""
}

// ParsePermissionID parses the wire form "Domain::Object::Action" into a
// PermissionID. Unlike patterns, identifiers allow no wildcards or
// alternation sets; every part must be a plain non-empty name.
func ParsePermissionID(s string) (PermissionID, error) {
	parts := strings.Split(s, segmentSeparator)
	if len(parts) != 3 {
		return PermissionID{}, NewError(ErrInvalidPermission, "identifier must have exactly three parts").WithPermission(s)
	}
	for _, part := range parts {
		if part == "" {
			return PermissionID{}, NewError(ErrInvalidPermission, "identifier parts cannot be empty").WithPermission(s)
		}
		if strings.ContainsAny(part, "*{},") {
			return PermissionID{}, NewError(ErrInvalidPermission, "identifier parts cannot contain pattern syntax").WithPermission(s)
		}
	}
	return PermissionID{Domain: parts[0], Object: parts[1], Action: parts[2]}, nil
}

// Subject is the capability a caller must expose to be checked for
// permissions. Any type with a name and a role-name list qualifies; the
// role list may contain duplicates and names unknown to the registry
// (both are ignored by lookup).
type Subject interface {
	Name() string
	Roles() []string
}

type staticSubject struct {
	name  string
	roles []string
}

func (s staticSubject) Name() string { return s.name }

func (s staticSubject) Roles() []string { return s.roles }

// NewSubject creates a fixed Subject from a name and role names.
// Useful for tests and for callers whose role data is already in hand.
func NewSubject(name string, roles ...string) Subject {
	copied := make([]string, len(roles))
	copy(copied, roles)
	return staticSubject{name: name, roles: copied}
}
