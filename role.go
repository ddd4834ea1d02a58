package permkit

// Role is the raw, external definition of a role: a unique name and an
// ordered list of permission pattern strings following the grammar of
// ParsePattern. This is the shape role definitions take on the wire and
// on disk; see RolesFromJSON and RolesFromYAML for decoding.
type Role struct {
	Name        string   `json:"name" yaml:"name"`
	Permissions []string `json:"permissions" yaml:"permissions"`
}

// Clone returns a deep copy of the role, independent of the original.
func (r Role) Clone() Role {
	permissions := make([]string, len(r.Permissions))
	copy(permissions, r.Permissions)
	return Role{Name: r.Name, Permissions: permissions}
}

// CompiledRole is the immutable matcher built from a Role's pattern strings.
// It shares no state with the Role it was compiled from and is safe for
// concurrent use. A CompiledRole placed into a published Registry is never
// mutated; updates replace whole registries instead.
type CompiledRole struct {
	name     string
	global   bool      // role contains the bare "*" pattern
	patterns []Pattern // deduplicated three-segment patterns, insertion order
	raw      []string  // deduplicated raw pattern strings, insertion order
}

// CompileRole parses and compiles all of a role's pattern strings into a
// single matcher. Compilation fails fast on the first malformed pattern;
// the returned error names both the role and the offending pattern string.
//
// Structurally identical patterns (same segment kinds and values, ignoring
// alternation member order) are deduplicated. A role with zero patterns
// compiles successfully and denies everything.
func CompileRole(role Role) (*CompiledRole, error) {
	compiled := &CompiledRole{name: role.Name}

	seen := make(map[string]struct{}, len(role.Permissions))
	for _, rawPattern := range role.Permissions {
		pattern, err := ParsePattern(rawPattern)
		if err != nil {
			if e, ok := err.(*Error); ok {
				return nil, e.WithRole(role.Name)
			}
			return nil, err
		}

		key := pattern.canonical()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		compiled.raw = append(compiled.raw, rawPattern)
		if pattern.Global() {
			compiled.global = true
			continue
		}
		compiled.patterns = append(compiled.patterns, pattern)
	}

	return compiled, nil
}

// Name returns the role name.
func (c *CompiledRole) Name() string {
	return c.name
}

// Matches reports whether any of the role's patterns matches the permission.
// The global wildcard short-circuits; otherwise patterns are evaluated as a
// set (logical OR across patterns, logical AND across a pattern's segments).
func (c *CompiledRole) Matches(permission PermissionID) bool {
	if c.global {
		return true
	}
	for _, pattern := range c.patterns {
		if pattern.Matches(permission) {
			return true
		}
	}
	return false
}

// Patterns returns the deduplicated raw pattern strings in insertion order.
func (c *CompiledRole) Patterns() []string {
	patterns := make([]string, len(c.raw))
	copy(patterns, c.raw)
	return patterns
}

// Definition reconstructs the raw Role this matcher was compiled from,
// modulo deduplication. The result is fully independent of the matcher.
func (c *CompiledRole) Definition() Role {
	return Role{Name: c.name, Permissions: c.Patterns()}
}
