package permkit

// RoleFilter provides options for filtering role definition queries.
type RoleFilter struct {
	// Filter by role name prefix
	NamePrefix string

	// Pagination
	Limit  int
	Offset int
}

// NewRoleFilter creates a new RoleFilter with default values.
func NewRoleFilter() RoleFilter {
	return RoleFilter{
		Limit: 100,
	}
}

// WithNamePrefix sets the name prefix filter.
func (f RoleFilter) WithNamePrefix(prefix string) RoleFilter {
	f.NamePrefix = prefix
	return f
}

// WithLimit sets the limit for results.
func (f RoleFilter) WithLimit(limit int) RoleFilter {
	f.Limit = limit
	return f
}

// WithOffset sets the offset for pagination.
func (f RoleFilter) WithOffset(offset int) RoleFilter {
	f.Offset = offset
	return f
}

// WithPagination sets both limit and offset.
func (f RoleFilter) WithPagination(limit, offset int) RoleFilter {
	f.Limit = limit
	f.Offset = offset
	return f
}
