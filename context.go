package permkit

import "context"

// Context keys for PermKit values.
type contextKey string

const (
	contextKeySubject contextKey = "permkit:subject"
)

// WithSubject adds a subject to the context. This is the subject whose
// permissions are checked by middleware and handlers downstream.
func WithSubject(ctx context.Context, subject Subject) context.Context {
	return context.WithValue(ctx, contextKeySubject, subject)
}

// GetSubject retrieves the subject from context.
// Returns nil if not set.
func GetSubject(ctx context.Context) Subject {
	if v := ctx.Value(contextKeySubject); v != nil {
		if s, ok := v.(Subject); ok {
			return s
		}
	}
	return nil
}

// MustGetSubject retrieves the subject from context.
// Panics if not set.
func MustGetSubject(ctx context.Context) Subject {
	subject := GetSubject(ctx)
	if subject == nil {
		panic("permkit: subject not in context")
	}
	return subject
}
