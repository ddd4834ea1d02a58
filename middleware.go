package permkit

import (
	"errors"
	"net/http"
)

// Middleware provides HTTP middleware for permission checking.
type Middleware struct {
	service      *Service
	getSubject   func(*http.Request) Subject
	errorHandler func(http.ResponseWriter, *http.Request, error)
}

// MiddlewareOption configures the Middleware.
type MiddlewareOption func(*Middleware)

// NewMiddleware creates a new Middleware instance.
//
// By default the subject is taken from the request context (see
// WithSubject); authentication middleware upstream is expected to put it
// there.
//
// Example:
//
//	mw := permkit.NewMiddleware(service,
//	    permkit.WithSubjectExtractor(func(r *http.Request) permkit.Subject {
//	        return sessionSubject(r)
//	    }),
//	)
func NewMiddleware(service *Service, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		service:      service,
		getSubject:   defaultGetSubject,
		errorHandler: defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithSubjectExtractor sets a custom function to extract the subject from
// a request.
func WithSubjectExtractor(fn func(*http.Request) Subject) MiddlewareOption {
	return func(m *Middleware) {
		m.getSubject = fn
	}
}

// WithErrorHandler sets a custom error handler for middleware.
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) MiddlewareOption {
	return func(m *Middleware) {
		m.errorHandler = fn
	}
}

func defaultGetSubject(r *http.Request) Subject {
	return GetSubject(r.Context())
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if IsPermissionDenied(err) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if errors.Is(err, ErrNoSubject) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// RequirePermission returns middleware that rejects requests whose subject
// does not hold the permission.
//
// Example:
//
//	router.Handle("/orders", mw.RequirePermission(OrderRead)(ordersHandler))
func (m *Middleware) RequirePermission(permission PermissionID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := m.getSubject(r)
			if subject == nil {
				m.errorHandler(w, r, ErrNoSubject)
				return
			}

			if err := m.service.HasPermission(subject, permission); err != nil {
				m.errorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyPermission returns middleware that admits requests whose
// subject holds at least one of the permissions.
func (m *Middleware) RequireAnyPermission(permissions ...PermissionID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := m.getSubject(r)
			if subject == nil {
				m.errorHandler(w, r, ErrNoSubject)
				return
			}

			var lastErr error
			for _, permission := range permissions {
				err := m.service.HasPermission(subject, permission)
				if err == nil {
					next.ServeHTTP(w, r)
					return
				}
				lastErr = err
			}
			if lastErr == nil {
				lastErr = NewError(ErrPermissionDenied, "no permissions required").WithSubject(subject.Name())
			}
			m.errorHandler(w, r, lastErr)
		})
	}
}

// RequireRole returns middleware that rejects requests whose subject does
// not carry the role name. The role does not have to exist in the registry.
func (m *Middleware) RequireRole(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := m.getSubject(r)
			if subject == nil {
				m.errorHandler(w, r, ErrNoSubject)
				return
			}

			if !NewChecker(subject, m.service).HasRole(name) {
				m.errorHandler(w, r, NewError(ErrPermissionDenied, "missing role "+name).WithSubject(subject.Name()).WithRole(name))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
