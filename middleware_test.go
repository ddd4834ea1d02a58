package permkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func middlewareFixture(t *testing.T) (*Service, http.Handler) {
	t.Helper()
	service := NewService(testRegistry(t))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return service, next
}

func requestWithSubject(subject Subject) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	if subject != nil {
		req = req.WithContext(WithSubject(req.Context(), subject))
	}
	return req
}

// TestMiddlewareRequirePermissionAllowed tests the pass-through path
func TestMiddlewareRequirePermissionAllowed(t *testing.T) {
	service, next := middlewareFixture(t)
	mw := NewMiddleware(service)

	handler := mw.RequirePermission(NewPermissionID("Orders", "Order", "Read"))(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSubject(NewSubject("alice", "OrderManager")))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

// TestMiddlewareRequirePermissionDenied tests the 403 path
func TestMiddlewareRequirePermissionDenied(t *testing.T) {
	service, next := middlewareFixture(t)
	mw := NewMiddleware(service)

	handler := mw.RequirePermission(NewPermissionID("Orders", "Invoice", "Send"))(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSubject(NewSubject("alice", "OrderManager")))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// TestMiddlewareMissingSubject tests the 401 path
func TestMiddlewareMissingSubject(t *testing.T) {
	service, next := middlewareFixture(t)
	mw := NewMiddleware(service)

	handler := mw.RequirePermission(NewPermissionID("Orders", "Order", "Read"))(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSubject(nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestMiddlewareRequireAnyPermission tests the OR guard
func TestMiddlewareRequireAnyPermission(t *testing.T) {
	service, next := middlewareFixture(t)
	mw := NewMiddleware(service)

	handler := mw.RequireAnyPermission(
		NewPermissionID("Orders", "Invoice", "Send"), // denied
		NewPermissionID("Orders", "Invoice", "Read"), // granted
	)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSubject(NewSubject("alice", "OrderManager")))
	assert.Equal(t, http.StatusOK, rec.Code)

	handler = mw.RequireAnyPermission(NewPermissionID("Orders", "Invoice", "Send"))(next)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSubject(NewSubject("alice", "OrderManager")))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// TestMiddlewareRequireRole tests the role guard
func TestMiddlewareRequireRole(t *testing.T) {
	service, next := middlewareFixture(t)
	mw := NewMiddleware(service)

	handler := mw.RequireRole("OrderManager")(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSubject(NewSubject("alice", "OrderManager")))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSubject(NewSubject("bob", "Viewer")))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// TestMiddlewareCustomSubjectExtractor tests the extractor option
func TestMiddlewareCustomSubjectExtractor(t *testing.T) {
	service, next := middlewareFixture(t)
	mw := NewMiddleware(service,
		WithSubjectExtractor(func(r *http.Request) Subject {
			name := r.Header.Get("X-User")
			if name == "" {
				return nil
			}
			return NewSubject(name, "Admin")
		}),
	)

	handler := mw.RequirePermission(NewPermissionID("Orders", "Invoice", "Send"))(next)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("X-User", "root")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestMiddlewareCustomErrorHandler tests the error handler option
func TestMiddlewareCustomErrorHandler(t *testing.T) {
	service, next := middlewareFixture(t)

	var captured error
	mw := NewMiddleware(service,
		WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			captured = err
			w.WriteHeader(http.StatusTeapot)
		}),
	)

	handler := mw.RequirePermission(NewPermissionID("Orders", "Invoice", "Send"))(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithSubject(NewSubject("alice", "OrderManager")))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	require.Error(t, captured)
	assert.True(t, IsPermissionDenied(captured))
}
