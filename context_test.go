package permkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestContextSubject tests storing and retrieving the subject
func TestContextSubject(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, GetSubject(ctx))

	subject := NewSubject("alice", "OrderManager")
	ctx = WithSubject(ctx, subject)

	got := GetSubject(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Name())
	assert.Equal(t, []string{"OrderManager"}, got.Roles())
}

// TestContextMustGetSubject tests the panicking accessor
func TestContextMustGetSubject(t *testing.T) {
	assert.Panics(t, func() {
		MustGetSubject(context.Background())
	})

	ctx := WithSubject(context.Background(), NewSubject("alice"))
	assert.NotPanics(t, func() {
		assert.Equal(t, "alice", MustGetSubject(ctx).Name())
	})
}
