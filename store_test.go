package permkit

import (
	"context"
	"testing"

	"github.com/fernandezvara/dbkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStoreSaveAndLoadRoles tests the persistence round trip
func TestStoreSaveAndLoadRoles(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	store, db, err := SetupTestStore(ctx)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, store.SaveRole(ctx, Role{
		Name:        "OrderManager",
		Permissions: []string{"Orders::Order::*", "Orders::Invoice::{Read,Generate}"},
	}))
	require.NoError(t, store.SaveRole(ctx, Role{Name: "Admin", Permissions: []string{"*"}}))

	roles, err := store.LoadRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	// LoadRoles orders by name.
	assert.Equal(t, "Admin", roles[0].Name)
	assert.Equal(t, "OrderManager", roles[1].Name)
	assert.Equal(t, []string{"Orders::Order::*", "Orders::Invoice::{Read,Generate}"}, roles[1].Permissions)

	count, err := store.CountRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

// TestStoreSaveRoleUpsert tests overwriting an existing definition
func TestStoreSaveRoleUpsert(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	store, db, err := SetupTestStore(ctx)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, store.SaveRole(ctx, Role{Name: "Viewer", Permissions: []string{"Orders::Order::Read"}}))
	require.NoError(t, store.SaveRole(ctx, Role{Name: "Viewer", Permissions: []string{"Orders::Order::{Read,List}"}}))

	role, err := store.GetRole(ctx, "Viewer")
	require.NoError(t, err)
	assert.Equal(t, []string{"Orders::Order::{Read,List}"}, role.Permissions)

	count, err := store.CountRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestStoreSaveRoleValidates tests that malformed definitions never reach
// the database.
func TestStoreSaveRoleValidates(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	store, db, err := SetupTestStore(ctx)
	require.NoError(t, err)
	defer db.Close()

	err = store.SaveRole(ctx, Role{Name: "Broken", Permissions: []string{"Orders::Order"}})
	require.Error(t, err)
	assert.True(t, IsInvalidPattern(err))

	err = store.SaveRole(ctx, Role{Permissions: []string{"*"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRole)

	count, err := store.CountRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

// TestStoreDeleteRole tests removal
func TestStoreDeleteRole(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	store, db, err := SetupTestStore(ctx)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, store.SaveRole(ctx, Role{Name: "Temp", Permissions: []string{"*"}}))
	require.NoError(t, store.DeleteRole(ctx, "Temp"))
	require.NoError(t, store.DeleteRole(ctx, "Temp")) // deleting again is not an error

	_, err = store.GetRole(ctx, "Temp")
	require.Error(t, err)
	assert.True(t, dbkit.IsNotFound(err))
}

// TestStoreListRoles tests filtered listing
func TestStoreListRoles(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	store, db, err := SetupTestStore(ctx)
	require.NoError(t, err)
	defer db.Close()

	for _, role := range []Role{
		{Name: "ops-reader", Permissions: []string{"Ops::Dashboard::Read"}},
		{Name: "ops-writer", Permissions: []string{"Ops::Dashboard::*"}},
		{Name: "billing-reader", Permissions: []string{"Billing::Invoice::Read"}},
	} {
		require.NoError(t, store.SaveRole(ctx, role))
	}

	roles, err := store.ListRoles(ctx, NewRoleFilter().WithNamePrefix("ops-"))
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "ops-reader", roles[0].Name)
	assert.Equal(t, "ops-writer", roles[1].Name)

	roles, err = store.ListRoles(ctx, NewRoleFilter().WithPagination(1, 1))
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "ops-reader", roles[0].Name)
}

// TestStoreReloadHotSwapsService tests the load-compile-publish path
func TestStoreReloadHotSwapsService(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	store, db, err := SetupTestStore(ctx)
	require.NoError(t, err)
	defer db.Close()

	service := NewService(nil)
	user := NewSubject("alice", "OrderManager")
	invoiceSend := NewPermissionID("Orders", "Invoice", "Send")

	require.NoError(t, store.SaveRole(ctx, Role{
		Name:        "OrderManager",
		Permissions: []string{"Orders::Invoice::{Read,Generate}"},
	}))
	require.NoError(t, store.Reload(ctx, service))
	assert.False(t, service.Allowed(user, invoiceSend))

	require.NoError(t, store.SaveRole(ctx, Role{
		Name:        "OrderManager",
		Permissions: []string{"Orders::Invoice::{Read,Generate,Send}"},
	}))
	require.NoError(t, store.Reload(ctx, service))
	assert.True(t, service.Allowed(user, invoiceSend))
}

// TestStoreHealth tests the connectivity checks
func TestStoreHealth(t *testing.T) {
	if !RequireDatabase(t) {
		return
	}

	ctx := context.Background()
	store, db, err := SetupTestStore(ctx)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, store.Ping(ctx))
	assert.True(t, store.IsHealthy(ctx))

	status := store.Health(ctx)
	assert.True(t, status.Healthy)
}
