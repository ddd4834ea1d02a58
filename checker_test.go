package permkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckerAllowed tests single-permission checks through a checker
func TestCheckerAllowed(t *testing.T) {
	service := NewService(testRegistry(t))
	checker := service.Checker(NewSubject("alice", "OrderManager"))

	assert.Equal(t, "alice", checker.SubjectName())
	assert.True(t, checker.Allowed(NewPermissionID("Orders", "Order", "Update")))
	assert.False(t, checker.Allowed(NewPermissionID("Orders", "Invoice", "Send")))
}

// TestCheckerAllowedAnyAll tests the combinators
func TestCheckerAllowedAnyAll(t *testing.T) {
	service := NewService(testRegistry(t))
	checker := service.Checker(NewSubject("alice", "OrderManager"))

	invoiceRead := NewPermissionID("Orders", "Invoice", "Read")
	invoiceSend := NewPermissionID("Orders", "Invoice", "Send")

	assert.True(t, checker.AllowedAny(invoiceSend, invoiceRead))
	assert.False(t, checker.AllowedAny(invoiceSend))
	assert.False(t, checker.AllowedAny())

	assert.True(t, checker.AllowedAll(invoiceRead, NewPermissionID("Orders", "Order", "Read")))
	assert.False(t, checker.AllowedAll(invoiceRead, invoiceSend))
	assert.True(t, checker.AllowedAll())
}

// TestCheckerHasRole tests subject role inspection
func TestCheckerHasRole(t *testing.T) {
	service := NewService(testRegistry(t))
	checker := service.Checker(NewSubject("alice", "OrderManager", "SomethingElse"))

	assert.True(t, checker.HasRole("OrderManager"))
	assert.True(t, checker.HasRole("SomethingElse")) // not in the registry, still held
	assert.False(t, checker.HasRole("Admin"))
}

// TestCheckerGrants tests the pattern union
func TestCheckerGrants(t *testing.T) {
	service := NewService(testRegistry(t))

	checker := service.Checker(NewSubject("alice", "OrderManager", "Unknown", "Nobody"))
	assert.Equal(t, []string{
		"Orders::Invoice::{Read,Generate}",
		"Orders::Order::*",
		"Orders::OrderItem::*",
	}, checker.Grants())

	// Unknown roles only: nothing granted.
	assert.Empty(t, service.Checker(NewSubject("bob", "Unknown")).Grants())
}

// TestCheckerObservesHotSwap tests that a long-lived checker follows the
// service onto new generations.
func TestCheckerObservesHotSwap(t *testing.T) {
	service := NewService(testRegistry(t))
	checker := service.Checker(NewSubject("alice", "OrderManager"))
	invoiceSend := NewPermissionID("Orders", "Invoice", "Send")

	require.False(t, checker.Allowed(invoiceSend))

	updater := service.UpdaterCopy()
	updater.SetRole(Role{Name: "OrderManager", Permissions: []string{"Orders::Invoice::{Read,Generate,Send}"}})
	require.NoError(t, updater.Update(service))

	assert.True(t, checker.Allowed(invoiceSend))
}
