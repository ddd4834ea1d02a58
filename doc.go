// Package permkit provides role-based permission checking with a
// hierarchical pattern language and lock-free hot-swappable role sets.
//
// PermKit decides one question: given a subject (user, service account)
// carrying a set of role names and a requested permission, is the subject
// allowed to perform it? Roles are flat lists of permission patterns that
// are compiled once into efficient matchers; a running service can replace
// its entire role set atomically without blocking concurrent checks.
//
// # Core Concepts
//
// Permission: a (Domain, Object, Action) triple rendered as
// "Orders::Order::Read". Applications define their permissions once in a
// Catalog and keep the resulting PermissionID values as constants.
//
// Pattern: a grant expression attached to a role. Either the global
// wildcard "*" or three "::"-separated segments, each of which is a
// literal name, "*", or an alternation set like "{Read,Generate}".
//
// Role: a named, ordered list of pattern strings. Roles carry no hierarchy
// and no inheritance; a subject's effective grants are the union of its
// roles' patterns.
//
// Registry: an immutable mapping from role name to compiled role, built as
// one unit and replaced wholesale on update.
//
// # Key Features
//
//   - Compiled patterns: parse once, match many times, case-sensitive
//   - Wildcards per segment plus the global "*" grant
//   - Alternation sets: "Orders::Invoice::{Read,Generate}"
//   - Lock-free checks: readers take one atomic registry snapshot
//   - Atomic hot-swap: Updater publishes a new generation in one store
//   - Fallback roles for subjects that carry no roles at all
//   - JSON/YAML codec for role definitions
//   - Optional PostgreSQL persistence through dbkit/bun
//
// # Basic Usage
//
//	// 1. Define permissions (at application startup)
//	catalog := permkit.NewCatalog()
//	catalog.DefineDomain("Orders").
//	    Object("Order").
//	        Action("Read", "View orders").
//	        Action("Update", "Update orders").
//	    Object("Invoice").
//	        Action("Read", "View invoices").
//	        Action("Generate", "Generate invoices").
//	        Action("Send", "Send invoices to customers")
//
//	var (
//	    OrderUpdate = catalog.MustGet("Orders::Order::Update")
//	    InvoiceSend = catalog.MustGet("Orders::Invoice::Send")
//	)
//
//	// 2. Build the registry
//	registry, err := permkit.NewRegistryBuilder().
//	    AddRole(permkit.Role{
//	        Name: "OrderManager",
//	        Permissions: []string{
//	            "Orders::Order::*",
//	            "Orders::Invoice::{Read,Generate}",
//	        },
//	    }).
//	    AddRole(permkit.Role{Name: "Admin", Permissions: []string{"*"}}).
//	    Build()
//
//	// 3. Create the service
//	service := permkit.NewService(registry)
//
//	// 4. Check permissions
//	user := permkit.NewSubject("alice", "OrderManager")
//	if err := service.HasPermission(user, OrderUpdate); err == nil {
//	    // allowed
//	}
//	if permkit.IsPermissionDenied(service.HasPermission(user, InvoiceSend)) {
//	    // denied: OrderManager only grants Read and Generate on invoices
//	}
//
// # Hot-Swapping Roles
//
// Role sets change at runtime without restarting and without blocking
// checks. An Updater stages the next generation off to the side and
// installs it with a single atomic publish:
//
//	updater := service.UpdaterCopy()
//	updater.SetRole(permkit.Role{
//	    Name: "OrderManager",
//	    Permissions: []string{
//	        "Orders::Order::*",
//	        "Orders::Invoice::{Read,Generate,Send}",
//	    },
//	})
//	if err := updater.Update(service); err != nil {
//	    // the staged set was invalid; the live registry is unchanged
//	}
//
// Checks that started before the publish finish against the old registry;
// every later check sees only the new one. No caller ever observes a mix
// of generations.
//
// # Subjects
//
// Any type exposing Name() and Roles() is a Subject. Role names unknown to
// the registry are skipped silently, so stale assignments deny rather than
// fail. Subjects with an empty role list are checked against the
// registry's fallback roles.
//
// # Persistence
//
// Role definitions are plain {name, permissions} documents. RolesFromJSON
// and RolesFromYAML decode and validate them; Store persists them in
// PostgreSQL and can reload a running service in one call:
//
//	store := permkit.NewStore(db)
//	_ = store.Reload(ctx, service)
//
// # Middleware Usage
//
//	mw := permkit.NewMiddleware(service)
//	mux.Handle("/orders", mw.RequirePermission(OrderRead)(ordersHandler))
//
// PermKit performs no authentication, keeps no audit log, and never caches
// check results; a denial is a normal per-call outcome.
package permkit
