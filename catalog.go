package permkit

import (
	"sort"
	"sync"
)

// PermissionInfo describes one known permission in a Catalog.
type PermissionInfo struct {
	Domain      string
	Object      string
	Action      string
	FullName    string // "Domain::Object::Action"
	Description string
}

// ID returns the PermissionID for this catalog entry.
func (i PermissionInfo) ID() PermissionID {
	return PermissionID{Domain: i.Domain, Object: i.Object, Action: i.Action}
}

// Catalog is a static table of every permission an application knows about.
// It replaces code-generated permission constants: applications define their
// domains, objects and actions once at startup and keep the returned
// PermissionID values as constants.
//
// The catalog is purely informational; the check path never consults it.
// It exists so tooling can enumerate permissions, render descriptions, and
// resolve wire-format names back to identifiers.
//
// Example:
//
//	catalog := permkit.NewCatalog()
//
//	catalog.DefineDomain("Orders").
//	    Object("Order").
//	        Action("Read", "View orders").
//	        Action("Create", "Create orders").
//	        Action("Update", "Update orders").
//	        Action("Cancel", "Cancel orders").
//	    Object("Invoice").
//	        Action("Read", "View invoices").
//	        Action("Generate", "Generate invoices").
//	        Action("Send", "Send invoices to customers")
//
//	var OrderUpdate = catalog.MustGet("Orders::Order::Update")
type Catalog struct {
	mu    sync.RWMutex
	perms map[string]PermissionInfo
}

// NewCatalog creates an empty permission catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		perms: make(map[string]PermissionInfo),
	}
}

// DomainDefinition is the fluent builder for one permission domain.
type DomainDefinition struct {
	name    string
	catalog *Catalog
}

// ObjectDefinition is the fluent builder for one object type within a domain.
type ObjectDefinition struct {
	name   string
	domain *DomainDefinition
}

// DefineDomain starts defining permissions under a domain.
func (c *Catalog) DefineDomain(name string) *DomainDefinition {
	return &DomainDefinition{name: name, catalog: c}
}

// Object starts defining actions for an object type within this domain.
func (d *DomainDefinition) Object(name string) *ObjectDefinition {
	return &ObjectDefinition{name: name, domain: d}
}

// Action registers one permission for this object and returns the builder
// for chaining. The returned PermissionID can be fetched later via Get,
// MustGet or ID.
func (o *ObjectDefinition) Action(name, description string) *ObjectDefinition {
	id := PermissionID{Domain: o.domain.name, Object: o.name, Action: name}

	c := o.domain.catalog
	c.mu.Lock()
	c.perms[id.String()] = PermissionInfo{
		Domain:      o.domain.name,
		Object:      o.name,
		Action:      name,
		FullName:    id.String(),
		Description: description,
	}
	c.mu.Unlock()

	return o
}

// Object continues defining objects in the same domain (fluent API).
func (o *ObjectDefinition) Object(name string) *ObjectDefinition {
	return o.domain.Object(name)
}

// DefineDomain continues defining domains on the catalog (fluent API).
func (o *ObjectDefinition) DefineDomain(name string) *DomainDefinition {
	return o.domain.catalog.DefineDomain(name)
}

// ID returns the PermissionID for an action on this object. The action does
// not have to be registered; ID is a pure constructor.
func (o *ObjectDefinition) ID(action string) PermissionID {
	return PermissionID{Domain: o.domain.name, Object: o.name, Action: action}
}

// Get returns the PermissionInfo registered under a full name like
// "Orders::Order::Read".
func (c *Catalog) Get(fullName string) (PermissionInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, ok := c.perms[fullName]
	return info, ok
}

// MustGet returns the PermissionID registered under a full name.
// Panics when the permission was never defined; intended for package-level
// constant wiring where a typo should fail loudly at startup.
func (c *Catalog) MustGet(fullName string) PermissionID {
	info, ok := c.Get(fullName)
	if !ok {
		panic("permkit: permission not defined in catalog: " + fullName)
	}
	return info.ID()
}

// Contains reports whether the permission is registered in the catalog.
func (c *Catalog) Contains(id PermissionID) bool {
	_, ok := c.Get(id.String())
	return ok
}

// All returns every registered permission, sorted by full name.
func (c *Catalog) All() []PermissionInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	infos := make([]PermissionInfo, 0, len(c.perms))
	for _, info := range c.perms {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].FullName < infos[j].FullName
	})
	return infos
}

// IDs returns every registered PermissionID, sorted by full name. Useful as
// a probe set when verifying that two role definitions behave identically.
func (c *Catalog) IDs() []PermissionID {
	infos := c.All()
	ids := make([]PermissionID, len(infos))
	for i, info := range infos {
		ids[i] = info.ID()
	}
	return ids
}

// Len returns the number of registered permissions.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.perms)
}
