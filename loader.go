package permkit

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Role definition codec. The library treats persisted role definitions as
// opaque bytes; these helpers decode the supported encodings into []Role
// and validate them before they reach a builder or updater.
//
// The document shape is a list of objects with "name" and "permissions":
//
//	[
//	  {"name": "OrderManager", "permissions": ["Orders::Order::*"]},
//	  {"name": "Admin", "permissions": ["*"]}
//	]

// RolesFromJSON decodes role definitions from a JSON document and validates
// them: names must be non-empty and unique within the document, and every
// pattern string must parse.
func RolesFromJSON(data []byte) ([]Role, error) {
	var roles []Role
	if err := json.Unmarshal(data, &roles); err != nil {
		return nil, NewError(ErrInvalidRole, fmt.Sprintf("decoding JSON role definitions: %v", err))
	}
	if err := validateRoles(roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// RolesToJSON encodes role definitions as an indented JSON document.
func RolesToJSON(roles []Role) ([]byte, error) {
	return json.MarshalIndent(roles, "", "  ")
}

// RolesFromYAML decodes role definitions from a YAML document with the same
// validation as RolesFromJSON.
func RolesFromYAML(data []byte) ([]Role, error) {
	var roles []Role
	if err := yaml.Unmarshal(data, &roles); err != nil {
		return nil, NewError(ErrInvalidRole, fmt.Sprintf("decoding YAML role definitions: %v", err))
	}
	if err := validateRoles(roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// RolesToYAML encodes role definitions as a YAML document.
func RolesToYAML(roles []Role) ([]byte, error) {
	return yaml.Marshal(roles)
}

func validateRoles(roles []Role) error {
	seen := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		if role.Name == "" {
			return NewError(ErrInvalidRole, "role name cannot be empty")
		}
		if _, dup := seen[role.Name]; dup {
			return NewError(ErrDuplicateRole, fmt.Sprintf("role %q defined more than once", role.Name)).WithRole(role.Name)
		}
		seen[role.Name] = struct{}{}

		for _, pattern := range role.Permissions {
			if _, err := ParsePattern(pattern); err != nil {
				if e, ok := err.(*Error); ok {
					return e.WithRole(role.Name)
				}
				return err
			}
		}
	}
	return nil
}
