package permkit

import (
	"sort"
	"strings"
)

const (
	segmentSeparator = "::"
	wildcardToken    = "*"
)

type segmentKind uint8

const (
	segmentExact segmentKind = iota
	segmentWildcard
	segmentAlternation
)

// segment is the compiled form of one position (domain, object or action)
// of a three-part pattern.
type segment struct {
	kind    segmentKind
	value   string              // literal for segmentExact
	members map[string]struct{} // set members for segmentAlternation
	sorted  []string            // members in sorted order, for the canonical key
}

func (s segment) matches(name string) bool {
	switch s.kind {
	case segmentWildcard:
		return true
	case segmentAlternation:
		_, ok := s.members[name]
		return ok
	default:
		return s.value == name
	}
}

// canonical renders the segment in a normalized form so that structurally
// identical segments compare equal regardless of member order or spacing.
func (s segment) canonical() string {
	switch s.kind {
	case segmentWildcard:
		return wildcardToken
	case segmentAlternation:
		return "{" + strings.Join(s.sorted, ",") + "}"
	default:
		return s.value
	}
}

func parseSegment(token string) (segment, string) {
	if token == "" {
		return segment{}, "segment cannot be empty"
	}
	if token == wildcardToken {
		return segment{kind: segmentWildcard}, ""
	}
	if strings.ContainsAny(token, "{}") {
		if !strings.HasPrefix(token, "{") || !strings.HasSuffix(token, "}") {
			return segment{}, "alternation set must be brace-delimited"
		}
		inner := token[1 : len(token)-1]
		if strings.ContainsAny(inner, "{}") {
			return segment{}, "alternation set cannot contain nested braces"
		}
		if strings.TrimSpace(inner) == "" {
			return segment{}, "alternation set cannot be empty"
		}
		members := make(map[string]struct{})
		for _, item := range strings.Split(inner, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				return segment{}, "alternation set cannot contain empty items"
			}
			members[item] = struct{}{}
		}
		sorted := make([]string, 0, len(members))
		for m := range members {
			sorted = append(sorted, m)
		}
		sort.Strings(sorted)
		return segment{kind: segmentAlternation, members: members, sorted: sorted}, ""
	}
	return segment{kind: segmentExact, value: token}, ""
}

// Pattern is the parsed form of a permission pattern string.
//
// The grammar accepts either the bare global wildcard "*", which matches
// every permission, or exactly three "::"-separated segments where each
// segment is a literal name, "*", or a brace-delimited alternation set
// like "{Read,Generate}". Matching is case-sensitive; no normalization is
// performed.
type Pattern struct {
	raw    string
	global bool
	domain segment
	object segment
	action segment
}

// ParsePattern parses a raw permission pattern string.
//
// Examples of valid patterns:
//
//	"*"                                 // every permission
//	"Orders::Order::Read"               // exact match
//	"Orders::Order::*"                  // any action on Orders::Order
//	"Orders::Invoice::{Read,Generate}"  // one of the listed actions
//
// Returns an error wrapping ErrInvalidPattern when the string does not
// follow the grammar. Parsing is pure; it never touches shared state.
func ParsePattern(raw string) (Pattern, error) {
	if raw == wildcardToken {
		return Pattern{raw: raw, global: true}, nil
	}

	parts := strings.Split(raw, segmentSeparator)
	if len(parts) != 3 {
		return Pattern{}, NewError(ErrInvalidPattern, `pattern must be "*" or have exactly three "::"-separated segments`).WithPattern(raw)
	}

	segments := make([]segment, 3)
	for i, token := range parts {
		seg, reason := parseSegment(token)
		if reason != "" {
			return Pattern{}, NewError(ErrInvalidPattern, reason).WithPattern(raw)
		}
		segments[i] = seg
	}

	return Pattern{
		raw:    raw,
		global: false,
		domain: segments[0],
		object: segments[1],
		action: segments[2],
	}, nil
}

// Raw returns the original pattern string.
func (p Pattern) Raw() string {
	return p.raw
}

// Global reports whether the pattern is the bare "*" that matches every
// permission regardless of triple.
func (p Pattern) Global() bool {
	return p.global
}

// Matches reports whether the pattern matches a permission. A three-segment
// pattern matches when all three segments match the corresponding parts of
// the permission identifier.
func (p Pattern) Matches(permission PermissionID) bool {
	if p.global {
		return true
	}
	return p.domain.matches(permission.Domain) &&
		p.object.matches(permission.Object) &&
		p.action.matches(permission.Action)
}

// canonical returns a normalized key identifying the pattern's structure,
// used to deduplicate structurally identical patterns at compile time.
func (p Pattern) canonical() string {
	if p.global {
		return wildcardToken
	}
	return p.domain.canonical() + segmentSeparator + p.object.canonical() + segmentSeparator + p.action.canonical()
}
