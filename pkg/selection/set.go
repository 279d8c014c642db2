package selection

import (
	"maps"
	"slices"
)

// Set is a set of item identities.
type Set map[string]struct{}

// NewSet returns a set holding ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id and reports whether it was absent.
func (s Set) Add(id string) bool {
	if s.Has(id) {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Remove deletes id.
func (s Set) Remove(id string) { delete(s, id) }

// Clone returns an independent copy.
func (s Set) Clone() Set { return maps.Clone(s) }

// Len returns the number of members.
func (s Set) Len() int { return len(s) }

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string { return slices.Sorted(maps.Keys(s)) }

// Equal reports whether both sets hold the same members.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

// Minus returns the members of s that are not in o.
func (s Set) Minus(o Set) Set {
	out := make(Set)
	for id := range s {
		if !o.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// InOrder returns the members of s that appear in order, keeping that order.
// Members not listed in order are dropped.
func (s Set) InOrder(order []string) []string {
	out := make([]string, 0, len(s))
	for _, id := range order {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
