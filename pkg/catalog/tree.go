package catalog

import "sort"

// IsGroup reports whether id can be addressed with a Group ref: either a
// dedicated Group or an item that other nodes name as their group.
func (r *Registry) IsGroup(id string) bool {
	if _, ok := r.byID[id].(*Group); ok {
		return true
	}
	return len(r.children[id]) > 0
}

// Children returns the direct members of a group in registry order.
func (r *Registry) Children(id string) []Node {
	return r.children[id]
}

// Descendants returns every node nested beneath ref, recursively, in
// registry order. Items are returned as item refs and nested dedicated
// groups as group refs. Header items nested inside the group appear once, as
// item refs, followed by their own members.
//
// For an item ref, or a group ref naming something that has no members, the
// result is empty. Selection state is never consulted.
func (r *Registry) Descendants(ref Ref) []Ref {
	if ref.Kind != KindGroup || !r.IsGroup(ref.ID) {
		return nil
	}

	var out []Ref
	var walk func(id string)
	walk = func(id string) {
		for _, child := range r.children[id] {
			out = append(out, child.Ref())
			walk(child.Ref().ID)
		}
	}
	walk(ref.ID)

	sort.SliceStable(out, func(i, j int) bool {
		return r.position[out[i].ID] < r.position[out[j].ID]
	})
	return out
}

// DescendantItems returns the identities of the items among Descendants(ref).
func (r *Registry) DescendantItems(ref Ref) []string {
	var ids []string
	for _, d := range r.Descendants(ref) {
		if d.Kind == KindItem {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// Ancestors returns the chain of enclosing group identities for id,
// nearest-first. Root nodes and unknown identities have no ancestors.
func (r *Registry) Ancestors(id string) []string {
	n, ok := r.byID[id]
	if !ok {
		return nil
	}
	var out []string
	for p := n.ParentID(); p != ""; p = r.byID[p].ParentID() {
		out = append(out, p)
	}
	return out
}
