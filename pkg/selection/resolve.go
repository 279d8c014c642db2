// Package selection turns what a user picked into what gets installed.
//
// [Resolve] is the single source of truth: every front-end (the interactive
// menu, --all, --only and --skip) produces a user-selected [Set] and passes
// it through Resolve. [Checklist] models the menu's cascading checkbox state
// on top of Resolve without any terminal rendering.
package selection

// Requirements exposes the declared prerequisites of each item.
// *catalog.Registry satisfies it.
type Requirements interface {
	Requires(id string) []string
}

// Resolve returns the closure of userSelected under the requires relation.
//
// The result always contains userSelected, every prerequisite chain reachable
// from it, and nothing else. Identities unknown to reqs are passed through
// unchanged. Because the closure is recomputed from the current user
// selection, dropping an item from userSelected drops any prerequisite that
// nothing else still needs, unless it was selected independently.
//
// Termination does not depend on reqs being acyclic: each identity is added
// at most once.
func Resolve(reqs Requirements, userSelected Set) Set {
	selected := userSelected.Clone()
	if selected == nil {
		selected = make(Set)
	}

	for changed := true; changed; {
		changed = false
		for id := range selected.Clone() {
			for _, req := range reqs.Requires(id) {
				if selected.Add(req) {
					changed = true
				}
			}
		}
	}
	return selected
}

// RequiredBy returns the members of selected that directly require id, in
// the order given by order (typically the registry's IDs).
func RequiredBy(reqs Requirements, selected Set, order []string, id string) []string {
	var out []string
	for _, sid := range selected.InOrder(order) {
		for _, req := range reqs.Requires(sid) {
			if req == id {
				out = append(out, sid)
				break
			}
		}
	}
	return out
}
