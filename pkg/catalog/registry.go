package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/matzehuels/devsetup/pkg/dag"
	errs "github.com/matzehuels/devsetup/pkg/errors"
)

// Registry is the immutable, ordered table of catalog nodes.
//
// Registry order is meaningful: it is the order of menu rows, of --list
// output and of installation. New rejects catalogs where a prerequisite is
// declared after an item that requires it, so registry order is always a
// valid installation order.
type Registry struct {
	nodes    []Node
	items    []*Item
	byID     map[string]Node
	names    map[string]string // id or alias -> item id
	children map[string][]Node // parent id -> direct children, registry order
	position map[string]int
	graph    *dag.DAG
}

// New validates nodes and builds a Registry. It returns an
// errors.ErrCodeInvalidCatalog error for structural problems and an
// errors.ErrCodeCycle error when requires contains a cycle.
func New(nodes []Node) (*Registry, error) {
	r := &Registry{
		byID:     make(map[string]Node, len(nodes)),
		names:    make(map[string]string, len(nodes)),
		children: make(map[string][]Node),
		position: make(map[string]int, len(nodes)),
		graph:    dag.New(),
	}

	for i, n := range nodes {
		if n == nil {
			return nil, errs.New(errs.ErrCodeInvalidCatalog, "entry %d is nil", i)
		}
		id := n.Ref().ID
		if err := errs.ValidateIdentity(id); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidCatalog, err, "entry %d", i)
		}
		if _, dup := r.byID[id]; dup {
			return nil, errs.New(errs.ErrCodeInvalidCatalog, "duplicate identity %q", id)
		}
		r.byID[id] = n
		r.position[id] = i
		r.nodes = append(r.nodes, n)
		if it, ok := n.(*Item); ok {
			r.items = append(r.items, it)
			r.names[id] = id
			if err := r.graph.AddNode(id); err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidCatalog, err, "item %q", id)
			}
		}
	}

	if err := r.indexAliases(); err != nil {
		return nil, err
	}
	if err := r.indexParents(); err != nil {
		return nil, err
	}
	if err := r.indexRequires(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNew is like New but panics on error. Intended for tests and static
// catalogs known to be valid.
func MustNew(nodes ...Node) *Registry {
	r, err := New(nodes)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) indexAliases() error {
	for _, it := range r.items {
		if it.Alias == "" || it.Alias == it.ID {
			continue
		}
		if err := errs.ValidateIdentity(it.Alias); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidCatalog, err, "alias of %q", it.ID)
		}
		if owner, taken := r.names[it.Alias]; taken {
			return errs.New(errs.ErrCodeInvalidCatalog, "alias %q of %q collides with %q", it.Alias, it.ID, owner)
		}
		if _, isGroup := r.byID[it.Alias]; isGroup {
			return errs.New(errs.ErrCodeInvalidCatalog, "alias %q of %q collides with group %q", it.Alias, it.ID, it.Alias)
		}
		r.names[it.Alias] = it.ID
	}
	return nil
}

func (r *Registry) indexParents() error {
	for _, n := range r.nodes {
		id, parent := n.Ref().ID, n.ParentID()
		if parent == "" {
			continue
		}
		if _, ok := r.byID[parent]; !ok {
			return errs.New(errs.ErrCodeInvalidCatalog, "%s %q: unknown group %q", n.Ref().Kind, id, parent)
		}
		r.children[parent] = append(r.children[parent], n)
	}

	// Group membership is rendered as nested indentation and must be a forest.
	for _, n := range r.nodes {
		seen := map[string]bool{n.Ref().ID: true}
		for p := n.ParentID(); p != ""; p = r.byID[p].ParentID() {
			if seen[p] {
				return errs.New(errs.ErrCodeInvalidCatalog, "group cycle through %q", n.Ref().ID)
			}
			seen[p] = true
		}
	}
	return nil
}

func (r *Registry) indexRequires() error {
	for _, it := range r.items {
		for _, req := range it.Requires {
			n, ok := r.byID[req]
			if !ok {
				return errs.New(errs.ErrCodeInvalidCatalog, "item %q requires unknown item %q", it.ID, req)
			}
			if _, isItem := n.(*Item); !isItem {
				return errs.New(errs.ErrCodeInvalidCatalog, "item %q requires group %q; requirements must name items", it.ID, req)
			}
			if err := r.graph.AddEdge(it.ID, req); err != nil {
				return errs.Wrap(errs.ErrCodeInvalidCatalog, err, "item %q", it.ID)
			}
		}
	}

	if err := r.graph.Validate(); err != nil {
		var ce *dag.CycleError
		if errors.As(err, &ce) {
			return errs.Wrap(errs.ErrCodeCycle, err, "requires must not be cyclic")
		}
		return errs.Wrap(errs.ErrCodeInvalidCatalog, err, "requires")
	}

	for _, it := range r.items {
		for _, req := range it.Requires {
			if r.graph.Position(req) > r.graph.Position(it.ID) {
				return errs.New(errs.ErrCodeInvalidCatalog,
					"item %q requires %q, which must be declared before it", it.ID, req)
			}
		}
	}
	return nil
}

// Nodes returns every node (items and groups) in registry order.
func (r *Registry) Nodes() []Node { return slices.Clone(r.nodes) }

// Items returns the installable items in registry order.
func (r *Registry) Items() []*Item { return slices.Clone(r.items) }

// IDs returns the identities of all items in registry order.
func (r *Registry) IDs() []string { return r.graph.Nodes() }

// Len returns the number of installable items.
func (r *Registry) Len() int { return len(r.items) }

// Item returns the item with the given identity.
func (r *Registry) Item(id string) (*Item, bool) {
	it, ok := r.byID[id].(*Item)
	return it, ok
}

// Node returns the node addressed by ref. A Group ref resolves to either a
// dedicated group or a header item.
func (r *Registry) Node(ref Ref) (Node, bool) {
	n, ok := r.byID[ref.ID]
	if !ok {
		return nil, false
	}
	if ref.Kind == KindGroup && !r.IsGroup(ref.ID) {
		return nil, false
	}
	if ref.Kind == KindItem {
		if _, isItem := n.(*Item); !isItem {
			return nil, false
		}
	}
	return n, true
}

// Requires returns the declared prerequisites of the item, or nil.
// The returned slice must not be modified.
func (r *Registry) Requires(id string) []string { return r.graph.Children(id) }


// Depth returns the nesting depth of a node (0 at the root).
func (r *Registry) Depth(id string) int { return len(r.Ancestors(id)) }

// Match resolves command-line tokens (identities or aliases) to item
// identities. Duplicates are collapsed and the first-seen order is kept.
// Unknown tokens produce a single errors.ErrCodeUnknownItem error naming
// every unrecognized token plus the valid set.
func (r *Registry) Match(names []string) ([]string, error) {
	var ids, unknown []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		id, ok := r.names[name]
		if !ok {
			if !slices.Contains(unknown, name) {
				unknown = append(unknown, name)
			}
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errs.New(errs.ErrCodeUnknownItem, "unknown item(s): %s. Valid: %s",
			strings.Join(unknown, ", "), strings.Join(r.ValidNames(), ", "))
	}
	return ids, nil
}

// ValidNames returns every identity and alias accepted by Match, sorted.
func (r *Registry) ValidNames() []string {
	names := make([]string, 0, len(r.names))
	for n := range r.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// String returns a short summary, useful in debug logs.
func (r *Registry) String() string {
	return fmt.Sprintf("catalog(%d items, %d groups, %d requirements)",
		r.graph.NodeCount(), len(r.nodes)-len(r.items), r.graph.EdgeCount())
}
