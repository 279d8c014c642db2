package catalog

import "fmt"

// Kind distinguishes the two node types that share the catalog's identity
// space.
type Kind int

const (
	// KindItem is an installable item.
	KindItem Kind = iota
	// KindGroup is a grouping node. A Group ref may also address an item that
	// acts as a header for other items.
	KindGroup
)

// String returns "item" or "group".
func (k Kind) String() string {
	if k == KindGroup {
		return "group"
	}
	return "item"
}

// Ref addresses a node in the catalog. Item and group refs with the same ID
// are different values, so a header item and its group marker never collide.
type Ref struct {
	Kind Kind
	ID   string
}

// ItemRef returns a reference to the item with the given identity.
func ItemRef(id string) Ref { return Ref{Kind: KindItem, ID: id} }

// GroupRef returns a reference to the group (or header item) with the given
// identity.
func GroupRef(id string) Ref { return Ref{Kind: KindGroup, ID: id} }

// String renders the ref as "kind:id".
func (r Ref) String() string { return fmt.Sprintf("%s:%s", r.Kind, r.ID) }

// Node is implemented by *Item and *Group.
type Node interface {
	// Ref returns the node's own reference.
	Ref() Ref
	// Title returns the display label.
	Title() string
	// ParentID returns the enclosing group identity, or "" at the root.
	ParentID() string
}

// Install methods understood by the installers package.
const (
	MethodBuiltin  = "builtin"
	MethodApt      = "apt"
	MethodBinstall = "binstall"
	MethodUVTool   = "uv-tool"
	MethodScript   = "script"
)

var knownMethods = map[string]bool{
	MethodBuiltin:  true,
	MethodApt:      true,
	MethodBinstall: true,
	MethodUVTool:   true,
	MethodScript:   true,
}

// Recipe describes how an item is installed. It is plain data; the
// installers package turns it into an action.
type Recipe struct {
	Method  string   // one of the Method* constants; "" means builtin
	Package string   // package, crate or tool name (defaults to the item ID)
	Binary  string   // command whose presence means "already installed"
	Script  []string // shell commands for MethodScript, run in order
	Sudo    bool     // run Script with privilege
}

// EffectiveMethod returns Method, defaulting to MethodBuiltin.
func (r Recipe) EffectiveMethod() string {
	if r.Method == "" {
		return MethodBuiltin
	}
	return r.Method
}

// Item is one installable unit.
type Item struct {
	ID          string   // Unique, stable identity
	Label       string   // Display label
	Group       string   // Enclosing group or header item (visual only)
	Requires    []string // Hard prerequisites, installed first
	Alias       string   // Optional short name accepted on the command line
	Description string   // Optional human-readable description
	Install     Recipe
}

// Ref returns ItemRef(i.ID).
func (i *Item) Ref() Ref { return ItemRef(i.ID) }

// Title returns the label, falling back to the ID.
func (i *Item) Title() string {
	if i.Label != "" {
		return i.Label
	}
	return i.ID
}

// ParentID returns the enclosing group identity.
func (i *Item) ParentID() string { return i.Group }

// Names returns the identity followed by the alias, if any.
func (i *Item) Names() []string {
	if i.Alias == "" || i.Alias == i.ID {
		return []string{i.ID}
	}
	return []string{i.ID, i.Alias}
}

// Group is a dedicated grouping node. It is never installed.
type Group struct {
	ID     string
	Label  string
	Parent string
}

// Ref returns GroupRef(g.ID).
func (g *Group) Ref() Ref { return GroupRef(g.ID) }

// Title returns the label, falling back to the ID.
func (g *Group) Title() string {
	if g.Label != "" {
		return g.Label
	}
	return g.ID
}

// ParentID returns the enclosing group identity.
func (g *Group) ParentID() string { return g.Parent }
