package selection

import "github.com/matzehuels/devsetup/pkg/catalog"

// Checklist is the state behind the interactive menu.
//
// It owns the set of items the user explicitly checked and derives everything
// else from it: after every toggle the explicit set is resolved and the
// visible state is reconciled with the result. Prerequisites pulled in by the
// resolver show as checked and are marked automatic; automatic prerequisites
// that nothing needs any more are unchecked again. Items the user checked
// themselves are never unchecked by reconciliation.
//
// A Checklist is not safe for concurrent use; the menu's event loop owns it.
type Checklist struct {
	reg      *catalog.Registry
	explicit Set
	resolved Set
	groups   map[string]bool // visual state of dedicated groups
}

// Retained is an item the user tried to uncheck that stays selected because
// other selected items require it.
type Retained struct {
	ID string
	By []string
}

// Change summarises the effect of one checklist operation.
type Change struct {
	Added    []string // items that became checked, registry order
	Dropped  []string // items that became unchecked, registry order
	Retained []Retained
}

// NewChecklist returns a checklist with every item and group checked.
func NewChecklist(reg *catalog.Registry) *Checklist {
	c := &Checklist{
		reg:      reg,
		explicit: NewSet(reg.IDs()...),
		groups:   make(map[string]bool),
	}
	for _, n := range reg.Nodes() {
		if g, ok := n.(*catalog.Group); ok {
			c.groups[g.ID] = true
		}
	}
	c.reconcile()
	return c
}

// Registry returns the catalog the checklist was built from.
func (c *Checklist) Registry() *catalog.Registry { return c.reg }

// Checked reports the visible state of a row.
func (c *Checklist) Checked(ref catalog.Ref) bool {
	if on, ok := c.groups[ref.ID]; ok && ref.Kind == catalog.KindGroup {
		return on
	}
	return c.resolved.Has(ref.ID)
}

// Auto reports whether the item is checked only because something requires it.
func (c *Checklist) Auto(id string) bool {
	return c.resolved.Has(id) && !c.explicit.Has(id)
}

// UserSelected returns a copy of the explicitly checked items.
func (c *Checklist) UserSelected() Set { return c.explicit.Clone() }

// Resolved returns a copy of the resolved selection.
func (c *Checklist) Resolved() Set { return c.resolved.Clone() }

// Toggle flips the row addressed by ref.
//
// Toggling a group, or an item that heads a group, cascades the new state to
// every descendant. Toggling anything on also checks its ancestors. The
// selection is then re-resolved and the visible state reconciled.
func (c *Checklist) Toggle(ref catalog.Ref) Change {
	if _, ok := c.reg.Node(ref); !ok {
		return Change{}
	}
	on := !c.Checked(ref)
	before := c.resolved.Clone()

	cascade := ref
	if ref.Kind == catalog.KindItem && c.reg.IsGroup(ref.ID) {
		cascade = catalog.GroupRef(ref.ID)
	}
	targets := append([]catalog.Ref{ref}, c.reg.Descendants(cascade)...)
	for _, t := range targets {
		c.set(t, on)
	}
	if on {
		for _, a := range c.reg.Ancestors(ref.ID) {
			c.set(c.refFor(a), true)
		}
	}

	c.reconcile()
	return c.diff(before, on, targets)
}

// SetAll checks or unchecks every row.
func (c *Checklist) SetAll(on bool) Change {
	before := c.resolved.Clone()
	targets := make([]catalog.Ref, 0, len(c.reg.Nodes()))
	for _, n := range c.reg.Nodes() {
		targets = append(targets, n.Ref())
		c.set(n.Ref(), on)
	}
	c.reconcile()
	return c.diff(before, on, targets)
}

func (c *Checklist) refFor(id string) catalog.Ref {
	if _, ok := c.reg.Item(id); ok {
		return catalog.ItemRef(id)
	}
	return catalog.GroupRef(id)
}

func (c *Checklist) set(ref catalog.Ref, on bool) {
	if _, isGroup := c.groups[ref.ID]; isGroup {
		c.groups[ref.ID] = on
		return
	}
	if on {
		c.explicit.Add(ref.ID)
	} else {
		c.explicit.Remove(ref.ID)
	}
}

func (c *Checklist) reconcile() {
	c.resolved = Resolve(c.reg, c.explicit)

	// A group with members shows as checked while any member is checked.
	for id := range c.groups {
		members := c.reg.DescendantItems(catalog.GroupRef(id))
		if len(members) == 0 {
			continue
		}
		on := false
		for _, m := range members {
			if c.resolved.Has(m) {
				on = true
				break
			}
		}
		c.groups[id] = on
	}
}

func (c *Checklist) diff(before Set, on bool, targets []catalog.Ref) Change {
	order := c.reg.IDs()
	ch := Change{
		Added:   c.resolved.Minus(before).InOrder(order),
		Dropped: before.Minus(c.resolved).InOrder(order),
	}
	if on {
		return ch
	}
	for _, t := range targets {
		if _, isItem := c.reg.Item(t.ID); !isItem || !c.resolved.Has(t.ID) {
			continue
		}
		ch.Retained = append(ch.Retained, Retained{
			ID: t.ID,
			By: RequiredBy(c.reg, c.resolved, order, t.ID),
		})
	}
	return ch
}
