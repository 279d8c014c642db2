package selection

import (
	"slices"
	"testing"

	"github.com/matzehuels/devsetup/pkg/catalog"
)

// menuRegistry:
//
//	rust
//	uv
//	zellij        requires rust
//	git (group)
//	  delta       requires rust
//	helix
//	  lsp (group)
//	    harper    requires rust
//	    ruff      requires uv
func menuRegistry() *catalog.Registry {
	return catalog.MustNew(
		&catalog.Item{ID: "rust"},
		&catalog.Item{ID: "uv"},
		&catalog.Item{ID: "zellij", Requires: []string{"rust"}},
		&catalog.Group{ID: "git"},
		&catalog.Item{ID: "delta", Group: "git", Requires: []string{"rust"}},
		&catalog.Item{ID: "helix"},
		&catalog.Group{ID: "lsp", Parent: "helix"},
		&catalog.Item{ID: "harper", Group: "lsp", Requires: []string{"rust"}},
		&catalog.Item{ID: "ruff", Group: "lsp", Requires: []string{"uv"}},
	)
}

func checkedItems(c *Checklist) []string {
	var out []string
	for _, id := range c.Registry().IDs() {
		if c.Checked(catalog.ItemRef(id)) {
			out = append(out, id)
		}
	}
	return out
}

func TestChecklistStartsFullyChecked(t *testing.T) {
	c := NewChecklist(menuRegistry())
	if got := checkedItems(c); len(got) != 7 {
		t.Errorf("checked = %v, want all 7 items", got)
	}
	for _, g := range []string{"git", "lsp"} {
		if !c.Checked(catalog.GroupRef(g)) {
			t.Errorf("group %q should start checked", g)
		}
	}
	if !c.UserSelected().Equal(NewSet(c.Registry().IDs()...)) {
		t.Error("user selection should start as every item")
	}
}

func TestChecklistAutoPrerequisite(t *testing.T) {
	c := NewChecklist(menuRegistry())
	c.SetAll(false)
	if got := checkedItems(c); got != nil {
		t.Fatalf("after SetAll(false) checked = %v", got)
	}

	ch := c.Toggle(catalog.ItemRef("zellij"))
	if !slices.Equal(ch.Added, []string{"rust", "zellij"}) {
		t.Errorf("Added = %v, want [rust zellij]", ch.Added)
	}
	if !c.Auto("rust") || c.Auto("zellij") {
		t.Errorf("Auto(rust)=%v Auto(zellij)=%v, want true/false", c.Auto("rust"), c.Auto("zellij"))
	}

	// Deselecting the dependent drops the automatic prerequisite.
	ch = c.Toggle(catalog.ItemRef("zellij"))
	if !slices.Equal(ch.Dropped, []string{"rust", "zellij"}) {
		t.Errorf("Dropped = %v, want [rust zellij]", ch.Dropped)
	}
	if got := checkedItems(c); got != nil {
		t.Errorf("checked = %v, want none", got)
	}
}

func TestChecklistSharedPrerequisiteRetained(t *testing.T) {
	c := NewChecklist(menuRegistry())
	c.SetAll(false)
	c.Toggle(catalog.ItemRef("zellij"))
	c.Toggle(catalog.ItemRef("delta"))

	c.Toggle(catalog.ItemRef("zellij"))
	if !c.Checked(catalog.ItemRef("rust")) {
		t.Error("rust should stay checked while delta requires it")
	}
	if got := checkedItems(c); !slices.Equal(got, []string{"rust", "delta"}) {
		t.Errorf("checked = %v, want [rust delta]", got)
	}
}

func TestChecklistExplicitPrerequisiteKept(t *testing.T) {
	c := NewChecklist(menuRegistry())
	c.SetAll(false)
	c.Toggle(catalog.ItemRef("rust"))
	c.Toggle(catalog.ItemRef("zellij"))
	c.Toggle(catalog.ItemRef("zellij"))

	if !c.Checked(catalog.ItemRef("rust")) || c.Auto("rust") {
		t.Error("explicitly checked rust must not be auto-unchecked")
	}
}

func TestChecklistUncheckRequiredItem(t *testing.T) {
	c := NewChecklist(menuRegistry())

	ch := c.Toggle(catalog.ItemRef("rust"))
	if !c.Checked(catalog.ItemRef("rust")) {
		t.Fatal("rust is required by zellij, delta and harper and must stay checked")
	}
	if !c.Auto("rust") {
		t.Error("rust should now be automatic")
	}
	if len(ch.Retained) != 1 || ch.Retained[0].ID != "rust" {
		t.Fatalf("Retained = %+v", ch.Retained)
	}
	if !slices.Equal(ch.Retained[0].By, []string{"zellij", "delta", "harper"}) {
		t.Errorf("Retained.By = %v", ch.Retained[0].By)
	}
}

func TestChecklistGroupCascade(t *testing.T) {
	c := NewChecklist(menuRegistry())

	c.Toggle(catalog.GroupRef("lsp"))
	for _, id := range []string{"harper", "ruff"} {
		if c.Checked(catalog.ItemRef(id)) {
			t.Errorf("%s should be unchecked after unchecking lsp", id)
		}
	}
	if c.Checked(catalog.GroupRef("lsp")) {
		t.Error("lsp should show unchecked")
	}
	if !c.Checked(catalog.ItemRef("helix")) {
		t.Error("unchecking a child group must not touch its parent")
	}

	c.Toggle(catalog.GroupRef("lsp"))
	for _, id := range []string{"harper", "ruff"} {
		if !c.Checked(catalog.ItemRef(id)) {
			t.Errorf("%s should be checked after checking lsp", id)
		}
	}
}

func TestChecklistHeaderItemCascade(t *testing.T) {
	c := NewChecklist(menuRegistry())

	c.Toggle(catalog.ItemRef("helix"))
	for _, id := range []string{"helix", "harper", "ruff"} {
		if c.Checked(catalog.ItemRef(id)) {
			t.Errorf("%s should be unchecked after unchecking helix", id)
		}
	}
	if c.Checked(catalog.GroupRef("lsp")) {
		t.Error("nested group lsp should follow helix")
	}
}

func TestChecklistChildForcesAncestors(t *testing.T) {
	c := NewChecklist(menuRegistry())
	c.SetAll(false)

	ch := c.Toggle(catalog.ItemRef("ruff"))
	if !c.Checked(catalog.GroupRef("lsp")) {
		t.Error("lsp should be checked when ruff is checked")
	}
	if !c.Checked(catalog.ItemRef("helix")) || c.Auto("helix") {
		t.Error("header item helix should be checked as a user selection")
	}
	if !c.Auto("uv") {
		t.Error("uv should be an automatic prerequisite of ruff")
	}
	if !slices.Equal(ch.Added, []string{"uv", "helix", "ruff"}) {
		t.Errorf("Added = %v", ch.Added)
	}
	if c.Checked(catalog.ItemRef("harper")) {
		t.Error("sibling harper must stay unchecked")
	}
}

func TestChecklistGroupFollowsMembers(t *testing.T) {
	c := NewChecklist(menuRegistry())
	c.SetAll(false)
	if c.Checked(catalog.GroupRef("git")) {
		t.Fatal("git should be unchecked")
	}
	c.Toggle(catalog.ItemRef("delta"))
	if !c.Checked(catalog.GroupRef("git")) {
		t.Error("git should show checked while delta is checked")
	}
	c.Toggle(catalog.ItemRef("delta"))
	if c.Checked(catalog.GroupRef("git")) {
		t.Error("git should show unchecked once its last member is unchecked")
	}
}

func TestChecklistUnknownRef(t *testing.T) {
	c := NewChecklist(menuRegistry())
	before := c.Resolved()
	ch := c.Toggle(catalog.GroupRef("rust"))
	if ch.Added != nil || ch.Dropped != nil || !c.Resolved().Equal(before) {
		t.Error("toggling a group ref on a plain item must be a no-op")
	}
}

func TestChecklistResolvedMatchesResolver(t *testing.T) {
	c := NewChecklist(menuRegistry())
	c.SetAll(false)
	c.Toggle(catalog.ItemRef("harper"))
	c.Toggle(catalog.ItemRef("zellij"))

	if want := Resolve(c.Registry(), c.UserSelected()); !c.Resolved().Equal(want) {
		t.Errorf("Resolved() = %v, want %v", c.Resolved().Sorted(), want.Sorted())
	}
}
