package selection

import (
	"slices"
	"testing"

	"github.com/matzehuels/devsetup/pkg/catalog"
)

// reqMap is a Requirements backed by a plain map, so resolver properties can
// be checked on graphs the catalog itself would reject.
type reqMap map[string][]string

func (m reqMap) Requires(id string) []string { return m[id] }

func TestResolve(t *testing.T) {
	// a; b requires a; c requires a; d; e requires b (chain e -> b -> a)
	reg := catalog.MustNew(
		&catalog.Item{ID: "a"},
		&catalog.Item{ID: "b", Requires: []string{"a"}},
		&catalog.Item{ID: "c", Requires: []string{"a"}},
		&catalog.Item{ID: "d"},
		&catalog.Item{ID: "e", Requires: []string{"b"}},
	)

	tests := []struct {
		name string
		user []string
		want []string
	}{
		{"empty", nil, nil},
		{"no requirements", []string{"d"}, []string{"d"}},
		{"direct prerequisite", []string{"b"}, []string{"a", "b"}},
		{"transitive chain", []string{"e"}, []string{"a", "b", "e"}},
		{"shared prerequisite retained", []string{"c"}, []string{"a", "c"}},
		{"independent retention", []string{"a"}, []string{"a"}},
		{"independent plus unrelated", []string{"d", "c"}, []string{"a", "c", "d"}},
		{"unknown passes through", []string{"zz", "b"}, []string{"a", "b", "zz"}},
		{"all", []string{"a", "b", "c", "d", "e"}, []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := NewSet(tt.user...)
			got := Resolve(reg, user)

			want := NewSet(tt.want...)
			if !got.Equal(want) {
				t.Errorf("Resolve(%v) = %v, want %v", tt.user, got.Sorted(), want.Sorted())
			}
			for id := range user {
				if !got.Has(id) {
					t.Errorf("user selection %q missing from result", id)
				}
			}
			if again := Resolve(reg, got); !again.Equal(got) {
				t.Errorf("Resolve is not idempotent: %v -> %v", got.Sorted(), again.Sorted())
			}
		})
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	user := NewSet("b")
	Resolve(reqMap{"b": {"a"}}, user)
	if !user.Equal(NewSet("b")) {
		t.Errorf("input mutated: %v", user.Sorted())
	}
}

func TestResolveNilInput(t *testing.T) {
	got := Resolve(reqMap{}, nil)
	if got == nil || got.Len() != 0 {
		t.Errorf("Resolve(nil) = %v, want empty non-nil set", got)
	}
}

func TestResolveDeselectionDrop(t *testing.T) {
	reqs := reqMap{"b": {"a"}}

	if got := Resolve(reqs, NewSet("b")); !got.Has("a") {
		t.Errorf("Resolve({b}) = %v, want a included", got.Sorted())
	}
	if got := Resolve(reqs, NewSet()); got.Has("a") {
		t.Errorf("Resolve({}) = %v, want a dropped", got.Sorted())
	}
}

func TestResolveTerminatesOnCycles(t *testing.T) {
	reqs := reqMap{"a": {"b"}, "b": {"c"}, "c": {"a"}}
	got := Resolve(reqs, NewSet("a"))
	if !got.Equal(NewSet("a", "b", "c")) {
		t.Errorf("Resolve() = %v", got.Sorted())
	}
}

func TestRequiredBy(t *testing.T) {
	reqs := reqMap{"zellij": {"rust"}, "delta": {"rust"}, "ruff": {"uv"}}
	order := []string{"rust", "uv", "zellij", "delta", "ruff"}

	got := RequiredBy(reqs, NewSet("rust", "zellij", "delta", "ruff"), order, "rust")
	if !slices.Equal(got, []string{"zellij", "delta"}) {
		t.Errorf("RequiredBy(rust) = %v", got)
	}
	if got := RequiredBy(reqs, NewSet("ruff"), order, "rust"); got != nil {
		t.Errorf("RequiredBy(rust) with no dependents = %v", got)
	}
}

func TestSetOps(t *testing.T) {
	s := NewSet("b", "a")
	if !s.Add("c") || s.Add("c") {
		t.Error("Add() should report insertion once")
	}
	s.Remove("b")
	if got := s.Sorted(); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Sorted() = %v", got)
	}
	if got := s.Minus(NewSet("a")); !got.Equal(NewSet("c")) {
		t.Errorf("Minus() = %v", got.Sorted())
	}
	if got := s.InOrder([]string{"c", "x", "a"}); !slices.Equal(got, []string{"c", "a"}) {
		t.Errorf("InOrder() = %v", got)
	}
	clone := s.Clone()
	clone.Add("z")
	if s.Has("z") {
		t.Error("Clone() shares storage")
	}
}
