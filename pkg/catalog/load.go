package catalog

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/devsetup/pkg/errors"
)

//go:embed default.toml
var defaultCatalog []byte

// Entry kinds accepted in catalog files.
const (
	entryItem  = "item"
	entryGroup = "group"
)

type fileSchema struct {
	Entries []entrySchema `toml:"entry"`
}

type entrySchema struct {
	ID          string        `toml:"id"`
	Kind        string        `toml:"kind"`
	Label       string        `toml:"label"`
	Group       string        `toml:"group"`
	Requires    []string      `toml:"requires"`
	Alias       string        `toml:"alias"`
	Description string        `toml:"description"`
	Install     *recipeSchema `toml:"install"`
}

type recipeSchema struct {
	Method  string   `toml:"method"`
	Package string   `toml:"package"`
	Binary  string   `toml:"binary"`
	Script  []string `toml:"script"`
	Sudo    bool     `toml:"sudo"`
}

// Default returns the built-in catalog.
func Default() (*Registry, error) {
	return Parse(bytes.NewReader(defaultCatalog))
}

// Load reads a catalog from a TOML file.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidCatalog, err, "open catalog")
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a TOML catalog and validates it with New. Unknown keys are
// rejected so that typos do not silently drop requirements.
func Parse(r io.Reader) (*Registry, error) {
	var f fileSchema
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidCatalog, err, "decode catalog")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidCatalog, "unknown catalog keys: %s", strings.Join(keys, ", "))
	}

	nodes := make([]Node, 0, len(f.Entries))
	for i, e := range f.Entries {
		n, err := e.node()
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidCatalog, err, "entry %d (%q)", i, e.ID)
		}
		nodes = append(nodes, n)
	}
	return New(nodes)
}

func (e entrySchema) node() (Node, error) {
	switch e.Kind {
	case "", entryItem:
	case entryGroup:
		if len(e.Requires) > 0 || e.Install != nil || e.Alias != "" {
			return nil, errs.New(errs.ErrCodeInvalidCatalog, "groups cannot declare requires, alias or install")
		}
		return &Group{ID: e.ID, Label: e.Label, Parent: e.Group}, nil
	default:
		return nil, errs.New(errs.ErrCodeInvalidCatalog, "unknown kind %q (want %q or %q)", e.Kind, entryItem, entryGroup)
	}

	it := &Item{
		ID:          e.ID,
		Label:       e.Label,
		Group:       e.Group,
		Requires:    e.Requires,
		Alias:       e.Alias,
		Description: e.Description,
	}
	if e.Install != nil {
		it.Install = Recipe{
			Method:  e.Install.Method,
			Package: e.Install.Package,
			Binary:  e.Install.Binary,
			Script:  e.Install.Script,
			Sudo:    e.Install.Sudo,
		}
	}
	if err := validateRecipe(it.Install); err != nil {
		return nil, err
	}
	return it, nil
}

func validateRecipe(r Recipe) error {
	m := r.EffectiveMethod()
	if !knownMethods[m] {
		return errs.New(errs.ErrCodeInvalidCatalog, "unknown install method %q", m)
	}
	if m == MethodScript {
		if len(r.Script) == 0 {
			return errs.New(errs.ErrCodeInvalidCatalog, "install method %q needs a non-empty script", m)
		}
		if r.Binary == "" {
			return errs.New(errs.ErrCodeInvalidCatalog, "install method %q needs a binary to detect existing installs", m)
		}
	} else if len(r.Script) > 0 {
		return errs.New(errs.ErrCodeInvalidCatalog, "script is only valid with method %q", MethodScript)
	}
	return nil
}
