package installers

import (
	"context"
	"maps"
	"path/filepath"
	"slices"

	"github.com/matzehuels/devsetup/pkg/catalog"
	"github.com/matzehuels/devsetup/pkg/dotfiles"
	"github.com/matzehuels/devsetup/pkg/errors"
	"github.com/matzehuels/devsetup/pkg/install"
	"github.com/matzehuels/devsetup/pkg/integrations/github"
)

// DefaultAptConfDir is where apt reads configuration snippets.
const DefaultAptConfDir = "/etc/apt/apt.conf.d"

// Releases finds and fetches release assets.
// *github.Client satisfies it.
type Releases interface {
	LatestRelease(ctx context.Context, owner, repo string, refresh bool) (*github.Release, error)
	Download(ctx context.Context, url, path string) error
}

// Builder creates actions. The zero value is usable for catalogs without
// builtins that download releases.
type Builder struct {
	Releases Releases
	// AptConfDir overrides DefaultAptConfDir.
	AptConfDir string
	// TempDir is where downloads are staged; it defaults to os.TempDir.
	TempDir string
}

type builtinFunc func(b *Builder) install.Action

var builtins = map[string]builtinFunc{
	"rust":                (*Builder).rust,
	"helix":               (*Builder).helix,
	"incus":               (*Builder).incus,
	"unattended-upgrades": (*Builder).unattendedUpgrades,
	"delta":               (*Builder).delta,
	"difft":               (*Builder).difft,
	"pyright":             (*Builder).pyright,
}

// Builtins returns the identities that have a builtin action.
func Builtins() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// Actions returns an action for every item in reg.
func (b *Builder) Actions(reg *catalog.Registry) (map[string]install.Action, error) {
	actions := make(map[string]install.Action, reg.Len())
	for _, it := range reg.Items() {
		a, err := b.action(it)
		if err != nil {
			return nil, err
		}
		actions[it.ID] = a
	}
	return actions, nil
}

func (b *Builder) action(it *catalog.Item) (install.Action, error) {
	r := it.Install
	pkg := r.Package
	if pkg == "" {
		pkg = it.ID
	}
	bin := r.Binary
	if bin == "" {
		bin = it.ID
	}

	switch r.EffectiveMethod() {
	case catalog.MethodApt:
		return Apt(pkg, bin), nil
	case catalog.MethodBinstall:
		return Binstall(pkg, bin), nil
	case catalog.MethodUVTool:
		return UVTool(pkg, bin), nil
	case catalog.MethodScript:
		return Script(bin, r.Script, r.Sudo), nil
	case catalog.MethodBuiltin:
		fn, ok := builtins[it.ID]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidCatalog,
				"item %q uses the builtin method but no builtin installer exists (builtins: %v)", it.ID, Builtins())
		}
		return fn(b), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "item %q: unknown install method %q", it.ID, r.Method)
	}
}

// Prepare returns the steps that run before any item.
func Prepare() []install.Step {
	return []install.Step{{Name: "apt update", Run: aptUpdate}}
}

// Finish returns the steps that run after every item succeeded.
func Finish() []install.Step {
	return []install.Step{{Name: "~/.local/bin on PATH", Run: localBinPath}}
}

func aptUpdate(ctx context.Context, env *install.Env) (install.Outcome, error) {
	if err := env.Shell.Sudo(ctx, env.Cred, "DEBIAN_FRONTEND=noninteractive apt-get update -qq"); err != nil {
		return 0, err
	}
	env.Report.Done("done")
	return install.Installed, nil
}

func localBinPath(ctx context.Context, env *install.Env) (install.Outcome, error) {
	profile := filepath.Join(env.Home, ".profile")
	changed, err := dotfiles.EnsureLine(profile, dotfiles.LocalBinPath, "Added by devsetup")
	if err != nil {
		return 0, err
	}
	if !changed {
		env.Report.Log("already configured")
		return install.Satisfied, nil
	}
	env.Report.Done("appended to %s", profile)
	return install.Installed, nil
}
