package installers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/matzehuels/devsetup/pkg/dotfiles"
	"github.com/matzehuels/devsetup/pkg/errors"
	"github.com/matzehuels/devsetup/pkg/install"
)

const rustupInstall = "curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh -s -- -y"

func (b *Builder) rust() install.Action {
	return func(ctx context.Context, env *install.Env) (install.Outcome, error) {
		// rustup needs a C linker and headers.
		err := env.Report.Task("build-essential", func() error {
			if err := aptInstall(ctx, env, "build-essential"); err != nil {
				return err
			}
			env.Report.Done("done")
			return nil
		})
		if err != nil {
			return 0, err
		}

		env.Shell.PrependPath(filepath.Join(env.Home, ".cargo", "bin"))
		if skip(env, "rustc") {
			return install.Satisfied, nil
		}
		if err := env.Shell.Run(ctx, rustupInstall); err != nil {
			return 0, err
		}
		if err := env.Shell.Run(ctx, "rustup component add rust-analyzer"); err != nil {
			return 0, err
		}
		env.Report.Done("done")
		return install.Installed, nil
	}
}

func (b *Builder) incus() install.Action {
	return func(ctx context.Context, env *install.Env) (install.Outcome, error) {
		outcome := install.Satisfied
		if !skip(env, "incus") {
			if err := aptInstall(ctx, env, "incus"); err != nil {
				return 0, err
			}
			env.Report.Done("installed")
			outcome = install.Installed
		}

		backend := "dir"
		if env.Shell.Installed("zfs") {
			backend = "zfs"
		}
		err := env.Report.Task(fmt.Sprintf("incus init (%s)", backend), func() error {
			if err := env.Shell.Sudo(ctx, env.Cred, "systemctl start incus.service"); err != nil {
				return err
			}
			if env.Shell.SudoSucceeds(ctx, env.Cred, "incus storage show default") {
				env.Report.Log("already initialized, skipping")
				return nil
			}
			if err := env.Shell.Sudo(ctx, env.Cred, "incus admin init --auto --storage-backend="+backend); err != nil {
				return err
			}
			outcome = install.Installed
			env.Report.Done("done")
			return nil
		})
		return outcome, err
	}
}

// allOriginsOverride extends automatic upgrades from security-only to every
// configured origin. The 99 prefix sorts it after 50unattended-upgrades,
// which stays untouched; deleting the file restores the default.
const allOriginsOverride = "Unattended-Upgrade::Allowed-Origins {\n\t\"*:*\";\n};\n"

func (b *Builder) unattendedUpgrades() install.Action {
	return func(ctx context.Context, env *install.Env) (install.Outcome, error) {
		outcome := install.Satisfied
		if !skip(env, "unattended-upgrades") {
			if err := aptInstall(ctx, env, "unattended-upgrades"); err != nil {
				return 0, err
			}
			env.Report.Done("installed")
			outcome = install.Installed
		}

		dir := b.AptConfDir
		if dir == "" {
			dir = DefaultAptConfDir
		}
		override := filepath.Join(dir, "99unattended-upgrades-override")
		if _, err := os.Stat(override); err == nil {
			env.Report.Log("origins already configured, skipping")
			return outcome, nil
		}

		tmp, err := os.CreateTemp(b.tempDir(), "99unattended-upgrades-override-*")
		if err != nil {
			return 0, err
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.WriteString(allOriginsOverride); err != nil {
			tmp.Close()
			return 0, err
		}
		if err := tmp.Close(); err != nil {
			return 0, err
		}
		if err := env.Shell.Sudo(ctx, env.Cred, fmt.Sprintf("install -m 0644 %s %s", tmp.Name(), override)); err != nil {
			return 0, err
		}
		env.Report.Done("origins configured")
		return install.Installed, nil
	}
}

func (b *Builder) delta() install.Action {
	return binstallWithConfig("git-delta", "delta", []string{
		`git config --global alias.dd '!f() { git diff "$@" | delta; }; f'`,
		`git config --global alias.dl '!f() { git log -p "$@" | delta; }; f'`,
	})
}

func (b *Builder) difft() install.Action {
	return binstallWithConfig("difft", "difft", []string{
		`git config --global difftool.difftastic.cmd 'difft "$LOCAL" "$REMOTE"'`,
		`git config --global difftool.prompt false`,
		`git config --global alias.dft 'difftool --tool=difftastic --no-prompt'`,
	})
}

// binstallWithConfig installs crate and then always applies config, which
// consists of idempotent commands.
func binstallWithConfig(crate, bin string, config []string) install.Action {
	base := Binstall(crate, bin)
	return func(ctx context.Context, env *install.Env) (install.Outcome, error) {
		outcome, err := base(ctx, env)
		if err != nil {
			return 0, err
		}
		for _, cmd := range config {
			if err := env.Shell.Run(ctx, cmd); err != nil {
				return 0, err
			}
		}
		return outcome, nil
	}
}

func (b *Builder) pyright() install.Action {
	return func(ctx context.Context, env *install.Env) (install.Outcome, error) {
		if skip(env, "pyright") {
			return install.Satisfied, nil
		}
		// pyright-python fetches a prebuilt Node.js, which needs libatomic1
		// on minimal Debian and Ubuntu images.
		if err := aptInstall(ctx, env, "libatomic1"); err != nil {
			return 0, err
		}
		if err := env.Shell.Run(ctx, "uv tool install pyright"); err != nil {
			return 0, err
		}
		env.Report.Done("done")
		return install.Installed, nil
	}
}

// helixConfigs are linked from <resources>/helix into ~/.config/helix.
var helixConfigs = []struct{ file, label string }{
	{"config.toml", "helix config"},
	{"languages.toml", "helix languages"},
}

func (b *Builder) helix() install.Action {
	return func(ctx context.Context, env *install.Env) (install.Outcome, error) {
		outcome := install.Satisfied
		if !skip(env, "hx") {
			if err := b.installHelixDeb(ctx, env); err != nil {
				return 0, err
			}
			outcome = install.Installed
		}
		if err := linkHelixConfig(env); err != nil {
			return 0, err
		}
		return outcome, nil
	}
}

func (b *Builder) installHelixDeb(ctx context.Context, env *install.Env) error {
	if b.Releases == nil {
		return fmt.Errorf("helix: no release source configured")
	}
	deb := filepath.Join(b.tempDir(), "helix.deb")

	err := env.Report.Task("downloading latest .deb", func() error {
		rel, err := b.Releases.LatestRelease(ctx, "helix-editor", "helix", false)
		if err != nil {
			return err
		}
		asset, err := rel.Asset("_" + runtime.GOARCH + ".deb")
		if err != nil {
			return err
		}
		if err := errors.ValidateURL(asset.URL); err != nil {
			return err
		}
		env.Report.Log("%s (%s)", asset.Name, rel.TagName)
		return b.Releases.Download(ctx, asset.URL, deb)
	})
	if err != nil {
		return err
	}
	defer os.Remove(deb)

	return env.Report.Task("installing", func() error {
		if err := env.Shell.Sudo(ctx, env.Cred, "dpkg -i "+deb); err != nil {
			return err
		}
		env.Report.Done("done")
		return nil
	})
}

func linkHelixConfig(env *install.Env) error {
	for _, c := range helixConfigs {
		src := filepath.Join(env.Resources, "helix", c.file)
		dst := filepath.Join(env.Home, ".config", "helix", c.file)
		err := env.Report.Task(c.label, func() error {
			return linkConfig(env, src, dst)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func linkConfig(env *install.Env, src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		env.Report.Warn(fmt.Sprintf("%s not found, cannot link %s", src, dst), "")
		return nil
	}

	res, err := dotfiles.Link(src, dst)
	if err != nil {
		return err
	}
	switch res.Status {
	case dotfiles.AlreadyLinked:
		env.Report.Log("symlink already correct")
	case dotfiles.Equivalent:
		env.Report.Log("%s exists with equivalent content, skipping", dst)
	case dotfiles.Conflict:
		env.Report.Warn(fmt.Sprintf("%s differs from installable config, not overwriting (delete and rerun to update)", dst), res.Diff)
	case dotfiles.ReplacedDangling:
		env.Report.Log("replaced dangling symlink %s", dst)
		env.Report.Done("symlinked %s -> %s", dst, res.Target)
	default:
		env.Report.Done("symlinked %s -> %s", dst, res.Target)
	}
	return nil
}

func (b *Builder) tempDir() string {
	if b.TempDir != "" {
		return b.TempDir
	}
	return os.TempDir()
}
