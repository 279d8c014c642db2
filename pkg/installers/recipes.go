package installers

import (
	"context"

	"github.com/matzehuels/devsetup/pkg/install"
)

const binstallBootstrap = "curl -L --proto '=https' --tlsv1.2 -sSf " +
	"https://raw.githubusercontent.com/cargo-bins/cargo-binstall/main/install-from-binstall-release.sh | bash"

// Apt installs pkg with apt-get unless bin is already on PATH.
func Apt(pkg, bin string) install.Action {
	return func(ctx context.Context, env *install.Env) (install.Outcome, error) {
		if skip(env, bin) {
			return install.Satisfied, nil
		}
		if err := aptInstall(ctx, env, pkg); err != nil {
			return 0, err
		}
		env.Report.Done("done")
		return install.Installed, nil
	}
}

// Binstall installs a prebuilt crate with cargo-binstall, bootstrapping
// cargo-binstall itself when missing.
func Binstall(crate, bin string) install.Action {
	return func(ctx context.Context, env *install.Env) (install.Outcome, error) {
		if skip(env, bin) {
			return install.Satisfied, nil
		}
		if err := binstall(ctx, env, crate); err != nil {
			return 0, err
		}
		env.Report.Done("done")
		return install.Installed, nil
	}
}

// UVTool installs a Python tool with "uv tool install".
func UVTool(tool, bin string) install.Action {
	return func(ctx context.Context, env *install.Env) (install.Outcome, error) {
		if skip(env, bin) {
			return install.Satisfied, nil
		}
		if err := env.Shell.Run(ctx, "uv tool install "+tool); err != nil {
			return 0, err
		}
		env.Report.Done("done")
		return install.Installed, nil
	}
}

// Script runs cmds in order unless bin is already on PATH.
func Script(bin string, cmds []string, sudo bool) install.Action {
	return func(ctx context.Context, env *install.Env) (install.Outcome, error) {
		if skip(env, bin) {
			return install.Satisfied, nil
		}
		for _, cmd := range cmds {
			var err error
			if sudo {
				err = env.Shell.Sudo(ctx, env.Cred, cmd)
			} else {
				err = env.Shell.Run(ctx, cmd)
			}
			if err != nil {
				return 0, err
			}
		}
		env.Report.Done("done")
		return install.Installed, nil
	}
}

func skip(env *install.Env, bin string) bool {
	if !env.Shell.Installed(bin) {
		return false
	}
	env.Report.Log("already installed, skipping")
	return true
}

func aptInstall(ctx context.Context, env *install.Env, pkg string) error {
	return env.Shell.Sudo(ctx, env.Cred, "DEBIAN_FRONTEND=noninteractive apt-get install -y -qq "+pkg)
}

func binstall(ctx context.Context, env *install.Env, crate string) error {
	if !env.Shell.Installed("cargo-binstall") {
		err := env.Report.Task("cargo-binstall", func() error {
			return env.Shell.Run(ctx, binstallBootstrap)
		})
		if err != nil {
			return err
		}
	}
	return env.Shell.Run(ctx, "cargo binstall --no-confirm "+crate)
}
