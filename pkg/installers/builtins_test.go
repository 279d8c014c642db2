package installers

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/matzehuels/devsetup/pkg/install"
	"github.com/matzehuels/devsetup/pkg/integrations/github"
)

func TestRust(t *testing.T) {
	fs, env := newFakeSystem(t)
	if got := run(t, (&Builder{}).rust(), env); got != install.Installed {
		t.Errorf("outcome = %v", got)
	}
	for _, want := range []string{
		"apt-get install -y -qq build-essential",
		"curl --proto =https --tlsv1.2 -sSf https://sh.rustup.rs",
		"sh -s -- -y",
		"rustup component add rust-analyzer",
	} {
		if !fs.ran(want) {
			t.Errorf("missing call %q in %q", want, fs.calls)
		}
	}
	cargoBin := filepath.Join(env.Home, ".cargo", "bin")
	if path := env.Shell.Getenv("PATH"); !strings.HasPrefix(path, cargoBin) {
		t.Errorf("PATH = %q, want %s first", path, cargoBin)
	}
}

func TestRustSkipsWhenPresent(t *testing.T) {
	fs, env := newFakeSystem(t)
	fs.install("rustc")
	if got := run(t, (&Builder{}).rust(), env); got != install.Satisfied {
		t.Errorf("outcome = %v", got)
	}
	if fs.ran("rustup") || fs.ran("curl") {
		t.Errorf("rustup ran: %q", fs.calls)
	}
}

func TestIncus(t *testing.T) {
	tests := []struct {
		name    string
		zfs     bool
		inited  bool
		backend string
		outcome install.Outcome
	}{
		{name: "dir backend", backend: "dir", outcome: install.Installed},
		{name: "zfs backend", zfs: true, backend: "zfs", outcome: install.Installed},
		{name: "already initialized", inited: true, outcome: install.Satisfied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, env := newFakeSystem(t)
			fs.install("incus")
			if tt.zfs {
				fs.install("zfs")
			}
			if !tt.inited {
				fs.fail["incus storage show default"] = true
			}
			if got := run(t, (&Builder{}).incus(), env); got != tt.outcome {
				t.Errorf("outcome = %v, want %v", got, tt.outcome)
			}
			if !fs.ran("systemctl start incus.service") {
				t.Errorf("service not started: %q", fs.calls)
			}
			initCmd := "incus admin init --auto --storage-backend="
			if tt.inited {
				if fs.ran(initCmd) {
					t.Errorf("init ran on initialized host")
				}
				return
			}
			if !fs.ran(initCmd + tt.backend) {
				t.Errorf("missing %s%s in %q", initCmd, tt.backend, fs.calls)
			}
		})
	}
}

func TestUnattendedUpgrades(t *testing.T) {
	fs, env := newFakeSystem(t)
	fs.install("unattended-upgrades")
	b := &Builder{AptConfDir: t.TempDir(), TempDir: t.TempDir()}

	if got := run(t, b.unattendedUpgrades(), env); got != install.Installed {
		t.Errorf("first run = %v", got)
	}
	data, err := os.ReadFile(filepath.Join(b.AptConfDir, "99unattended-upgrades-override"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != allOriginsOverride {
		t.Errorf("override = %q", data)
	}
	if fs.ran("apt-get") {
		t.Errorf("apt-get ran although the package is present")
	}

	if got := run(t, b.unattendedUpgrades(), env); got != install.Satisfied {
		t.Errorf("second run = %v", got)
	}
	if !strings.Contains(fs.out.String(), "origins already configured") {
		t.Errorf("output = %q", fs.out.String())
	}
	if entries, _ := os.ReadDir(b.TempDir); len(entries) != 0 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestGitToolsConfigure(t *testing.T) {
	fs, env := newFakeSystem(t)
	fs.install("delta", "difft")

	if got := run(t, (&Builder{}).delta(), env); got != install.Satisfied {
		t.Errorf("delta = %v", got)
	}
	if got := run(t, (&Builder{}).difft(), env); got != install.Satisfied {
		t.Errorf("difft = %v", got)
	}
	for _, want := range []string{
		"git config --global alias.dd",
		"git config --global alias.dl",
		"git config --global difftool.difftastic.cmd difft \"$LOCAL\" \"$REMOTE\"",
		"git config --global difftool.prompt false",
		"git config --global alias.dft",
	} {
		if !fs.ran(want) {
			t.Errorf("missing %q in %q", want, fs.calls)
		}
	}
	if fs.ran("cargo") {
		t.Errorf("cargo ran although binaries are present")
	}
}

func TestPyright(t *testing.T) {
	fs, env := newFakeSystem(t)
	run(t, (&Builder{}).pyright(), env)
	if !fs.ran("apt-get install -y -qq libatomic1") || !fs.ran("uv tool install pyright") {
		t.Errorf("calls = %q", fs.calls)
	}
}

type fakeReleases struct {
	asset      string
	url        string
	downloaded string
}

func (f *fakeReleases) LatestRelease(ctx context.Context, owner, repo string, refresh bool) (*github.Release, error) {
	url := f.url
	if url == "" {
		url = "https://example.invalid/helix.deb"
	}
	return &github.Release{
		TagName: "25.07.1",
		Assets: []github.Asset{
			{Name: "helix_25.7.1-1_" + f.asset + ".deb", URL: url},
		},
	}, nil
}

func (f *fakeReleases) Download(ctx context.Context, url, path string) error {
	f.downloaded = path
	return os.WriteFile(path, []byte("deb"), 0o644)
}

func writeHelixResources(t *testing.T, env *install.Env) {
	t.Helper()
	dir := filepath.Join(env.Resources, "helix")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, c := range helixConfigs {
		if err := os.WriteFile(filepath.Join(dir, c.file), []byte("# "+c.file+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestHelixInstallsDeb(t *testing.T) {
	fs, env := newFakeSystem(t)
	writeHelixResources(t, env)
	rel := &fakeReleases{asset: runtime.GOARCH}
	b := &Builder{Releases: rel, TempDir: t.TempDir()}

	if got := run(t, b.helix(), env); got != install.Installed {
		t.Errorf("outcome = %v", got)
	}
	if !fs.ran("dpkg -i " + rel.downloaded) {
		t.Errorf("calls = %q", fs.calls)
	}
	if _, err := os.Stat(rel.downloaded); !os.IsNotExist(err) {
		t.Errorf("downloaded package not removed")
	}
}

func TestHelixMissingAsset(t *testing.T) {
	_, env := newFakeSystem(t)
	b := &Builder{Releases: &fakeReleases{asset: "sparc"}, TempDir: t.TempDir()}
	if _, err := b.helix()(context.Background(), env); err == nil {
		t.Fatal("expected error for missing architecture")
	}
}

func TestHelixRejectsPlainHTTP(t *testing.T) {
	fs, env := newFakeSystem(t)
	rel := &fakeReleases{asset: runtime.GOARCH, url: "http://example.invalid/helix.deb"}
	b := &Builder{Releases: rel, TempDir: t.TempDir()}
	if _, err := b.helix()(context.Background(), env); err == nil {
		t.Fatal("expected error for non-https asset URL")
	}
	if rel.downloaded != "" || fs.ran("dpkg") {
		t.Errorf("downloaded = %q, calls = %q", rel.downloaded, fs.calls)
	}
}

func TestHelixConfigLinking(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, dst string)
		warnings int
		linked   bool
	}{
		{name: "fresh", linked: true},
		{
			name: "dangling symlink replaced",
			setup: func(t *testing.T, dst string) {
				if err := os.Symlink(filepath.Join(filepath.Dir(dst), "gone"), dst); err != nil {
					t.Fatal(err)
				}
			},
			linked: true,
		},
		{
			name: "conflicting file kept",
			setup: func(t *testing.T, dst string) {
				if err := os.WriteFile(dst, []byte("theme = \"mine\"\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			warnings: 1,
		},
		{
			name: "equivalent file kept",
			setup: func(t *testing.T, dst string) {
				if err := os.WriteFile(dst, []byte("  # config.toml  \n"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, env := newFakeSystem(t)
			fs.install("hx")
			writeHelixResources(t, env)

			dst := filepath.Join(env.Home, ".config", "helix", "config.toml")
			if tt.setup != nil {
				if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
					t.Fatal(err)
				}
				tt.setup(t, dst)
			}

			if got := run(t, (&Builder{}).helix(), env); got != install.Satisfied {
				t.Errorf("outcome = %v", got)
			}
			if n := len(env.Report.Warnings()); n != tt.warnings {
				t.Errorf("warnings = %d, want %d: %v", n, tt.warnings, env.Report.Warnings())
			}
			info, err := os.Lstat(dst)
			if err != nil {
				t.Fatal(err)
			}
			if isLink := info.Mode()&os.ModeSymlink != 0; isLink != tt.linked {
				t.Errorf("symlink = %v, want %v", isLink, tt.linked)
			}

			// A second run never changes anything.
			before := len(env.Report.Warnings())
			run(t, (&Builder{}).helix(), env)
			if tt.linked && len(env.Report.Warnings()) != before {
				t.Errorf("second run warned")
			}
		})
	}
}

func TestHelixMissingResourceWarns(t *testing.T) {
	fs, env := newFakeSystem(t)
	fs.install("hx")
	run(t, (&Builder{}).helix(), env)
	if n := len(env.Report.Warnings()); n != len(helixConfigs) {
		t.Errorf("warnings = %d, want %d", n, len(helixConfigs))
	}
}
