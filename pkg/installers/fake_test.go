package installers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"mvdan.cc/sh/v3/interp"

	"github.com/matzehuels/devsetup/pkg/install"
	"github.com/matzehuels/devsetup/pkg/shell"
)

// fakeSystem stands in for the host: external commands are recorded instead
// of executed, and "installed" binaries are empty executables in a private
// PATH directory.
type fakeSystem struct {
	mu    sync.Mutex
	t     *testing.T
	bin   string
	calls []string
	fail  map[string]bool // commands (joined args) that exit 1
	out   *bytes.Buffer
}

func newFakeSystem(t *testing.T) (*fakeSystem, *install.Env) {
	t.Helper()
	fs := &fakeSystem{t: t, bin: t.TempDir(), fail: map[string]bool{}, out: &bytes.Buffer{}}

	home := t.TempDir()
	report := install.NewReporter(fs.out, nil, nil)
	runner := shell.New(
		shell.WithDir(home),
		shell.WithEnv("PATH="+fs.bin, "HOME="+home),
		shell.WithObserver(report),
		shell.WithExecHandlers(fs.handler),
	)
	env := &install.Env{
		Shell:     runner,
		Cred:      shell.RootCredential(),
		Report:    report,
		Home:      home,
		Resources: t.TempDir(),
	}
	return fs, env
}

func (fs *fakeSystem) install(names ...string) {
	fs.t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(fs.bin, name), []byte("#!/bin/sh\n"), 0o755); err != nil {
			fs.t.Fatal(err)
		}
	}
}

func (fs *fakeSystem) handler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		cmd := strings.Join(args, " ")
		fs.mu.Lock()
		fs.calls = append(fs.calls, cmd)
		failed := fs.fail[cmd]
		fs.mu.Unlock()
		if failed {
			return interp.ExitStatus(1)
		}
		if args[0] == "install" && len(args) == 5 {
			// install -m MODE SRC DST
			data, err := os.ReadFile(args[3])
			if err != nil {
				return interp.ExitStatus(1)
			}
			if err := os.WriteFile(args[4], data, 0o644); err != nil {
				return interp.ExitStatus(1)
			}
		}
		return nil
	}
}

// ran reports whether a recorded call starts with prefix.
func (fs *fakeSystem) ran(prefix string) bool {
	for _, c := range fs.calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

func run(t *testing.T, a install.Action, env *install.Env) install.Outcome {
	t.Helper()
	outcome, err := a(context.Background(), env)
	if err != nil {
		t.Fatalf("action error: %v", err)
	}
	return outcome
}
