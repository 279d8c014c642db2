package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Observer receives the commands a Runner executes and their output.
type Observer interface {
	// Command is called with each command before it runs.
	Command(cmd string)
	// Output is called with each line the command prints, without the
	// trailing newline.
	Output(line string)
}

// ExitError reports a command that exited with a non-zero status.
type ExitError struct {
	Cmd  string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command failed (exit %d): %s", e.Code, e.Cmd)
}

// Middleware wraps the interpreter's handler for external commands.
type Middleware = func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc

// Runner executes shell commands with a private environment.
//
// The zero value is not usable; create one with [New]. A Runner is not safe
// for concurrent use.
type Runner struct {
	env      map[string]string
	dir      string
	observer Observer
	handlers []Middleware
}

// Option configures a Runner.
type Option func(*Runner)

// WithObserver sets the observer that receives commands and output.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observer = o }
}

// WithDir sets the working directory. It defaults to the process's.
func WithDir(dir string) Option {
	return func(r *Runner) { r.dir = dir }
}

// WithEnv replaces the inherited environment with pairs of the form
// "KEY=value".
func WithEnv(pairs ...string) Option {
	return func(r *Runner) { r.env = parseEnv(pairs) }
}

// WithExecHandlers adds middleware around external command execution.
func WithExecHandlers(m ...Middleware) Option {
	return func(r *Runner) { r.handlers = append(r.handlers, m...) }
}

// New returns a Runner that inherits the process environment.
func New(opts ...Option) *Runner {
	r := &Runner{env: parseEnv(os.Environ())}
	for _, opt := range opts {
		opt(r)
	}
	if r.dir == "" {
		r.dir, _ = os.Getwd()
	}
	return r
}

// SetObserver replaces the observer; nil discards output.
func (r *Runner) SetObserver(o Observer) { r.observer = o }

// Getenv returns the value of key in the runner's environment.
func (r *Runner) Getenv(key string) string { return r.env[key] }

// Setenv sets key in the runner's environment for subsequent commands.
func (r *Runner) Setenv(key, value string) { r.env[key] = value }

// PrependPath puts dir at the front of PATH for subsequent commands.
func (r *Runner) PrependPath(dir string) {
	path := r.env["PATH"]
	for _, p := range strings.Split(path, ":") {
		if p == dir {
			return
		}
	}
	if path == "" {
		r.env["PATH"] = dir
		return
	}
	r.env["PATH"] = dir + ":" + path
}

// LookPath reports the absolute path of the executable name on the runner's
// PATH.
func (r *Runner) LookPath(name string) (string, error) {
	return interp.LookPathDir(r.dir, r.environ(), name)
}

// Installed reports whether name is an executable on the runner's PATH.
func (r *Runner) Installed(name string) bool {
	_, err := r.LookPath(name)
	return err == nil
}

// Run executes cmd, streaming its output to the observer.
// A non-zero exit status is returned as *ExitError.
func (r *Runner) Run(ctx context.Context, cmd string) error {
	r.notifyCommand(cmd)
	return r.exec(ctx, cmd, nil, r.observer)
}

// Succeeds runs cmd silently and reports whether it exited with status 0.
func (r *Runner) Succeeds(ctx context.Context, cmd string) bool {
	return r.exec(ctx, cmd, nil, nil) == nil
}

// Output runs cmd silently and returns what it printed.
func (r *Runner) Output(ctx context.Context, cmd string) (string, error) {
	var c collector
	err := r.exec(ctx, cmd, nil, &c)
	return strings.Join(c.lines, "\n"), err
}

func (r *Runner) exec(ctx context.Context, cmd string, stdin io.Reader, obs Observer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	prog, err := syntax.NewParser().Parse(strings.NewReader(cmd), "")
	if err != nil {
		return fmt.Errorf("parse %q: %w", cmd, err)
	}

	out := &lineWriter{observer: obs}
	opts := []interp.RunnerOption{
		interp.Dir(r.dir),
		interp.Env(r.environ()),
		interp.StdIO(stdin, out, out),
	}
	if len(r.handlers) > 0 {
		opts = append(opts, interp.ExecHandlers(r.handlers...))
	}
	runner, err := interp.New(opts...)
	if err != nil {
		return fmt.Errorf("create interpreter: %w", err)
	}

	err = runner.Run(ctx, prog)
	out.Flush()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return &ExitError{Cmd: cmd, Code: int(status)}
	}
	return fmt.Errorf("run %q: %w", cmd, err)
}

func (r *Runner) notifyCommand(cmd string) {
	if r.observer != nil {
		r.observer.Command(cmd)
	}
}

func (r *Runner) environ() expand.Environ {
	pairs := make([]string, 0, len(r.env))
	for k, v := range r.env {
		pairs = append(pairs, k+"="+v)
	}
	return expand.ListEnviron(pairs...)
}

func parseEnv(pairs []string) map[string]string {
	env := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}
	return env
}

type collector struct{ lines []string }

func (c *collector) Command(string)       {}
func (c *collector) Output(line string) { c.lines = append(c.lines, line) }
