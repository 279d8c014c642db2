package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/matzehuels/devsetup/pkg/errors"
)

// Mode is how privileged commands are elevated.
type Mode int

const (
	// ModeRoot runs privileged commands directly.
	ModeRoot Mode = iota
	// ModePasswordless prefixes privileged commands with sudo.
	ModePasswordless
	// ModePassword feeds a cached password to "sudo -S".
	ModePassword
)

func (m Mode) String() string {
	switch m {
	case ModeRoot:
		return "root"
	case ModePasswordless:
		return "passwordless sudo"
	case ModePassword:
		return "sudo with password"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Credential is the privilege context for one run.
type Credential struct {
	mode     Mode
	password string
}

// RootCredential returns a credential for a process that already runs as root.
func RootCredential() *Credential { return &Credential{mode: ModeRoot} }

// Mode returns how privileged commands are elevated.
func (c *Credential) Mode() Mode { return c.mode }

// PasswordFunc reads a password from the user.
type PasswordFunc func() (string, error)

// TerminalPassword prompts on stderr and reads a password from stdin without
// echoing it.
func TerminalPassword(prompt string) PasswordFunc {
	return func() (string, error) {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", errors.New(errors.ErrCodeNoTTY, "sudo needs a password but stdin is not a terminal")
		}
		fmt.Fprint(os.Stderr, prompt)
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}
}

var geteuid = os.Geteuid

// Authenticate determines how privileged commands will run: directly when the
// process is root, through sudo when it needs no password, and otherwise with
// a password read from prompt and verified once.
func Authenticate(ctx context.Context, r *Runner, prompt PasswordFunc) (*Credential, error) {
	if geteuid() == 0 {
		return RootCredential(), nil
	}
	if r.Succeeds(ctx, "sudo -n true") {
		return &Credential{mode: ModePasswordless}, nil
	}

	pw, err := prompt()
	if err != nil {
		return nil, err
	}
	cred := &Credential{mode: ModePassword, password: pw}
	if !r.SudoSucceeds(ctx, cred, "true") {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New(errors.ErrCodeUnauthorized, "incorrect sudo password")
	}
	return cred, nil
}

// Sudo runs cmd with elevated privilege, streaming output like Run. The
// observer sees cmd without the sudo prefix.
func (r *Runner) Sudo(ctx context.Context, cred *Credential, cmd string) error {
	r.notifyCommand(cmd)
	full, stdin := cred.wrap(cmd)
	err := r.exec(ctx, full, stdin, r.observer)
	if exitErr, ok := err.(*ExitError); ok {
		exitErr.Cmd = cmd
	}
	return err
}

// SudoSucceeds runs cmd silently with elevated privilege and reports whether
// it exited with status 0.
func (r *Runner) SudoSucceeds(ctx context.Context, cred *Credential, cmd string) bool {
	full, stdin := cred.wrap(cmd)
	return r.exec(ctx, full, stdin, nil) == nil
}

func (c *Credential) wrap(cmd string) (string, io.Reader) {
	switch c.mode {
	case ModeRoot:
		return cmd, nil
	case ModePassword:
		return "sudo -S -p '' " + cmd, strings.NewReader(c.password + "\n")
	default:
		return "sudo " + cmd, nil
	}
}
