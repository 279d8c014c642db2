package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/devsetup/pkg/errors"
	"github.com/matzehuels/devsetup/pkg/install"
	"github.com/matzehuels/devsetup/pkg/installers"
	"github.com/matzehuels/devsetup/pkg/integrations/github"
	"github.com/matzehuels/devsetup/pkg/selection"
	"github.com/matzehuels/devsetup/pkg/shell"
)

// releaseCacheTTL bounds how long a "latest release" answer is reused.
const releaseCacheTTL = time.Hour

// requiredCommands must be on PATH before anything is installed.
var requiredCommands = []string{"sh", "apt-get"}

// newReleases returns the GitHub release source, or nil when the cache
// directory is unusable. Installers that need releases fail on their own.
func newReleases(logger *log.Logger) installers.Releases {
	client, err := github.NewClient(os.Getenv("GITHUB_TOKEN"), releaseCacheTTL)
	if err != nil {
		logger.Warn("GitHub releases unavailable", "err", err)
		return nil
	}
	return client
}

// checkRuntime verifies the host can run installers at all.
func checkRuntime(r *shell.Runner) error {
	for _, name := range requiredCommands {
		if !r.Installed(name) {
			return errors.New(errors.ErrCodeMissingRuntime,
				"%s not found on PATH: devsetup needs a Debian-based system with apt", name)
		}
	}
	return nil
}

// install runs the orchestrator for selected, writing the task log to the
// terminal and to the log file.
func (c *CLI) install(ctx context.Context, orch *install.Orchestrator, selected selection.Set, opts options) error {
	logger := loggerFromContext(ctx)
	registerLogHooks(logger)

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("home directory: %w", err)
	}

	runner := shell.New()
	runner.PrependPath(filepath.Join(home, ".local", "bin"))
	if err := checkRuntime(runner); err != nil {
		return err
	}

	logFile, err := openLogFile(opts.logFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger.Debug("writing run log", "path", logFile.Name())

	report := install.NewReporter(c.Out, logFile, logger)
	runner.SetObserver(report)
	env := &install.Env{
		Shell:     runner,
		Report:    report,
		Home:      home,
		Resources: resourcesDir(opts.resources),
	}

	prog := newProgress(logger)
	err = report.Task("Dev environment setup", func() error {
		cred, err := shell.Authenticate(ctx, runner, shell.TerminalPassword("Enter sudo password: "))
		if err != nil {
			return err
		}
		logger.Debug("privilege", "mode", cred.Mode())
		env.Cred = cred

		result, err := orch.Run(ctx, env, selected)
		if result != nil {
			logger.Debug("run finished",
				"installed", result.Count(install.Installed),
				"satisfied", result.Count(install.Satisfied))
		}
		return err
	})
	report.Summary()
	if err != nil {
		return err
	}
	report.Log("Setup complete.")
	prog.done("Setup complete")
	return nil
}

// openLogFile creates the run log, truncating any previous one.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		dir, err := stateDir()
		if err != nil {
			return nil, fmt.Errorf("state dir: %w", err)
		}
		path = filepath.Join(dir, "install.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
