package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/devsetup/pkg/buildinfo"
	"github.com/matzehuels/devsetup/pkg/catalog"
	"github.com/matzehuels/devsetup/pkg/selection"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "devsetup"

	// envResources overrides the directory holding config files to link.
	envResources = "DEVSETUP_RESOURCES"

	// envCatalog overrides the built-in catalog.
	envCatalog = "DEVSETUP_CATALOG"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	In  io.Reader
	Out io.Writer

	// interactive reports whether the menu can be shown.
	interactive func() bool
	// menu asks the user for a selection; ok is false on abort.
	menu func(ctx context.Context, reg *catalog.Registry) (sel selection.Set, ok bool, err error)
}

// New creates a new CLI instance with a default logger, reading from stdin
// and writing to stdout.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: newLogger(w, level),
		In:     os.Stdin,
		Out:    os.Stdout,
	}
	c.interactive = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	c.menu = func(ctx context.Context, reg *catalog.Registry) (selection.Set, bool, error) {
		return runMenu(ctx, reg, c.In, c.Out)
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// options are the root command's flags.
type options struct {
	list      bool
	all       bool
	only      []string
	skip      []string
	dryRun    bool
	catalog   string
	logFile   string
	resources string
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "devsetup [flags] [ITEM...]",
		Short: "devsetup installs a development workstation",
		Long: `devsetup installs and configures a development workstation on Debian-based
systems. Without flags it shows an interactive menu; --all, --only and --skip
select items non-interactively. Prerequisites of selected items are always
installed first.`,
		Example: `  devsetup --list
  devsetup --only helix zellij
  devsetup --skip incus --dry-run`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.run(ctx, opts, args)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	f := root.Flags()
	f.BoolVarP(&opts.list, "list", "l", false, "list available items and exit")
	f.BoolVar(&opts.all, "all", false, "install everything without showing the menu")
	f.StringSliceVar(&opts.only, "only", nil, "install only the listed items (and their prerequisites)")
	f.StringSliceVar(&opts.skip, "skip", nil, "install everything except the listed items")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the resolved plan without installing")
	f.StringVar(&opts.catalog, "catalog", os.Getenv(envCatalog), "load the item catalog from a TOML file (env "+envCatalog+")")
	f.StringVar(&opts.logFile, "log-file", "", "write a plain-text run log to this file (default "+defaultLogHint+")")
	f.StringVar(&opts.resources, "resources", os.Getenv(envResources), "directory holding config files to link (env "+envResources+")")
	root.MarkFlagsMutuallyExclusive("all", "only", "skip")

	_ = root.RegisterFlagCompletionFunc("only", c.completeItems(&opts))
	_ = root.RegisterFlagCompletionFunc("skip", c.completeItems(&opts))

	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Paths
// =============================================================================

const defaultLogHint = "$XDG_STATE_HOME/" + appName + "/install.log"

// stateDir returns the state directory using XDG standard
// (~/.local/state/devsetup/).
func stateDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", appName), nil
}

// resourcesDir returns the directory holding linkable config files: the
// flag value when set, otherwise "resources" next to the executable, falling
// back to ./resources.
func resourcesDir(flag string) string {
	if flag != "" {
		return flag
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), "resources")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "resources"
}
