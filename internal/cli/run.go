package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/devsetup/pkg/catalog"
	"github.com/matzehuels/devsetup/pkg/errors"
	"github.com/matzehuels/devsetup/pkg/install"
	"github.com/matzehuels/devsetup/pkg/installers"
	"github.com/matzehuels/devsetup/pkg/selection"
)

// run is the root command: load the catalog, obtain the user's selection
// from flags or the menu, resolve it, and install (or print) the plan.
func (c *CLI) run(ctx context.Context, opts options, args []string) error {
	logger := loggerFromContext(ctx)

	reg, err := loadCatalog(opts.catalog)
	if err != nil {
		return err
	}
	logger.Debug("catalog loaded", "catalog", reg)

	if opts.list {
		printList(c.Out, reg)
		return nil
	}

	opts, err = applyArgs(opts, args)
	if err != nil {
		return err
	}

	userSelected, ok, err := c.userSelection(ctx, reg, opts)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.Out, "Aborted.")
		return nil
	}
	selected := selection.Resolve(reg, userSelected)
	logger.Debug("selection resolved", "user", userSelected.Len(), "resolved", selected.Len())

	b := &installers.Builder{Releases: newReleases(logger)}
	actions, err := b.Actions(reg)
	if err != nil {
		return err
	}
	orch := &install.Orchestrator{
		Registry: reg,
		Actions:  actions,
		Before:   installers.Prepare(),
		After:    installers.Finish(),
	}
	if err := orch.Validate(); err != nil {
		return err
	}

	if opts.dryRun {
		printPlan(c.Out, reg, userSelected, selected)
		return nil
	}
	return c.install(ctx, orch, selected, opts)
}

func loadCatalog(path string) (*catalog.Registry, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// applyArgs appends trailing positional arguments to whichever of --only or
// --skip was given. Positional arguments without either flag are rejected.
func applyArgs(opts options, args []string) (options, error) {
	if len(args) == 0 {
		return opts, nil
	}
	switch {
	case len(opts.only) > 0:
		opts.only = append(slices.Clone(opts.only), args...)
	case len(opts.skip) > 0:
		opts.skip = append(slices.Clone(opts.skip), args...)
	default:
		return opts, errors.New(errors.ErrCodeInvalidInput,
			"unexpected arguments %v: item names must follow --only or --skip", args)
	}
	return opts, nil
}

// userSelection returns the set of items the user asked for. ok is false
// when the user aborted the menu.
func (c *CLI) userSelection(ctx context.Context, reg *catalog.Registry, opts options) (selection.Set, bool, error) {
	all := selection.NewSet(reg.IDs()...)

	switch {
	case opts.all:
		return all, true, nil
	case len(opts.only) > 0:
		ids, err := reg.Match(opts.only)
		if err != nil {
			return nil, false, err
		}
		return selection.NewSet(ids...), true, nil
	case len(opts.skip) > 0:
		ids, err := reg.Match(opts.skip)
		if err != nil {
			return nil, false, err
		}
		return all.Minus(selection.NewSet(ids...)), true, nil
	}

	if !c.interactive() {
		return nil, false, errors.New(errors.ErrCodeNoTTY,
			"no TTY detected and no selection flag given.\nRerun with one of: --all, --only <item> [...], --skip <item> [...]")
	}
	return c.menu(ctx, reg)
}

// completeItems offers catalog identities and aliases for --only and --skip.
func (c *CLI) completeItems(opts *options) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		reg, err := loadCatalog(opts.catalog)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return reg.ValidNames(), cobra.ShellCompDirectiveNoFileComp
	}
}
