package install

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/matzehuels/devsetup/pkg/catalog"
	"github.com/matzehuels/devsetup/pkg/errors"
	"github.com/matzehuels/devsetup/pkg/observability"
	"github.com/matzehuels/devsetup/pkg/selection"
	"github.com/matzehuels/devsetup/pkg/shell"
)

// Outcome is what a successful action did.
type Outcome int

const (
	// Satisfied means the item was already in place.
	Satisfied Outcome = iota
	// Installed means the action changed the system.
	Installed
)

func (o Outcome) String() string {
	switch o {
	case Satisfied:
		return "satisfied"
	case Installed:
		return "installed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Env is what actions run against.
type Env struct {
	Shell  *shell.Runner
	Cred   *shell.Credential
	Report *Reporter
	// Home is the user's home directory.
	Home string
	// Resources is the directory holding config files to link.
	Resources string
}

// Action installs or configures one item. It must be idempotent.
type Action func(ctx context.Context, env *Env) (Outcome, error)

// Step is an action that runs regardless of the selection.
type Step struct {
	Name string
	Run  Action
}

// Result records the outcome of one step or item.
type Result struct {
	Name    string
	Outcome Outcome
}

// Report summarises a finished run.
type Report struct {
	Results  []Result
	Warnings []Warning
}

// Count returns how many results had outcome o.
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Orchestrator runs the actions for a selection.
type Orchestrator struct {
	Registry *catalog.Registry
	// Actions binds item identities to their actions.
	Actions map[string]Action
	// Before runs ahead of any item.
	Before []Step
	// After runs once every selected item succeeded.
	After []Step
}

// Validate checks that every item in the registry has an action.
func (o *Orchestrator) Validate() error {
	var missing []string
	for _, id := range o.Registry.IDs() {
		if o.Actions[id] == nil {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return errors.New(errors.ErrCodeInvalidCatalog, "no installer for: %v", missing)
	}
	return nil
}

// Plan returns the selected items in the order Run visits them.
func (o *Orchestrator) Plan(selected selection.Set) []string {
	return selected.InOrder(o.Registry.IDs())
}

// Run executes the preparation steps, the action of every selected item in
// registry order, and the finishing steps. It stops at the first failure.
// Identities in selected that the registry does not know are ignored.
func (o *Orchestrator) Run(ctx context.Context, env *Env, selected selection.Set) (*Report, error) {
	rep := &Report{}
	finish := func(err error) (*Report, error) {
		rep.Warnings = env.Report.Warnings()
		return rep, err
	}

	for _, s := range o.Before {
		if err := o.step(ctx, env, rep, s.Name, s.Name, s.Run); err != nil {
			return finish(err)
		}
	}
	for _, id := range o.Plan(selected) {
		item, _ := o.Registry.Item(id)
		action := o.Actions[id]
		if action == nil {
			return finish(errors.New(errors.ErrCodeInternal, "no installer for %q", id))
		}
		if err := o.step(ctx, env, rep, id, item.Title(), action); err != nil {
			return finish(err)
		}
	}
	for _, s := range o.After {
		if err := o.step(ctx, env, rep, s.Name, s.Name, s.Run); err != nil {
			return finish(err)
		}
	}
	return finish(nil)
}

func (o *Orchestrator) step(ctx context.Context, env *Env, rep *Report, name, title string, action Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	hooks := observability.Install()
	hooks.OnItemStart(ctx, name)
	start := time.Now()

	var outcome Outcome
	err := env.Report.Task(title, func() error {
		var err error
		outcome, err = action(ctx, env)
		if err != nil && ctx.Err() == nil {
			env.Report.Fail("FAILED: %v", err)
		}
		return err
	})
	if err != nil {
		hooks.OnItemComplete(ctx, name, "", time.Since(start), err)
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInstallFailed, err, "installing %s", name)
	}
	hooks.OnItemComplete(ctx, name, outcome.String(), time.Since(start), nil)
	rep.Results = append(rep.Results, Result{Name: name, Outcome: outcome})
	return nil
}
