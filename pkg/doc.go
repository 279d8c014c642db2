// Package pkg provides the libraries behind devsetup, an interactive
// installer for development workstations.
//
// # Overview
//
// The pkg directory is organized leaves first:
//
//  1. [catalog] - The item registry: installable items, visual groups and
//     their prerequisites, loaded from TOML
//  2. [dag] - Requirement graph used to reject cyclic catalogs
//  3. [selection] - The resolver and the checklist behind the menu
//  4. [shell], [dotfiles] - Command execution and config-file handling
//  5. [install], [installers] - The orchestrator and the concrete actions
//  6. [integrations], [httputil] - GitHub release lookups with caching
//
// # Architecture
//
// The data flow through devsetup:
//
//	Catalog (TOML)
//	     ↓
//	[catalog] registry (validated once at startup)
//	     ↓
//	menu or --all/--only/--skip  →  user selection
//	     ↓
//	[selection.Resolve] (closure over prerequisites)
//	     ↓
//	[install.Orchestrator] (registry order, fail-fast)
//
// The resolver is the single source of truth: every front-end produces input
// to it and none bypasses it.
//
// # Quick Start
//
//	reg, _ := catalog.Default()
//	ids, _ := reg.Match([]string{"helix", "zellij"})
//	selected := selection.Resolve(reg, selection.NewSet(ids...))
//	fmt.Println(selected.InOrder(reg.IDs())) // [rust zellij helix]
//
// [catalog]: https://pkg.go.dev/github.com/matzehuels/devsetup/pkg/catalog
// [dag]: https://pkg.go.dev/github.com/matzehuels/devsetup/pkg/dag
// [selection]: https://pkg.go.dev/github.com/matzehuels/devsetup/pkg/selection
// [selection.Resolve]: https://pkg.go.dev/github.com/matzehuels/devsetup/pkg/selection#Resolve
// [shell]: https://pkg.go.dev/github.com/matzehuels/devsetup/pkg/shell
// [dotfiles]: https://pkg.go.dev/github.com/matzehuels/devsetup/pkg/dotfiles
// [install]: https://pkg.go.dev/github.com/matzehuels/devsetup/pkg/install
// [install.Orchestrator]: https://pkg.go.dev/github.com/matzehuels/devsetup/pkg/install#Orchestrator
// [installers]: https://pkg.go.dev/github.com/matzehuels/devsetup/pkg/installers
// [integrations]: https://pkg.go.dev/github.com/matzehuels/devsetup/pkg/integrations
// [httputil]: https://pkg.go.dev/github.com/matzehuels/devsetup/pkg/httputil
package pkg
