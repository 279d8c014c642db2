// Package installers builds the install actions for a catalog.
//
// Items with a declarative recipe (apt, binstall, uv-tool, script) get a
// generic action; items with the builtin method are bound by identity to a
// hand-written action. [Builder.Actions] fails when a builtin item has no
// implementation, so a catalog that cannot be installed is rejected before
// anything runs.
//
// Every action first checks whether its binary is already on PATH and
// reports [install.Satisfied] without touching the system when it is.
package installers
