// Package install runs the actions for a resolved selection.
//
// # Orchestrator
//
// [Orchestrator.Run] executes, in order:
//
//  1. the preparation steps (package index refresh)
//  2. the action of every selected item, in registry order
//  3. the finishing steps (login shell PATH)
//
// The first failing step aborts the run; nothing already done is rolled
// back. Every action is idempotent and reports [Satisfied] when it had
// nothing to do, so rerunning after a failure is the recovery path.
//
// # Reporter
//
// [Reporter] renders the nested task log ("▶ name" headers with indented
// detail and command output), mirrors it without ANSI escapes into a log
// file, and collects warnings that are replayed when the run finishes.
package install
