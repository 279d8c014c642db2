// Package dotfiles links shipped configuration files into a home directory
// without clobbering what the user already has.
//
// [Link] is idempotent: a correct symlink is left alone, a dangling one is
// replaced, and an existing regular file is only reported, with a unified
// diff when its content differs beyond whitespace. [EnsureLine] appends a
// line to a shell profile once.
package dotfiles
