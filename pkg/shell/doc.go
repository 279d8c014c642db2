// Package shell runs installer commands.
//
// Commands are POSIX shell snippets ("curl ... | sh", "VAR=x apt-get ...")
// interpreted in-process by mvdan.cc/sh. Builtins run inside the interpreter;
// everything else is executed as a child process found on the runner's PATH.
//
// # Output
//
// Standard output and standard error are merged and delivered line by line to
// an [Observer], which the installer uses for its indented task log.
//
// # Privilege
//
// A [Credential] is obtained once with [Authenticate] and passed explicitly to
// every privileged call ([Runner.Sudo], [Runner.SudoSucceeds]). It records
// whether the process already runs as root, whether sudo works without a
// password, or the password to feed to "sudo -S".
package shell
