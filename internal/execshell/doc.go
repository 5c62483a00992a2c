// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging, typed failures and
// lifecycle notifications, and OSCommandRunner executes commands through
// os/exec. The git inspector and workspace services run every git invocation
// through this package so they can be tested with recording runners.
package execshell
