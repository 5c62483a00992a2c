// Package dependencies resolves optional command collaborators, building the
// shell-backed defaults when tests or callers did not inject their own.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/r3000/internal/execshell"
	"github.com/temirov/r3000/internal/gitrepo"
	"github.com/temirov/r3000/internal/ui"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Human-readable logging routes command events through the console event logger
// instead of the structured command fields.
func ResolveGitExecutor(existing gitrepo.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (gitrepo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	commandRunner := execshell.NewOSCommandRunner()
	var shellExecutor *execshell.ShellExecutor
	var creationError error
	if humanReadableLogging {
		shellExecutor, creationError = execshell.NewShellExecutorWithObserver(zap.NewNop(), commandRunner, ui.NewConsoleCommandEventLogger(logger))
	} else {
		shellExecutor, creationError = execshell.NewShellExecutor(logger, commandRunner)
	}
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveInspector builds a git inspector over executor using the operating system filesystem.
func ResolveInspector(executor gitrepo.GitExecutor) (*gitrepo.Inspector, error) {
	return gitrepo.NewInspector(executor, nil)
}
