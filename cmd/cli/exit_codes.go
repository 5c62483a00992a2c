package cli

import (
	"errors"

	"github.com/temirov/r3000/internal/gitrepo"
	"github.com/temirov/r3000/internal/projects"
	"github.com/temirov/r3000/internal/releasestatus"
	"github.com/temirov/r3000/internal/releasetickets"
	"github.com/temirov/r3000/internal/report"
	"github.com/temirov/r3000/internal/tickets"
)

// Process exit codes returned by ExitCode.
const (
	ExitCodeSuccess            = 0
	ExitCodeFailure            = 1
	ExitCodeConfigurationError = 2
	ExitCodeExternalToolError  = 3
	ExitCodeUsageError         = 4
	ExitCodeNoReleaseBranch    = 5
)

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(executionError error) int {
	if executionError == nil {
		return ExitCodeSuccess
	}

	switch {
	case errors.Is(executionError, ErrConfiguration),
		errors.Is(executionError, projects.ErrInvalidConfiguration),
		errors.Is(executionError, releasestatus.ErrInvalidConfiguration),
		errors.Is(executionError, tickets.ErrInvalidConfiguration),
		errors.Is(executionError, report.ErrInvalidOptions):
		return ExitCodeConfigurationError
	case errors.Is(executionError, ErrUsage),
		errors.Is(executionError, projects.ErrProjectNotFound),
		errors.Is(executionError, releasetickets.ErrTechnicalNameRequired):
		return ExitCodeUsageError
	case errors.Is(executionError, releasetickets.ErrNoReleaseBranch):
		return ExitCodeNoReleaseBranch
	case errors.Is(executionError, projects.ErrProjectFailures):
		return ExitCodeExternalToolError
	}

	var toolError gitrepo.ExternalToolError
	if errors.As(executionError, &toolError) {
		return ExitCodeExternalToolError
	}
	return ExitCodeFailure
}
