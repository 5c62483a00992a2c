package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/r3000/internal/dependencies"
	"github.com/temirov/r3000/internal/gitrepo"
	"github.com/temirov/r3000/internal/projects"
	"github.com/temirov/r3000/internal/releasestatus"
	"github.com/temirov/r3000/internal/report"
)

const (
	commandUseConstant                           = "update"
	commandAliasConstant                         = "prepare-workspace"
	commandShortDescriptionConstant              = "Fetch and fast-forward the gitflow branches of every configured project"
	commandLongDescriptionConstant               = "update fetches the configured remote for each project and fast-forwards the local develop and master branches from their remote-tracking branches. A failing project is reported and the remaining projects are still updated."
	quietFlagNameConstant                        = "quiet"
	quietFlagDescriptionConstant                 = "Pass --quiet to git fetch"
	updatedIconConstant                          = "🔄"
	unchangedIconConstant                        = "➖"
	missingRepositoryIconConstant                = "❌"
	updatedDescriptionTemplateConstant           = "Updated %s"
	unchangedDescriptionConstant                 = "No branch to update"
	missingRepositoryDescriptionTemplateConstant = "No .git repository found at location %s"
	skippedBranchActionTemplateConstant          = "Remote branch %s/%s not found; skipped"
	branchListSeparatorConstant                  = ", "
	updateFailureLabelConstant                   = "update failed"
	updateFailedLogMessageConstant               = "project update failed"
	updatedProjectLogMessageConstant             = "updated project"
	projectNameLogFieldConstant                  = "project"
	syncedBranchesLogFieldConstant               = "synced"
	skippedBranchesLogFieldConstant              = "skipped"
	updatedKindConstant                          = "updated"
	unchangedKindConstant                        = "unchanged"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandConfiguration captures the configuration sections used by the update command.
type CommandConfiguration struct {
	Release   releasestatus.Configuration
	Projects  []projects.Project
	ColorMode string
}

// DefaultCommandConfiguration provides baseline configuration values for the update command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Release:   releasestatus.DefaultConfiguration(),
		Projects:  nil,
		ColorMode: string(report.ColorModeAuto),
	}
}

// CommandBuilder assembles the update command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	Synchronizer                 RepositorySynchronizer
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the update command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Aliases: []string{commandAliasConstant},
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.run,
	}

	command.Flags().Bool(quietFlagNameConstant, false, quietFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	quiet, quietFlagError := command.Flags().GetBool(quietFlagNameConstant)
	if quietFlagError != nil {
		return quietFlagError
	}

	if validationError := configuration.Release.Validate(); validationError != nil {
		return validationError
	}
	releaseConfiguration := configuration.Release.Sanitize()

	printer, printerError := report.NewPrinter(command.OutOrStdout(), report.Options{
		ColorMode:    report.ColorMode(configuration.ColorMode),
		FailureLabel: updateFailureLabelConstant,
	})
	if printerError != nil {
		return printerError
	}

	catalog, catalogError := projects.NewCatalog(configuration.Projects, nil)
	if catalogError != nil {
		return catalogError
	}

	synchronizer, synchronizerError := builder.resolveSynchronizer(logger)
	if synchronizerError != nil {
		return synchronizerError
	}
	service, serviceError := NewService(ServiceDependencies{Synchronizer: synchronizer})
	if serviceError != nil {
		return serviceError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	configuredProjects := catalog.Projects()
	failedCount := 0
	for _, project := range configuredProjects {
		result, updateError := service.Update(executionContext, Options{
			Location: project.Location,
			Remote:   releaseConfiguration.Remote,
			Branches: []string{releaseConfiguration.DevelopBranch, releaseConfiguration.MasterBranch},
			Quiet:    quiet,
		})

		var entry report.Entry
		if updateError != nil {
			failedCount++
			logger.Debug(updateFailedLogMessageConstant, zap.String(projectNameLogFieldConstant, project.Name), zap.Error(updateError))
			entry = report.Entry{ProjectName: project.Name, Failure: updateError}
		} else {
			logger.Debug(updatedProjectLogMessageConstant,
				zap.String(projectNameLogFieldConstant, project.Name),
				zap.Strings(syncedBranchesLogFieldConstant, result.SyncedBranches),
				zap.Strings(skippedBranchesLogFieldConstant, result.SkippedBranches),
			)
			entry = describeResult(project.Name, releaseConfiguration.Remote, result)
		}

		if writeError := printer.Write(entry); writeError != nil {
			return writeError
		}
	}
	if flushError := printer.Flush(); flushError != nil {
		return flushError
	}

	return projects.FailureSummary(failedCount, len(configuredProjects))
}

func describeResult(projectName string, remote string, result Result) report.Entry {
	if result.RepositoryMissing {
		return report.Entry{
			ProjectName: projectName,
			Kind:        string(releasestatus.KindNoGitRepository),
			Icon:        missingRepositoryIconConstant,
			Tone:        report.ToneFailure,
			Description: fmt.Sprintf(missingRepositoryDescriptionTemplateConstant, result.Location),
		}
	}

	nextActions := make([]string, 0, len(result.SkippedBranches))
	for _, skippedBranch := range result.SkippedBranches {
		nextActions = append(nextActions, fmt.Sprintf(skippedBranchActionTemplateConstant, remote, skippedBranch))
	}

	if len(result.SyncedBranches) == 0 {
		return report.Entry{
			ProjectName: projectName,
			Kind:        unchangedKindConstant,
			Icon:        unchangedIconConstant,
			Tone:        report.ToneWarning,
			Description: unchangedDescriptionConstant,
			NextActions: nextActions,
		}
	}

	return report.Entry{
		ProjectName: projectName,
		Kind:        updatedKindConstant,
		Icon:        updatedIconConstant,
		Tone:        report.ToneSuccess,
		Description: fmt.Sprintf(updatedDescriptionTemplateConstant, strings.Join(result.SyncedBranches, branchListSeparatorConstant)),
		NextActions: nextActions,
	}
}

func (builder *CommandBuilder) resolveSynchronizer(logger *zap.Logger) (RepositorySynchronizer, error) {
	if builder.Synchronizer != nil {
		return builder.Synchronizer, nil
	}
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return nil, executorError
	}
	inspector, inspectorError := dependencies.ResolveInspector(gitExecutor)
	if inspectorError != nil {
		return nil, inspectorError
	}
	return inspector, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
