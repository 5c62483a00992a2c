package releasetickets

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/r3000/internal/dependencies"
	"github.com/temirov/r3000/internal/gitrepo"
	"github.com/temirov/r3000/internal/projects"
	"github.com/temirov/r3000/internal/releasestatus"
	"github.com/temirov/r3000/internal/tickets"
)

const (
	commandUseConstant               = "list-tickets <technical-name>"
	commandShortDescriptionConstant  = "Print the issue-tracker query for tickets in the latest release branch"
	commandLongDescriptionConstant   = "list-tickets finds the latest release branch of the project with the given technical name, collects the ticket identifiers referenced in commits between master and that branch and prints an issue-tracker query URL for them. Projects with bitbucket-workspace and bitbucket-repository-slug custom properties also get a compare link."
	outputLineTemplateConstant       = "%s\n"
	releaseTicketsLogMessageConstant = "collected release tickets"
	projectLogFieldConstant          = "project"
	releaseBranchLogFieldConstant    = "release_branch"
	ticketsLogFieldConstant          = "tickets"
	argumentCountTemplateConstant    = "%w: expected 1 argument, received %d"
	technicalNameMessageConstant     = "technical name required"
)

// ErrTechnicalNameRequired indicates list-tickets was not given exactly one technical name.
var ErrTechnicalNameRequired = errors.New(technicalNameMessageConstant)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandConfiguration captures the configuration sections used by list-tickets.
type CommandConfiguration struct {
	Release  releasestatus.Configuration
	Tickets  tickets.Configuration
	Projects []projects.Project
}

// DefaultCommandConfiguration provides baseline configuration values for list-tickets.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Release:  releasestatus.DefaultConfiguration(),
		Tickets:  tickets.DefaultConfiguration(),
		Projects: nil,
	}
}

// CommandBuilder assembles the list-tickets command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	Inspector                    releasestatus.GitInspector
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the list-tickets command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  requireTechnicalName,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	catalog, catalogError := projects.NewCatalog(configuration.Projects, nil)
	if catalogError != nil {
		return catalogError
	}
	if argumentError := requireTechnicalName(command, arguments); argumentError != nil {
		return argumentError
	}
	project, findError := catalog.FindByTechnicalName(arguments[0])
	if findError != nil {
		return findError
	}

	service, serviceError := builder.buildService(configuration, logger)
	if serviceError != nil {
		return serviceError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	result, ticketsError := service.ReleaseTickets(executionContext, project)
	if ticketsError != nil {
		return ticketsError
	}
	logger.Debug(releaseTicketsLogMessageConstant,
		zap.String(projectLogFieldConstant, project.TechnicalName),
		zap.String(releaseBranchLogFieldConstant, result.ReleaseBranch),
		zap.Strings(ticketsLogFieldConstant, result.Tickets.Sorted()),
	)

	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, result.QueryURL)
	if len(result.CompareURL) > 0 {
		fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, result.CompareURL)
	}
	return nil
}

func (builder *CommandBuilder) buildService(configuration CommandConfiguration, logger *zap.Logger) (*Service, error) {
	inspector, inspectorError := builder.resolveInspector(logger)
	if inspectorError != nil {
		return nil, inspectorError
	}
	extractor, extractorError := tickets.NewExtractor(configuration.Tickets)
	if extractorError != nil {
		return nil, extractorError
	}
	queryBuilder, queryBuilderError := tickets.NewQueryBuilder(configuration.Tickets)
	if queryBuilderError != nil {
		return nil, queryBuilderError
	}
	classifier, classifierError := releasestatus.NewClassifier(releasestatus.Dependencies{Inspector: inspector, TicketExtractor: extractor, Logger: logger}, configuration.Release)
	if classifierError != nil {
		return nil, classifierError
	}
	return NewService(Dependencies{
		Inspector:       inspector,
		Classifier:      classifier,
		TicketExtractor: extractor,
		QueryBuilder:    queryBuilder,
		ReleasePrefix:   configuration.Release.Sanitize().ReleasePrefix,
	})
}

func (builder *CommandBuilder) resolveInspector(logger *zap.Logger) (releasestatus.GitInspector, error) {
	if builder.Inspector != nil {
		return builder.Inspector, nil
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

func requireTechnicalName(_ *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return fmt.Errorf(argumentCountTemplateConstant, ErrTechnicalNameRequired, len(arguments))
	}
	return nil
}
