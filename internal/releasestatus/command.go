package releasestatus

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/r3000/internal/dependencies"
	"github.com/temirov/r3000/internal/gitrepo"
	"github.com/temirov/r3000/internal/projects"
	"github.com/temirov/r3000/internal/report"
	"github.com/temirov/r3000/internal/tickets"
)

const (
	commandUseConstant                 = "list"
	commandShortDescriptionConstant    = "Show the release status of every configured project"
	commandLongDescriptionConstant     = "list inspects each configured project in order and reports whether a release branch is ready, lingering or not yet interesting. Inspection failures are reported inline and the remaining projects are still listed."
	outputFlagNameConstant             = "output"
	outputFlagDescriptionConstant      = "Output format: text or yaml"
	inspectionFailedLogMessageConstant = "project inspection failed"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandConfiguration captures the configuration sections used by the list command.
type CommandConfiguration struct {
	Release   Configuration
	Tickets   tickets.Configuration
	Projects  []projects.Project
	ColorMode string
}

// DefaultCommandConfiguration provides baseline configuration values for the list command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Release:   DefaultConfiguration(),
		Tickets:   tickets.DefaultConfiguration(),
		Projects:  nil,
		ColorMode: string(report.ColorModeAuto),
	}
}

// CommandBuilder assembles the list command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	Inspector                    GitInspector
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the list command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(outputFlagNameConstant, string(report.OutputFormatText), outputFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	outputFormat, outputFlagError := command.Flags().GetString(outputFlagNameConstant)
	if outputFlagError != nil {
		return outputFlagError
	}
	printer, printerError := report.NewPrinter(command.OutOrStdout(), report.Options{
		Format:    report.OutputFormat(outputFormat),
		ColorMode: report.ColorMode(configuration.ColorMode),
	})
	if printerError != nil {
		return printerError
	}

	catalog, catalogError := projects.NewCatalog(configuration.Projects, nil)
	if catalogError != nil {
		return catalogError
	}

	inspector, inspectorError := builder.resolveInspector(logger)
	if inspectorError != nil {
		return inspectorError
	}
	extractor, extractorError := tickets.NewExtractor(configuration.Tickets)
	if extractorError != nil {
		return extractorError
	}
	classifier, classifierError := NewClassifier(Dependencies{Inspector: inspector, TicketExtractor: extractor, Logger: logger}, configuration.Release)
	if classifierError != nil {
		return classifierError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	presentationOptions := PresentationOptions{Remote: configuration.Release.Sanitize().Remote}
	if command.HasParent() {
		presentationOptions.ExecutableName = command.Root().Name()
	}
	configuredProjects := catalog.Projects()
	failedCount := 0
	for _, project := range configuredProjects {
		entry, entryError := builder.describeProject(executionContext, classifier, project, presentationOptions)
		if entryError != nil {
			failedCount++
			logger.Debug(inspectionFailedLogMessageConstant, zap.String(projectNameLogFieldConstant, project.Name), zap.Error(entryError))
			entry = report.Entry{ProjectName: project.Name, Failure: entryError}
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

func (builder *CommandBuilder) describeProject(executionContext context.Context, classifier *Classifier, project projects.Project, options PresentationOptions) (report.Entry, error) {
	status, classificationError := classifier.Classify(executionContext, project)
	if classificationError != nil {
		return report.Entry{}, classificationError
	}
	presentation, describeError := Describe(status, options)
	if describeError != nil {
		return report.Entry{}, describeError
	}
	return presentation.ReportEntry(project.Name), nil
}

func (builder *CommandBuilder) resolveInspector(logger *zap.Logger) (GitInspector, error) {
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
