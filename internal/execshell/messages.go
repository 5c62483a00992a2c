package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	defaultWorkingDirectoryLabelConstant    = "current directory"
	allRemotesLabelConstant                 = "all remotes"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
	emptyStringConstant                     = ""
)

const (
	gitForEachRefSubcommandNameConstant = "for-each-ref"
	gitRevListSubcommandNameConstant    = "rev-list"
	gitLogSubcommandNameConstant        = "log"
	gitFetchSubcommandNameConstant      = "fetch"
	gitMergeSubcommandNameConstant      = "merge"
	gitRevParseSubcommandNameConstant   = "rev-parse"
	gitRemoteReferencePrefixConstant    = "refs/remotes/"
)

// gitMessageTemplates holds the four lifecycle templates of one git subcommand.
type gitMessageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

var gitMessageTemplatesBySubcommand = map[string]gitMessageTemplates{
	gitForEachRefSubcommandNameConstant: {
		start:            "Listing %s in %s",
		success:          "Listed %s in %s",
		failure:          "Failed to list %s in %s (exit code %d%s)",
		executionFailure: "Unable to list %s in %s: %s",
	},
	gitRevListSubcommandNameConstant: {
		start:            "Counting commits in %s for %s",
		success:          "Counted commits in %s for %s",
		failure:          "Failed to count commits in %s for %s (exit code %d%s)",
		executionFailure: "Unable to count commits in %s for %s: %s",
	},
	gitLogSubcommandNameConstant: {
		start:            "Reading commit messages in %s for %s",
		success:          "Read commit messages in %s for %s",
		failure:          "Failed to read commit messages in %s for %s (exit code %d%s)",
		executionFailure: "Unable to read commit messages in %s for %s: %s",
	},
	gitFetchSubcommandNameConstant: {
		start:            "Fetching %s in %s",
		success:          "Fetched %s in %s",
		failure:          "Failed to fetch %s in %s (exit code %d%s)",
		executionFailure: "Unable to fetch %s in %s: %s",
	},
	gitMergeSubcommandNameConstant: {
		start:            "Fast-forwarding to %s in %s",
		success:          "Fast-forwarded to %s in %s",
		failure:          "Failed to fast-forward to %s in %s (exit code %d%s)",
		executionFailure: "Unable to fast-forward to %s in %s: %s",
	},
	gitRevParseSubcommandNameConstant: {
		start:            "Resolving %s in %s",
		success:          "Resolved %s in %s",
		failure:          "Failed to resolve %s in %s (exit code %d%s)",
		executionFailure: "Unable to resolve %s in %s: %s",
	},
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	templates, templatesFound := gitMessageTemplatesBySubcommand[subcommand]
	if !templatesFound {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subject := formatter.describeGitSubject(subcommand, command.Details.Arguments[1:])
	workingDirectory := formatter.describeWorkingDirectory(command)

	// rev-list and log templates name the repository before the revision range.
	firstValue, secondValue := subject, workingDirectory
	if subcommand == gitRevListSubcommandNameConstant || subcommand == gitLogSubcommandNameConstant {
		firstValue, secondValue = workingDirectory, subject
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, firstValue, secondValue)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, firstValue, secondValue)
	case messageStageFailure:
		return fmt.Sprintf(templates.failure, firstValue, secondValue, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(templates.executionFailure, firstValue, secondValue, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) describeGitSubject(subcommand string, arguments []string) string {
	positionalArguments := positionalArgumentsOf(arguments)

	switch subcommand {
	case gitForEachRefSubcommandNameConstant:
		for _, argument := range positionalArguments {
			if strings.HasPrefix(argument, gitRemoteReferencePrefixConstant) {
				return strings.TrimPrefix(argument, gitRemoteReferencePrefixConstant)
			}
		}
		return "local branches"
	case gitFetchSubcommandNameConstant:
		if len(positionalArguments) == 0 {
			return allRemotesLabelConstant
		}
		return strings.Join(positionalArguments, commandArgumentsJoinSeparatorConstant)
	default:
		if len(positionalArguments) == 0 {
			return fallbackUnknownValueLabelConstant
		}
		return positionalArguments[len(positionalArguments)-1]
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := describeCommand(command) + formatter.formatWorkingDirectorySuffix(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func positionalArgumentsOf(arguments []string) []string {
	positionalArguments := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		positionalArguments = append(positionalArguments, trimmedArgument)
	}
	return positionalArguments
}
