package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/temirov/r3000/internal/execshell"
	"github.com/temirov/r3000/internal/filesystem"
)

const (
	gitMetadataDirectoryNameConstant            = ".git"
	gitForEachRefSubcommandConstant             = "for-each-ref"
	gitShortRefnameFormatFlagConstant           = "--format=%(refname:short)"
	gitLocalBranchesNamespaceConstant           = "refs/heads/"
	gitRemoteBranchReferenceTemplateConstant    = "refs/remotes/%s/%s"
	gitRevListSubcommandConstant                = "rev-list"
	gitCountFlagConstant                        = "--count"
	gitLogSubcommandConstant                    = "log"
	gitRecordSeparatedBodyFormatFlagConstant    = "--format=%x1e%B"
	gitRevParseSubcommandConstant               = "rev-parse"
	gitAbbrevRefFlagConstant                    = "--abbrev-ref"
	gitHeadReferenceConstant                    = "HEAD"
	gitFetchSubcommandConstant                  = "fetch"
	gitPruneFlagConstant                        = "--prune"
	gitQuietFlagConstant                        = "--quiet"
	gitMergeSubcommandConstant                  = "merge"
	gitFastForwardOnlyFlagConstant              = "--ff-only"
	gitRevisionRangeTemplateConstant            = "%s..%s"
	gitRemoteTrackingBranchTemplateConstant     = "%s/%s"
	gitFetchRefspecTemplateConstant             = "%s:%s"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	commitRecordSeparatorConstant               = "\x1e"
	gitExecutorMissingMessageConstant           = "git executor not configured"
	commitCountParseErrorTemplateConstant       = "unexpected commit count %q: %w"
	externalToolErrorTemplateConstant           = "%s in %s failed: %v"
)

// Operation names reported by ExternalToolError.
const (
	OperationInspectRepository = "inspect repository"
	OperationListBranches      = "list branches"
	OperationCountCommits      = "count commits"
	OperationReadCommitLog     = "read commit messages"
	OperationCurrentBranch     = "resolve current branch"
	OperationLookupRemote      = "look up remote branch"
	OperationFetchRemote       = "fetch remote"
	OperationSyncBranch        = "sync branch"
)

// ErrGitExecutorNotConfigured indicates the inspector was built without a git executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileSystem exposes the filesystem lookups required by the inspector.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
}

// ExternalToolError reports a git invocation or filesystem lookup that failed for a repository.
type ExternalToolError struct {
	Operation string
	Location  string
	Cause     error
}

// Error describes the failed operation.
func (toolError ExternalToolError) Error() string {
	return fmt.Sprintf(externalToolErrorTemplateConstant, toolError.Operation, toolError.Location, toolError.Cause)
}

// Unwrap exposes the underlying execshell or filesystem error.
func (toolError ExternalToolError) Unwrap() error {
	return toolError.Cause
}

// Inspector queries and updates local git repositories.
type Inspector struct {
	executor   GitExecutor
	fileSystem FileSystem
}

// NewInspector constructs an Inspector. A nil fileSystem selects the operating system.
func NewInspector(executor GitExecutor, fileSystem FileSystem) (*Inspector, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}
	return &Inspector{executor: executor, fileSystem: fileSystem}, nil
}

// HasRepository reports whether location contains a .git entry. Both directories
// and the .git files used by worktrees and submodules count.
func (inspector *Inspector) HasRepository(location string) (bool, error) {
	_, statError := inspector.fileSystem.Stat(filepath.Join(location, gitMetadataDirectoryNameConstant))
	if statError == nil {
		return true, nil
	}
	if errors.Is(statError, fs.ErrNotExist) {
		return false, nil
	}
	return false, ExternalToolError{Operation: OperationInspectRepository, Location: location, Cause: statError}
}

// BranchesStartingWith lists local branches whose short name starts with prefix,
// in the order git lists them (refname order).
func (inspector *Inspector) BranchesStartingWith(executionContext context.Context, location string, prefix string) ([]string, error) {
	output, executionError := inspector.runGit(executionContext, location, OperationListBranches,
		gitForEachRefSubcommandConstant, gitShortRefnameFormatFlagConstant, gitLocalBranchesNamespaceConstant)
	if executionError != nil {
		return nil, executionError
	}

	branches := make([]string, 0)
	for _, line := range strings.Split(output, "\n") {
		branchName := strings.TrimSpace(line)
		if len(branchName) == 0 || !strings.HasPrefix(branchName, prefix) {
			continue
		}
		branches = append(branches, branchName)
	}
	return branches, nil
}

// CommitCountBetween counts commits reachable from toRef but not from fromRef.
func (inspector *Inspector) CommitCountBetween(executionContext context.Context, location string, fromRef string, toRef string) (int, error) {
	output, executionError := inspector.runGit(executionContext, location, OperationCountCommits,
		gitRevListSubcommandConstant, gitCountFlagConstant, revisionRange(fromRef, toRef))
	if executionError != nil {
		return 0, executionError
	}

	trimmedOutput := strings.TrimSpace(output)
	commitCount, parseError := strconv.Atoi(trimmedOutput)
	if parseError != nil {
		return 0, ExternalToolError{
			Operation: OperationCountCommits,
			Location:  location,
			Cause:     fmt.Errorf(commitCountParseErrorTemplateConstant, trimmedOutput, parseError),
		}
	}
	return commitCount, nil
}

// CommitMessagesBetween returns the full messages of commits reachable from toRef but not from fromRef, newest first.
func (inspector *Inspector) CommitMessagesBetween(executionContext context.Context, location string, fromRef string, toRef string) ([]string, error) {
	output, executionError := inspector.runGit(executionContext, location, OperationReadCommitLog,
		gitLogSubcommandConstant, gitRecordSeparatedBodyFormatFlagConstant, revisionRange(fromRef, toRef))
	if executionError != nil {
		return nil, executionError
	}

	messages := make([]string, 0)
	for _, record := range strings.Split(output, commitRecordSeparatorConstant) {
		message := strings.TrimSpace(record)
		if len(message) == 0 {
			continue
		}
		messages = append(messages, message)
	}
	return messages, nil
}

// CurrentBranch returns the checked-out branch, or "HEAD" when detached.
func (inspector *Inspector) CurrentBranch(executionContext context.Context, location string) (string, error) {
	output, executionError := inspector.runGit(executionContext, location, OperationCurrentBranch,
		gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(output), nil
}

// RemoteBranchExists reports whether the remote-tracking branch <remote>/<branch> is known locally.
func (inspector *Inspector) RemoteBranchExists(executionContext context.Context, location string, remote string, branch string) (bool, error) {
	output, executionError := inspector.runGit(executionContext, location, OperationLookupRemote,
		gitForEachRefSubcommandConstant, gitShortRefnameFormatFlagConstant, fmt.Sprintf(gitRemoteBranchReferenceTemplateConstant, remote, branch))
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(output)) > 0, nil
}

// FetchRemote fetches and prunes remote-tracking branches of remote.
func (inspector *Inspector) FetchRemote(executionContext context.Context, location string, remote string, quiet bool) error {
	arguments := []string{gitFetchSubcommandConstant, gitPruneFlagConstant}
	if quiet {
		arguments = append(arguments, gitQuietFlagConstant)
	}
	arguments = append(arguments, remote)

	_, executionError := inspector.runGit(executionContext, location, OperationFetchRemote, arguments...)
	return executionError
}

// SyncBranch fast-forwards the local branch to <remote>/<branch>. The checked-out
// branch is merged with --ff-only; any other branch is updated through a fetch
// refspec, which git also restricts to fast-forwards.
func (inspector *Inspector) SyncBranch(executionContext context.Context, location string, remote string, branch string) error {
	currentBranch, currentBranchError := inspector.CurrentBranch(executionContext, location)
	if currentBranchError != nil {
		return currentBranchError
	}

	if currentBranch == branch {
		_, mergeError := inspector.runGit(executionContext, location, OperationSyncBranch,
			gitMergeSubcommandConstant, gitFastForwardOnlyFlagConstant, fmt.Sprintf(gitRemoteTrackingBranchTemplateConstant, remote, branch))
		return mergeError
	}

	_, fetchError := inspector.runGit(executionContext, location, OperationSyncBranch,
		gitFetchSubcommandConstant, remote, fmt.Sprintf(gitFetchRefspecTemplateConstant, branch, branch))
	return fetchError
}

func (inspector *Inspector) runGit(executionContext context.Context, location string, operation string, arguments ...string) (string, error) {
	result, executionError := inspector.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: location,
		EnvironmentVariables: map[string]string{
			gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant,
		},
	})
	if executionError != nil {
		return "", ExternalToolError{Operation: operation, Location: location, Cause: executionError}
	}
	return result.StandardOutput, nil
}

func revisionRange(fromRef string, toRef string) string {
	return fmt.Sprintf(gitRevisionRangeTemplateConstant, fromRef, toRef)
}
