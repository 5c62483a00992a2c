package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	locationRequiredMessageConstant     = "project location must be provided"
	remoteRequiredMessageConstant       = "remote name must be provided"
	synchronizerMissingMessageConstant  = "repository synchronizer not configured"
	gitFetchFailureTemplateConstant     = "failed to fetch %s: %w"
	branchLookupFailureTemplateConstant = "failed to look up %s/%s: %w"
	branchSyncFailureTemplateConstant   = "failed to fast-forward %s: %w"
)

// ErrLocationRequired indicates the project location option was empty.
var ErrLocationRequired = errors.New(locationRequiredMessageConstant)

// ErrRemoteRequired indicates the remote option was empty.
var ErrRemoteRequired = errors.New(remoteRequiredMessageConstant)

// ErrSynchronizerNotConfigured indicates the synchronizer dependency was missing.
var ErrSynchronizerNotConfigured = errors.New(synchronizerMissingMessageConstant)

// RepositorySynchronizer performs the git operations required by an update.
type RepositorySynchronizer interface {
	HasRepository(location string) (bool, error)
	FetchRemote(executionContext context.Context, location string, remote string, quiet bool) error
	RemoteBranchExists(executionContext context.Context, location string, remote string, branch string) (bool, error)
	SyncBranch(executionContext context.Context, location string, remote string, branch string) error
}

// ServiceDependencies enumerates external collaborators required for workspace updates.
type ServiceDependencies struct {
	Synchronizer RepositorySynchronizer
}

// Options configures the update of one project.
type Options struct {
	Location string
	Remote   string
	Branches []string
	Quiet    bool
}

// Result captures the observable outcomes of an update.
type Result struct {
	Location          string
	RepositoryMissing bool
	SyncedBranches    []string
	SkippedBranches   []string
}

// Service updates local gitflow branches through git.
type Service struct {
	synchronizer RepositorySynchronizer
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Synchronizer == nil {
		return nil, ErrSynchronizerNotConfigured
	}
	return &Service{synchronizer: dependencies.Synchronizer}, nil
}

// Update fetches the remote and fast-forwards each branch whose remote-tracking branch
// exists. Branches without one are skipped. A location without a repository is reported
// in the result rather than as an error.
func (service *Service) Update(executionContext context.Context, options Options) (Result, error) {
	trimmedLocation := strings.TrimSpace(options.Location)
	if len(trimmedLocation) == 0 {
		return Result{}, ErrLocationRequired
	}
	trimmedRemote := strings.TrimSpace(options.Remote)
	if len(trimmedRemote) == 0 {
		return Result{}, ErrRemoteRequired
	}

	result := Result{Location: trimmedLocation, SyncedBranches: []string{}, SkippedBranches: []string{}}

	repositoryPresent, repositoryError := service.synchronizer.HasRepository(trimmedLocation)
	if repositoryError != nil {
		return Result{}, repositoryError
	}
	if !repositoryPresent {
		result.RepositoryMissing = true
		return result, nil
	}

	if fetchError := service.synchronizer.FetchRemote(executionContext, trimmedLocation, trimmedRemote, options.Quiet); fetchError != nil {
		return Result{}, fmt.Errorf(gitFetchFailureTemplateConstant, trimmedRemote, fetchError)
	}

	for _, branch := range options.Branches {
		trimmedBranch := strings.TrimSpace(branch)
		if len(trimmedBranch) == 0 {
			continue
		}

		remoteBranchExists, lookupError := service.synchronizer.RemoteBranchExists(executionContext, trimmedLocation, trimmedRemote, trimmedBranch)
		if lookupError != nil {
			return Result{}, fmt.Errorf(branchLookupFailureTemplateConstant, trimmedRemote, trimmedBranch, lookupError)
		}
		if !remoteBranchExists {
			result.SkippedBranches = append(result.SkippedBranches, trimmedBranch)
			continue
		}

		if syncError := service.synchronizer.SyncBranch(executionContext, trimmedLocation, trimmedRemote, trimmedBranch); syncError != nil {
			return Result{}, fmt.Errorf(branchSyncFailureTemplateConstant, trimmedBranch, syncError)
		}
		result.SyncedBranches = append(result.SyncedBranches, trimmedBranch)
	}

	return result, nil
}
