package releasetickets

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/r3000/internal/projects"
	"github.com/temirov/r3000/internal/releasestatus"
	"github.com/temirov/r3000/internal/tickets"
)

const (
	noReleaseBranchMessageConstant      = "no release branch"
	repositoryMissingMessageConstant    = "no .git repository"
	inspectorMissingMessageConstant     = "git inspector not configured"
	queryBuilderMissingMessageConstant  = "query builder not configured"
	classifierMissingMessageConstant    = "classifier not configured"
	extractorMissingMessageConstant     = "ticket extractor not configured"
	noReleaseBranchTemplateConstant     = "%w for project %q (prefix %q)"
	repositoryMissingTemplateConstant   = "%w at location %s"
	noTicketsInReleaseTemplateConstant  = "project %q, %s: %w"
	compareLinkErrorTemplateConstant    = "failed to build compare link for %q: %w"
	bitbucketCompareURLTemplateConstant = "https://bitbucket.org/%s/%s/branches/compare/%s%%0D%s"
)

// ErrNoReleaseBranch indicates the project has no branch under the release prefix.
var ErrNoReleaseBranch = errors.New(noReleaseBranchMessageConstant)

// ErrRepositoryMissing indicates the project location holds no git repository.
var ErrRepositoryMissing = errors.New(repositoryMissingMessageConstant)

// ErrInspectorNotConfigured indicates the service was built without a git inspector.
var ErrInspectorNotConfigured = errors.New(inspectorMissingMessageConstant)

// ErrClassifierNotConfigured indicates the service was built without a classifier.
var ErrClassifierNotConfigured = errors.New(classifierMissingMessageConstant)

// ErrTicketExtractorNotConfigured indicates the service was built without a ticket extractor.
var ErrTicketExtractorNotConfigured = errors.New(extractorMissingMessageConstant)

// ErrQueryBuilderNotConfigured indicates the service was built without a query builder.
var ErrQueryBuilderNotConfigured = errors.New(queryBuilderMissingMessageConstant)

// Dependencies enumerates the collaborators required by Service.
type Dependencies struct {
	Inspector       releasestatus.GitInspector
	Classifier      *releasestatus.Classifier
	TicketExtractor releasestatus.TicketExtractor
	QueryBuilder    *tickets.QueryBuilder
	ReleasePrefix   string
}

// Result describes the tickets of one release branch.
type Result struct {
	ReleaseBranch string
	Tickets       tickets.TicketSet
	QueryURL      string
	CompareURL    string
}

// Service collects release tickets for projects.
type Service struct {
	inspector       releasestatus.GitInspector
	classifier      *releasestatus.Classifier
	ticketExtractor releasestatus.TicketExtractor
	queryBuilder    *tickets.QueryBuilder
	releasePrefix   string
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Inspector == nil {
		return nil, ErrInspectorNotConfigured
	}
	if dependencies.Classifier == nil {
		return nil, ErrClassifierNotConfigured
	}
	if dependencies.TicketExtractor == nil {
		return nil, ErrTicketExtractorNotConfigured
	}
	if dependencies.QueryBuilder == nil {
		return nil, ErrQueryBuilderNotConfigured
	}
	return &Service{
		inspector:       dependencies.Inspector,
		classifier:      dependencies.Classifier,
		ticketExtractor: dependencies.TicketExtractor,
		queryBuilder:    dependencies.QueryBuilder,
		releasePrefix:   dependencies.ReleasePrefix,
	}, nil
}

// ReleaseTickets returns the tickets referenced between master and the latest release
// branch of project. An empty ticket set is reported as tickets.ErrNoTickets.
func (service *Service) ReleaseTickets(executionContext context.Context, project projects.Project) (Result, error) {
	repositoryPresent, repositoryError := service.inspector.HasRepository(project.Location)
	if repositoryError != nil {
		return Result{}, repositoryError
	}
	if !repositoryPresent {
		return Result{}, fmt.Errorf(repositoryMissingTemplateConstant, ErrRepositoryMissing, project.Location)
	}

	releaseBranch, releaseBranchFound, releaseError := service.classifier.LatestReleaseBranch(executionContext, project.Location)
	if releaseError != nil {
		return Result{}, releaseError
	}
	if !releaseBranchFound {
		return Result{}, fmt.Errorf(noReleaseBranchTemplateConstant, ErrNoReleaseBranch, project.Name, service.releasePrefix)
	}

	masterBranch := service.classifier.MasterBranch()
	commitMessages, logError := service.inspector.CommitMessagesBetween(executionContext, project.Location, masterBranch, releaseBranch)
	if logError != nil {
		return Result{}, logError
	}
	releaseTickets := service.ticketExtractor.Extract(commitMessages)

	queryURL, buildError := service.queryBuilder.Build(releaseTickets)
	if buildError != nil {
		return Result{}, fmt.Errorf(noTicketsInReleaseTemplateConstant, project.Name, releaseBranch, buildError)
	}

	compareURL, compareError := compareLink(project, releaseBranch, masterBranch)
	if compareError != nil {
		return Result{}, compareError
	}

	return Result{ReleaseBranch: releaseBranch, Tickets: releaseTickets, QueryURL: queryURL, CompareURL: compareURL}, nil
}

func compareLink(project projects.Project, releaseBranch string, masterBranch string) (string, error) {
	properties, complete, decodeError := project.BitbucketProperties()
	if decodeError != nil {
		return "", fmt.Errorf(compareLinkErrorTemplateConstant, project.Name, decodeError)
	}
	if !complete {
		return "", nil
	}
	return fmt.Sprintf(bitbucketCompareURLTemplateConstant, properties.Workspace, properties.RepositorySlug, releaseBranch, masterBranch), nil
}
