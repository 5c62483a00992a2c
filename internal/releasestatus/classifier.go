package releasestatus

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/r3000/internal/projects"
	"github.com/temirov/r3000/internal/tickets"
)

const (
	inspectorMissingMessageConstant       = "git inspector not configured"
	ticketExtractorMissingMessageConstant = "ticket extractor not configured"
	classifiedProjectLogMessageConstant   = "classified project"
	projectNameLogFieldConstant           = "project"
	projectLocationLogFieldConstant       = "location"
	statusKindLogFieldConstant            = "status"
)

// ErrInspectorNotConfigured indicates the classifier was built without a git inspector.
var ErrInspectorNotConfigured = errors.New(inspectorMissingMessageConstant)

// ErrTicketExtractorNotConfigured indicates the classifier was built without a ticket extractor.
var ErrTicketExtractorNotConfigured = errors.New(ticketExtractorMissingMessageConstant)

// GitInspector answers the repository questions classification depends on.
type GitInspector interface {
	HasRepository(location string) (bool, error)
	BranchesStartingWith(executionContext context.Context, location string, prefix string) ([]string, error)
	CommitCountBetween(executionContext context.Context, location string, fromRef string, toRef string) (int, error)
	CommitMessagesBetween(executionContext context.Context, location string, fromRef string, toRef string) ([]string, error)
}

// TicketExtractor finds ticket identifiers in commit messages.
type TicketExtractor interface {
	Extract(messages []string) tickets.TicketSet
}

// Dependencies enumerates the collaborators required by Classifier.
type Dependencies struct {
	Inspector       GitInspector
	TicketExtractor TicketExtractor
	Logger          *zap.Logger
}

// Classifier maps the branch state of a project to a Status.
type Classifier struct {
	inspector       GitInspector
	ticketExtractor TicketExtractor
	logger          *zap.Logger
	configuration   Configuration
	branchOrder     BranchOrder
}

// NewClassifier validates dependencies and configuration and constructs a Classifier.
func NewClassifier(dependencies Dependencies, configuration Configuration) (*Classifier, error) {
	if dependencies.Inspector == nil {
		return nil, ErrInspectorNotConfigured
	}
	if dependencies.TicketExtractor == nil {
		return nil, ErrTicketExtractorNotConfigured
	}
	if validationError := configuration.Validate(); validationError != nil {
		return nil, validationError
	}

	sanitized := configuration.Sanitize()
	branchOrder, orderError := ParseBranchOrder(sanitized.BranchOrder)
	if orderError != nil {
		return nil, orderError
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Classifier{
		inspector:       dependencies.Inspector,
		ticketExtractor: dependencies.TicketExtractor,
		logger:          logger,
		configuration:   sanitized,
		branchOrder:     branchOrder,
	}, nil
}

// Classify inspects project and returns exactly one Status. Missing repositories
// and branches are statuses; only inspector failures are returned as errors.
func (classifier *Classifier) Classify(executionContext context.Context, project projects.Project) (Status, error) {
	status, classificationError := classifier.classify(executionContext, project)
	if classificationError != nil {
		return nil, classificationError
	}

	classifier.logger.Debug(classifiedProjectLogMessageConstant,
		zap.String(projectNameLogFieldConstant, project.Name),
		zap.String(projectLocationLogFieldConstant, project.Location),
		zap.String(statusKindLogFieldConstant, string(status.Kind())),
	)
	return status, nil
}

// LatestReleaseBranch returns the latest release branch at location, if any.
func (classifier *Classifier) LatestReleaseBranch(executionContext context.Context, location string) (string, bool, error) {
	releaseBranches, listError := classifier.inspector.BranchesStartingWith(executionContext, location, classifier.configuration.ReleasePrefix)
	if listError != nil {
		return "", false, listError
	}
	latestBranch, found := LatestBranch(releaseBranches, classifier.configuration.ReleasePrefix, classifier.branchOrder)
	return latestBranch, found, nil
}

// MasterBranch returns the configured master branch name.
func (classifier *Classifier) MasterBranch() string {
	return classifier.configuration.MasterBranch
}

func (classifier *Classifier) classify(executionContext context.Context, project projects.Project) (Status, error) {
	location := project.Location

	repositoryPresent, repositoryError := classifier.inspector.HasRepository(location)
	if repositoryError != nil {
		return nil, repositoryError
	}
	if !repositoryPresent {
		return NoGitRepository{Location: location}, nil
	}

	developRef, developPresent, developError := classifier.resolveGitflowBranch(executionContext, location, classifier.configuration.DevelopBranch)
	if developError != nil {
		return nil, developError
	}
	if !developPresent {
		return GitStructureUnknown{MissingBranch: classifier.configuration.DevelopBranch, Location: location}, nil
	}
	masterRef, masterPresent, masterError := classifier.resolveGitflowBranch(executionContext, location, classifier.configuration.MasterBranch)
	if masterError != nil {
		return nil, masterError
	}
	if !masterPresent {
		return GitStructureUnknown{MissingBranch: classifier.configuration.MasterBranch, Location: location}, nil
	}

	releaseBranch, releaseBranchFound, releaseError := classifier.LatestReleaseBranch(executionContext, location)
	if releaseError != nil {
		return nil, releaseError
	}

	if !releaseBranchFound {
		commitMessages, logError := classifier.inspector.CommitMessagesBetween(executionContext, location, masterRef, developRef)
		if logError != nil {
			return nil, logError
		}
		referencedTickets := classifier.ticketExtractor.Extract(commitMessages)
		if referencedTickets.IsEmpty() {
			return ReleaseProbablyNotInteresting{}, nil
		}
		return ReleaseCouldBeInteresting{Tickets: referencedTickets}, nil
	}

	commitCount, countError := classifier.inspector.CommitCountBetween(executionContext, location, masterRef, releaseBranch)
	if countError != nil {
		return nil, countError
	}
	if commitCount == 0 {
		return LingeringReleaseBranch{Location: location, BranchName: releaseBranch}, nil
	}
	return ReleaseBranchReady{ShortName: project.TechnicalName, BranchName: releaseBranch}, nil
}

// resolveGitflowBranch reports whether a branch starting with name exists and returns the
// ref to use for it: name itself when listed, otherwise the first branch carrying the prefix.
func (classifier *Classifier) resolveGitflowBranch(executionContext context.Context, location string, name string) (string, bool, error) {
	matchingBranches, listError := classifier.inspector.BranchesStartingWith(executionContext, location, name)
	if listError != nil {
		return "", false, listError
	}
	if len(matchingBranches) == 0 {
		return "", false, nil
	}
	for _, branch := range matchingBranches {
		if branch == name {
			return name, true, nil
		}
	}
	return matchingBranches[0], true, nil
}
