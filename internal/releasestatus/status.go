package releasestatus

import "github.com/temirov/r3000/internal/tickets"

// Kind identifies a Status variant.
type Kind string

// Status kinds.
const (
	KindNoGitRepository               Kind = Kind("no-git-repository")
	KindGitStructureUnknown           Kind = Kind("git-structure-unknown")
	KindReleaseCouldBeInteresting     Kind = Kind("release-could-be-interesting")
	KindReleaseProbablyNotInteresting Kind = Kind("release-probably-not-interesting")
	KindLingeringReleaseBranch        Kind = Kind("lingering-release-branch")
	KindReleaseBranchReady            Kind = Kind("release-branch-ready")
)

// AllKinds lists every Status kind in decision order.
func AllKinds() []Kind {
	return []Kind{
		KindNoGitRepository,
		KindGitStructureUnknown,
		KindReleaseCouldBeInteresting,
		KindReleaseProbablyNotInteresting,
		KindLingeringReleaseBranch,
		KindReleaseBranchReady,
	}
}

// Status is the outcome of classifying one project. The set of implementations is closed.
type Status interface {
	Kind() Kind
	sealedStatus()
}

// NoGitRepository reports that Location holds no .git entry.
type NoGitRepository struct {
	Location string
}

// GitStructureUnknown reports that a required gitflow branch is missing.
type GitStructureUnknown struct {
	MissingBranch string
	Location      string
}

// ReleaseCouldBeInteresting reports unreleased development work referencing tickets.
type ReleaseCouldBeInteresting struct {
	Tickets tickets.TicketSet
}

// ReleaseProbablyNotInteresting reports that development commits reference no ticket.
type ReleaseProbablyNotInteresting struct{}

// LingeringReleaseBranch reports a release branch with nothing beyond master.
type LingeringReleaseBranch struct {
	Location   string
	BranchName string
}

// ReleaseBranchReady reports a release branch with commits ahead of master.
type ReleaseBranchReady struct {
	ShortName  string
	BranchName string
}

func (NoGitRepository) Kind() Kind               { return KindNoGitRepository }
func (GitStructureUnknown) Kind() Kind           { return KindGitStructureUnknown }
func (ReleaseCouldBeInteresting) Kind() Kind     { return KindReleaseCouldBeInteresting }
func (ReleaseProbablyNotInteresting) Kind() Kind { return KindReleaseProbablyNotInteresting }
func (LingeringReleaseBranch) Kind() Kind        { return KindLingeringReleaseBranch }
func (ReleaseBranchReady) Kind() Kind            { return KindReleaseBranchReady }

func (NoGitRepository) sealedStatus()               {}
func (GitStructureUnknown) sealedStatus()           {}
func (ReleaseCouldBeInteresting) sealedStatus()     {}
func (ReleaseProbablyNotInteresting) sealedStatus() {}
func (LingeringReleaseBranch) sealedStatus()        {}
func (ReleaseBranchReady) sealedStatus()            {}
