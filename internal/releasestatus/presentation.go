package releasestatus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/r3000/internal/report"
)

const (
	readyIconConstant                            = "✅"
	missingRepositoryIconConstant                = "❌"
	unknownStructureIconConstant                 = "😐"
	interestingIconConstant                      = "👀"
	notInterestingIconConstant                   = "➖"
	lingeringIconConstant                        = "❌"
	readyDescriptionTemplateConstant             = "Release branch present: %s"
	readyActionTemplateConstant                  = "List tickets in release with: %s list-tickets %s"
	missingRepositoryDescriptionTemplateConstant = "No .git repository found at location %s"
	unknownStructureDescriptionTemplateConstant  = "We only support gitflow right now but no branch named `%s` found."
	unknownStructureActionTemplateConstant       = "If you think the branch exists, run %s update"
	interestingDescriptionTemplateConstant       = "It might be worth releasing this app. %d tickets mentioned in dev commits"
	interestingActionTemplateConstant            = "Referenced tickets: %s"
	notInterestingDescriptionConstant            = "Release is probably not interesting. There are no commits with referenced ticket numbers on dev"
	lingeringDescriptionTemplateConstant         = "You still have an old release branch `%s`. Please delete it (local and on the remote)"
	lingeringActionTemplateConstant              = "Delete branch with: git -C %[1]s branch -D %[2]s && git -C %[1]s push %[3]s --delete %[2]s"
	ticketListSeparatorConstant                  = ", "
	defaultExecutableNameConstant                = "r3000"
	unknownStatusMessageConstant                 = "unknown status"
	unknownStatusTemplateConstant                = "%w: %T"
)

// ErrUnknownStatus indicates Describe received a value outside the Status variants.
var ErrUnknownStatus = errors.New(unknownStatusMessageConstant)

// PresentationOptions supplies the context next actions refer to.
type PresentationOptions struct {
	ExecutableName string
	Remote         string
}

// Presentation is the display form of a Status.
type Presentation struct {
	Kind        Kind
	Icon        string
	Tone        report.Tone
	Description string
	NextActions []string
}

// Describe renders status. Every Status variant has a case; anything else is ErrUnknownStatus.
func Describe(status Status, options PresentationOptions) (Presentation, error) {
	executableName := strings.TrimSpace(options.ExecutableName)
	if len(executableName) == 0 {
		executableName = defaultExecutableNameConstant
	}
	remote := strings.TrimSpace(options.Remote)
	if len(remote) == 0 {
		remote = defaultRemoteConstant
	}

	switch typedStatus := status.(type) {
	case ReleaseBranchReady:
		return Presentation{
			Kind:        typedStatus.Kind(),
			Icon:        readyIconConstant,
			Tone:        report.ToneSuccess,
			Description: fmt.Sprintf(readyDescriptionTemplateConstant, typedStatus.BranchName),
			NextActions: []string{fmt.Sprintf(readyActionTemplateConstant, executableName, typedStatus.ShortName)},
		}, nil
	case NoGitRepository:
		return Presentation{
			Kind:        typedStatus.Kind(),
			Icon:        missingRepositoryIconConstant,
			Tone:        report.ToneFailure,
			Description: fmt.Sprintf(missingRepositoryDescriptionTemplateConstant, typedStatus.Location),
		}, nil
	case GitStructureUnknown:
		return Presentation{
			Kind:        typedStatus.Kind(),
			Icon:        unknownStructureIconConstant,
			Tone:        report.ToneWarning,
			Description: fmt.Sprintf(unknownStructureDescriptionTemplateConstant, typedStatus.MissingBranch),
			NextActions: []string{fmt.Sprintf(unknownStructureActionTemplateConstant, executableName)},
		}, nil
	case ReleaseCouldBeInteresting:
		return Presentation{
			Kind:        typedStatus.Kind(),
			Icon:        interestingIconConstant,
			Tone:        report.ToneAttention,
			Description: fmt.Sprintf(interestingDescriptionTemplateConstant, typedStatus.Tickets.Len()),
			NextActions: []string{fmt.Sprintf(interestingActionTemplateConstant, strings.Join(typedStatus.Tickets.Sorted(), ticketListSeparatorConstant))},
		}, nil
	case ReleaseProbablyNotInteresting:
		return Presentation{
			Kind:        typedStatus.Kind(),
			Icon:        notInterestingIconConstant,
			Tone:        report.ToneNeutral,
			Description: notInterestingDescriptionConstant,
		}, nil
	case LingeringReleaseBranch:
		return Presentation{
			Kind:        typedStatus.Kind(),
			Icon:        lingeringIconConstant,
			Tone:        report.ToneFailure,
			Description: fmt.Sprintf(lingeringDescriptionTemplateConstant, typedStatus.BranchName),
			NextActions: []string{fmt.Sprintf(lingeringActionTemplateConstant, typedStatus.Location, typedStatus.BranchName, remote)},
		}, nil
	default:
		return Presentation{}, fmt.Errorf(unknownStatusTemplateConstant, ErrUnknownStatus, status)
	}
}

// ReportEntry converts a presentation into a report entry for projectName.
func (presentation Presentation) ReportEntry(projectName string) report.Entry {
	return report.Entry{
		ProjectName: projectName,
		Kind:        string(presentation.Kind),
		Icon:        presentation.Icon,
		Tone:        presentation.Tone,
		Description: presentation.Description,
		NextActions: presentation.NextActions,
	}
}
