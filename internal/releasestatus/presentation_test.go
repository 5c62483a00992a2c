package releasestatus_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/r3000/internal/releasestatus"
	"github.com/temirov/r3000/internal/report"
	"github.com/temirov/r3000/internal/tickets"
)

func statusForKind(kind releasestatus.Kind) releasestatus.Status {
	switch kind {
	case releasestatus.KindNoGitRepository:
		return releasestatus.NoGitRepository{Location: "/srv/rental"}
	case releasestatus.KindGitStructureUnknown:
		return releasestatus.GitStructureUnknown{MissingBranch: "develop", Location: "/srv/rental"}
	case releasestatus.KindReleaseCouldBeInteresting:
		return releasestatus.ReleaseCouldBeInteresting{Tickets: tickets.NewTicketSet("REN-34", "REN-12")}
	case releasestatus.KindReleaseProbablyNotInteresting:
		return releasestatus.ReleaseProbablyNotInteresting{}
	case releasestatus.KindLingeringReleaseBranch:
		return releasestatus.LingeringReleaseBranch{Location: "/srv/rental", BranchName: "release/1.0"}
	case releasestatus.KindReleaseBranchReady:
		return releasestatus.ReleaseBranchReady{ShortName: "rental", BranchName: "release/1.0"}
	default:
		return nil
	}
}

func TestDescribeCoversEveryKind(testInstance *testing.T) {
	for _, kind := range releasestatus.AllKinds() {
		testInstance.Run(string(kind), func(testInstance *testing.T) {
			status := statusForKind(kind)
			require.NotNil(testInstance, status, "no sample status for kind %s", kind)
			require.Equal(testInstance, kind, status.Kind())

			presentation, describeError := releasestatus.Describe(status, releasestatus.PresentationOptions{})
			require.NoError(testInstance, describeError)
			require.Equal(testInstance, kind, presentation.Kind)
			require.NotEmpty(testInstance, presentation.Icon)
			require.NotEmpty(testInstance, presentation.Description)
			require.NotEmpty(testInstance, presentation.Tone)
		})
	}
}

func TestDescribeTexts(testInstance *testing.T) {
	testCases := []struct {
		name                string
		status              releasestatus.Status
		expectedIcon        string
		expectedTone        report.Tone
		expectedDescription string
		expectedActions     []string
	}{
		{
			name:                "ready",
			status:              releasestatus.ReleaseBranchReady{ShortName: "rental", BranchName: "release/1.0"},
			expectedIcon:        "✅",
			expectedTone:        report.ToneSuccess,
			expectedDescription: "Release branch present: release/1.0",
			expectedActions:     []string{"List tickets in release with: r3000 list-tickets rental"},
		},
		{
			name:                "no_repository",
			status:              releasestatus.NoGitRepository{Location: "/srv/rental"},
			expectedIcon:        "❌",
			expectedTone:        report.ToneFailure,
			expectedDescription: "No .git repository found at location /srv/rental",
		},
		{
			name:                "unknown_structure",
			status:              releasestatus.GitStructureUnknown{MissingBranch: "master", Location: "/srv/rental"},
			expectedIcon:        "😐",
			expectedTone:        report.ToneWarning,
			expectedDescription: "We only support gitflow right now but no branch named `master` found.",
			expectedActions:     []string{"If you think the branch exists, run r3000 update"},
		},
		{
			name:                "could_be_interesting",
			status:              releasestatus.ReleaseCouldBeInteresting{Tickets: tickets.NewTicketSet("REN-34", "REN-12")},
			expectedIcon:        "👀",
			expectedTone:        report.ToneAttention,
			expectedDescription: "It might be worth releasing this app. 2 tickets mentioned in dev commits",
			expectedActions:     []string{"Referenced tickets: REN-12, REN-34"},
		},
		{
			name:                "probably_not_interesting",
			status:              releasestatus.ReleaseProbablyNotInteresting{},
			expectedIcon:        "➖",
			expectedTone:        report.ToneNeutral,
			expectedDescription: "Release is probably not interesting. There are no commits with referenced ticket numbers on dev",
		},
		{
			name:                "lingering",
			status:              releasestatus.LingeringReleaseBranch{Location: "/srv/rental", BranchName: "release/1.0"},
			expectedIcon:        "❌",
			expectedTone:        report.ToneFailure,
			expectedDescription: "You still have an old release branch `release/1.0`. Please delete it (local and on the remote)",
			expectedActions: []string{
				"Delete branch with: git -C /srv/rental branch -D release/1.0 && git -C /srv/rental push origin --delete release/1.0",
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			presentation, describeError := releasestatus.Describe(testCase.status, releasestatus.PresentationOptions{})
			require.NoError(testInstance, describeError)
			require.Equal(testInstance, testCase.expectedIcon, presentation.Icon)
			require.Equal(testInstance, testCase.expectedTone, presentation.Tone)
			require.Equal(testInstance, testCase.expectedDescription, presentation.Description)
			require.Equal(testInstance, testCase.expectedActions, presentation.NextActions)
		})
	}
}

func TestDescribeUsesConfiguredRemoteAndExecutable(testInstance *testing.T) {
	options := releasestatus.PresentationOptions{ExecutableName: "r3k", Remote: "upstream"}

	lingering, describeError := releasestatus.Describe(releasestatus.LingeringReleaseBranch{Location: "/srv/a", BranchName: "release/2"}, options)
	require.NoError(testInstance, describeError)
	require.Equal(testInstance, []string{"Delete branch with: git -C /srv/a branch -D release/2 && git -C /srv/a push upstream --delete release/2"}, lingering.NextActions)

	ready, describeError := releasestatus.Describe(releasestatus.ReleaseBranchReady{ShortName: "a", BranchName: "release/2"}, options)
	require.NoError(testInstance, describeError)
	require.Equal(testInstance, []string{"List tickets in release with: r3k list-tickets a"}, ready.NextActions)
}

func TestDescribeRejectsNilStatus(testInstance *testing.T) {
	_, describeError := releasestatus.Describe(nil, releasestatus.PresentationOptions{})
	require.ErrorIs(testInstance, describeError, releasestatus.ErrUnknownStatus)
}

func TestPresentationReportEntry(testInstance *testing.T) {
	presentation, describeError := releasestatus.Describe(releasestatus.ReleaseProbablyNotInteresting{}, releasestatus.PresentationOptions{})
	require.NoError(testInstance, describeError)

	entry := presentation.ReportEntry("Billing")
	require.Equal(testInstance, "Billing", entry.ProjectName)
	require.Equal(testInstance, string(releasestatus.KindReleaseProbablyNotInteresting), entry.Kind)
	require.Equal(testInstance, presentation.Description, entry.Description)
	require.NoError(testInstance, entry.Failure)
}
