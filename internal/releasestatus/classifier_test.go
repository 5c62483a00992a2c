package releasestatus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/r3000/internal/gitrepo"
	"github.com/temirov/r3000/internal/projects"
	"github.com/temirov/r3000/internal/releasestatus"
	"github.com/temirov/r3000/internal/tickets"
)

const (
	testProjectLocationConstant      = "/srv/rental"
	testProjectTechnicalNameConstant = "rental"
)

var testProject = projects.Project{Name: "Rental Service", TechnicalName: testProjectTechnicalNameConstant, Location: testProjectLocationConstant}

func newTestClassifier(testInstance *testing.T, inspector releasestatus.GitInspector, configuration releasestatus.Configuration) *releasestatus.Classifier {
	testInstance.Helper()
	extractor, extractorError := tickets.NewExtractor(tickets.DefaultConfiguration())
	require.NoError(testInstance, extractorError)
	classifier, classifierError := releasestatus.NewClassifier(releasestatus.Dependencies{Inspector: inspector, TicketExtractor: extractor}, configuration)
	require.NoError(testInstance, classifierError)
	return classifier
}

func TestClassifyDecisionTree(testInstance *testing.T) {
	testCases := []struct {
		name      string
		inspector *fakeInspector
		expected  releasestatus.Status
	}{
		{
			name:      "no_repository_regardless_of_branches",
			inspector: &fakeInspector{repositoryPresent: false, branches: []string{"develop", "master", "release/1.0"}},
			expected:  releasestatus.NoGitRepository{Location: testProjectLocationConstant},
		},
		{
			name:      "missing_develop",
			inspector: &fakeInspector{repositoryPresent: true, branches: []string{"master", "release/1.0"}},
			expected:  releasestatus.GitStructureUnknown{MissingBranch: "develop", Location: testProjectLocationConstant},
		},
		{
			name:      "missing_develop_and_master_reports_develop",
			inspector: &fakeInspector{repositoryPresent: true, branches: []string{"main"}},
			expected:  releasestatus.GitStructureUnknown{MissingBranch: "develop", Location: testProjectLocationConstant},
		},
		{
			name:      "missing_master",
			inspector: &fakeInspector{repositoryPresent: true, branches: []string{"develop", "release/1.0"}},
			expected:  releasestatus.GitStructureUnknown{MissingBranch: "master", Location: testProjectLocationConstant},
		},
		{
			name:      "prefix_match_counts_as_present",
			inspector: &fakeInspector{repositoryPresent: true, branches: []string{"develop-legacy", "master-2019"}},
			expected:  releasestatus.ReleaseProbablyNotInteresting{},
		},
		{
			name: "no_release_no_tickets",
			inspector: &fakeInspector{
				repositoryPresent: true,
				branches:          []string{"develop", "master"},
				commitMessages:    map[string][]string{"master..develop": {"Fix typo", "Bump dependencies"}},
			},
			expected: releasestatus.ReleaseProbablyNotInteresting{},
		},
		{
			name: "no_release_with_tickets",
			inspector: &fakeInspector{
				repositoryPresent: true,
				branches:          []string{"develop", "master"},
				commitMessages:    map[string][]string{"master..develop": {"REN-34 invoices", "REN-12 rentals", "REN-34 follow-up"}},
			},
			expected: releasestatus.ReleaseCouldBeInteresting{Tickets: tickets.NewTicketSet("REN-12", "REN-34")},
		},
		{
			name: "lingering_release",
			inspector: &fakeInspector{
				repositoryPresent: true,
				branches:          []string{"develop", "master", "release/1.0"},
				commitCounts:      map[string]int{"master..release/1.0": 0},
			},
			expected: releasestatus.LingeringReleaseBranch{Location: testProjectLocationConstant, BranchName: "release/1.0"},
		},
		{
			name: "ready_release",
			inspector: &fakeInspector{
				repositoryPresent: true,
				branches:          []string{"develop", "master", "release/1.0"},
				commitCounts:      map[string]int{"master..release/1.0": 3},
			},
			expected: releasestatus.ReleaseBranchReady{ShortName: testProjectTechnicalNameConstant, BranchName: "release/1.0"},
		},
		{
			name: "version_order_picks_highest_release",
			inspector: &fakeInspector{
				repositoryPresent: true,
				branches:          []string{"develop", "master", "release/1.10", "release/1.9"},
				commitCounts:      map[string]int{"master..release/1.10": 1},
			},
			expected: releasestatus.ReleaseBranchReady{ShortName: testProjectTechnicalNameConstant, BranchName: "release/1.10"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			classifier := newTestClassifier(testInstance, testCase.inspector, releasestatus.DefaultConfiguration())
			status, classifyError := classifier.Classify(context.Background(), testProject)
			require.NoError(testInstance, classifyError)
			require.Equal(testInstance, testCase.expected, status)
		})
	}
}

func TestClassifyStopsBeforeReleaseLogicWhenDevelopIsMissing(testInstance *testing.T) {
	inspector := &fakeInspector{repositoryPresent: true, branches: []string{"master", "release/1.0"}}
	classifier := newTestClassifier(testInstance, inspector, releasestatus.DefaultConfiguration())

	_, classifyError := classifier.Classify(context.Background(), testProject)
	require.NoError(testInstance, classifyError)
	require.Equal(testInstance, []string{"has-repository " + testProjectLocationConstant, "branches develop"}, inspector.operations())
}

func TestClassifyUsesPrefixMatchedBranchesAsRefs(testInstance *testing.T) {
	testCases := []struct {
		name               string
		branches           []string
		commitMessages     map[string][]string
		commitCounts       map[string]int
		expected           releasestatus.Status
		expectedLastAccess string
	}{
		{
			name:               "log_between_matched_branches",
			branches:           []string{"developer", "master"},
			commitMessages:     map[string][]string{"master..developer": {"REN-77 checkout flow"}},
			expected:           releasestatus.ReleaseCouldBeInteresting{Tickets: tickets.NewTicketSet("REN-77")},
			expectedLastAccess: "log master..developer",
		},
		{
			name:               "exact_name_preferred_over_longer_match",
			branches:           []string{"develop-legacy", "develop", "master-2019", "master"},
			commitMessages:     map[string][]string{"master..develop": {"REN-12 rentals"}},
			expected:           releasestatus.ReleaseCouldBeInteresting{Tickets: tickets.NewTicketSet("REN-12")},
			expectedLastAccess: "log master..develop",
		},
		{
			name:               "count_against_matched_master",
			branches:           []string{"develop", "master-2019", "release/1.0"},
			commitCounts:       map[string]int{"master-2019..release/1.0": 2},
			expected:           releasestatus.ReleaseBranchReady{ShortName: testProjectTechnicalNameConstant, BranchName: "release/1.0"},
			expectedLastAccess: "count master-2019..release/1.0",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			inspector := &fakeInspector{
				repositoryPresent: true,
				branches:          testCase.branches,
				commitMessages:    testCase.commitMessages,
				commitCounts:      testCase.commitCounts,
			}
			status, classifyError := newTestClassifier(testInstance, inspector, releasestatus.DefaultConfiguration()).Classify(context.Background(), testProject)
			require.NoError(testInstance, classifyError)
			require.Equal(testInstance, testCase.expected, status)
			operations := inspector.operations()
			require.Equal(testInstance, testCase.expectedLastAccess, operations[len(operations)-1])
		})
	}
}

func TestClassifyTicketSetIgnoresCommitOrder(testInstance *testing.T) {
	messages := []string{"REN-12 first", "REN-34 second", "REN-12 again"}
	reversed := []string{messages[2], messages[1], messages[0]}

	var statuses []releasestatus.Status
	for _, commitMessages := range [][]string{messages, reversed} {
		inspector := &fakeInspector{
			repositoryPresent: true,
			branches:          []string{"develop", "master"},
			commitMessages:    map[string][]string{"master..develop": commitMessages},
		}
		status, classifyError := newTestClassifier(testInstance, inspector, releasestatus.DefaultConfiguration()).Classify(context.Background(), testProject)
		require.NoError(testInstance, classifyError)
		statuses = append(statuses, status)
	}

	first, firstOK := statuses[0].(releasestatus.ReleaseCouldBeInteresting)
	second, secondOK := statuses[1].(releasestatus.ReleaseCouldBeInteresting)
	require.True(testInstance, firstOK)
	require.True(testInstance, secondOK)
	require.True(testInstance, first.Tickets.Equal(second.Tickets))
	require.Equal(testInstance, []string{"REN-12", "REN-34"}, first.Tickets.Sorted())
}

func TestClassifyHonorsConfiguredBranchNames(testInstance *testing.T) {
	configuration := releasestatus.Configuration{
		DevelopBranch: "dev",
		MasterBranch:  "main",
		ReleasePrefix: "rc-",
		BranchOrder:   "listing",
		Remote:        "upstream",
	}
	inspector := &fakeInspector{
		repositoryPresent: true,
		branches:          []string{"dev", "main", "rc-2", "rc-10", "rc-3"},
		commitCounts:      map[string]int{"main..rc-3": 5},
	}

	status, classifyError := newTestClassifier(testInstance, inspector, configuration).Classify(context.Background(), testProject)
	require.NoError(testInstance, classifyError)
	require.Equal(testInstance, releasestatus.ReleaseBranchReady{ShortName: testProjectTechnicalNameConstant, BranchName: "rc-3"}, status)
}

func TestClassifyPropagatesInspectorFailures(testInstance *testing.T) {
	toolFailure := gitrepo.ExternalToolError{Operation: gitrepo.OperationListBranches, Location: testProjectLocationConstant, Cause: errors.New("git: not found")}

	testCases := []struct {
		name      string
		inspector *fakeInspector
	}{
		{name: "repository_lookup", inspector: &fakeInspector{repositoryError: toolFailure}},
		{name: "branch_listing", inspector: &fakeInspector{repositoryPresent: true, branchListError: toolFailure}},
		{
			name:      "commit_log",
			inspector: &fakeInspector{repositoryPresent: true, branches: []string{"develop", "master"}, commitLogError: toolFailure},
		},
		{
			name:      "commit_count",
			inspector: &fakeInspector{repositoryPresent: true, branches: []string{"develop", "master", "release/1.0"}, commitCountError: toolFailure},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			status, classifyError := newTestClassifier(testInstance, testCase.inspector, releasestatus.DefaultConfiguration()).Classify(context.Background(), testProject)
			require.Nil(testInstance, status)
			var externalToolError gitrepo.ExternalToolError
			require.ErrorAs(testInstance, classifyError, &externalToolError)
		})
	}
}

func TestClassifyLogsStatusKind(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	extractor, extractorError := tickets.NewExtractor(tickets.DefaultConfiguration())
	require.NoError(testInstance, extractorError)
	classifier, classifierError := releasestatus.NewClassifier(releasestatus.Dependencies{
		Inspector:       &fakeInspector{},
		TicketExtractor: extractor,
		Logger:          zap.New(observerCore),
	}, releasestatus.DefaultConfiguration())
	require.NoError(testInstance, classifierError)

	_, classifyError := classifier.Classify(context.Background(), testProject)
	require.NoError(testInstance, classifyError)

	entries := observedLogs.All()
	require.Len(testInstance, entries, 1)
	require.Equal(testInstance, "classified project", entries[0].Message)
	require.Equal(testInstance, string(releasestatus.KindNoGitRepository), entries[0].ContextMap()["status"])
}

func TestNewClassifierValidatesInputs(testInstance *testing.T) {
	extractor, extractorError := tickets.NewExtractor(tickets.DefaultConfiguration())
	require.NoError(testInstance, extractorError)

	_, missingInspectorError := releasestatus.NewClassifier(releasestatus.Dependencies{TicketExtractor: extractor}, releasestatus.DefaultConfiguration())
	require.ErrorIs(testInstance, missingInspectorError, releasestatus.ErrInspectorNotConfigured)

	_, missingExtractorError := releasestatus.NewClassifier(releasestatus.Dependencies{Inspector: &fakeInspector{}}, releasestatus.DefaultConfiguration())
	require.ErrorIs(testInstance, missingExtractorError, releasestatus.ErrTicketExtractorNotConfigured)

	invalidConfiguration := releasestatus.DefaultConfiguration()
	invalidConfiguration.BranchOrder = "chronological"
	_, orderError := releasestatus.NewClassifier(releasestatus.Dependencies{Inspector: &fakeInspector{}, TicketExtractor: extractor}, invalidConfiguration)
	require.ErrorIs(testInstance, orderError, releasestatus.ErrInvalidConfiguration)

	emptyMaster := releasestatus.DefaultConfiguration()
	emptyMaster.MasterBranch = " "
	_, emptyMasterError := releasestatus.NewClassifier(releasestatus.Dependencies{Inspector: &fakeInspector{}, TicketExtractor: extractor}, emptyMaster)
	require.ErrorIs(testInstance, emptyMasterError, releasestatus.ErrInvalidConfiguration)
}
