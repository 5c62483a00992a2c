package releasetickets_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/r3000/internal/projects"
	"github.com/temirov/r3000/internal/releasetickets"
	"github.com/temirov/r3000/internal/tickets"
)

type stubInspector struct {
	repositoryPresent bool
	branches          []string
	commitMessages    map[string][]string
	requestedRanges   []string
}

func (inspector *stubInspector) HasRepository(string) (bool, error) {
	return inspector.repositoryPresent, nil
}

func (inspector *stubInspector) BranchesStartingWith(_ context.Context, _ string, prefix string) ([]string, error) {
	matching := make([]string, 0)
	for _, branch := range inspector.branches {
		if strings.HasPrefix(branch, prefix) {
			matching = append(matching, branch)
		}
	}
	return matching, nil
}

func (inspector *stubInspector) CommitCountBetween(context.Context, string, string, string) (int, error) {
	return 0, nil
}

func (inspector *stubInspector) CommitMessagesBetween(_ context.Context, _ string, fromRef string, toRef string) ([]string, error) {
	revisionRange := fmt.Sprintf("%s..%s", fromRef, toRef)
	inspector.requestedRanges = append(inspector.requestedRanges, revisionRange)
	return inspector.commitMessages[revisionRange], nil
}

var configuredProjects = []projects.Project{
	{
		Name:          "Rental Service",
		TechnicalName: "rental",
		Location:      "/srv/rental",
		CustomProperties: map[string]string{
			"bitbucket-workspace":       "acme",
			"bitbucket-repository-slug": "rental-service",
		},
	},
	{Name: "Billing", TechnicalName: "billing", Location: "/srv/billing"},
}

func newListTicketsCommand(testInstance *testing.T, inspector *stubInspector) *cobra.Command {
	testInstance.Helper()
	builder := releasetickets.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		Inspector:      inspector,
		ConfigurationProvider: func() releasetickets.CommandConfiguration {
			configuration := releasetickets.DefaultCommandConfiguration()
			configuration.Projects = configuredProjects
			return configuration
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	return command
}

func TestListTicketsPrintsQueryAndCompareLinks(testInstance *testing.T) {
	inspector := &stubInspector{
		repositoryPresent: true,
		branches:          []string{"develop", "master", "release/1.9", "release/1.10"},
		commitMessages: map[string][]string{
			"master..release/1.10": {"REN-34 invoices", "Merge branch 'develop'", "REN-12 rentals"},
		},
	}
	command := newListTicketsCommand(testInstance, inspector)
	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(testInstance, command.RunE(command, []string{"rental"}))
	require.Equal(testInstance, []string{"master..release/1.10"}, inspector.requestedRanges)
	require.Equal(testInstance,
		"https://jira.example.com/issues/?jql=key+in+%28REN-12%2C+REN-34%29\n"+
			"https://bitbucket.org/acme/rental-service/branches/compare/release/1.10%0Dmaster\n",
		outputBuffer.String())
}

func TestListTicketsWithoutBitbucketPropertiesPrintsOnlyQuery(testInstance *testing.T) {
	inspector := &stubInspector{
		repositoryPresent: true,
		branches:          []string{"develop", "master", "release/2.0"},
		commitMessages:    map[string][]string{"master..release/2.0": {"REN-55 fix"}},
	}
	command := newListTicketsCommand(testInstance, inspector)
	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(testInstance, command.RunE(command, []string{"billing"}))
	require.Equal(testInstance, "https://jira.example.com/issues/?jql=key+in+%28REN-55%29\n", outputBuffer.String())
}

func TestListTicketsErrors(testInstance *testing.T) {
	testCases := []struct {
		name          string
		inspector     *stubInspector
		arguments     []string
		expectedError error
	}{
		{
			name:          "unknown_project",
			inspector:     &stubInspector{repositoryPresent: true},
			arguments:     []string{"missing"},
			expectedError: projects.ErrProjectNotFound,
		},
		{
			name:          "missing_argument",
			inspector:     &stubInspector{repositoryPresent: true},
			arguments:     []string{},
			expectedError: releasetickets.ErrTechnicalNameRequired,
		},
		{
			name:          "no_release_branch",
			inspector:     &stubInspector{repositoryPresent: true, branches: []string{"develop", "master"}},
			arguments:     []string{"rental"},
			expectedError: releasetickets.ErrNoReleaseBranch,
		},
		{
			name:          "no_repository",
			inspector:     &stubInspector{repositoryPresent: false},
			arguments:     []string{"rental"},
			expectedError: releasetickets.ErrRepositoryMissing,
		},
		{
			name: "no_tickets",
			inspector: &stubInspector{
				repositoryPresent: true,
				branches:          []string{"develop", "master", "release/1.0"},
				commitMessages:    map[string][]string{"master..release/1.0": {"Fix typo"}},
			},
			arguments:     []string{"rental"},
			expectedError: tickets.ErrNoTickets,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			command := newListTicketsCommand(testInstance, testCase.inspector)
			command.SetOut(&bytes.Buffer{})
			require.ErrorIs(testInstance, command.RunE(command, testCase.arguments), testCase.expectedError)
		})
	}
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	_, serviceError := releasetickets.NewService(releasetickets.Dependencies{})
	require.ErrorIs(testInstance, serviceError, releasetickets.ErrInspectorNotConfigured)
}
