package workspace_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/r3000/internal/projects"
	"github.com/temirov/r3000/internal/releasestatus"
	"github.com/temirov/r3000/internal/report"
	"github.com/temirov/r3000/internal/workspace"
)

func buildUpdateCommandConfiguration() workspace.CommandConfiguration {
	return workspace.CommandConfiguration{
		Release: releasestatus.DefaultConfiguration(),
		Projects: []projects.Project{
			{Name: "Rental", TechnicalName: "rental", Location: "/workspace/rental"},
			{Name: "Gateway", TechnicalName: "gateway", Location: "/workspace/gateway"},
			{Name: "Billing", TechnicalName: "billing", Location: "/workspace/billing"},
			{Name: "Archive", TechnicalName: "archive", Location: "/workspace/archive"},
		},
		ColorMode: string(report.ColorModeNever),
	}
}

func TestUpdateCommandReportsEveryProject(testInstance *testing.T) {
	synchronizer := &recordingSynchronizer{
		missingRepositories: map[string]bool{"/workspace/archive": true},
		missingBranches:     map[string]bool{"/workspace/billing master": true},
		fetchFailures:       map[string]error{"/workspace/gateway": errors.New("could not resolve host")},
	}
	builder := workspace.CommandBuilder{
		Synchronizer:          synchronizer,
		ConfigurationProvider: buildUpdateCommandConfiguration,
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{"--quiet"})

	executionError := command.Execute()
	require.ErrorIs(testInstance, executionError, projects.ErrProjectFailures)
	require.EqualError(testInstance, executionError, "one or more projects failed: 1 of 4")

	expectedOutput := "🔄 Rental - Updated develop, master\n" +
		"⚠️ Gateway - update failed: failed to fetch origin: could not resolve host\n" +
		"🔄 Billing - Updated develop\n" +
		"  - Remote branch origin/master not found; skipped\n" +
		"❌ Archive - No .git repository found at location /workspace/archive\n"
	require.Equal(testInstance, expectedOutput, outputBuffer.String())
	require.Contains(testInstance, synchronizer.operations, "fetch /workspace/rental origin quiet=true")
}

func TestUpdateCommandLogsFailuresAtDebug(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	builder := workspace.CommandBuilder{
		LoggerProvider:        func() *zap.Logger { return zap.New(observerCore) },
		Synchronizer:          &recordingSynchronizer{fetchFailures: map[string]error{"/workspace/gateway": errors.New("could not resolve host")}},
		ConfigurationProvider: buildUpdateCommandConfiguration,
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{})

	require.ErrorIs(testInstance, command.Execute(), projects.ErrProjectFailures)

	failureEntries := observedLogs.FilterMessage("project update failed").All()
	require.Len(testInstance, failureEntries, 1)
	require.Equal(testInstance, zapcore.DebugLevel, failureEntries[0].Level)
	require.Zero(testInstance, observedLogs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestUpdateCommandAlias(testInstance *testing.T) {
	builder := workspace.CommandBuilder{Synchronizer: &recordingSynchronizer{}}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	require.Equal(testInstance, []string{"prepare-workspace"}, command.Aliases)
}

func TestUpdateCommandRequiresProjects(testInstance *testing.T) {
	builder := workspace.CommandBuilder{Synchronizer: &recordingSynchronizer{}}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{})

	require.ErrorIs(testInstance, command.Execute(), projects.ErrInvalidConfiguration)
}
