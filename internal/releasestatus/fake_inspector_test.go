package releasestatus_test

import (
	"context"
	"fmt"
	"strings"
)

type inspectorCall struct {
	operation string
	arguments string
}

// fakeInspector serves branch listings and commit data from in-memory maps.
type fakeInspector struct {
	repositoryPresent bool
	repositoryError   error
	branches          []string
	branchListError   error
	commitCounts      map[string]int
	commitCountError  error
	commitMessages    map[string][]string
	commitLogError    error
	calls             []inspectorCall
}

func (inspector *fakeInspector) HasRepository(location string) (bool, error) {
	inspector.calls = append(inspector.calls, inspectorCall{operation: "has-repository", arguments: location})
	return inspector.repositoryPresent, inspector.repositoryError
}

func (inspector *fakeInspector) BranchesStartingWith(_ context.Context, location string, prefix string) ([]string, error) {
	inspector.calls = append(inspector.calls, inspectorCall{operation: "branches", arguments: prefix})
	if inspector.branchListError != nil {
		return nil, inspector.branchListError
	}
	matching := make([]string, 0)
	for _, branch := range inspector.branches {
		if strings.HasPrefix(branch, prefix) {
			matching = append(matching, branch)
		}
	}
	return matching, nil
}

func (inspector *fakeInspector) CommitCountBetween(_ context.Context, _ string, fromRef string, toRef string) (int, error) {
	revisionRange := fmt.Sprintf("%s..%s", fromRef, toRef)
	inspector.calls = append(inspector.calls, inspectorCall{operation: "count", arguments: revisionRange})
	if inspector.commitCountError != nil {
		return 0, inspector.commitCountError
	}
	return inspector.commitCounts[revisionRange], nil
}

func (inspector *fakeInspector) CommitMessagesBetween(_ context.Context, _ string, fromRef string, toRef string) ([]string, error) {
	revisionRange := fmt.Sprintf("%s..%s", fromRef, toRef)
	inspector.calls = append(inspector.calls, inspectorCall{operation: "log", arguments: revisionRange})
	if inspector.commitLogError != nil {
		return nil, inspector.commitLogError
	}
	return inspector.commitMessages[revisionRange], nil
}

func (inspector *fakeInspector) operations() []string {
	operations := make([]string, 0, len(inspector.calls))
	for _, call := range inspector.calls {
		operations = append(operations, call.operation+" "+call.arguments)
	}
	return operations
}
