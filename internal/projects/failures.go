package projects

import (
	"errors"
	"fmt"
)

const (
	projectFailuresMessageConstant  = "one or more projects failed"
	projectFailuresTemplateConstant = "%w: %d of %d"
)

// ErrProjectFailures indicates that a command reported per-project failures inline
// and finished the remaining projects.
var ErrProjectFailures = errors.New(projectFailuresMessageConstant)

// FailureSummary returns nil when failedCount is zero and an ErrProjectFailures
// wrapper naming the counts otherwise.
func FailureSummary(failedCount int, totalCount int) error {
	if failedCount == 0 {
		return nil
	}
	return fmt.Errorf(projectFailuresTemplateConstant, ErrProjectFailures, failedCount, totalCount)
}
