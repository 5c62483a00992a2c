package releasestatus

import (
	"fmt"
	"strings"

	"github.com/maruel/natural"
)

const unsupportedBranchOrderTemplateConstant = "%w: unsupported release.branch_order %q (expected version, lexical or listing)"

// BranchOrder selects how the latest release branch is chosen.
type BranchOrder string

// Supported branch orders.
const (
	// BranchOrderVersion compares the suffix after the release prefix in natural order:
	// digit runs numerically, everything else byte by byte.
	BranchOrderVersion BranchOrder = BranchOrder("version")
	// BranchOrderLexical compares branch names byte by byte.
	BranchOrderLexical BranchOrder = BranchOrder("lexical")
	// BranchOrderListing keeps the order reported by git.
	BranchOrderListing BranchOrder = BranchOrder("listing")
)

// ParseBranchOrder normalizes a configured branch order. Empty selects version ordering.
func ParseBranchOrder(rawOrder string) (BranchOrder, error) {
	normalizedOrder := BranchOrder(strings.ToLower(strings.TrimSpace(rawOrder)))
	switch normalizedOrder {
	case "":
		return BranchOrderVersion, nil
	case BranchOrderVersion, BranchOrderLexical, BranchOrderListing:
		return normalizedOrder, nil
	default:
		return "", fmt.Errorf(unsupportedBranchOrderTemplateConstant, ErrInvalidConfiguration, rawOrder)
	}
}

// LatestBranch returns the last branch under order. Ties keep the later listed branch.
func LatestBranch(branches []string, prefix string, order BranchOrder) (string, bool) {
	if len(branches) == 0 {
		return "", false
	}

	latest := branches[0]
	for _, candidate := range branches[1:] {
		switch order {
		case BranchOrderListing:
			latest = candidate
		case BranchOrderLexical:
			if candidate >= latest {
				latest = candidate
			}
		default:
			if !natural.Less(strings.TrimPrefix(candidate, prefix), strings.TrimPrefix(latest, prefix)) {
				latest = candidate
			}
		}
	}
	return latest, true
}
