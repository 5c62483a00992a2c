package tickets

import (
	"sort"
	"strings"
)

// TicketSet is an immutable set of ticket identifiers.
type TicketSet struct {
	identifiers map[string]struct{}
}

// NewTicketSet builds a set from identifiers, ignoring blanks and duplicates.
func NewTicketSet(identifiers ...string) TicketSet {
	members := make(map[string]struct{}, len(identifiers))
	for _, identifier := range identifiers {
		trimmedIdentifier := strings.TrimSpace(identifier)
		if len(trimmedIdentifier) == 0 {
			continue
		}
		members[trimmedIdentifier] = struct{}{}
	}
	return TicketSet{identifiers: members}
}

// Len returns the number of distinct identifiers.
func (set TicketSet) Len() int {
	return len(set.identifiers)
}

// IsEmpty reports whether the set holds no identifier.
func (set TicketSet) IsEmpty() bool {
	return len(set.identifiers) == 0
}

// Contains reports whether identifier is a member.
func (set TicketSet) Contains(identifier string) bool {
	_, member := set.identifiers[identifier]
	return member
}

// Sorted returns the identifiers in ascending order.
func (set TicketSet) Sorted() []string {
	sortedIdentifiers := make([]string, 0, len(set.identifiers))
	for identifier := range set.identifiers {
		sortedIdentifiers = append(sortedIdentifiers, identifier)
	}
	sort.Strings(sortedIdentifiers)
	return sortedIdentifiers
}

// Equal reports whether both sets hold the same identifiers.
func (set TicketSet) Equal(other TicketSet) bool {
	if set.Len() != other.Len() {
		return false
	}
	for identifier := range set.identifiers {
		if !other.Contains(identifier) {
			return false
		}
	}
	return true
}

// String joins the sorted identifiers with ", ".
func (set TicketSet) String() string {
	return strings.Join(set.Sorted(), identifierSeparatorConstant)
}
