// Package tickets extracts issue-tracker ticket identifiers from commit
// messages and turns ticket sets into issue-tracker search URLs.
//
// The identifier pattern and the query grammar both come from configuration:
// prefixes such as REN match REN-1234 on word boundaries, and the query builder
// renders either "key in (A, B)" or "key = A OR key = B" under a base URL.
package tickets
