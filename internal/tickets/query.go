package tickets

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	noTicketsMessageConstant             = "no tickets to query"
	malformedQueryMessageConstant        = "malformed ticket query"
	queryInOpeningTemplateConstant       = "%s in ("
	queryInClosingConstant               = ")"
	queryOrClauseTemplateConstant        = "%s = %s"
	queryOrSeparatorConstant             = " OR "
	queryStringSeparatorConstant         = "?"
	queryStringJoinerConstant            = "&"
	foreignBaseURLTemplateConstant       = "%w: %q does not start with %q"
	unparsableURLTemplateConstant        = "%w: %v"
	absentQueryParameterTemplateConstant = "%w: parameter %q is missing"
	unrecognizedGrammarTemplateConstant  = "%w: %q is neither an in nor an or query on %q"
)

// ErrNoTickets indicates a query was requested for an empty ticket set.
var ErrNoTickets = errors.New(noTicketsMessageConstant)

// ErrMalformedQuery indicates a URL could not be decoded back into tickets.
var ErrMalformedQuery = errors.New(malformedQueryMessageConstant)

// ParsedQuery is the decoded form of a query URL.
type ParsedQuery struct {
	Field    string
	Operator QueryOperator
	Tickets  TicketSet
}

// QueryBuilder renders ticket sets as issue-tracker search URLs.
type QueryBuilder struct {
	baseURL   string
	field     string
	operator  QueryOperator
	parameter string
}

// NewQueryBuilder validates configuration and constructs a QueryBuilder.
func NewQueryBuilder(configuration Configuration) (*QueryBuilder, error) {
	if validationError := configuration.Validate(); validationError != nil {
		return nil, validationError
	}
	sanitized := configuration.Sanitize()
	return &QueryBuilder{
		baseURL:   sanitized.BaseURL,
		field:     sanitized.QueryField,
		operator:  QueryOperator(sanitized.QueryOperator),
		parameter: sanitized.QueryParameter,
	}, nil
}

// Build returns the search URL for tickets. Identifiers appear in sorted order.
func (builder *QueryBuilder) Build(tickets TicketSet) (string, error) {
	if tickets.IsEmpty() {
		return "", ErrNoTickets
	}

	query := builder.renderQuery(tickets.Sorted())
	encodedQuery := url.Values{builder.parameter: []string{query}}.Encode()

	separator := queryStringSeparatorConstant
	if strings.Contains(builder.baseURL, queryStringSeparatorConstant) {
		separator = queryStringJoinerConstant
	}
	return builder.baseURL + separator + encodedQuery, nil
}

// Parse decodes a URL produced by Build. Either grammar is recognized regardless of
// the configured operator.
func (builder *QueryBuilder) Parse(queryURL string) (ParsedQuery, error) {
	trimmedURL := strings.TrimSpace(queryURL)
	if !strings.HasPrefix(trimmedURL, builder.baseURL) {
		return ParsedQuery{}, fmt.Errorf(foreignBaseURLTemplateConstant, ErrMalformedQuery, trimmedURL, builder.baseURL)
	}

	parsedURL, parseError := url.Parse(trimmedURL)
	if parseError != nil {
		return ParsedQuery{}, fmt.Errorf(unparsableURLTemplateConstant, ErrMalformedQuery, parseError)
	}
	queryValues := parsedURL.Query()
	if !queryValues.Has(builder.parameter) {
		return ParsedQuery{}, fmt.Errorf(absentQueryParameterTemplateConstant, ErrMalformedQuery, builder.parameter)
	}
	query := strings.TrimSpace(queryValues.Get(builder.parameter))

	if identifiers, matched := builder.parseInQuery(query); matched {
		return ParsedQuery{Field: builder.field, Operator: QueryOperatorIn, Tickets: NewTicketSet(identifiers...)}, nil
	}
	if identifiers, matched := builder.parseOrQuery(query); matched {
		return ParsedQuery{Field: builder.field, Operator: QueryOperatorOr, Tickets: NewTicketSet(identifiers...)}, nil
	}
	return ParsedQuery{}, fmt.Errorf(unrecognizedGrammarTemplateConstant, ErrMalformedQuery, query, builder.field)
}

func (builder *QueryBuilder) renderQuery(sortedIdentifiers []string) string {
	if builder.operator == QueryOperatorOr {
		clauses := make([]string, 0, len(sortedIdentifiers))
		for _, identifier := range sortedIdentifiers {
			clauses = append(clauses, fmt.Sprintf(queryOrClauseTemplateConstant, builder.field, identifier))
		}
		return strings.Join(clauses, queryOrSeparatorConstant)
	}
	return fmt.Sprintf(queryInOpeningTemplateConstant, builder.field) + strings.Join(sortedIdentifiers, identifierSeparatorConstant) + queryInClosingConstant
}

func (builder *QueryBuilder) parseInQuery(query string) ([]string, bool) {
	opening := fmt.Sprintf(queryInOpeningTemplateConstant, builder.field)
	if !strings.HasPrefix(query, opening) || !strings.HasSuffix(query, queryInClosingConstant) {
		return nil, false
	}
	body := strings.TrimSuffix(strings.TrimPrefix(query, opening), queryInClosingConstant)
	identifiers := strings.Split(body, identifierSeparatorConstant)
	for _, identifier := range identifiers {
		if len(strings.TrimSpace(identifier)) == 0 {
			return nil, false
		}
	}
	return identifiers, true
}

func (builder *QueryBuilder) parseOrQuery(query string) ([]string, bool) {
	clausePrefix := fmt.Sprintf(queryOrClauseTemplateConstant, builder.field, "")
	clauses := strings.Split(query, queryOrSeparatorConstant)
	identifiers := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		if !strings.HasPrefix(clause, clausePrefix) {
			return nil, false
		}
		identifier := strings.TrimSpace(strings.TrimPrefix(clause, clausePrefix))
		if len(identifier) == 0 {
			return nil, false
		}
		identifiers = append(identifiers, identifier)
	}
	return identifiers, true
}
