package tickets

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	defaultTicketPrefixConstant              = "REN"
	defaultBaseURLConstant                   = "https://jira.example.com/issues/"
	defaultQueryFieldConstant                = "key"
	defaultQueryParameterConstant            = "jql"
	invalidConfigurationMessageConstant      = "invalid tickets configuration"
	missingPatternSourceTemplateConstant     = "%w: configure tickets.prefixes or tickets.pattern"
	invalidPrefixTemplateConstant            = "%w: ticket prefix %q must be alphabetic"
	invalidPatternTemplateConstant           = "%w: ticket pattern %q: %v"
	missingBaseURLTemplateConstant           = "%w: tickets.base_url is empty"
	missingQueryFieldTemplateConstant        = "%w: tickets.query_field is empty"
	missingQueryParameterTemplateConstant    = "%w: tickets.query_parameter is empty"
	unsupportedQueryOperatorTemplateConstant = "%w: unsupported query operator %q (expected in or or)"
)

// QueryOperator selects the grammar used to join ticket identifiers in a query.
type QueryOperator string

// Supported query grammars.
const (
	QueryOperatorIn QueryOperator = QueryOperator("in")
	QueryOperatorOr QueryOperator = QueryOperator("or")
)

// ErrInvalidConfiguration indicates the tickets configuration cannot be used.
var ErrInvalidConfiguration = errors.New(invalidConfigurationMessageConstant)

var alphabeticPrefixPattern = regexp.MustCompile(`^[A-Za-z]+$`)

// Configuration describes ticket extraction and the issue-tracker query.
type Configuration struct {
	Prefixes       []string `mapstructure:"prefixes"`
	Pattern        string   `mapstructure:"pattern"`
	BaseURL        string   `mapstructure:"base_url"`
	QueryField     string   `mapstructure:"query_field"`
	QueryOperator  string   `mapstructure:"query_operator"`
	QueryParameter string   `mapstructure:"query_parameter"`
}

// DefaultConfiguration returns the baseline tickets configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		Prefixes:       []string{defaultTicketPrefixConstant},
		Pattern:        "",
		BaseURL:        defaultBaseURLConstant,
		QueryField:     defaultQueryFieldConstant,
		QueryOperator:  string(QueryOperatorIn),
		QueryParameter: defaultQueryParameterConstant,
	}
}

// Sanitize trims configuration values without applying implicit defaults.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration

	sanitized.Prefixes = make([]string, 0, len(configuration.Prefixes))
	for _, prefix := range configuration.Prefixes {
		trimmedPrefix := strings.TrimSpace(prefix)
		if len(trimmedPrefix) == 0 {
			continue
		}
		sanitized.Prefixes = append(sanitized.Prefixes, trimmedPrefix)
	}
	sanitized.Pattern = strings.TrimSpace(configuration.Pattern)
	sanitized.BaseURL = strings.TrimSpace(configuration.BaseURL)
	sanitized.QueryField = strings.TrimSpace(configuration.QueryField)
	sanitized.QueryOperator = strings.ToLower(strings.TrimSpace(configuration.QueryOperator))
	sanitized.QueryParameter = strings.TrimSpace(configuration.QueryParameter)

	return sanitized
}

// Validate reports the first problem that would prevent extraction or query building.
func (configuration Configuration) Validate() error {
	sanitized := configuration.Sanitize()

	if _, patternError := sanitized.compilePattern(); patternError != nil {
		return patternError
	}
	if len(sanitized.BaseURL) == 0 {
		return fmt.Errorf(missingBaseURLTemplateConstant, ErrInvalidConfiguration)
	}
	if len(sanitized.QueryField) == 0 {
		return fmt.Errorf(missingQueryFieldTemplateConstant, ErrInvalidConfiguration)
	}
	if len(sanitized.QueryParameter) == 0 {
		return fmt.Errorf(missingQueryParameterTemplateConstant, ErrInvalidConfiguration)
	}
	switch QueryOperator(sanitized.QueryOperator) {
	case QueryOperatorIn, QueryOperatorOr:
	default:
		return fmt.Errorf(unsupportedQueryOperatorTemplateConstant, ErrInvalidConfiguration, sanitized.QueryOperator)
	}
	return nil
}

// compilePattern builds the identifier regular expression. A raw pattern wins over prefixes.
func (configuration Configuration) compilePattern() (*regexp.Regexp, error) {
	if len(configuration.Pattern) > 0 {
		compiledPattern, compileError := regexp.Compile(configuration.Pattern)
		if compileError != nil {
			return nil, fmt.Errorf(invalidPatternTemplateConstant, ErrInvalidConfiguration, configuration.Pattern, compileError)
		}
		return compiledPattern, nil
	}

	if len(configuration.Prefixes) == 0 {
		return nil, fmt.Errorf(missingPatternSourceTemplateConstant, ErrInvalidConfiguration)
	}
	quotedPrefixes := make([]string, 0, len(configuration.Prefixes))
	for _, prefix := range configuration.Prefixes {
		if !alphabeticPrefixPattern.MatchString(prefix) {
			return nil, fmt.Errorf(invalidPrefixTemplateConstant, ErrInvalidConfiguration, prefix)
		}
		quotedPrefixes = append(quotedPrefixes, regexp.QuoteMeta(prefix))
	}
	return regexp.MustCompile(fmt.Sprintf(prefixedIdentifierPatternTemplateConstant, strings.Join(quotedPrefixes, prefixAlternationSeparatorConstant))), nil
}
