package tickets

import "regexp"

const (
	prefixedIdentifierPatternTemplateConstant = `\b(?:%s)-\d{2,6}\b`
	prefixAlternationSeparatorConstant        = "|"
	identifierSeparatorConstant               = ", "
)

// Extractor finds ticket identifiers in commit messages.
type Extractor struct {
	pattern *regexp.Regexp
}

// NewExtractor compiles the identifier pattern described by configuration.
func NewExtractor(configuration Configuration) (*Extractor, error) {
	compiledPattern, patternError := configuration.Sanitize().compilePattern()
	if patternError != nil {
		return nil, patternError
	}
	return &Extractor{pattern: compiledPattern}, nil
}

// Extract returns the distinct identifiers mentioned in messages. No match yields an empty set.
func (extractor *Extractor) Extract(messages []string) TicketSet {
	identifiers := make([]string, 0)
	for _, message := range messages {
		identifiers = append(identifiers, extractor.pattern.FindAllString(message, -1)...)
	}
	return NewTicketSet(identifiers...)
}
