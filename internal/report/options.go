package report

import (
	"errors"
	"fmt"
	"strings"
)

const (
	unsupportedOutputFormatTemplateConstant = "%w: unsupported output format %q (expected text or yaml)"
	unsupportedColorModeTemplateConstant    = "%w: unsupported color mode %q (expected auto, always or never)"
	invalidOptionsMessageConstant           = "invalid report options"
)

// OutputFormat selects the report encoding.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatText OutputFormat = OutputFormat("text")
	OutputFormatYAML OutputFormat = OutputFormat("yaml")
)

// ColorMode controls styling of the text report.
type ColorMode string

// Supported color modes. Auto styles output only when the writer is a terminal.
const (
	ColorModeAuto   ColorMode = ColorMode("auto")
	ColorModeAlways ColorMode = ColorMode("always")
	ColorModeNever  ColorMode = ColorMode("never")
)

// ErrInvalidOptions indicates an unknown output format or color mode.
var ErrInvalidOptions = errors.New(invalidOptionsMessageConstant)

// ParseOutputFormat normalizes a user supplied output format. Empty selects text.
func ParseOutputFormat(rawFormat string) (OutputFormat, error) {
	normalizedFormat := OutputFormat(strings.ToLower(strings.TrimSpace(rawFormat)))
	switch normalizedFormat {
	case "":
		return OutputFormatText, nil
	case OutputFormatText, OutputFormatYAML:
		return normalizedFormat, nil
	default:
		return "", fmt.Errorf(unsupportedOutputFormatTemplateConstant, ErrInvalidOptions, rawFormat)
	}
}

// ParseColorMode normalizes a user supplied color mode. Empty selects auto.
func ParseColorMode(rawMode string) (ColorMode, error) {
	normalizedMode := ColorMode(strings.ToLower(strings.TrimSpace(rawMode)))
	switch normalizedMode {
	case "":
		return ColorModeAuto, nil
	case ColorModeAuto, ColorModeAlways, ColorModeNever:
		return normalizedMode, nil
	default:
		return "", fmt.Errorf(unsupportedColorModeTemplateConstant, ErrInvalidOptions, rawMode)
	}
}

// Options configures a Printer. FailureLabel prefixes failed entries and defaults
// to "inspection failed".
type Options struct {
	Format       OutputFormat
	ColorMode    ColorMode
	FailureLabel string
}
