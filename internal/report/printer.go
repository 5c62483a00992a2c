package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	entryHeadlineTemplateConstant       = "%s %s - %s"
	entryActionTemplateConstant         = "  - %s"
	failureIconConstant                 = "⚠️"
	failureDescriptionTemplateConstant  = "%s: %v"
	defaultFailureLabelConstant         = "inspection failed"
	lineTerminatorConstant              = "\n"
	yamlIndentationConstant             = 2
	successColorConstant                = "42"
	failureColorConstant                = "196"
	warningColorConstant                = "214"
	attentionColorConstant              = "45"
	neutralColorConstant                = "250"
	actionColorConstant                 = "241"
	writeEntryErrorTemplateConstant     = "failed to write report entry: %w"
	encodeDocumentErrorTemplateConstant = "failed to encode report: %w"
)

// Tone classifies an entry for styling.
type Tone string

// Supported tones.
const (
	ToneSuccess   Tone = Tone("success")
	ToneFailure   Tone = Tone("failure")
	ToneWarning   Tone = Tone("warning")
	ToneAttention Tone = Tone("attention")
	ToneNeutral   Tone = Tone("neutral")
)

var toneColors = map[Tone]string{
	ToneSuccess:   successColorConstant,
	ToneFailure:   failureColorConstant,
	ToneWarning:   warningColorConstant,
	ToneAttention: attentionColorConstant,
	ToneNeutral:   neutralColorConstant,
}

// Entry is the rendered outcome for one project. A non-nil Failure replaces the status fields.
type Entry struct {
	ProjectName string
	Kind        string
	Icon        string
	Tone        Tone
	Description string
	NextActions []string
	Failure     error
}

type yamlDocument struct {
	Projects []yamlEntry `yaml:"projects"`
}

type yamlEntry struct {
	Project     string   `yaml:"project"`
	Kind        string   `yaml:"kind,omitempty"`
	Icon        string   `yaml:"icon,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Actions     []string `yaml:"actions,omitempty"`
	Error       string   `yaml:"error,omitempty"`
}

// Printer writes report entries. Text entries are written immediately; YAML entries
// are collected and written by Flush.
type Printer struct {
	writer       io.Writer
	format       OutputFormat
	styled       bool
	renderer     *lipgloss.Renderer
	failureLabel string
	pendingYAML  []yamlEntry
}

// NewPrinter validates options and constructs a Printer writing to writer.
func NewPrinter(writer io.Writer, options Options) (*Printer, error) {
	format, formatError := ParseOutputFormat(string(options.Format))
	if formatError != nil {
		return nil, formatError
	}
	colorMode, colorModeError := ParseColorMode(string(options.ColorMode))
	if colorModeError != nil {
		return nil, colorModeError
	}

	failureLabel := strings.TrimSpace(options.FailureLabel)
	if len(failureLabel) == 0 {
		failureLabel = defaultFailureLabelConstant
	}

	printer := &Printer{writer: writer, format: format, failureLabel: failureLabel}
	if format != OutputFormatText {
		return printer, nil
	}

	switch colorMode {
	case ColorModeAlways:
		printer.renderer = lipgloss.NewRenderer(writer)
		printer.renderer.SetColorProfile(termenv.ANSI256)
		printer.styled = true
	case ColorModeAuto:
		if isTerminal(writer) {
			printer.renderer = lipgloss.NewRenderer(writer)
			printer.styled = printer.renderer.ColorProfile() != termenv.Ascii
		}
	}
	return printer, nil
}

// Write emits or records one entry.
func (printer *Printer) Write(entry Entry) error {
	if printer.format == OutputFormatYAML {
		printer.pendingYAML = append(printer.pendingYAML, toYAMLEntry(entry))
		return nil
	}

	lines := printer.renderText(entry)
	if _, writeError := io.WriteString(printer.writer, strings.Join(lines, lineTerminatorConstant)+lineTerminatorConstant); writeError != nil {
		return fmt.Errorf(writeEntryErrorTemplateConstant, writeError)
	}
	return nil
}

// Flush writes the collected YAML document. It is a no-op for text output.
func (printer *Printer) Flush() error {
	if printer.format != OutputFormatYAML {
		return nil
	}

	encoder := yaml.NewEncoder(printer.writer)
	encoder.SetIndent(yamlIndentationConstant)
	document := yamlDocument{Projects: printer.pendingYAML}
	if document.Projects == nil {
		document.Projects = []yamlEntry{}
	}
	if encodeError := encoder.Encode(document); encodeError != nil {
		return fmt.Errorf(encodeDocumentErrorTemplateConstant, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(encodeDocumentErrorTemplateConstant, closeError)
	}
	printer.pendingYAML = nil
	return nil
}

func (printer *Printer) renderText(entry Entry) []string {
	if entry.Failure != nil {
		headline := fmt.Sprintf(entryHeadlineTemplateConstant, failureIconConstant, entry.ProjectName, fmt.Sprintf(failureDescriptionTemplateConstant, printer.failureLabel, entry.Failure))
		return []string{printer.style(headline, failureColorConstant, true)}
	}

	headline := fmt.Sprintf(entryHeadlineTemplateConstant, entry.Icon, entry.ProjectName, entry.Description)
	lines := []string{printer.style(headline, toneColors[entry.Tone], true)}
	for _, action := range entry.NextActions {
		lines = append(lines, printer.style(fmt.Sprintf(entryActionTemplateConstant, action), actionColorConstant, false))
	}
	return lines
}

func (printer *Printer) style(text string, color string, bold bool) string {
	if !printer.styled || len(color) == 0 {
		return text
	}
	return printer.renderer.NewStyle().Foreground(lipgloss.Color(color)).Bold(bold).Render(text)
}

func toYAMLEntry(entry Entry) yamlEntry {
	if entry.Failure != nil {
		return yamlEntry{Project: entry.ProjectName, Error: entry.Failure.Error()}
	}
	return yamlEntry{
		Project:     entry.ProjectName,
		Kind:        entry.Kind,
		Icon:        entry.Icon,
		Description: entry.Description,
		Actions:     entry.NextActions,
	}
}

func isTerminal(writer io.Writer) bool {
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
