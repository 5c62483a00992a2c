package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/r3000/internal/projects"
	"github.com/temirov/r3000/internal/releasestatus"
	"github.com/temirov/r3000/internal/releasetickets"
	"github.com/temirov/r3000/internal/report"
	"github.com/temirov/r3000/internal/tickets"
	"github.com/temirov/r3000/internal/utils"
	"github.com/temirov/r3000/internal/workspace"
)

const (
	configurationErrorMessageConstant    = "configuration error"
	configurationErrorTemplateConstant   = "%w: %w"
	unsupportedLogFormatTemplateConstant = "unsupported log format %q"
)

// ErrConfiguration marks every failure to load or validate the configuration.
var ErrConfiguration = errors.New(configurationErrorMessageConstant)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common   ApplicationCommonConfiguration `mapstructure:"common"`
	Release  releasestatus.Configuration    `mapstructure:"release"`
	Tickets  tickets.Configuration          `mapstructure:"tickets"`
	Projects []projects.Project             `mapstructure:"projects"`
}

// ApplicationCommonConfiguration stores settings shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Color     string `mapstructure:"color"`
}

// Validate checks the sections every command depends on. Projects are validated
// by the commands themselves so that help output works without any project.
func (configuration ApplicationConfiguration) Validate() error {
	switch utils.LogFormat(strings.ToLower(strings.TrimSpace(configuration.Common.LogFormat))) {
	case utils.LogFormatStructured, utils.LogFormatConsole:
	default:
		return fmt.Errorf(configurationErrorTemplateConstant, ErrConfiguration, fmt.Errorf(unsupportedLogFormatTemplateConstant, configuration.Common.LogFormat))
	}
	if _, colorError := report.ParseColorMode(configuration.Common.Color); colorError != nil {
		return fmt.Errorf(configurationErrorTemplateConstant, ErrConfiguration, colorError)
	}
	if releaseError := configuration.Release.Validate(); releaseError != nil {
		return fmt.Errorf(configurationErrorTemplateConstant, ErrConfiguration, releaseError)
	}
	if ticketsError := configuration.Tickets.Validate(); ticketsError != nil {
		return fmt.Errorf(configurationErrorTemplateConstant, ErrConfiguration, ticketsError)
	}
	return nil
}

func (configuration ApplicationConfiguration) listConfiguration() releasestatus.CommandConfiguration {
	return releasestatus.CommandConfiguration{
		Release:   configuration.Release,
		Tickets:   configuration.Tickets,
		Projects:  configuration.Projects,
		ColorMode: configuration.Common.Color,
	}
}

func (configuration ApplicationConfiguration) updateConfiguration() workspace.CommandConfiguration {
	return workspace.CommandConfiguration{
		Release:   configuration.Release,
		Projects:  configuration.Projects,
		ColorMode: configuration.Common.Color,
	}
}

func (configuration ApplicationConfiguration) listTicketsConfiguration() releasetickets.CommandConfiguration {
	return releasetickets.CommandConfiguration{
		Release:  configuration.Release,
		Tickets:  configuration.Tickets,
		Projects: configuration.Projects,
	}
}
