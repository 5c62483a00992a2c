package projects

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	pathutils "github.com/temirov/r3000/internal/utils/path"
)

const (
	invalidConfigurationMessageConstant         = "invalid project configuration"
	projectNotFoundMessageConstant              = "project not found"
	noProjectsConfiguredMessageConstant         = "no projects configured"
	projectNameMissingTemplateConstant          = "%w: project #%d has no name"
	projectLocationMissingTemplateConstant      = "%w: project %q has no location"
	duplicateTechnicalNameTemplateConstant      = "%w: technical name %q is used by %q and %q"
	projectNotFoundTemplateConstant             = "%w: %q"
	customPropertiesDecodeErrorTemplateConstant = "failed to decode custom properties of %q: %w"
	mapstructureTagNameConstant                 = "mapstructure"
)

// ErrInvalidConfiguration indicates the configured project list cannot be used.
var ErrInvalidConfiguration = errors.New(invalidConfigurationMessageConstant)

// ErrNoProjectsConfigured indicates the configuration does not list any project.
var ErrNoProjectsConfigured = fmt.Errorf("%w: %s", ErrInvalidConfiguration, noProjectsConfiguredMessageConstant)

// ErrProjectNotFound indicates no project carries the requested technical name.
var ErrProjectNotFound = errors.New(projectNotFoundMessageConstant)

// Project is one configured gitflow working copy.
type Project struct {
	Name             string            `mapstructure:"name"`
	TechnicalName    string            `mapstructure:"technical-name"`
	Location         string            `mapstructure:"location"`
	CustomProperties map[string]string `mapstructure:"custom-properties"`
}

// BitbucketProperties identifies the Bitbucket repository hosting a project.
type BitbucketProperties struct {
	Workspace      string `mapstructure:"bitbucket-workspace"`
	RepositorySlug string `mapstructure:"bitbucket-repository-slug"`
}

// BitbucketProperties decodes the Bitbucket custom properties. The boolean result
// is false unless both the workspace and the repository slug are present.
func (project Project) BitbucketProperties() (BitbucketProperties, bool, error) {
	var properties BitbucketProperties
	if len(project.CustomProperties) == 0 {
		return properties, false, nil
	}

	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: mapstructureTagNameConstant,
		Result:  &properties,
	})
	if decoderError != nil {
		return BitbucketProperties{}, false, fmt.Errorf(customPropertiesDecodeErrorTemplateConstant, project.Name, decoderError)
	}
	if decodeError := decoder.Decode(project.CustomProperties); decodeError != nil {
		return BitbucketProperties{}, false, fmt.Errorf(customPropertiesDecodeErrorTemplateConstant, project.Name, decodeError)
	}

	properties.Workspace = strings.TrimSpace(properties.Workspace)
	properties.RepositorySlug = strings.TrimSpace(properties.RepositorySlug)
	complete := len(properties.Workspace) > 0 && len(properties.RepositorySlug) > 0
	return properties, complete, nil
}

// Catalog is the validated, ordered list of configured projects.
type Catalog struct {
	projects        []Project
	byTechnicalName map[string]int
}

// NewCatalog trims and validates the configured projects and expands "~" in their locations.
// Every project needs a name and a location; technical names are optional but unique.
func NewCatalog(configuredProjects []Project, homeExpander *pathutils.HomeExpander) (Catalog, error) {
	if len(configuredProjects) == 0 {
		return Catalog{}, ErrNoProjectsConfigured
	}
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}

	catalog := Catalog{
		projects:        make([]Project, 0, len(configuredProjects)),
		byTechnicalName: make(map[string]int, len(configuredProjects)),
	}

	for projectIndex, configuredProject := range configuredProjects {
		project := Project{
			Name:             strings.TrimSpace(configuredProject.Name),
			TechnicalName:    strings.TrimSpace(configuredProject.TechnicalName),
			Location:         homeExpander.Expand(strings.TrimSpace(configuredProject.Location)),
			CustomProperties: configuredProject.CustomProperties,
		}

		if len(project.Name) == 0 {
			return Catalog{}, fmt.Errorf(projectNameMissingTemplateConstant, ErrInvalidConfiguration, projectIndex+1)
		}
		if len(project.Location) == 0 {
			return Catalog{}, fmt.Errorf(projectLocationMissingTemplateConstant, ErrInvalidConfiguration, project.Name)
		}
		if len(project.TechnicalName) > 0 {
			if existingIndex, duplicate := catalog.byTechnicalName[project.TechnicalName]; duplicate {
				return Catalog{}, fmt.Errorf(duplicateTechnicalNameTemplateConstant, ErrInvalidConfiguration, project.TechnicalName, catalog.projects[existingIndex].Name, project.Name)
			}
			catalog.byTechnicalName[project.TechnicalName] = len(catalog.projects)
		}

		catalog.projects = append(catalog.projects, project)
	}

	return catalog, nil
}

// Projects returns the projects in configuration order.
func (catalog Catalog) Projects() []Project {
	return append([]Project(nil), catalog.projects...)
}

// FindByTechnicalName returns the project with the given technical name.
func (catalog Catalog) FindByTechnicalName(technicalName string) (Project, error) {
	trimmedName := strings.TrimSpace(technicalName)
	projectIndex, found := catalog.byTechnicalName[trimmedName]
	if !found {
		return Project{}, fmt.Errorf(projectNotFoundTemplateConstant, ErrProjectNotFound, trimmedName)
	}
	return catalog.projects[projectIndex], nil
}
