package releasestatus

import (
	"errors"
	"fmt"
	"strings"
)

const (
	defaultDevelopBranchConstant            = "develop"
	defaultMasterBranchConstant             = "master"
	defaultReleasePrefixConstant            = "release/"
	defaultRemoteConstant                   = "origin"
	invalidConfigurationMessageConstant     = "invalid release configuration"
	emptyConfigurationValueTemplateConstant = "%w: release.%s is empty"
	developBranchKeyConstant                = "develop_branch"
	masterBranchKeyConstant                 = "master_branch"
	releasePrefixKeyConstant                = "release_prefix"
	remoteKeyConstant                       = "remote"
)

// ErrInvalidConfiguration indicates the release configuration cannot be used.
var ErrInvalidConfiguration = errors.New(invalidConfigurationMessageConstant)

// Configuration names the gitflow branches and the release branch ordering.
type Configuration struct {
	DevelopBranch string `mapstructure:"develop_branch"`
	MasterBranch  string `mapstructure:"master_branch"`
	ReleasePrefix string `mapstructure:"release_prefix"`
	BranchOrder   string `mapstructure:"branch_order"`
	Remote        string `mapstructure:"remote"`
}

// DefaultConfiguration returns the conventional gitflow layout.
func DefaultConfiguration() Configuration {
	return Configuration{
		DevelopBranch: defaultDevelopBranchConstant,
		MasterBranch:  defaultMasterBranchConstant,
		ReleasePrefix: defaultReleasePrefixConstant,
		BranchOrder:   string(BranchOrderVersion),
		Remote:        defaultRemoteConstant,
	}
}

// Sanitize trims configuration values without applying implicit defaults.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration

	sanitized.DevelopBranch = strings.TrimSpace(configuration.DevelopBranch)
	sanitized.MasterBranch = strings.TrimSpace(configuration.MasterBranch)
	sanitized.ReleasePrefix = strings.TrimSpace(configuration.ReleasePrefix)
	sanitized.BranchOrder = strings.ToLower(strings.TrimSpace(configuration.BranchOrder))
	sanitized.Remote = strings.TrimSpace(configuration.Remote)

	return sanitized
}

// Validate reports empty branch names and unknown branch orders.
func (configuration Configuration) Validate() error {
	sanitized := configuration.Sanitize()

	requiredValues := []struct {
		key   string
		value string
	}{
		{key: developBranchKeyConstant, value: sanitized.DevelopBranch},
		{key: masterBranchKeyConstant, value: sanitized.MasterBranch},
		{key: releasePrefixKeyConstant, value: sanitized.ReleasePrefix},
		{key: remoteKeyConstant, value: sanitized.Remote},
	}
	for _, requiredValue := range requiredValues {
		if len(requiredValue.value) == 0 {
			return fmt.Errorf(emptyConfigurationValueTemplateConstant, ErrInvalidConfiguration, requiredValue.key)
		}
	}

	if _, orderError := ParseBranchOrder(sanitized.BranchOrder); orderError != nil {
		return orderError
	}
	return nil
}
