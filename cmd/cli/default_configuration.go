package cli

import (
	"bytes"
	_ "embed"
)

// embeddedDefaultConfigurationContent holds the r3000 defaults: console logging, the
// develop/master/release gitflow names, REN tickets and an empty project list.
//
//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the embedded defaults and their format.
// The loader merges them beneath ~/.r3000/config.yaml and the environment.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return bytes.Clone(embeddedDefaultConfigurationContent), configurationTypeConstant
}
