// Package utils hosts the configuration loader and logger factory shared by
// every r3000 command. Configuration is resolved through Viper (embedded
// defaults, configuration file, environment overrides) and diagnostics are
// emitted through zap.
package utils
