// Package cli constructs the r3000 command-line interface. It wires the Cobra
// command hierarchy to the configuration loader and structured logging, and
// maps command errors to process exit codes.
package cli
