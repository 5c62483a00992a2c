package main

import (
	"fmt"
	"os"

	"github.com/temirov/r3000/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the r3000 command-line application.
func main() {
	executionError := cli.Execute()
	if executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	}
	os.Exit(cli.ExitCode(executionError))
}
