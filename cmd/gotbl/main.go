// Command gotbl converts *.tbl string tables to text and back, and analyses their structure.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/gotbl/internal/cli"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// run executes the root command with the given arguments.
func run(args []string, stdout, stderr io.Writer) error {
	cmd := cli.NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	return cmd.Execute()
}

func exitCode(err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return 1
}
