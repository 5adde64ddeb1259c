// Command conveyorctl is the catalog decision CLI: it validates and imports
// catalog definitions and runs the belt, pulley, gearmotor, and tracking
// decision engines against them.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mc3abe-oss/conveyor-console/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands print their own formatted error output; only surface
		// errors that never reached a formatter.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
