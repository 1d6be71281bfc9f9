// Command issuestate compiles state catalogs and resolves issues against
// them.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/issuestate/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()

	// Commands report their own failures; anything else (bad flags, wrong
	// argument count) has not been printed yet.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
