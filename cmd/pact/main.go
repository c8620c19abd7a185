// Command pact inspects, validates, exports and verifies message pacts.
package main

import (
	"fmt"
	"os"

	"github.com/alexthissen/pact-net/internal/cli"
	"github.com/alexthissen/pact-net/internal/ir"
)

// Set by build flags.
var version = ir.ClientVersion

func main() {
	root := cli.NewRootCommand()
	root.Version = version

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
