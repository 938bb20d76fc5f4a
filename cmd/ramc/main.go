// Command ramc translates Datalog clauses into RAM programs.
package main

import (
	"fmt"
	"os"

	"github.com/relmach/ramc/internal/rcli"
)

func main() {
	root := rcli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(rcli.GetExitCode(err))
	}
}
