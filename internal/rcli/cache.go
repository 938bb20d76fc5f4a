package rcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relmach/ramc/internal/cache"
)

func newCacheCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the clause-translation cache",
	}
	cmd.AddCommand(newCacheGetCommand(rootOpts))
	return cmd
}

func newCacheGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "get <cache.db> <clause-hash> <version>",
		Short:         "Look up a cached translation by clause hash and version",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheGet(rootOpts, args[0], args[1], args[2], cmd)
		},
	}
	return cmd
}

type cacheGetReport struct {
	Found   bool   `json:"found"`
	RAMHash string `json:"ram_hash,omitempty"`
}

func runCacheGet(rootOpts *RootOptions, dbPath, clauseHash, versionArg string, cmd *cobra.Command) error {
	f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: rootOpts.Verbose}

	var version int
	if _, err := fmt.Sscanf(versionArg, "%d", &version); err != nil {
		f.Error("E201", err.Error())
		return NewExitError(ExitCommandError, "invalid version")
	}

	c, err := cache.Open(dbPath)
	if err != nil {
		f.Error("E202", err.Error())
		return WrapExitError(ExitCommandError, "open cache failed", err)
	}
	defer c.Close()

	ramHash, _, found, err := c.Get(clauseHash, version)
	if err != nil {
		f.Error("E203", err.Error())
		return WrapExitError(ExitCommandError, "cache lookup failed", err)
	}

	report := cacheGetReport{Found: found, RAMHash: ramHash}
	if rootOpts.Format == "json" {
		return f.Success(report)
	}
	if found {
		fmt.Fprintf(f.Writer, "found: %s\n", ramHash)
	} else {
		fmt.Fprintln(f.Writer, "not found")
	}
	return nil
}
