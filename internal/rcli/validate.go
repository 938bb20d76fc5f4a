package rcli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relmach/ramc/internal/specload"
)

func newValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "validate <document.json>",
		Short:         "Validate a translation-unit document without translating it",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(rootOpts *RootOptions, docPath string, cmd *cobra.Command) error {
	f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: rootOpts.Verbose}

	data, err := os.ReadFile(docPath)
	if err != nil {
		f.Error("E005", err.Error())
		return NewExitError(ExitCommandError, err.Error())
	}

	if err := specload.Validate(data); err != nil {
		f.Error("E101", err.Error())
		return WrapExitError(ExitFailure, "validation failed", err)
	}

	if _, err := specload.Load(data); err != nil {
		f.Error("E102", err.Error())
		return WrapExitError(ExitFailure, "decode failed", err)
	}

	if rootOpts.Format == "json" {
		return f.Success(struct {
			Valid bool `json:"valid"`
		}{Valid: true})
	}
	fmt.Fprintln(f.Writer, "valid")
	return nil
}
