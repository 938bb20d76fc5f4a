package rcli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relmach/ramc/internal/driver"
	"github.com/relmach/ramc/internal/ramjson"
)

func newTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "translate <document.json>",
		Short:         "Translate a Datalog translation unit into a RAM program",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(rootOpts, args[0], configPath, cmd)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	return cmd
}

func runTranslate(rootOpts *RootOptions, docPath, configPath string, cmd *cobra.Command) error {
	f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: rootOpts.Verbose}

	doc, err := loadUnit(docPath)
	if err != nil {
		f.Error("E005", err.Error())
		return NewExitError(ExitCommandError, err.Error())
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		f.Error("E006", err.Error())
		return NewExitError(ExitCommandError, err.Error())
	}
	f.VerboseLog("loaded %d clause(s), %d relation(s)", len(doc.Clauses), len(doc.Relations))

	ctx, clauses := buildContext(doc, cfg, rootOpts.Verbose)

	stmt, err := driver.Run(ctx, clauses)
	if err != nil {
		f.Error("E010", err.Error())
		return WrapExitError(ExitFailure, "translation failed", err)
	}

	val, err := ramjson.EncodeStatement(stmt)
	if err != nil {
		f.Error("E011", err.Error())
		return WrapExitError(ExitCommandError, "encode failed", err)
	}
	canonical, err := ramjson.Marshal(val)
	if err != nil {
		f.Error("E011", err.Error())
		return WrapExitError(ExitCommandError, "marshal failed", err)
	}
	hash, err := ramjson.Hash(stmt)
	if err != nil {
		f.Error("E011", err.Error())
		return WrapExitError(ExitCommandError, "hash failed", err)
	}

	if rootOpts.Format == "json" {
		return f.Success(struct {
			Hash string          `json:"hash"`
			RAM  json.RawMessage `json:"ram"`
		}{Hash: hash, RAM: json.RawMessage(canonical)})
	}
	fmt.Fprintf(f.Writer, "hash: %s\n%s\n", hash, canonical)
	return nil
}
