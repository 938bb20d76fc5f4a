package rcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relmach/ramc/internal/clause"
)

func newVersionsCommand(rootOpts *RootOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "versions <document.json> <relation>",
		Short:         "Report the semi-naïve strata and clause versions for a relation",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersions(rootOpts, args[0], args[1], configPath, cmd)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	return cmd
}

type versionReport struct {
	Relation   string   `json:"relation"`
	Recursive  bool     `json:"recursive"`
	SCCMembers []string `json:"scc_members"`
	Versions   []int    `json:"clause_versions"`
}

func runVersions(rootOpts *RootOptions, docPath, relation, configPath string, cmd *cobra.Command) error {
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
	ctx, clauses := buildContext(doc, cfg, rootOpts.Verbose)

	sccID := ctx.SCC.SCCOf(relation)
	members := ctx.SCC.Members(sccID)
	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m] = true
	}
	if !memberSet[relation] {
		err := fmt.Errorf("unknown relation %q", relation)
		f.Error("E103", err.Error())
		return WrapExitError(ExitCommandError, "unknown relation", err)
	}

	report := versionReport{Relation: relation, Recursive: ctx.SCC.IsRecursive(sccID), SCCMembers: members}
	for _, c := range clauses {
		if c.Head.Relation != relation || !ctx.SCC.IsRecursive(sccID) {
			continue
		}
		opts, err := clause.GenerateVersions(c, memberSet)
		if err != nil {
			f.Error("E104", err.Error())
			return WrapExitError(ExitFailure, "version generation failed", err)
		}
		for _, o := range opts {
			report.Versions = append(report.Versions, o.Version)
		}
	}

	if rootOpts.Format == "json" {
		return f.Success(report)
	}
	fmt.Fprintf(f.Writer, "relation: %s\nrecursive: %v\nscc members: %v\nclause versions: %v\n",
		report.Relation, report.Recursive, report.SCCMembers, report.Versions)
	return nil
}
