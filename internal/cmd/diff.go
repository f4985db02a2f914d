package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uiforge/internal/codegen"
	"github.com/felixgeelhaar/uiforge/internal/patch"
	"github.com/felixgeelhaar/uiforge/internal/plandiff"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old.json> <new.json>",
	Short: "Summarize what changed between two plans",
	Long: `Compare two plans by node id and summarize added, removed and kept nodes.

With --code the generated modules are diffed line by line instead. With
--json a full patch (plan and code, with stats) is printed.`,
	Args: cobra.ExactArgs(2),
	RunE: instrumented(runDiff),
}

var (
	diffCode bool
	diffJSON bool
)

func init() {
	diffCmd.Flags().BoolVar(&diffCode, "code", false, "show a unified diff of the generated code")
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "print the full patch as JSON")

	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	before, err := readPlan(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	after, err := readPlan(args[1], cmd.InOrStdin())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	oldCode, newCode := codegen.Generate(before), codegen.Generate(after)

	switch {
	case diffJSON:
		from, err := patch.SnapshotOf(before, oldCode)
		if err != nil {
			return err
		}
		to, err := patch.SnapshotOf(after, newCode)
		if err != nil {
			return err
		}
		return writeJSON(out, patch.NewDiffer().Between(args[0], args[1], from, to))

	case diffCode:
		fmt.Fprint(out, patch.Unified(patch.CodeFile, oldCode, newCode))
		return nil

	default:
		fmt.Fprintln(out, plandiff.Summarize(&before, after))
		return nil
	}
}
