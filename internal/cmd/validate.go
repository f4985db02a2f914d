package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

var validateCmd = &cobra.Command{
	Use:   "validate <plan.json>",
	Short: "Check a plan file against the UI schema",
	Long: `Validate a UI plan. On success the plan's fingerprint and node count are
printed; on failure the path of the first offending field is reported.

Use "-" to read the plan from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: instrumented(runValidate),
}

var validateQuiet bool

func init() {
	validateCmd.Flags().BoolVarP(&validateQuiet, "quiet", "q", false, "print nothing on success")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	plan, err := readPlan(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	if dups := uiplan.DuplicateIDs(plan.Root); len(dups) > 0 {
		appLogger.Warn("Plan has duplicate node ids", "ids", dups)
	}

	if validateQuiet {
		return nil
	}

	fp, err := uiplan.Fingerprint(plan)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ %s is valid\n", args[0])
	fmt.Fprintf(out, "  nodes:       %d\n", uiplan.Count(plan.Root))
	fmt.Fprintf(out, "  layout:      %s\n", plan.Layout.LayoutStyle)
	fmt.Fprintf(out, "  fingerprint: %s\n", fp)
	return nil
}
