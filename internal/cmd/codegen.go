package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uiforge/internal/codegen"
)

var codegenCmd = &cobra.Command{
	Use:   "codegen <plan.json>",
	Short: "Compile a plan file into a React/TSX module",
	Long: `Compile a validated UI plan into a TSX module exporting GeneratedUI.
Output is deterministic: the same plan always yields the same bytes.`,
	Args: cobra.ExactArgs(1),
	RunE: instrumented(runCodegen),
}

var codegenOut string

func init() {
	codegenCmd.Flags().StringVarP(&codegenOut, "output", "o", "", "write the module to this file instead of stdout")

	rootCmd.AddCommand(codegenCmd)
}

func runCodegen(cmd *cobra.Command, args []string) error {
	plan, err := readPlan(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	code := codegen.Generate(plan)
	if codegenOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), code)
		return nil
	}

	if err := writeFile(codegenOut, code); err != nil {
		return err
	}
	appLogger.Info("Wrote generated module", "path", codegenOut)
	return nil
}
