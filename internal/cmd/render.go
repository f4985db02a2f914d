package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uiforge/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <plan.json>",
	Short: "Preview a plan in the terminal",
	Long: `Instantiate the plan's widgets and draw them as nested boxes, or print a
flat outline with --outline.`,
	Args: cobra.ExactArgs(1),
	RunE: instrumented(runRender),
}

var (
	renderOutline bool
	renderWidth   int
)

func init() {
	renderCmd.Flags().BoolVar(&renderOutline, "outline", false, "print an indented outline instead of boxes")
	renderCmd.Flags().IntVar(&renderWidth, "width", 80, "preview width in columns")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	plan, err := readPlan(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	tree := render.Render(plan)
	out := cmd.OutOrStdout()

	if !renderOutline {
		fmt.Fprintln(out, render.Draw(tree, renderWidth))
		return nil
	}

	for _, e := range render.Outline(tree) {
		line := strings.Repeat("  ", e.Depth) + e.Tag
		if len(e.Props) > 0 {
			line += " [" + strings.Join(e.Props, ", ") + "]"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
