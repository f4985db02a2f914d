package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uiforge/internal/exitcode"
	"github.com/felixgeelhaar/uiforge/internal/oracle"
	"github.com/felixgeelhaar/uiforge/internal/patch"
	"github.com/felixgeelhaar/uiforge/internal/progress"
	"github.com/felixgeelhaar/uiforge/internal/synth"
	"github.com/felixgeelhaar/uiforge/internal/tui"
	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run one generation step against the configured oracle",
	Long: `Ask the oracle for a UI plan, validate it, compile it to TSX and explain
the change.

Without --plan the step starts from scratch (mode initial). With --plan the
given plan is the current one and the default mode is modify. When --message
is omitted on an interactive terminal, a form asks for the mode and the
instruction.

Example:
  uiforge generate -m "A login form with email, password and a submit button" -o out/
  uiforge generate --plan out/plan.json -m "Add a remember-me checkbox" -o out/`,
	Args: cobra.NoArgs,
	RunE: instrumented(runGenerate),
}

var (
	generateMode    string
	generateMessage string
	generatePlan    string
	generateOut     string
	generateJSON    bool
)

func init() {
	generateCmd.Flags().StringVar(&generateMode, "mode", "", "initial, modify or regenerate (default depends on --plan)")
	generateCmd.Flags().StringVarP(&generateMessage, "message", "m", "", "natural-language instruction")
	generateCmd.Flags().StringVar(&generatePlan, "plan", "", "current plan file to modify or regenerate from")
	generateCmd.Flags().StringVarP(&generateOut, "output", "o", "", "directory to write plan.json and GeneratedUI.tsx into")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "print the result as JSON")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	var current *uiplan.Plan
	if generatePlan != "" {
		p, err := readPlan(generatePlan, cmd.InOrStdin())
		if err != nil {
			return err
		}
		current = &p
	}

	mode, message, err := generateRequest(current != nil)
	if err != nil {
		return err
	}

	agent, err := newAgent()
	if err != nil {
		return err
	}

	ind := progress.NewIndicator(progress.Config{
		Writer:      cmd.ErrOrStderr(),
		ShowSpinner: tui.IsInteractive(),
	})
	ind.Start(fmt.Sprintf("Generating (%s) with %s", mode, oracle.DisplayName(appConfig.Oracle.Provider)))
	result, err := agent.Run(cmd.Context(), synth.Request{Mode: mode, Message: message, CurrentPlan: current})
	ind.Stop(err)
	if err != nil {
		return err
	}

	if generateOut != "" {
		if err := writeResult(generateOut, result); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if generateJSON {
		return writeJSON(out, map[string]any{
			"plan":        uiplan.ToRaw(result.Plan),
			"code":        result.Code,
			"explanation": result.Explanation,
		})
	}

	if generateOut == "" {
		fmt.Fprint(out, result.Code)
		fmt.Fprintln(out)
	} else {
		fmt.Fprintf(out, "✓ Wrote %s and %s to %s\n", patch.PlanFile, patch.CodeFile, generateOut)
	}
	fmt.Fprintln(out, result.Explanation)
	return nil
}

// generateRequest resolves the mode and message from flags, falling back
// to an interactive form.
func generateRequest(hasPlan bool) (synth.Mode, string, error) {
	message := strings.TrimSpace(generateMessage)

	if message == "" {
		if !tui.ShouldPrompt() {
			return "", "", exitcode.Usage(fmt.Errorf("--message is required when not running interactively"))
		}
		return tui.PromptRequest(hasPlan)
	}

	if generateMode == "" {
		if hasPlan {
			return synth.ModeModify, message, nil
		}
		return synth.ModeInitial, message, nil
	}

	mode, err := synth.ParseMode(generateMode)
	if err != nil {
		return "", "", exitcode.Usage(err)
	}
	return mode, message, nil
}

func writeResult(dir string, result *synth.Result) error {
	planText, err := planJSON(result.Plan)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, patch.PlanFile), planText); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, patch.CodeFile), result.Code); err != nil {
		return err
	}
	appLogger.Info("Wrote generation result", "dir", dir, "summary", result.Plan.Summary)
	return nil
}
