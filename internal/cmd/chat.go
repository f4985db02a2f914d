package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/uiforge/internal/errors"
	"github.com/felixgeelhaar/uiforge/internal/exitcode"
	"github.com/felixgeelhaar/uiforge/internal/log"
	"github.com/felixgeelhaar/uiforge/internal/patch"
	"github.com/felixgeelhaar/uiforge/internal/session"
	"github.com/felixgeelhaar/uiforge/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Refine a UI interactively in the terminal",
	Long: `Open a terminal chat backed by an in-memory session. Each instruction runs
one generation step; the preview, code and diff tabs show the current
version. Failed steps leave the current version untouched.

Commands inside the chat:
  /regen <instruction>  redesign from the current plan
  /undo                 return to the previous version

With --plan the session starts from an existing plan file. With --patches
the diff between each pair of consecutive versions is saved as JSON when the
chat ends.`,
	Args: cobra.NoArgs,
	RunE: instrumented(runChat),
}

var (
	chatPlan    string
	chatPatches string
)

func init() {
	chatCmd.Flags().StringVar(&chatPlan, "plan", "", "plan file to start from")
	chatCmd.Flags().StringVar(&chatPatches, "patches", "", "directory to save version-to-version patches into")

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if !tui.IsInteractive() {
		return exitcode.Usage(fmt.Errorf("chat needs an interactive terminal"))
	}

	// stderr output would draw over the alt screen
	appLogger = log.Discard()

	agent, err := newAgent()
	if err != nil {
		return err
	}
	s := session.New(agent)

	if chatPlan != "" {
		plan, err := readPlan(chatPlan, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if _, err := s.Seed(plan, "loaded from "+chatPlan); err != nil {
			return err
		}
	}

	p := tea.NewProgram(tui.NewChatModel(cmd.Context(), s), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if cur := s.Current(); cur != nil {
		fmt.Fprintf(out, "Session ended at %q (%d versions)\n", cur.Plan.Summary, len(s.Versions()))
	}

	if chatPatches != "" {
		paths, err := writeHistory(s, chatPatches)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %d patches to %s\n", len(paths), chatPatches)
	}
	return nil
}

// writeHistory saves one patch per version, each against its predecessor in
// creation order. The first version is diffed against nothing.
func writeHistory(s *session.Session, dir string) ([]string, error) {
	store := patch.NewStore(dir)

	var (
		paths []string
		prev  string
	)
	for _, v := range s.Versions() {
		p, err := s.Patch(prev, v.ID)
		if err != nil {
			return paths, err
		}
		path, err := store.Save(p)
		if err != nil {
			return paths, errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to save patch", err)
		}
		paths = append(paths, path)
		prev = v.ID
	}
	return paths, nil
}
