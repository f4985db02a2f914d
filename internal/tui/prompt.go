package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/felixgeelhaar/uiforge/internal/synth"
)

// RequestForm collects a mode and an instruction. When the caller already
// has a plan the mode defaults to modify.
func RequestForm(mode *synth.Mode, message *string, hasPlan bool) *huh.Form {
	options := []huh.Option[synth.Mode]{
		huh.NewOption("initial: start a new layout", synth.ModeInitial),
	}
	if hasPlan {
		*mode = synth.ModeModify
		options = append(options,
			huh.NewOption("modify: change the current plan minimally", synth.ModeModify),
			huh.NewOption("regenerate: redesign from the current plan", synth.ModeRegenerate),
		)
	} else {
		*mode = synth.ModeInitial
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[synth.Mode]().
				Title("Mode").
				Options(options...).
				Value(mode),
			huh.NewText().
				Title("What should the UI do?").
				Placeholder("A dashboard with a sidebar, an orders table and a revenue chart").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("instruction is required")
					}
					return nil
				}).
				Value(message),
		),
	)
}

// PromptRequest runs RequestForm interactively
func PromptRequest(hasPlan bool) (synth.Mode, string, error) {
	var (
		mode    synth.Mode
		message string
	)
	if err := RequestForm(&mode, &message, hasPlan).Run(); err != nil {
		return "", "", fmt.Errorf("prompt failed: %w", err)
	}
	return mode, strings.TrimSpace(message), nil
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldPrompt returns true if prompts should be shown based on environment.
// Prompts are disabled in CI environments or when stdin is not a terminal.
func ShouldPrompt() bool {
	ciEnvVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"BUILDKITE",
	}

	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return false
		}
	}

	return IsInteractive()
}
