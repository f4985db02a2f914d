package tui

import (
	"testing"

	"github.com/felixgeelhaar/uiforge/internal/synth"
)

func TestShouldPromptDisabledInCI(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"GitHub Actions", "GITHUB_ACTIONS", "true"},
		{"GitLab CI", "GITLAB_CI", "true"},
		{"Jenkins", "JENKINS_URL", "http://jenkins.local"},
		{"Generic CI", "CI", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			if ShouldPrompt() {
				t.Errorf("ShouldPrompt() = true with %s set", tt.envVar)
			}
		})
	}
}

func TestRequestFormDefaults(t *testing.T) {
	var (
		mode    synth.Mode
		message string
	)

	if form := RequestForm(&mode, &message, false); form == nil {
		t.Fatal("RequestForm returned nil")
	}
	if mode != synth.ModeInitial {
		t.Errorf("mode without a plan = %s, want initial", mode)
	}

	RequestForm(&mode, &message, true)
	if mode != synth.ModeModify {
		t.Errorf("mode with a plan = %s, want modify", mode)
	}
}
