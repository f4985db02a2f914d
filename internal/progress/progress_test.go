package progress

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer written by the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewIndicator(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")

	buf := &bytes.Buffer{}
	ind := NewIndicator(Config{Writer: buf, ShowSpinner: true})

	if ind.writer != buf {
		t.Error("Writer not set correctly")
	}
	if !ind.showSpinner {
		t.Error("Spinner should be enabled outside CI")
	}
}

func TestNewIndicatorCIMode(t *testing.T) {
	ind := NewIndicator(Config{Writer: &bytes.Buffer{}, ShowSpinner: true, IsCI: true})

	if ind.showSpinner {
		t.Error("Spinner should be disabled in CI mode")
	}
}

func TestCIModePrintsLines(t *testing.T) {
	buf := &bytes.Buffer{}
	ind := NewIndicator(Config{Writer: buf, IsCI: true})

	ind.Start("Planning with Ollama")
	ind.Stop(nil)
	ind.Stop(errors.New("ignored"))

	out := buf.String()
	if !strings.Contains(out, "▶ Planning with Ollama\n") {
		t.Errorf("missing start line: %q", out)
	}
	if !strings.Contains(out, "✓ Planning with Ollama (0s)\n") {
		t.Errorf("missing success line: %q", out)
	}
	if strings.Count(out, "Planning") != 2 {
		t.Errorf("Stop should print only once: %q", out)
	}
}

func TestSpinnerReportsFailure(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")

	buf := &syncBuffer{}
	ind := NewIndicator(Config{Writer: buf, ShowSpinner: true})

	ind.Start("Planning")
	time.Sleep(250 * time.Millisecond)
	ind.Stop(errors.New("oracle down"))

	out := buf.String()
	if !strings.Contains(out, "Planning 0s") {
		t.Errorf("spinner frame not drawn: %q", out)
	}
	if !strings.HasSuffix(out, "✗ Planning (0s)\n") {
		t.Errorf("missing failure line: %q", out)
	}
}

func TestQuietWithoutSpinner(t *testing.T) {
	buf := &bytes.Buffer{}
	ind := &Indicator{writer: buf, stopChan: make(chan struct{}), done: make(chan struct{})}

	ind.Start("Planning")
	ind.Stop(nil)

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestStopWithoutStart(t *testing.T) {
	buf := &bytes.Buffer{}
	ind := NewIndicator(Config{Writer: buf, IsCI: true})

	ind.Stop(nil)

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{5 * time.Second, "5s"},
		{65 * time.Second, "1m5s"},
		{3665 * time.Second, "1h1m5s"},
		{3600 * time.Second, "1h0m0s"},
		{90 * time.Second, "1m30s"},
	}

	for _, tt := range tests {
		result := formatDuration(tt.duration)
		if result != tt.expected {
			t.Errorf("formatDuration(%v) = %s, expected %s", tt.duration, result, tt.expected)
		}
	}
}
