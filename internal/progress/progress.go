// Package progress shows a spinner while a command waits on the oracle.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Indicator animates a single status line for one long-running step.
type Indicator struct {
	writer      io.Writer
	label       string
	startTime   time.Time
	mu          sync.Mutex
	showSpinner bool
	spinnerIdx  int
	stopChan    chan struct{}
	done        chan struct{}
	stopOnce    sync.Once
	started     bool
	isCI        bool
}

// Config holds configuration for progress indicator
type Config struct {
	Writer      io.Writer
	ShowSpinner bool
	IsCI        bool // plain line output, no animation
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewIndicator creates a new progress indicator
func NewIndicator(cfg Config) *Indicator {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}

	if !cfg.IsCI {
		cfg.IsCI = os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true"
	}

	return &Indicator{
		writer:      cfg.Writer,
		showSpinner: cfg.ShowSpinner && !cfg.IsCI,
		stopChan:    make(chan struct{}),
		done:        make(chan struct{}),
		isCI:        cfg.IsCI,
	}
}

// Start shows label until Stop is called. Only the first call has effect.
func (p *Indicator) Start(label string) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.label = label
	p.startTime = time.Now()
	p.mu.Unlock()

	if !p.showSpinner {
		if p.isCI {
			fmt.Fprintf(p.writer, "▶ %s\n", label)
		}
		close(p.done)
		return
	}
	go p.spinnerLoop()
}

// Stop ends the step and prints its outcome with the elapsed time. It is
// safe to call more than once; only the first call prints.
func (p *Indicator) Stop(err error) {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		started := p.started
		p.mu.Unlock()
		if !started {
			return
		}

		close(p.stopChan)
		<-p.done

		p.mu.Lock()
		defer p.mu.Unlock()

		if p.showSpinner {
			fmt.Fprintf(p.writer, "\r%s\r", strings.Repeat(" ", len(p.label)+16))
		}
		if !p.showSpinner && !p.isCI {
			return
		}

		elapsed := formatDuration(time.Since(p.startTime))
		if err != nil {
			fmt.Fprintf(p.writer, "✗ %s (%s)\n", p.label, elapsed)
			return
		}
		fmt.Fprintf(p.writer, "✓ %s (%s)\n", p.label, elapsed)
	})
}

func (p *Indicator) spinnerLoop() {
	defer close(p.done)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.mu.Lock()
			fmt.Fprintf(p.writer, "\r%s %s %s", spinnerFrames[p.spinnerIdx], p.label, formatDuration(time.Since(p.startTime)))
			p.spinnerIdx = (p.spinnerIdx + 1) % len(spinnerFrames)
			p.mu.Unlock()
		}
	}
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
