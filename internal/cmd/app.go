package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/uiforge/internal/errors"
	"github.com/felixgeelhaar/uiforge/internal/oracle"
	"github.com/felixgeelhaar/uiforge/internal/synth"
	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

// newAgent builds the synthesis agent for the configured oracle.
func newAgent() (*synth.Agent, error) {
	chatter, err := oracle.New(appConfig.Oracle)
	if err != nil {
		return nil, err
	}

	return synth.NewAgent(chatter,
		synth.WithLogger(appLogger),
		synth.WithMetrics(appMetrics),
		synth.WithProvider(oracle.DisplayName(appConfig.Oracle.Provider)),
		synth.WithMaxMessageLength(appConfig.Synth.MaxMessageLength),
	), nil
}

// readPlan loads and validates a plan file. "-" reads stdin.
func readPlan(path string, stdin io.Reader) (uiplan.Plan, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return uiplan.Plan{}, errors.NewFileNotFoundError(path)
		}
		return uiplan.Plan{}, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read %s", path), err)
	}

	raw, err := uiplan.DecodeJSON(data)
	if err != nil {
		return uiplan.Plan{}, errors.NewFileUnmarshalError(path, "JSON", err)
	}

	plan, err := uiplan.Validate(raw)
	if err != nil {
		return uiplan.Plan{}, errors.NewPlanInvalidError(err)
	}
	return plan, nil
}

// writeFile writes content, creating parent directories.
func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("failed to create %s", dir), err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// planJSON renders a plan in its wire form.
func planJSON(p uiplan.Plan) (string, error) {
	data, err := json.MarshalIndent(uiplan.ToRaw(p), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
