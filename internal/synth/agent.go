// Package synth runs one generation step: it sanitizes the instruction,
// asks the oracle for a plan, validates it, generates code and asks the
// oracle to explain the change.
package synth

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/felixgeelhaar/uiforge/internal/codegen"
	"github.com/felixgeelhaar/uiforge/internal/errors"
	"github.com/felixgeelhaar/uiforge/internal/log"
	"github.com/felixgeelhaar/uiforge/internal/metrics"
	"github.com/felixgeelhaar/uiforge/internal/oracle"
	"github.com/felixgeelhaar/uiforge/internal/telemetry"
	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

// Result is the artifact of one successful step.
type Result struct {
	Plan        uiplan.Plan `json:"plan"`
	Code        string      `json:"code"`
	Explanation string      `json:"explanation"`
}

// Agent wires the planner, code generator and explainer together.
type Agent struct {
	planner       *Planner
	explainer     *Explainer
	logger        *log.Logger
	maxMessageLen int
}

// Option configures an Agent
type Option func(*Agent)

// WithLogger sets the agent's logger
func WithLogger(l *log.Logger) Option {
	return func(a *Agent) {
		a.logger = l
		a.planner.Logger = l
	}
}

// WithMetrics records attempts, outcomes and oracle latency on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Agent) {
		a.planner.Metrics = m
		a.explainer.Metrics = m
	}
}

// WithProvider names the oracle provider in transport errors
func WithProvider(name string) Option {
	return func(a *Agent) {
		a.planner.Provider = name
		a.explainer.Provider = name
	}
}

// WithMaxMessageLength overrides the sanitizer's rune limit
func WithMaxMessageLength(n int) Option {
	return func(a *Agent) {
		a.maxMessageLen = n
	}
}

// NewAgent creates an agent that consults chatter for both planning and
// explanation.
func NewAgent(chatter oracle.Chatter, opts ...Option) *Agent {
	a := &Agent{
		planner:       &Planner{Oracle: chatter, Provider: "oracle"},
		explainer:     &Explainer{Oracle: chatter, Provider: "oracle"},
		logger:        log.Discard(),
		maxMessageLen: DefaultMaxMessageLength,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes one step. On any failure no partial result is returned and
// req.CurrentPlan is left untouched.
func (a *Agent) Run(ctx context.Context, req Request) (*Result, error) {
	if !req.Mode.Valid() {
		return nil, errors.New(errors.ErrCodeRequestMode, fmt.Sprintf("unknown mode %q", req.Mode)).
			WithSuggestion("Use one of: initial, modify, regenerate")
	}
	msg := Sanitize(req.Message, a.maxMessageLen)
	if strings.TrimSpace(msg) == "" {
		return nil, errors.NewRequestInvalidError("missing mode or message")
	}

	ctx, span := telemetry.StartSynthSpan(ctx, string(req.Mode))
	defer span.End()

	logger := a.logger.WithContext(ctx)

	plan, err := a.planner.Plan(ctx, Request{Mode: req.Mode, Message: msg, CurrentPlan: req.CurrentPlan})
	if err != nil {
		telemetry.RecordError(span, err)
		logger.LogErrorContext(ctx, err)
		return nil, err
	}

	code := codegen.Generate(plan)

	explanation, err := a.explainer.Explain(ctx, msg, req.CurrentPlan, plan)
	if err != nil {
		telemetry.RecordError(span, err)
		logger.LogErrorContext(ctx, err)
		return nil, err
	}

	telemetry.RecordSuccess(span,
		attribute.Int("plan.nodes", uiplan.Count(plan.Root)),
		attribute.Int("code.bytes", len(code)),
	)
	logger.Info("generation step complete", "mode", string(req.Mode), "summary", plan.Summary)

	return &Result{Plan: plan, Code: code, Explanation: explanation}, nil
}
