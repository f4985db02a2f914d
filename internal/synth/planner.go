package synth

import (
	"context"

	"github.com/felixgeelhaar/uiforge/internal/errors"
	"github.com/felixgeelhaar/uiforge/internal/log"
	"github.com/felixgeelhaar/uiforge/internal/metrics"
	"github.com/felixgeelhaar/uiforge/internal/oracle"
	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

// maxAttempts bounds oracle calls per plan: the original call and one retry.
const maxAttempts = 2

// Outcome labels reported to metrics.
const (
	OutcomeOK        = "ok"
	OutcomeSyntax    = "syntax"
	OutcomeInvalid   = "invalid"
	OutcomeTransport = "transport"
)

// ErrPlannerSyntax matches the error returned when neither attempt produced
// a parseable JSON object.
var ErrPlannerSyntax = errors.New(errors.ErrCodePlannerSyntax, "planner failed to produce valid JSON")

// Request is one instruction for the planner.
type Request struct {
	Mode        Mode
	Message     string
	CurrentPlan *uiplan.Plan
}

// Planner asks the oracle for a plan and validates the reply.
type Planner struct {
	Oracle   oracle.Chatter
	Provider string
	Logger   *log.Logger
	Metrics  *metrics.Metrics
}

func (p *Planner) logger() *log.Logger {
	if p.Logger == nil {
		return log.Discard()
	}
	return p.Logger
}

// Plan drafts a plan for req. A reply that holds no JSON object is retried
// once with a stricter nudge; a reply that parses but fails validation is
// returned as an invalid plan error without retrying. Oracle failures are
// returned immediately.
func (p *Planner) Plan(ctx context.Context, req Request) (uiplan.Plan, error) {
	mode := string(req.Mode)
	logger := p.logger().WithContext(ctx).With("mode", mode)

	system := SystemPrompt()
	user := UserPrompt(req.Mode, req.Message, req.CurrentPlan)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		prompt := user
		if attempt > 1 {
			prompt += retryNudge
		}

		p.Metrics.RecordSynthAttempt(mode, attempt > 1)

		text, err := call(ctx, p.Oracle, p.Metrics, purposePlan, attempt, []oracle.Message{
			{Role: oracle.RoleSystem, Content: system},
			{Role: oracle.RoleUser, Content: prompt},
		})
		if err != nil {
			p.Metrics.RecordSynthOutcome(mode, OutcomeTransport)
			return uiplan.Plan{}, errors.NewOracleTransportError(p.Provider, err)
		}

		raw, ok := ExtractJSON(text)
		if !ok {
			logger.Warn("planner reply was not JSON", "attempt", attempt, "reply_length", len(text))
			continue
		}

		plan, err := uiplan.Validate(raw)
		if err != nil {
			p.Metrics.RecordSynthOutcome(mode, OutcomeInvalid)
			logger.Warn("planner reply failed validation", "attempt", attempt, "error", err)
			return uiplan.Plan{}, errors.NewPlanInvalidError(err)
		}

		if dups := uiplan.DuplicateIDs(plan.Root); len(dups) > 0 {
			logger.Warn("plan reuses node ids", "ids", dups)
		}

		nodes := uiplan.Count(plan.Root)
		p.Metrics.ObservePlan(nodes)
		p.Metrics.RecordSynthOutcome(mode, OutcomeOK)
		logger.Debug("plan validated", "attempt", attempt, "nodes", nodes)
		return plan, nil
	}

	p.Metrics.RecordSynthOutcome(mode, OutcomeSyntax)
	return uiplan.Plan{}, errors.NewPlannerSyntaxError(nil)
}
