package synth

import (
	"context"

	"github.com/felixgeelhaar/uiforge/internal/errors"
	"github.com/felixgeelhaar/uiforge/internal/metrics"
	"github.com/felixgeelhaar/uiforge/internal/oracle"
	"github.com/felixgeelhaar/uiforge/internal/plandiff"
	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

// Explainer turns a plan transition into prose for the user.
type Explainer struct {
	Oracle   oracle.Chatter
	Provider string
	Metrics  *metrics.Metrics
}

// Explain describes the move from prev to next. The oracle sees only the
// instruction and the id-level diff summary, never the plans themselves.
func (e *Explainer) Explain(ctx context.Context, msg string, prev *uiplan.Plan, next uiplan.Plan) (string, error) {
	summary := plandiff.Summarize(prev, next)

	text, err := call(ctx, e.Oracle, e.Metrics, purposeExplain, 1, []oracle.Message{
		{Role: oracle.RoleSystem, Content: ExplainerSystemPrompt()},
		{Role: oracle.RoleUser, Content: ExplainerUserPrompt(msg, summary)},
	})
	if err != nil {
		return "", errors.NewOracleTransportError(e.Provider, err)
	}
	return text, nil
}
