package synth

import (
	"context"
	"time"

	"github.com/felixgeelhaar/uiforge/internal/metrics"
	"github.com/felixgeelhaar/uiforge/internal/oracle"
	"github.com/felixgeelhaar/uiforge/internal/telemetry"
)

const (
	purposePlan    = "plan"
	purposeExplain = "explain"
)

// call performs one traced and timed oracle round trip.
func call(ctx context.Context, chatter oracle.Chatter, m *metrics.Metrics, purpose string, attempt int, messages []oracle.Message) (string, error) {
	ctx, span := telemetry.StartOracleSpan(ctx, purpose, attempt)
	defer span.End()

	start := time.Now()
	text, err := chatter.Chat(ctx, messages)
	m.RecordOracleCall(purpose, err == nil, time.Since(start))
	if err != nil {
		telemetry.RecordError(span, err)
		return "", err
	}

	telemetry.RecordSuccess(span)
	return text, nil
}
