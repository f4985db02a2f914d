package synth

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/uiforge/internal/errors"
	"github.com/felixgeelhaar/uiforge/internal/metrics"
	"github.com/felixgeelhaar/uiforge/internal/oracle"
	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

const validPlanJSON = `{
  "summary": "Login form",
  "layout": {"layoutStyle": "form"},
  "root": {
    "id": "root",
    "kind": "page",
    "children": [
      {"id": "email", "kind": "input", "props": {"label": "Email"}},
      {"id": "submit", "kind": "button", "props": {"label": "Sign in"}}
    ]
  }
}`

// scripted replies in order and remembers every transcript it was sent.
type scripted struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   [][]oracle.Message
}

func (s *scripted) Chat(_ context.Context, messages []oracle.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, messages)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", stderrors.New("no scripted reply left")
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func TestPlannerFirstAttempt(t *testing.T) {
	chat := &scripted{replies: []string{"Sure!\n```json\n" + validPlanJSON + "\n```"}}
	p := &Planner{Oracle: chat}

	plan, err := p.Plan(context.Background(), Request{Mode: ModeInitial, Message: "login form"})
	require.NoError(t, err)

	assert.Len(t, chat.calls, 1)
	assert.Equal(t, "Login form", plan.Summary)
	assert.Equal(t, []string{"root", "email", "submit"}, uiplan.IDs(plan.Root))

	msgs := chat.calls[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, oracle.RoleSystem, msgs[0].Role)
	assert.Equal(t, SystemPrompt(), msgs[0].Content)
	assert.Equal(t, oracle.RoleUser, msgs[1].Role)
	assert.Equal(t, UserPrompt(ModeInitial, "login form", nil), msgs[1].Content)
}

func TestPlannerRetriesOnceOnSyntaxFailure(t *testing.T) {
	chat := &scripted{replies: []string{"I think you want a form.", validPlanJSON}}
	p := &Planner{Oracle: chat}

	plan, err := p.Plan(context.Background(), Request{Mode: ModeInitial, Message: "login form"})
	require.NoError(t, err)
	assert.Equal(t, "root", plan.Root.ID)

	require.Len(t, chat.calls, 2)
	first := chat.calls[0][1].Content
	second := chat.calls[1][1].Content
	assert.Equal(t, first+retryNudge, second)
	assert.Equal(t, chat.calls[0][0], chat.calls[1][0])
}

func TestPlannerGivesUpAfterTwoSyntaxFailures(t *testing.T) {
	chat := &scripted{replies: []string{"no json", "still no json", validPlanJSON}}
	p := &Planner{Oracle: chat}

	_, err := p.Plan(context.Background(), Request{Mode: ModeInitial, Message: "x"})
	require.Error(t, err)

	assert.Len(t, chat.calls, 2)
	assert.True(t, stderrors.Is(err, ErrPlannerSyntax))
	assert.Equal(t, errors.ErrCodePlannerSyntax, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "planner failed to produce valid JSON")
}

func TestPlannerDoesNotRetrySchemaFailure(t *testing.T) {
	bad := strings.Replace(validPlanJSON, `"kind": "button"`, `"kind": "carousel"`, 1)
	chat := &scripted{replies: []string{bad, validPlanJSON}}
	p := &Planner{Oracle: chat}

	_, err := p.Plan(context.Background(), Request{Mode: ModeInitial, Message: "x"})
	require.Error(t, err)

	assert.Len(t, chat.calls, 1)
	assert.True(t, stderrors.Is(err, uiplan.ErrInvalidPlan))
	assert.False(t, stderrors.Is(err, ErrPlannerSyntax))
	assert.Contains(t, err.Error(), `unsupported kind "carousel"`)
}

func TestPlannerPropagatesTransportError(t *testing.T) {
	transport := &oracle.TransportError{Provider: "Ollama", StatusCode: 503, Body: "model loading"}
	chat := &scripted{err: transport}
	p := &Planner{Oracle: chat, Provider: "Ollama"}

	_, err := p.Plan(context.Background(), Request{Mode: ModeInitial, Message: "x"})
	require.Error(t, err)

	assert.Len(t, chat.calls, 1)
	assert.Equal(t, errors.ErrCodeOracleTransport, errors.CodeOf(err))

	var te *oracle.TransportError
	require.True(t, stderrors.As(err, &te))
	assert.Equal(t, 503, te.StatusCode)
	assert.Contains(t, err.Error(), "Ollama error 503: model loading")
}

func TestPlannerRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	chat := &scripted{replies: []string{"nope", validPlanJSON}}
	p := &Planner{Oracle: chat, Metrics: m}

	_, err := p.Plan(context.Background(), Request{Mode: ModeModify, Message: "x"})
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SynthAttempts.WithLabelValues("modify")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SynthRetries.WithLabelValues("modify")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SynthOutcomes.WithLabelValues("modify", OutcomeOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OracleCalls.WithLabelValues("plan", "true")))
}

func TestPlannerEmbedsCurrentPlan(t *testing.T) {
	current, err := uiplan.ValidateJSON([]byte(validPlanJSON))
	require.NoError(t, err)

	chat := &scripted{replies: []string{validPlanJSON}}
	p := &Planner{Oracle: chat}

	_, err = p.Plan(context.Background(), Request{Mode: ModeModify, Message: "add a field", CurrentPlan: &current})
	require.NoError(t, err)

	user := chat.calls[0][1].Content
	assert.Contains(t, user, `"id": "email"`)
	assert.Contains(t, user, "Reuse existing node ids whenever possible.")
}
