package session

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/uiforge/internal/codegen"
	"github.com/felixgeelhaar/uiforge/internal/errors"
	"github.com/felixgeelhaar/uiforge/internal/patch"
	"github.com/felixgeelhaar/uiforge/internal/synth"
	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

func mustPlan(t *testing.T, js string) uiplan.Plan {
	t.Helper()
	p, err := uiplan.ValidateJSON([]byte(js))
	require.NoError(t, err)
	return p
}

// fakeRunner returns its queued plans in order; a nil entry fails the step.
type fakeRunner struct {
	plans    []*uiplan.Plan
	requests []synth.Request
}

func (f *fakeRunner) Run(_ context.Context, req synth.Request) (*synth.Result, error) {
	f.requests = append(f.requests, req)
	next := f.plans[0]
	f.plans = f.plans[1:]
	if next == nil {
		return nil, errors.NewPlannerSyntaxError(nil)
	}
	return &synth.Result{Plan: *next, Code: codegen.Generate(*next), Explanation: "explained " + next.Summary}, nil
}

func TestSubmitAndRollback(t *testing.T) {
	first := mustPlan(t, `{"summary":"one","layout":{"layoutStyle":"form"},"root":{"id":"root","kind":"page"}}`)
	second := mustPlan(t, `{"summary":"two","layout":{"layoutStyle":"form"},"root":{"id":"root","kind":"page","children":[{"id":"b","kind":"button"}]}}`)

	runner := &fakeRunner{plans: []*uiplan.Plan{&first, &second}}
	s := New(runner)
	ctx := context.Background()

	assert.Nil(t, s.Current())

	v1, err := s.Submit(ctx, synth.ModeInitial, "start")
	require.NoError(t, err)
	assert.Nil(t, runner.requests[0].CurrentPlan)
	assert.Equal(t, "one", v1.Plan.Summary)
	assert.NotEmpty(t, v1.ID)
	assert.Len(t, v1.Fingerprint, 64)

	v2, err := s.Submit(ctx, synth.ModeModify, "add button")
	require.NoError(t, err)
	require.NotNil(t, runner.requests[1].CurrentPlan)
	assert.Equal(t, "one", runner.requests[1].CurrentPlan.Summary)
	assert.Equal(t, v2, s.Current())
	assert.NotEqual(t, v1.ID, v2.ID)

	back, err := s.Rollback(v1.ID)
	require.NoError(t, err)
	assert.Equal(t, v1, back)
	assert.Equal(t, v1, s.Current())
	assert.Len(t, s.Versions(), 2)
}

func TestSubmitFailureLeavesSessionUntouched(t *testing.T) {
	first := mustPlan(t, `{"summary":"one","layout":{"layoutStyle":"form"},"root":{"id":"root","kind":"page"}}`)
	runner := &fakeRunner{plans: []*uiplan.Plan{&first, nil}}
	s := New(runner)
	ctx := context.Background()

	v1, err := s.Submit(ctx, synth.ModeInitial, "start")
	require.NoError(t, err)

	_, err = s.Submit(ctx, synth.ModeModify, "break it")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePlannerSyntax, errors.CodeOf(err))

	assert.Equal(t, v1, s.Current())
	assert.Len(t, s.Versions(), 1)
}

func TestDuplicatePlansGetDistinctVersions(t *testing.T) {
	plan := mustPlan(t, `{"summary":"same","layout":{"layoutStyle":"custom"},"root":{"id":"root","kind":"page"}}`)
	runner := &fakeRunner{plans: []*uiplan.Plan{&plan, &plan}}
	s := New(runner)

	v1, err := s.Submit(context.Background(), synth.ModeInitial, "a")
	require.NoError(t, err)
	v2, err := s.Submit(context.Background(), synth.ModeRegenerate, "a")
	require.NoError(t, err)

	assert.Equal(t, v1.Fingerprint, v2.Fingerprint)
	assert.NotEqual(t, v1.ID, v2.ID)
	assert.Len(t, s.Versions(), 2)
}

func TestRollbackUnknownVersion(t *testing.T) {
	s := New(&fakeRunner{})

	_, err := s.Rollback("missing")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeVersionNotFound, errors.CodeOf(err))
	assert.True(t, stderrors.Is(err, errors.New(errors.ErrCodeVersionNotFound, "")))
}

func TestSeed(t *testing.T) {
	plan := mustPlan(t, `{"summary":"loaded","layout":{"layoutStyle":"table"},"root":{"id":"t","kind":"table"}}`)
	s := New(&fakeRunner{})

	v, err := s.Seed(plan, "from file")
	require.NoError(t, err)
	assert.Equal(t, codegen.Generate(plan), v.Code)
	assert.Equal(t, v, s.Current())
}

func TestPatchBetweenVersions(t *testing.T) {
	first := mustPlan(t, `{"summary":"one","layout":{"layoutStyle":"form"},"root":{"id":"root","kind":"page"}}`)
	second := mustPlan(t, `{"summary":"one","layout":{"layoutStyle":"form"},"root":{"id":"root","kind":"page","children":[{"id":"b","kind":"button"}]}}`)
	runner := &fakeRunner{plans: []*uiplan.Plan{&first, &second}}
	s := New(runner)
	ctx := context.Background()

	v1, err := s.Submit(ctx, synth.ModeInitial, "a")
	require.NoError(t, err)
	v2, err := s.Submit(ctx, synth.ModeModify, "b")
	require.NoError(t, err)

	p, err := s.Patch(v1.ID, v2.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.FilesChanged)
	assert.Equal(t, "explained one", p.Summary)
	for _, f := range p.Files {
		assert.Equal(t, patch.FileStatusModified, f.Status)
	}

	initial, err := s.Patch("", v1.ID)
	require.NoError(t, err)
	for _, f := range initial.Files {
		assert.Equal(t, patch.FileStatusAdded, f.Status)
	}

	same, err := s.Patch(v1.ID, v1.ID)
	require.NoError(t, err)
	assert.True(t, same.IsEmpty())
	assert.Equal(t, "no changes", same.Summary)

	_, err = s.Patch("nope", v1.ID)
	assert.Error(t, err)
}
