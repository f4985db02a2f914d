// Package session keeps the in-memory history of one user's generation
// steps. Versions are immutable; the session only moves a pointer to the
// current one.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/uiforge/internal/codegen"
	"github.com/felixgeelhaar/uiforge/internal/errors"
	"github.com/felixgeelhaar/uiforge/internal/patch"
	"github.com/felixgeelhaar/uiforge/internal/synth"
	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

// Runner executes one generation step. *synth.Agent satisfies it.
type Runner interface {
	Run(ctx context.Context, req synth.Request) (*synth.Result, error)
}

// Version is one accepted plan with its artifacts.
type Version struct {
	ID          string      `json:"id"`
	Mode        synth.Mode  `json:"mode"`
	Message     string      `json:"message"`
	Plan        uiplan.Plan `json:"plan"`
	Code        string      `json:"code"`
	Explanation string      `json:"explanation"`
	Fingerprint string      `json:"fingerprint"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Snapshot returns the version's artifacts for diffing.
func (v *Version) Snapshot() (patch.Snapshot, error) {
	return patch.SnapshotOf(v.Plan, v.Code)
}

// Session is a creation-ordered list of versions plus a current pointer.
type Session struct {
	mu       sync.RWMutex
	runner   Runner
	differ   *patch.Differ
	versions []*Version
	current  int
	now      func() time.Time
}

// New creates an empty session backed by runner
func New(runner Runner) *Session {
	return &Session{
		runner:  runner,
		differ:  patch.NewDiffer(),
		current: -1,
		now:     time.Now,
	}
}

// Current returns the current version, or nil before the first success.
func (s *Session) Current() *Version {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current < 0 {
		return nil
	}
	return s.versions[s.current]
}

// Versions returns every version in creation order.
func (s *Session) Versions() []*Version {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Version, len(s.versions))
	copy(out, s.versions)
	return out
}

// Get finds a version by id
func (s *Session) Get(id string) (*Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.NewVersionNotFoundError(id)
	}
	return s.versions[i], nil
}

func (s *Session) indexOf(id string) int {
	for i, v := range s.versions {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// Submit runs one step against the current plan. On success the new
// version is appended and becomes current. On failure the session is left
// exactly as it was.
func (s *Session) Submit(ctx context.Context, mode synth.Mode, message string) (*Version, error) {
	var currentPlan *uiplan.Plan
	if cur := s.Current(); cur != nil {
		plan := cur.Plan
		currentPlan = &plan
	}

	result, err := s.runner.Run(ctx, synth.Request{Mode: mode, Message: message, CurrentPlan: currentPlan})
	if err != nil {
		return nil, err
	}

	return s.add(mode, message, result.Plan, result.Code, result.Explanation)
}

// Seed appends an externally supplied plan, for example one loaded from
// disk, and makes it current. Its code is generated locally.
func (s *Session) Seed(plan uiplan.Plan, note string) (*Version, error) {
	return s.add(synth.ModeInitial, note, plan, codegen.Generate(plan), "")
}

func (s *Session) add(mode synth.Mode, message string, plan uiplan.Plan, code, explanation string) (*Version, error) {
	fp, err := uiplan.Fingerprint(plan)
	if err != nil {
		return nil, err
	}

	v := &Version{
		ID:          uuid.New().String(),
		Mode:        mode,
		Message:     message,
		Plan:        plan,
		Code:        code,
		Explanation: explanation,
		Fingerprint: fp,
		CreatedAt:   s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.versions = append(s.versions, v)
	s.current = len(s.versions) - 1
	return v, nil
}

// Rollback makes an earlier version current. No version is added or removed.
func (s *Session) Rollback(id string) (*Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.NewVersionNotFoundError(id)
	}
	s.current = i
	return s.versions[i], nil
}

// Patch diffs the artifacts of two versions. An empty fromID diffs against
// nothing, so every artifact shows as added.
func (s *Session) Patch(fromID, toID string) (*patch.Patch, error) {
	to, err := s.Get(toID)
	if err != nil {
		return nil, err
	}
	after, err := to.Snapshot()
	if err != nil {
		return nil, err
	}

	before := patch.Snapshot{}
	if fromID != "" {
		from, err := s.Get(fromID)
		if err != nil {
			return nil, err
		}
		if before, err = from.Snapshot(); err != nil {
			return nil, err
		}
	}

	p := s.differ.Between(fromID, toID, before, after)
	if p.IsEmpty() {
		p.Summary = "no changes"
	} else if to.Explanation != "" {
		p.Summary = to.Explanation
	}
	return p, nil
}
