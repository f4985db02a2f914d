// Package plandiff summarizes what changed between two plans by comparing
// the sets of node ids in each tree.
//
// Only structural additions and removals are detected. Moves, renames and
// prop edits fall through to a generic message.
package plandiff

import (
	"strings"

	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

const (
	MsgInitial   = "Created initial layout using components based on the instruction."
	MsgUnchanged = "Adjusted props and layout while keeping the same set of nodes."
)

// Diff is the id-set difference between two plans.
type Diff struct {
	Initial bool
	Added   []string
	Removed []string
}

// Empty reports whether no node was added or removed.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Compute returns next minus prev as Added and prev minus next as Removed,
// each in first-seen pre-order. A nil prev marks the diff as initial.
func Compute(prev *uiplan.Plan, next uiplan.Plan) Diff {
	if prev == nil {
		return Diff{Initial: true}
	}

	prevIDs := uiplan.IDs(prev.Root)
	nextIDs := uiplan.IDs(next.Root)

	return Diff{
		Added:   subtract(nextIDs, prevIDs),
		Removed: subtract(prevIDs, nextIDs),
	}
}

func subtract(from, other []string) []string {
	exclude := make(map[string]struct{}, len(other))
	for _, id := range other {
		exclude[id] = struct{}{}
	}

	var out []string
	seen := make(map[string]struct{}, len(from))
	for _, id := range from {
		if _, ok := exclude[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// String renders the diff as a one-line human summary.
func (d Diff) String() string {
	if d.Initial {
		return MsgInitial
	}

	var parts []string
	if len(d.Added) > 0 {
		parts = append(parts, "Added nodes: "+strings.Join(d.Added, ", "))
	}
	if len(d.Removed) > 0 {
		parts = append(parts, "Removed nodes: "+strings.Join(d.Removed, ", "))
	}
	if len(parts) == 0 {
		return MsgUnchanged
	}
	return strings.Join(parts, " | ")
}

// Summarize is Compute followed by String.
func Summarize(prev *uiplan.Plan, next uiplan.Plan) string {
	return Compute(prev, next).String()
}
