// Package patch computes line diffs between the artifacts of two plan
// versions: the plan JSON and the generated TSX.
package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

// Artifact file names inside a snapshot.
const (
	PlanFile = "plan.json"
	CodeFile = "GeneratedUI.tsx"
)

// Snapshot maps artifact file names to their content.
type Snapshot map[string]string

// SnapshotOf captures the artifacts of one version. The plan is written in
// its canonical key order, indented, so diffs line up between versions.
func SnapshotOf(plan uiplan.Plan, code string) (Snapshot, error) {
	canonical, err := uiplan.Canonicalize(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize plan: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, canonical, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent plan: %w", err)
	}
	buf.WriteString("\n")

	return Snapshot{PlanFile: buf.String(), CodeFile: code}, nil
}

// Differ generates unified diffs
type Differ struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffer creates a new differ
func NewDiffer() *Differ {
	return &Differ{dmp: diffmatchpatch.New()}
}

// Between builds the patch that turns before into after.
func (d *Differ) Between(fromID, toID string, before, after Snapshot) *Patch {
	patch := &Patch{
		FromVersion: fromID,
		ToVersion:   toID,
		Timestamp:   time.Now(),
		Files:       []FilePatch{},
	}

	paths := make(map[string]struct{}, len(before)+len(after))
	for p := range before {
		paths[p] = struct{}{}
	}
	for p := range after {
		paths[p] = struct{}{}
	}
	sorted := make([]string, 0, len(paths))
	for p := range paths {
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)

	for _, path := range sorted {
		oldContent, hadOld := before[path]
		newContent, hasNew := after[path]

		switch {
		case !hadOld:
			patch.Files = append(patch.Files, d.filePatch(path, FileStatusAdded, "", newContent))
		case !hasNew:
			patch.Files = append(patch.Files, d.filePatch(path, FileStatusDeleted, oldContent, ""))
		case oldContent != newContent:
			patch.Files = append(patch.Files, d.filePatch(path, FileStatusModified, oldContent, newContent))
		}
	}

	patch.CalculateStats()
	return patch
}

func (d *Differ) filePatch(path string, status FileStatus, oldContent, newContent string) FilePatch {
	diff, insertions, deletions := d.unified(path, oldContent, newContent)
	return FilePatch{
		Path:       path,
		Status:     status,
		OldContent: oldContent,
		NewContent: newContent,
		Diff:       diff,
		Insertions: insertions,
		Deletions:  deletions,
	}
}

// Unified returns a unified diff of two texts under the given name.
func (d *Differ) Unified(path, oldContent, newContent string) string {
	diff, _, _ := d.unified(path, oldContent, newContent)
	return diff
}

// unified diffs line by line and emits a single hunk spanning both texts.
func (d *Differ) unified(path, oldContent, newContent string) (string, int, int) {
	a, b, lineArray := d.dmp.DiffLinesToChars(oldContent, newContent)
	diffs := d.dmp.DiffCharsToLines(d.dmp.DiffMain(a, b, false), lineArray)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- a/%s\n", path)
	fmt.Fprintf(&buf, "+++ b/%s\n", path)

	var hunkLines []string
	var oldCount, newCount, insertions, deletions int

	for _, diff := range diffs {
		for _, line := range splitLines(diff.Text) {
			switch diff.Type {
			case diffmatchpatch.DiffEqual:
				hunkLines = append(hunkLines, " "+line)
				oldCount++
				newCount++
			case diffmatchpatch.DiffDelete:
				hunkLines = append(hunkLines, "-"+line)
				oldCount++
				deletions++
			case diffmatchpatch.DiffInsert:
				hunkLines = append(hunkLines, "+"+line)
				newCount++
				insertions++
			}
		}
	}

	if insertions == 0 && deletions == 0 {
		return buf.String(), 0, 0
	}

	fmt.Fprintf(&buf, "@@ -%d,%d +%d,%d @@\n", hunkStart(oldCount), oldCount, hunkStart(newCount), newCount)
	for _, line := range hunkLines {
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	return buf.String(), insertions, deletions
}

// hunkStart is 1 for a non-empty side and 0 for an empty one.
func hunkStart(count int) int {
	if count == 0 {
		return 0
	}
	return 1
}

// splitLines splits text into lines without their terminators.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Unified is a convenience for a one-off diff with a fresh Differ.
func Unified(path, oldContent, newContent string) string {
	return NewDiffer().Unified(path, oldContent, newContent)
}
