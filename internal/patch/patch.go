package patch

import (
	"encoding/json"
	"time"
)

// InitialVersion labels the empty state a session's first patch starts from.
const InitialVersion = "initial"

// Patch is the file-level difference between two plan versions. An empty
// FromVersion means the patch creates the first version.
type Patch struct {
	FromVersion string      `json:"fromVersion"`
	ToVersion   string      `json:"toVersion"`
	Timestamp   time.Time   `json:"timestamp"`
	Summary     string      `json:"summary"`
	Files       []FilePatch `json:"files"`

	FilesChanged int `json:"filesChanged"`
	Insertions   int `json:"insertions"`
	Deletions    int `json:"deletions"`
}

// FilePatch represents changes to a single artifact file
type FilePatch struct {
	Path   string     `json:"path"`
	Status FileStatus `json:"status"`

	OldContent string `json:"oldContent,omitempty"`
	NewContent string `json:"newContent,omitempty"`
	Diff       string `json:"diff"` // Unified diff format

	Insertions int `json:"insertions"`
	Deletions  int `json:"deletions"`
}

// FileStatus represents the type of change to a file
type FileStatus string

const (
	FileStatusAdded    FileStatus = "added"
	FileStatusModified FileStatus = "modified"
	FileStatusDeleted  FileStatus = "deleted"
)

// ToJSON converts patch to JSON
func (p *Patch) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// FromJSON parses a patch from JSON
func FromJSON(data []byte) (*Patch, error) {
	var patch Patch
	if err := json.Unmarshal(data, &patch); err != nil {
		return nil, err
	}
	return &patch, nil
}

// Span names the versions a patch connects, as in "initial → 3f2a".
func (p *Patch) Span() string {
	return versionOrInitial(p.FromVersion) + " → " + p.ToVersion
}

func versionOrInitial(id string) string {
	if id == "" {
		return InitialVersion
	}
	return id
}

// IsEmpty returns true if the patch contains no changes
func (p *Patch) IsEmpty() bool {
	return len(p.Files) == 0
}

// CalculateStats updates the patch statistics from file patches
func (p *Patch) CalculateStats() {
	p.FilesChanged = len(p.Files)
	p.Insertions = 0
	p.Deletions = 0

	for _, filePatch := range p.Files {
		p.Insertions += filePatch.Insertions
		p.Deletions += filePatch.Deletions
	}
}
