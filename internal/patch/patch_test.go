package patch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func samplePatch(from, to string, at time.Time) *Patch {
	patch := &Patch{
		FromVersion: from,
		ToVersion:   to,
		Timestamp:   at,
		Summary:     "Added nodes: b2",
		Files: []FilePatch{
			{
				Path:       CodeFile,
				Status:     FileStatusModified,
				OldContent: "old",
				NewContent: "new",
				Diff:       "--- a/GeneratedUI.tsx\n+++ b/GeneratedUI.tsx\n@@ -1,1 +1,1 @@\n-old\n+new\n",
				Insertions: 1,
				Deletions:  1,
			},
		},
	}
	patch.CalculateStats()
	return patch
}

// TestPatchSerialization tests patch JSON serialization
func TestPatchSerialization(t *testing.T) {
	patch := samplePatch("v1", "v2", time.Now())

	jsonData, err := patch.ToJSON()
	if err != nil {
		t.Fatalf("Failed to serialize patch: %v", err)
	}

	parsed, err := FromJSON(jsonData)
	if err != nil {
		t.Fatalf("Failed to deserialize patch: %v", err)
	}

	if parsed.FromVersion != "v1" || parsed.ToVersion != "v2" {
		t.Errorf("Expected v1->v2, got %s->%s", parsed.FromVersion, parsed.ToVersion)
	}
	if parsed.Summary != patch.Summary {
		t.Errorf("Expected summary %q, got %q", patch.Summary, parsed.Summary)
	}
	if parsed.FilesChanged != 1 || parsed.Insertions != 1 || parsed.Deletions != 1 {
		t.Errorf("Unexpected stats: %+v", parsed)
	}
}

// TestFromJSONInvalid tests parsing garbage
func TestFromJSONInvalid(t *testing.T) {
	if _, err := FromJSON([]byte("{not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

// TestSpan tests the version labels shown for a patch
func TestSpan(t *testing.T) {
	if got := samplePatch("", "v1", time.Now()).Span(); got != "initial → v1" {
		t.Errorf("Span() = %q", got)
	}
	if got := samplePatch("v1", "v2", time.Now()).Span(); got != "v1 → v2" {
		t.Errorf("Span() = %q", got)
	}
}

// TestStoreRoundTrip tests saving, loading and listing patches
func TestStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "patches")
	store := NewStore(dir)

	now := time.Now()
	second, err := store.Save(samplePatch("v1", "v2", now))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := store.Save(samplePatch("", "v1", now.Add(-time.Minute))); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if filepath.Base(second) != "v1_v2.patch.json" {
		t.Errorf("Unexpected patch file name %s", filepath.Base(second))
	}
	if filepath.Base(store.Path("", "v1")) != "initial_v1.patch.json" {
		t.Errorf("Unexpected first patch path %s", store.Path("", "v1"))
	}

	for _, from := range []string{"", InitialVersion} {
		first, err := store.Load(from, "v1")
		if err != nil {
			t.Fatalf("Load(%q, v1) failed: %v", from, err)
		}
		if first.FromVersion != "" {
			t.Errorf("Expected empty FromVersion, got %q", first.FromVersion)
		}
	}

	// Unparseable files and unrelated files are skipped
	if err := os.WriteFile(filepath.Join(dir, "junk.patch.json"), []byte("nope"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plan.json"), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	patches, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(patches) != 2 {
		t.Fatalf("Expected 2 patches, got %d", len(patches))
	}
	if patches[0].ToVersion != "v1" || patches[1].ToVersion != "v2" {
		t.Errorf("Expected oldest patch first, got %s, %s", patches[0].Span(), patches[1].Span())
	}
}

// TestStoreMissing tests loading from an empty or absent directory
func TestStoreMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load("a", "b"); err == nil {
		t.Error("Expected error for missing patch")
	}

	if _, err := NewStore(filepath.Join(t.TempDir(), "absent")).List(); err == nil {
		t.Error("Expected error listing a missing directory")
	}
}
