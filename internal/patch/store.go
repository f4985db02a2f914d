package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const fileSuffix = ".patch.json"

// Store keeps one file per patch in a directory, named <from>_<to>.patch.json.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on the
// first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes p and returns the file path.
func (s *Store) Save(p *Patch) (string, error) {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return "", fmt.Errorf("create patch directory: %w", err)
	}

	data, err := p.ToJSON()
	if err != nil {
		return "", fmt.Errorf("serialize patch: %w", err)
	}

	path := s.Path(p.FromVersion, p.ToVersion)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("write patch file: %w", err)
	}
	return path, nil
}

// Load reads the patch from one version to the next. An empty from means
// the session's first version.
func (s *Store) Load(from, to string) (*Patch, error) {
	data, err := os.ReadFile(s.Path(from, to))
	if err != nil {
		return nil, fmt.Errorf("read patch file: %w", err)
	}

	p, err := FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse patch %s: %w", filepath.Base(s.Path(from, to)), err)
	}
	return p, nil
}

// List returns the patches in the directory ordered by creation time.
// Files that do not parse are skipped; a missing directory is an error.
func (s *Store) List() ([]*Patch, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list patches: %w", err)
	}

	var patches []*Patch
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileSuffix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		p, err := FromJSON(data)
		if err != nil {
			continue
		}
		patches = append(patches, p)
	}

	sort.SliceStable(patches, func(i, j int) bool {
		return patches[i].Timestamp.Before(patches[j].Timestamp)
	})
	return patches, nil
}

// Path returns the file a patch between two versions is stored in.
func (s *Store) Path(from, to string) string {
	return filepath.Join(s.dir, versionOrInitial(from)+"_"+to+fileSuffix)
}
