// Package vault provides read access to the local notebook vault: note
// listing, asset resolution, and change detection.
package vault

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/starford/wunjo/internal/checksum"
)

// NoteMeta describes one Markdown note found in a vault directory.
type NoteMeta struct {
	// Path is the absolute path of the note file.
	Path string
	// Name is the bare file name, e.g. "Example Case.md".
	Name string
}

// Vault is rooted at the notebook directory. An optional external asset
// directory participates in asset resolution.
type Vault struct {
	root     string
	assetDir string
	logger   *slog.Logger

	mu    sync.Mutex
	index map[string][]string // basename -> sorted absolute paths
}

// New creates a Vault rooted at the given directory, which must exist.
func New(root, assetDir string, logger *slog.Logger) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("vault: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("vault: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault: root is not a directory: %s", abs)
	}
	return &Vault{root: abs, assetDir: assetDir, logger: logger}, nil
}

// Root returns the absolute vault root.
func (v *Vault) Root() string { return v.root }

// ListNotes returns the .md files directly inside subdir (relative to the
// vault root), sorted by name. A missing directory yields an empty list.
func (v *Vault) ListNotes(subdir string) ([]NoteMeta, error) {
	dir := filepath.Join(v.root, subdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("vault: list %s: %w", subdir, err)
	}
	var out []NoteMeta
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		out = append(out, NoteMeta{Path: filepath.Join(dir, e.Name()), Name: e.Name()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Read returns the raw bytes of a file by absolute path.
func (v *Vault) Read(absPath string) ([]byte, error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("vault: read %s: %w", absPath, err)
	}
	return data, nil
}

// ResetIndex drops the lazily built filename index so the next resolution
// pass sees the current vault state. Called at the start of every pipeline
// run.
func (v *Vault) ResetIndex() {
	v.mu.Lock()
	v.index = nil
	v.mu.Unlock()
}

// fileIndex maps bare file names to all matching absolute paths in the
// vault, built once per run by a full recursive scan. Candidate lists are
// sorted so lookups are deterministic regardless of directory enumeration
// order.
func (v *Vault) fileIndex() map[string][]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.index != nil {
		return v.index
	}

	idx := make(map[string][]string)
	_ = filepath.WalkDir(v.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		idx[d.Name()] = append(idx[d.Name()], p)
		return nil
	})
	for name := range idx {
		sort.Strings(idx[name])
	}
	v.index = idx
	return idx
}

// ResolveAsset resolves a raw asset reference to an absolute path on disk.
// Resolution order, first hit wins:
//
//  1. absolute path that exists
//  2. relative to the note's own directory
//  3. relative to the vault root
//  4. relative to the configured external asset directory
//  5. vault-wide filename index (lexicographically first candidate)
//
// Returns ok=false when no candidate exists.
func (v *Vault) ResolveAsset(ref, notePath string) (string, bool) {
	normalized := strings.TrimSpace(strings.ReplaceAll(ref, "\\", "/"))
	if normalized == "" {
		return "", false
	}

	if filepath.IsAbs(normalized) && fileExists(normalized) {
		return normalized, true
	}

	if cand := filepath.Join(filepath.Dir(notePath), normalized); fileExists(cand) {
		return cand, true
	}

	if cand := filepath.Join(v.root, normalized); fileExists(cand) {
		return cand, true
	}

	if v.assetDir != "" {
		if cand := filepath.Join(v.assetDir, normalized); fileExists(cand) {
			return cand, true
		}
	}

	if candidates := v.fileIndex()[path.Base(normalized)]; len(candidates) > 0 {
		if len(candidates) > 1 {
			v.logger.Warn("asset name is ambiguous, using first match",
				slog.String("ref", ref),
				slog.Int("candidates", len(candidates)),
				slog.String("chosen", candidates[0]))
		}
		return candidates[0], true
	}

	return "", false
}

// State returns a checksum per file under the vault root. Watch mode
// compares snapshots to skip pipeline runs for no-op event storms.
func (v *Vault) State() (map[string]string, error) {
	state := make(map[string]string)
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(v.root, p)
		state[rel] = checksum.Sum(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vault: state: %w", err)
	}
	return state, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
