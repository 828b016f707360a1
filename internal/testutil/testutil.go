// Package testutil provides shared test helpers: temp vaults and in-memory
// fakes for the database and object-storage collaborators.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/wunjo/internal/vault"
)

// Logger returns a quiet logger for tests.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestVault creates a temporary vault directory and returns it with a Vault.
func TestVault(t *testing.T) (*vault.Vault, string) {
	t.Helper()
	dir := t.TempDir()
	v, err := vault.New(dir, "", Logger())
	if err != nil {
		t.Fatal(err)
	}
	return v, dir
}

// WriteFile writes content at rel under root, creating parent directories.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}
