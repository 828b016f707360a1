// Package syncer implements the vault-to-backend synchronization pipeline:
// content notes, then event notes, then day notes, each phase upserting
// eligible notes and deleting rows whose notes are gone.
package syncer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/assets"
	"github.com/starford/wunjo/internal/database"
	"github.com/starford/wunjo/internal/ident"
	"github.com/starford/wunjo/internal/objstore"
	"github.com/starford/wunjo/internal/parser"
	"github.com/starford/wunjo/internal/vault"
)

// Dirs names the three note directories under the vault root.
type Dirs struct {
	Contents string
	Events   string
	Days     string
}

// Result aggregates per-phase counts for one pipeline run.
type Result struct {
	Games            int `json:"games"`
	Scenarios        int `json:"scenarios"`
	Events           int `json:"events"`
	ScenarioSessions int `json:"scenario_sessions"`
	Days             int `json:"days"`

	DeletedGames     int `json:"deleted_games"`
	DeletedScenarios int `json:"deleted_scenarios"`
	DeletedSchedules int `json:"deleted_schedules"`
	DeletedSessions  int `json:"deleted_sessions"`
	DeletedDays      int `json:"deleted_days"`
}

// Pipeline holds the collaborators for a run. Construct one per process;
// per-run caches (the vault file index) are reset at the start of each run.
type Pipeline struct {
	vault    *vault.Vault
	store    database.Store
	objects  objstore.Provider
	uploader *assets.Uploader
	logger   *slog.Logger
	dirs     Dirs
}

// New creates a Pipeline.
func New(v *vault.Vault, store database.Store, objects objstore.Provider, dirs Dirs, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		vault:    v,
		store:    store,
		objects:  objects,
		uploader: assets.NewUploader(v, objects, logger),
		logger:   logger,
		dirs:     dirs,
	}
}

// Run executes one full synchronization pass under the cross-process sync
// lock. Per-note failures are logged and skipped; infrastructure failures
// abort the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	locked, err := p.store.AcquireSyncLock(ctx)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, apperr.ErrSyncLocked
	}
	defer func() {
		if err := p.store.ReleaseSyncLock(ctx); err != nil {
			p.logger.Warn("sync lock release failed", slog.String("error", err.Error()))
		}
	}()

	p.vault.ResetIndex()

	res := &Result{}
	cache, err := p.syncContents(ctx, res)
	if err != nil {
		return nil, err
	}
	if err := p.syncEvents(ctx, cache, res); err != nil {
		return nil, err
	}
	if err := p.syncDays(ctx, res); err != nil {
		return nil, err
	}

	p.logger.Info("sync complete",
		slog.Int("games", res.Games),
		slog.Int("scenarios", res.Scenarios),
		slog.Int("events", res.Events),
		slog.Int("scenario_sessions", res.ScenarioSessions),
		slog.Int("days", res.Days))
	return res, nil
}

// decodeNote reads a note file and decodes its frontmatter into T.
func decodeNote[T any](v *vault.Vault, meta vault.NoteMeta) (T, error) {
	data, err := v.Read(meta.Path)
	if err != nil {
		var zero T
		return zero, err
	}
	return parser.Frontmatter[T](data)
}

// noteID returns the explicit frontmatter id, or the deterministic id
// derived from the file name.
func noteID(explicit string, meta vault.NoteMeta) (id, fileName string) {
	fileName = strings.TrimSuffix(meta.Name, ".md")
	if explicit != "" {
		return explicit, fileName
	}
	return ident.FromFileName(fileName), fileName
}

// textOrNil maps empty strings to SQL NULL.
func textOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
