package syncer

import (
	"context"
	"log/slog"

	"github.com/starford/wunjo/internal/database"
	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/parser"
)

// ContentRef links a content note's file name to its synced identity.
type ContentRef struct {
	Type string
	ID   string
}

// ContentCache maps content note file names (without .md) to their refs.
// Event notes resolve their [[links]] against it.
type ContentCache map[string]ContentRef

// syncContents processes the content notes directory and reconciles the
// game_info and scenario_info tables. The returned cache covers every
// eligible note, including ones whose image upload later degraded.
func (p *Pipeline) syncContents(ctx context.Context, res *Result) (ContentCache, error) {
	notes, err := p.vault.ListNotes(p.dirs.Contents)
	if err != nil {
		return nil, err
	}

	cache := make(ContentCache)
	var gameIDs, scenarioIDs []string

	for _, meta := range notes {
		note, err := decodeNote[models.ContentNote](p.vault, meta)
		if err != nil {
			p.logger.Error("content note failed",
				slog.String("path", meta.Path), slog.String("error", err.Error()))
			continue
		}
		if !note.Eligible() {
			continue
		}
		if err := note.Validate(); err != nil {
			p.logger.Warn("skipping content note",
				slog.String("path", meta.Path), slog.String("error", err.Error()))
			continue
		}
		title := parser.Title(note.Title, meta.Name)
		if title == "" {
			p.logger.Warn("skipping content note: empty title", slog.String("path", meta.Path))
			continue
		}

		id, fileName := noteID(note.ID, meta)
		// The cache entry is written before any upload so event notes can
		// resolve this content even if its trailer image degrades.
		cache[fileName] = ContentRef{Type: note.Type, ID: id}

		if note.Type == models.ContentTypeGame {
			row := database.GameRow{
				ID:          id,
				Title:       title,
				OfficialURL: textOrNil(note.OfficialURL),
				Genre:       textOrNil(note.Genre),
				Memo:        textOrNil(note.Memo),
			}
			if err := p.store.UpsertGame(ctx, row); err != nil {
				p.logger.Error("game upsert failed",
					slog.String("path", meta.Path), slog.String("error", err.Error()))
				continue
			}
			gameIDs = append(gameIDs, id)
			continue
		}

		trailer := p.uploader.ResolveImage(ctx, note.TrailerImage, meta.Path, "scenarios/"+id, "trailer_image")
		row := database.ScenarioRow{
			ID:             id,
			Title:          title,
			OfficialURL:    textOrNil(note.OfficialURL),
			Genre:          textOrNil(note.Genre),
			Memo:           textOrNil(note.Memo),
			Players:        textOrNil(note.Players),
			GameSystem:     textOrNil(note.GameSystem),
			Production:     textOrNil(note.Production),
			Creator:        textOrNil(note.Creator),
			Duration:       textOrNil(note.Duration),
			PossibleGM:     note.PossibleGM,
			PossibleStream: note.PossibleStream,
			TrailerImage:   trailer,
		}
		if err := p.store.UpsertScenario(ctx, row); err != nil {
			p.logger.Error("scenario upsert failed",
				slog.String("path", meta.Path), slog.String("error", err.Error()))
			continue
		}
		scenarioIDs = append(scenarioIDs, id)
	}

	deletedGames, err := p.reconcile(ctx, "game_info", p.store.GameIDs, p.store.DeleteGamesByIDs, gameIDs)
	if err != nil {
		return nil, err
	}
	deletedScenarios, err := p.reconcile(ctx, "scenario_info", p.store.ScenarioIDs, p.store.DeleteScenariosByIDs, scenarioIDs)
	if err != nil {
		return nil, err
	}

	res.Games = len(gameIDs)
	res.Scenarios = len(scenarioIDs)
	res.DeletedGames = len(deletedGames)
	res.DeletedScenarios = len(deletedScenarios)
	p.logger.Info("contents synced",
		slog.Int("games", res.Games), slog.Int("scenarios", res.Scenarios))
	return cache, nil
}
