package syncer

import (
	"context"
	"log/slog"

	"github.com/starford/wunjo/internal/database"
	"github.com/starford/wunjo/internal/models"
	"github.com/starford/wunjo/internal/parser"
)

// syncEvents processes the event notes directory and reconciles schedules
// and scenario_sessions. Content links are resolved against the cache built
// by syncContents; an unresolved or absent link makes the event a "real"
// (non-gaming) entry.
func (p *Pipeline) syncEvents(ctx context.Context, cache ContentCache, res *Result) error {
	notes, err := p.vault.ListNotes(p.dirs.Events)
	if err != nil {
		return err
	}

	var scheduleIDs []string

	for _, meta := range notes {
		note, err := decodeNote[models.EventNote](p.vault, meta)
		if err != nil {
			p.logger.Error("event note failed",
				slog.String("path", meta.Path), slog.String("error", err.Error()))
			continue
		}
		if !note.Eligible() {
			continue
		}
		if err := note.Validate(); err != nil {
			p.logger.Warn("skipping event note",
				slog.String("path", meta.Path), slog.String("error", err.Error()))
			continue
		}

		id, _ := noteID(note.ID, meta)

		contentType := models.ContentTypeReal
		var contentID *string
		if link := parser.FirstWikiLink(note.Content); link != "" {
			if ref, ok := cache[link]; ok {
				contentType = ref.Type
				cid := ref.ID
				contentID = &cid
			} else {
				p.logger.Warn("event links unknown content",
					slog.String("path", meta.Path), slog.String("link", link))
			}
		}

		// Pending events have no committed date even if one is drafted.
		date := textOrNil(note.Date)
		if note.Status == models.StatusPending {
			date = nil
		}

		endcard := p.uploader.ResolveImage(ctx, note.EndcardRef(), meta.Path, "events/"+id, "endcard_image")

		row := database.ScheduleRow{
			ID:           id,
			ContentType:  contentType,
			ContentID:    contentID,
			Status:       note.Status,
			Date:         date,
			Label:        textOrNil(note.Label),
			StartTime:    note.StartTime.HHMM(),
			Position:     textOrNil(note.Position),
			Role:         textOrNil(note.Role),
			Members:      note.Members,
			PCName:       textOrNil(note.PCName),
			GMSTName:     textOrNil(note.GMSTName),
			Server:       textOrNil(note.Server),
			IsStream:     note.IsStream,
			StreamURL:    textOrNil(note.StreamURL),
			EndcardImage: endcard,
			Memo:         textOrNil(note.Memo),
		}
		if err := p.store.UpsertSchedule(ctx, row); err != nil {
			p.logger.Error("schedule upsert failed",
				slog.String("path", meta.Path), slog.String("error", err.Error()))
			continue
		}
		scheduleIDs = append(scheduleIDs, id)
	}

	deleted, err := p.reconcile(ctx, "schedules", p.store.ScheduleIDs, p.store.DeleteSchedulesByIDs, scheduleIDs)
	if err != nil {
		return err
	}
	p.cleanupEventAssets(ctx, deleted)

	// scenario_sessions tracks the scenario subset of schedules in lockstep.
	// Session rows reuse the schedule id, so the conflict target is the
	// schedule_id column.
	scenarioSchedules, err := p.store.ScenarioScheduleIDs(ctx)
	if err != nil {
		return err
	}
	for _, sid := range scenarioSchedules {
		if err := p.store.UpsertSession(ctx, database.SessionRow{ID: sid, ScheduleID: sid}); err != nil {
			return err
		}
	}
	deletedSessions, err := p.reconcile(ctx, "scenario_sessions", p.store.SessionIDs, p.store.DeleteSessionsByIDs, scenarioSchedules)
	if err != nil {
		return err
	}

	res.Events = len(scheduleIDs)
	res.ScenarioSessions = len(scenarioSchedules)
	res.DeletedSchedules = len(deleted)
	res.DeletedSessions = len(deletedSessions)
	p.logger.Info("events synced",
		slog.Int("events", res.Events), slog.Int("scenario_sessions", res.ScenarioSessions))
	return nil
}

// cleanupEventAssets removes the per-event asset prefix for every deleted
// schedule. Bucket unavailability or per-prefix failures are logged and
// skipped; stale objects are harmless and the next deletion retries them.
func (p *Pipeline) cleanupEventAssets(ctx context.Context, deleted []string) {
	if len(deleted) == 0 {
		return
	}
	if err := p.objects.EnsureBucket(ctx); err != nil {
		p.logger.Warn("skipping asset cleanup: bucket unavailable", slog.String("error", err.Error()))
		return
	}
	for _, id := range deleted {
		prefix := "events/" + id + "/"
		keys, err := p.objects.List(ctx, prefix)
		if err != nil {
			p.logger.Warn("asset listing failed",
				slog.String("prefix", prefix), slog.String("error", err.Error()))
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := p.objects.Remove(ctx, keys); err != nil {
			p.logger.Warn("asset removal failed",
				slog.String("prefix", prefix), slog.String("error", err.Error()))
			continue
		}
		p.logger.Info("removed event assets", slog.String("prefix", prefix), slog.Int("count", len(keys)))
	}
}
