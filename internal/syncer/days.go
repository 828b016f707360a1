package syncer

import (
	"context"
	"log/slog"

	"github.com/starford/wunjo/internal/database"
	"github.com/starford/wunjo/internal/models"
)

// syncDays processes the day notes directory and reconciles days_status.
func (p *Pipeline) syncDays(ctx context.Context, res *Result) error {
	notes, err := p.vault.ListNotes(p.dirs.Days)
	if err != nil {
		return err
	}

	var dayIDs []string

	for _, meta := range notes {
		note, err := decodeNote[models.DayNote](p.vault, meta)
		if err != nil {
			p.logger.Error("day note failed",
				slog.String("path", meta.Path), slog.String("error", err.Error()))
			continue
		}
		if !note.Eligible() {
			continue
		}
		if err := note.Validate(); err != nil {
			p.logger.Warn("skipping day note",
				slog.String("path", meta.Path), slog.String("error", err.Error()))
			continue
		}

		id, _ := noteID(note.ID, meta)
		row := database.DayRow{
			ID:        id,
			Date:      note.Date,
			WorkOff:   note.WorkOff,
			StreamOff: note.StreamOff,
			Will:      note.WillOrDefault(),
			Memo:      textOrNil(note.Memo),
		}
		if err := p.store.UpsertDay(ctx, row); err != nil {
			p.logger.Error("day upsert failed",
				slog.String("path", meta.Path), slog.String("error", err.Error()))
			continue
		}
		dayIDs = append(dayIDs, id)
	}

	deleted, err := p.reconcile(ctx, "days_status", p.store.DayIDs, p.store.DeleteDaysByIDs, dayIDs)
	if err != nil {
		return err
	}

	res.Days = len(dayIDs)
	res.DeletedDays = len(deleted)
	p.logger.Info("days synced", slog.Int("days", res.Days))
	return nil
}
