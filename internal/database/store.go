package database

import "context"

// Store is the interface the sync pipeline depends on. Consumers should
// depend on this rather than the concrete *DB to facilitate testing with
// fakes.
type Store interface {
	UpsertGame(ctx context.Context, row GameRow) error
	UpsertScenario(ctx context.Context, row ScenarioRow) error
	UpsertSchedule(ctx context.Context, row ScheduleRow) error
	UpsertSession(ctx context.Context, row SessionRow) error
	UpsertDay(ctx context.Context, row DayRow) error

	GameIDs(ctx context.Context) ([]string, error)
	ScenarioIDs(ctx context.Context) ([]string, error)
	ScheduleIDs(ctx context.Context) ([]string, error)
	SessionIDs(ctx context.Context) ([]string, error)
	DayIDs(ctx context.Context) ([]string, error)
	ScenarioScheduleIDs(ctx context.Context) ([]string, error)

	DeleteGamesByIDs(ctx context.Context, ids []string) error
	DeleteScenariosByIDs(ctx context.Context, ids []string) error
	DeleteSchedulesByIDs(ctx context.Context, ids []string) error
	DeleteSessionsByIDs(ctx context.Context, ids []string) error
	DeleteDaysByIDs(ctx context.Context, ids []string) error

	AcquireSyncLock(ctx context.Context) (bool, error)
	ReleaseSyncLock(ctx context.Context) error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
