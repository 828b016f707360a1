package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/starford/wunjo/internal/database"
	"github.com/starford/wunjo/internal/objstore"
)

// FakeObjStore is an in-memory objstore.Provider.
type FakeObjStore struct {
	Objects      map[string][]byte
	ContentTypes map[string]string

	FailEnsure bool
	FailUpload bool
	FailList   bool
	FailRemove bool

	EnsureCalls int
	Removed     []string
}

var _ objstore.Provider = (*FakeObjStore)(nil)

// NewFakeObjStore creates an empty fake bucket.
func NewFakeObjStore() *FakeObjStore {
	return &FakeObjStore{
		Objects:      make(map[string][]byte),
		ContentTypes: make(map[string]string),
	}
}

func (f *FakeObjStore) EnsureBucket(context.Context) error {
	f.EnsureCalls++
	if f.FailEnsure {
		return errors.New("bucket check failed")
	}
	return nil
}

func (f *FakeObjStore) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if f.FailUpload {
		return errors.New("upload failed")
	}
	f.Objects[key] = data
	f.ContentTypes[key] = contentType
	return nil
}

func (f *FakeObjStore) List(_ context.Context, prefix string) ([]string, error) {
	if f.FailList {
		return nil, errors.New("list failed")
	}
	var keys []string
	for k := range f.Objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *FakeObjStore) Remove(_ context.Context, keys []string) error {
	if f.FailRemove {
		return errors.New("remove failed")
	}
	for _, k := range keys {
		delete(f.Objects, k)
		f.Removed = append(f.Removed, k)
	}
	return nil
}

func (f *FakeObjStore) PublicURL(key string) string {
	return "https://storage.test/endcards/" + key
}

// FakeStore is an in-memory database.Store. All methods take the internal
// lock so watcher tests can query it while the pipeline runs.
type FakeStore struct {
	mu sync.Mutex

	Games     map[string]database.GameRow
	Scenarios map[string]database.ScenarioRow
	Schedules map[string]database.ScheduleRow
	Sessions  map[string]database.SessionRow // keyed by schedule_id
	Days      map[string]database.DayRow

	LockBusy    bool
	FailAcquire bool
	LockHeld    bool
	Released    bool
}

var _ database.Store = (*FakeStore)(nil)

// NewFakeStore creates an empty fake store.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		Games:     make(map[string]database.GameRow),
		Scenarios: make(map[string]database.ScenarioRow),
		Schedules: make(map[string]database.ScheduleRow),
		Sessions:  make(map[string]database.SessionRow),
		Days:      make(map[string]database.DayRow),
	}
}

func (f *FakeStore) UpsertGame(_ context.Context, row database.GameRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Games[row.ID] = row
	return nil
}

func (f *FakeStore) UpsertScenario(_ context.Context, row database.ScenarioRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Scenarios[row.ID] = row
	return nil
}

func (f *FakeStore) UpsertSchedule(_ context.Context, row database.ScheduleRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row.Members == nil {
		row.Members = []string{}
	}
	f.Schedules[row.ID] = row
	return nil
}

func (f *FakeStore) UpsertSession(_ context.Context, row database.SessionRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sessions[row.ScheduleID] = row
	return nil
}

func (f *FakeStore) UpsertDay(_ context.Context, row database.DayRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Days[row.ID] = row
	return nil
}

func sortedKeys[T any](m map[string]T) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (f *FakeStore) GameIDs(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedKeys(f.Games), nil
}

func (f *FakeStore) ScenarioIDs(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedKeys(f.Scenarios), nil
}

func (f *FakeStore) ScheduleIDs(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedKeys(f.Schedules), nil
}

func (f *FakeStore) DayIDs(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedKeys(f.Days), nil
}

func (f *FakeStore) SessionIDs(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, row := range f.Sessions {
		ids = append(ids, row.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *FakeStore) ScenarioScheduleIDs(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id, row := range f.Schedules {
		if row.ContentType == "scenario" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *FakeStore) DeleteGamesByIDs(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.Games, id)
	}
	return nil
}

func (f *FakeStore) DeleteScenariosByIDs(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.Scenarios, id)
	}
	return nil
}

func (f *FakeStore) DeleteSchedulesByIDs(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.Schedules, id)
	}
	return nil
}

func (f *FakeStore) DeleteSessionsByIDs(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		for key, row := range f.Sessions {
			if row.ID == id {
				delete(f.Sessions, key)
			}
		}
	}
	return nil
}

func (f *FakeStore) DeleteDaysByIDs(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.Days, id)
	}
	return nil
}

func (f *FakeStore) AcquireSyncLock(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailAcquire {
		return false, errors.New("lock query failed")
	}
	if f.LockBusy {
		return false, nil
	}
	f.LockHeld = true
	return true, nil
}

func (f *FakeStore) ReleaseSyncLock(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LockHeld = false
	f.Released = true
	return nil
}
