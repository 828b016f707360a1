package syncer

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starford/wunjo/internal/ident"
	"github.com/starford/wunjo/internal/testutil"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatch_NewNoteTriggersSync(t *testing.T) {
	p, dir, store, _ := newTestPipeline(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var runs []*Result

	// Pre-create the notes dir so the watcher covers it from the start.
	if err := os.MkdirAll(filepath.Join(dir, "03_Days"), 0o755); err != nil {
		t.Fatal(err)
	}

	go func() {
		_ = p.Watch(ctx, func(res *Result) {
			mu.Lock()
			runs = append(runs, res)
			mu.Unlock()
		})
	}()

	time.Sleep(100 * time.Millisecond)

	testutil.WriteFile(t, dir, "03_Days/2026-09-05.md", `---
release: true
fileClass: fc-day
date: 2026-09-05
---
`)

	wantID := ident.FromFileName("2026-09-05")
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		ids, _ := store.DayIDs(ctx)
		return len(ids) == 1 && ids[0] == wantID
	}, "new day note not synced by watcher")

	eventually(t, 2*time.Second, 50*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(runs) >= 1 && runs[len(runs)-1].Days == 1
	}, "expected sync callback with one day")
}

func TestWatch_DeleteTriggersReconcile(t *testing.T) {
	p, dir, store, _ := newTestPipeline(t)
	note := testutil.WriteFile(t, dir, "03_Days/2026-09-06.md", `---
release: true
fileClass: fc-day
date: 2026-09-06
---
`)

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(store.Days) != 1 {
		t.Fatal("precondition: day should be synced")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = p.Watch(ctx, nil) }()
	time.Sleep(100 * time.Millisecond)

	if err := os.Remove(note); err != nil {
		t.Fatal(err)
	}

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		ids, _ := store.DayIDs(ctx)
		return len(ids) == 0
	}, "deleted note still in store")
}

func TestWatch_NewDirWatched(t *testing.T) {
	p, dir, store, _ := newTestPipeline(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = p.Watch(ctx, nil) }()
	time.Sleep(100 * time.Millisecond)

	// The days dir does not exist yet; creating it and a note inside must
	// still be picked up.
	testutil.WriteFile(t, dir, "03_Days/2026-09-07.md", `---
release: true
fileClass: fc-day
date: 2026-09-07
---
`)

	wantID := ident.FromFileName("2026-09-07")
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		ids, _ := store.DayIDs(ctx)
		return len(ids) == 1 && ids[0] == wantID
	}, "note in new subdir not synced by watcher")
}
