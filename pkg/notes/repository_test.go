package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/notelet/notelet/pkg/adapters/memory"
	"github.com/notelet/notelet/pkg/core"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// fakeClock is a settable core.Clock.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type fixture struct {
	repo  *Repository
	store *memory.Store
	conn  *core.Switch
	clock *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store: memory.NewStore(),
		conn:  core.NewSwitch(true),
		clock: &fakeClock{now: testNow},
	}
	repo, err := NewRepository(Config{
		Store:        f.store,
		Connectivity: f.conn,
		Clock:        f.clock,
	})
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	if _, err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	f.repo = repo
	t.Cleanup(func() { _ = repo.Close() })
	return f
}

func TestCreateDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.repo.Create(ctx, core.Note{Title: "first"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.ID == "" {
		t.Error("expected a generated id")
	}
	if first.Color != core.ColorDefault {
		t.Errorf("expected default color, got %s", first.Color)
	}
	if len(first.Blocks) != 1 || first.Blocks[0].Kind() != core.KindText {
		t.Error("expected a single seed text block")
	}
	if first.Order != 0 {
		t.Errorf("expected order 0, got %v", first.Order)
	}

	second, err := f.repo.Create(ctx, core.Note{Title: "second"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if second.Order != 1 {
		t.Errorf("expected order 1, got %v", second.Order)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.repo.Create(ctx, core.Note{Title: "draft"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	f.clock.now = testNow.Add(time.Hour)
	updated, err := f.repo.Update(ctx, n.ID, func(n *core.Note) error {
		n.Title = "final"
		return n.SetBlockText(n.Blocks[0].Key(), "hello")
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "final" || updated.Blocks[0].Text() != "hello" {
		t.Errorf("mutation not applied: %+v", updated)
	}
	if !updated.UpdatedAt.Equal(f.clock.now) {
		t.Error("UpdatedAt not refreshed")
	}

	got, err := f.repo.Get(ctx, n.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "final" {
		t.Errorf("persisted title = %q, want final", got.Title)
	}
}

func TestUpdateUnknownNote(t *testing.T) {
	f := newFixture(t)

	_, err := f.repo.Update(context.Background(), "nope", func(*core.Note) error { return nil })
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOfflineQueue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Online mutations never touch the queue.
	n, err := f.repo.Create(ctx, core.Note{Title: "online"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if f.store.Len(core.CollectionSyncQueue) != 0 {
		t.Fatal("online create must not enqueue")
	}
	if n.SyncStatus != core.SyncSynced {
		t.Errorf("expected synced, got %s", n.SyncStatus)
	}

	// Offline mutations append one entry each, in order.
	f.conn.Set(false)
	f.clock.now = testNow.Add(time.Minute)
	updated, err := f.repo.Update(ctx, n.ID, func(n *core.Note) error {
		n.Title = "offline edit"
		return nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.SyncStatus != core.SyncPending {
		t.Errorf("expected pending, got %s", updated.SyncStatus)
	}

	f.clock.now = testNow.Add(2 * time.Minute)
	if err := f.repo.Delete(ctx, n.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	items, err := f.repo.PendingSync(ctx)
	if err != nil {
		t.Fatalf("PendingSync failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 queue items, got %d", len(items))
	}
	if items[0].Operation != core.OpUpdate || items[1].Operation != core.OpDelete {
		t.Errorf("queue out of order: %s then %s", items[0].Operation, items[1].Operation)
	}
	if items[0].Payload == nil {
		t.Error("update entry must carry the entity payload")
	}
	if items[1].Payload != nil {
		t.Error("delete entry must carry no payload")
	}

	if err := f.repo.ClearSyncQueue(ctx); err != nil {
		t.Fatalf("ClearSyncQueue failed: %v", err)
	}
	if f.store.Len(core.CollectionSyncQueue) != 0 {
		t.Error("queue not cleared")
	}
}

func TestTrashLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.repo.Create(ctx, core.Note{Title: "keep", Pinned: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	trashed, err := f.repo.MoveToTrash(ctx, n.ID)
	if err != nil {
		t.Fatalf("MoveToTrash failed: %v", err)
	}
	if !trashed.Trashed || trashed.Pinned || trashed.TrashedAt == nil {
		t.Errorf("trash state wrong: %+v", trashed)
	}

	restored, err := f.repo.RestoreFromTrash(ctx, n.ID)
	if err != nil {
		t.Fatalf("RestoreFromTrash failed: %v", err)
	}
	if restored.Trashed || restored.TrashedAt != nil {
		t.Errorf("restore state wrong: %+v", restored)
	}
}

func TestSweepExpiredTrash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old, err := f.repo.Create(ctx, core.Note{Title: "old"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	fresh, err := f.repo.Create(ctx, core.Note{Title: "fresh"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	active, err := f.repo.Create(ctx, core.Note{Title: "active"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := f.repo.MoveToTrash(ctx, old.ID); err != nil {
		t.Fatalf("MoveToTrash failed: %v", err)
	}
	f.clock.now = testNow.Add(5 * 24 * time.Hour)
	if _, err := f.repo.MoveToTrash(ctx, fresh.ID); err != nil {
		t.Fatalf("MoveToTrash failed: %v", err)
	}

	// 8 days after the first trashing: only "old" crossed the 7-day window.
	swept, err := f.repo.SweepExpiredTrash(ctx, testNow.Add(8*24*time.Hour))
	if err != nil {
		t.Fatalf("SweepExpiredTrash failed: %v", err)
	}
	if len(swept) != 1 || swept[0] != old.ID {
		t.Errorf("expected only %s swept, got %v", old.ID, swept)
	}

	if _, err := f.repo.Get(ctx, old.ID); !errors.Is(err, core.ErrNotFound) {
		t.Error("swept note must be gone")
	}
	for _, id := range []string{fresh.ID, active.ID} {
		if _, err := f.repo.Get(ctx, id); err != nil {
			t.Errorf("note %s must survive the sweep: %v", id, err)
		}
	}
}

func TestEmptyTrash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.repo.Create(ctx, core.Note{Title: "bin me"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	keep, err := f.repo.Create(ctx, core.Note{Title: "keep"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := f.repo.MoveToTrash(ctx, n.ID); err != nil {
		t.Fatalf("MoveToTrash failed: %v", err)
	}

	deleted, err := f.repo.EmptyTrash(ctx)
	if err != nil {
		t.Fatalf("EmptyTrash failed: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != n.ID {
		t.Errorf("expected %s deleted, got %v", n.ID, deleted)
	}
	if _, err := f.repo.Get(ctx, keep.ID); err != nil {
		t.Errorf("untrashed note must survive: %v", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s, err := f.repo.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if s.TrashRetentionDays != core.DefaultTrashRetentionDays {
		t.Errorf("expected default retention, got %d", s.TrashRetentionDays)
	}

	s.TrashRetentionDays = 30
	s.ViewMode = "list"
	if _, err := f.repo.SaveSettings(ctx, s); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := f.repo.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if got.TrashRetentionDays != 30 || got.ViewMode != "list" {
		t.Errorf("settings not persisted: %+v", got)
	}

	s.TrashRetentionDays = 0
	if _, err := f.repo.SaveSettings(ctx, s); !core.IsValidation(err) {
		t.Errorf("expected ValidationError for zero retention, got %v", err)
	}
}
