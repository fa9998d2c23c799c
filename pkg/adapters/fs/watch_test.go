package fs

import (
	"context"
	"testing"
	"time"

	"github.com/notelet/notelet/pkg/core"
)

func collectEvents(events <-chan core.Event, window time.Duration) []core.Event {
	var out []core.Event
	deadline := time.After(window)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, e)
		case <-deadline:
			return out
		}
	}
}

func TestWatchEmitsOnPut(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, "notes/*")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := s.Put(ctx, core.CollectionNotes, "n1", []byte("{}")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got := collectEvents(events, 2*time.Second)
	if len(got) == 0 {
		t.Fatal("expected at least one event")
	}
	e := got[len(got)-1]
	if e.Collection != core.CollectionNotes || e.Key != "n1" {
		t.Errorf("event = %v, want notes/n1", e)
	}
}

func TestWatchDebouncesBursts(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, "notes/*")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// Rapid rewrites of the same key inside the debounce window.
	for i := 0; i < 5; i++ {
		if err := s.Put(ctx, core.CollectionNotes, "n1", []byte("{}")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	got := collectEvents(events, 2*time.Second)
	if len(got) == 0 {
		t.Fatal("expected at least one event")
	}
	// Without debouncing a burst of 5 atomic writes yields 10+ raw events.
	if len(got) > 3 {
		t.Errorf("expected coalesced events, got %d", len(got))
	}
}

func TestWatchFiltersByPattern(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, "labels/*")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := s.Put(ctx, core.CollectionNotes, "n1", []byte("{}")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Put(ctx, core.CollectionLabels, "l1", []byte("{}")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got := collectEvents(events, 2*time.Second)
	for _, e := range got {
		if e.Collection != core.CollectionLabels {
			t.Errorf("pattern leak: %v", e)
		}
	}
	if len(got) == 0 {
		t.Fatal("expected the label event")
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := s.Watch(ctx, "**")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	cancel()

	select {
	case _, ok := <-events:
		if ok {
			// Drain any event raced in before shutdown.
			for range events {
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events channel did not close after cancel")
	}
}

func TestWatchRejectsBadPattern(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := s.Watch(ctx, "notes/["); !core.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}
