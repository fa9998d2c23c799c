package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/notelet/notelet/pkg/core"
)

func TestSourceForwardsEvents(t *testing.T) {
	in := make(chan core.Event, 1)
	src := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := src.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	want := core.Event{Type: core.EventModify, Collection: core.CollectionNotes, Key: "n1"}
	in <- want

	select {
	case got := <-src.Events():
		e, ok := got.(core.Event)
		if !ok {
			t.Fatalf("expected core.Event, got %T", got)
		}
		if e.Key != want.Key || e.Collection != want.Collection {
			t.Fatalf("event mismatch: %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event forwarded")
	}
}

func TestSourceClosesOnInputClose(t *testing.T) {
	in := make(chan core.Event)
	src := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := src.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	close(in)

	select {
	case _, ok := <-src.Events():
		if ok {
			t.Fatal("expected closed output channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("output channel never closed")
	}
}
