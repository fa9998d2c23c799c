package core

import (
	"errors"
	"math/rand"
	"testing"
)

func textSiblings(n int) []Block {
	out := make([]Block, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewTextBlock(float64(i)))
	}
	return out
}

func assertSequential(t *testing.T, siblings []Block) {
	t.Helper()
	for i, s := range siblings {
		if s.OrderKey() != float64(i) {
			t.Errorf("position %d has order %v, want %d", i, s.OrderKey(), i)
		}
	}
}

func TestInsertAfter(t *testing.T) {
	t.Run("Empty List Yields Zero", func(t *testing.T) {
		order, err := InsertAfter([]Block{}, "")
		if err != nil {
			t.Fatalf("InsertAfter failed: %v", err)
		}
		if order != 0 {
			t.Errorf("expected order 0, got %v", order)
		}
	})

	t.Run("Midpoint After Anchor", func(t *testing.T) {
		siblings := textSiblings(3)
		order, err := InsertAfter(siblings, siblings[1].Key())
		if err != nil {
			t.Fatalf("InsertAfter failed: %v", err)
		}
		if order != 1.5 {
			t.Errorf("expected order 1.5, got %v", order)
		}
	})

	t.Run("Unknown Anchor Signals ErrAnchorNotFound", func(t *testing.T) {
		siblings := textSiblings(2)
		_, err := InsertAfter(siblings, "missing")
		if !errors.Is(err, ErrAnchorNotFound) {
			t.Errorf("expected ErrAnchorNotFound, got %v", err)
		}
	})
}

func TestRenumber(t *testing.T) {
	t.Run("Strictly Increasing Integers After Random Mutations", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		siblings := textSiblings(10)

		for i := 0; i < 50; i++ {
			switch rng.Intn(3) {
			case 0: // insert after a random anchor
				anchor := siblings[rng.Intn(len(siblings))].Key()
				order, err := InsertAfter(siblings, anchor)
				if err != nil {
					t.Fatalf("InsertAfter failed: %v", err)
				}
				siblings = append(siblings, NewTextBlock(order))
			case 1: // move
				id := siblings[rng.Intn(len(siblings))].Key()
				var err error
				siblings, err = Move(siblings, id, rng.Intn(len(siblings)+1))
				if err != nil {
					t.Fatalf("Move failed: %v", err)
				}
			case 2: // delete (keep at least one)
				if len(siblings) > 1 {
					idx := rng.Intn(len(siblings))
					siblings = append(siblings[:idx], siblings[idx+1:]...)
				}
			}
			siblings = Renumber(siblings)
			assertSequential(t, siblings)

			seen := make(map[string]bool)
			for _, s := range siblings {
				if seen[s.Key()] {
					t.Fatalf("duplicate sibling id %s", s.Key())
				}
				seen[s.Key()] = true
			}
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		siblings := textSiblings(5)
		siblings[2].SetOrderKey(2.5)

		first := Renumber(siblings)
		order := make([]string, len(first))
		for i, s := range first {
			order[i] = s.Key()
		}

		second := Renumber(first)
		for i, s := range second {
			if s.Key() != order[i] {
				t.Errorf("position %d changed between renumbers", i)
			}
		}
		assertSequential(t, second)
	})

	t.Run("Ties Keep Prior Array Position", func(t *testing.T) {
		a := NewTextBlock(1)
		b := NewTextBlock(1)
		c := NewTextBlock(0)
		out := Renumber([]Block{a, b, c})
		if out[0] != Block(c) || out[1] != Block(a) || out[2] != Block(b) {
			t.Error("stable sort violated for equal order keys")
		}
	})
}

func TestMove(t *testing.T) {
	t.Run("Moves And Renumbers", func(t *testing.T) {
		siblings := textSiblings(4)
		last := siblings[3].Key()

		out, err := Move(siblings, last, 0)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if out[0].Key() != last {
			t.Errorf("expected %s at front", last)
		}
		assertSequential(t, out)
	})

	t.Run("Target Index Is Clamped", func(t *testing.T) {
		siblings := textSiblings(3)
		first := siblings[0].Key()

		out, err := Move(siblings, first, 99)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if out[len(out)-1].Key() != first {
			t.Error("expected clamped move to place item at end")
		}
	})

	t.Run("Unknown Item Signals ErrNotFound", func(t *testing.T) {
		siblings := textSiblings(2)
		if _, err := Move(siblings, "missing", 0); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
