package core

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestChangeType(t *testing.T) {
	t.Run("Text To Checklist Preserves Identity", func(t *testing.T) {
		b := &TextBlock{ID: "b1", Order: 3, Content: "buy milk"}
		converted, err := ChangeType(b, KindChecklist, false)
		if err != nil {
			t.Fatalf("ChangeType failed: %v", err)
		}
		cb, ok := converted.(*ChecklistBlock)
		if !ok {
			t.Fatalf("expected *ChecklistBlock, got %T", converted)
		}
		if cb.ID != "b1" || cb.Order != 3 || cb.Content != "buy milk" {
			t.Errorf("id/order/content not preserved: %+v", cb)
		}
		if cb.Checked {
			t.Error("fresh checklist must start unchecked")
		}
	})

	t.Run("Text To Toggle Starts Expanded And Empty", func(t *testing.T) {
		converted, err := ChangeType(&TextBlock{ID: "b1", Content: "group"}, KindToggle, false)
		if err != nil {
			t.Fatalf("ChangeType failed: %v", err)
		}
		tb := converted.(*ToggleBlock)
		if !tb.Expanded {
			t.Error("fresh toggle must start expanded")
		}
		if tb.Children == nil || len(tb.Children) != 0 {
			t.Error("fresh toggle must have an empty (non-nil) children list")
		}
	})

	t.Run("Toggle With Children Requires Explicit Discard", func(t *testing.T) {
		tb := &ToggleBlock{ID: "t1", Children: BlockList{NewTextBlock(0)}}

		if _, err := ChangeType(tb, KindText, false); !IsValidation(err) {
			t.Errorf("expected ValidationError without discardChildren, got %v", err)
		}

		converted, err := ChangeType(tb, KindText, true)
		if err != nil {
			t.Fatalf("ChangeType with discardChildren failed: %v", err)
		}
		if converted.Kind() != KindText {
			t.Errorf("expected text block, got %s", converted.Kind())
		}
	})

	t.Run("Same Kind Is A No-Op", func(t *testing.T) {
		b := &TextBlock{ID: "b1"}
		converted, err := ChangeType(b, KindText, false)
		if err != nil {
			t.Fatalf("ChangeType failed: %v", err)
		}
		if converted != Block(b) {
			t.Error("expected the same block back")
		}
	})
}

func TestDuplicate(t *testing.T) {
	t.Run("Fresh IDs Throughout And Midpoint Order", func(t *testing.T) {
		child := &ChecklistBlock{ID: "c1", Order: 0, Content: "step", Checked: true}
		tb := &ToggleBlock{ID: "t1", Order: 2, Content: "group", Expanded: true, Children: BlockList{child}}

		dup := Duplicate(tb)
		dtb, ok := dup.(*ToggleBlock)
		if !ok {
			t.Fatalf("expected *ToggleBlock, got %T", dup)
		}

		if dtb.ID == tb.ID {
			t.Error("duplicate kept the original id")
		}
		if dtb.Order != 2.5 {
			t.Errorf("expected order 2.5, got %v", dtb.Order)
		}
		if len(dtb.Children) != 1 {
			t.Fatalf("expected 1 child, got %d", len(dtb.Children))
		}
		dchild := dtb.Children[0].(*ChecklistBlock)
		if dchild.ID == child.ID {
			t.Error("descendant id was not reissued")
		}
		if dchild.Content != "step" || !dchild.Checked {
			t.Error("descendant content not cloned")
		}

		// The original is untouched.
		if tb.Children[0].Key() != "c1" {
			t.Error("duplicate mutated the original tree")
		}
	})
}

func TestValidateBlock(t *testing.T) {
	t.Run("Checklist Length Cap", func(t *testing.T) {
		b := &ChecklistBlock{ID: "c", Content: strings.Repeat("x", MaxChecklistLength+1)}
		if err := ValidateBlock(b); !IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("Text Length Cap", func(t *testing.T) {
		b := &TextBlock{ID: "t", Content: strings.Repeat("x", MaxTextLength+1)}
		if err := ValidateBlock(b); !IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("Nested Toggle Rejected", func(t *testing.T) {
		inner := &ToggleBlock{ID: "inner"}
		outer := &ToggleBlock{ID: "outer", Children: BlockList{inner}}
		if err := ValidateBlock(outer); !IsValidation(err) {
			t.Errorf("expected ValidationError for nested toggle, got %v", err)
		}
	})
}

func TestBlockListJSON(t *testing.T) {
	t.Run("Round Trip Reproduces The Tree", func(t *testing.T) {
		list := BlockList{
			&TextBlock{ID: "a", Order: 0, Content: "hello"},
			&ChecklistBlock{ID: "b", Order: 1, Content: "milk", Checked: true},
			&ToggleBlock{
				ID: "c", Order: 2, Content: "groceries", Expanded: false,
				Children: BlockList{
					&ChecklistBlock{ID: "d", Order: 0, Content: "eggs"},
					&TextBlock{ID: "e", Order: 1, Content: "fine print"},
				},
			},
		}

		data, err := json.Marshal(list)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}

		var back BlockList
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if !reflect.DeepEqual(list, back) {
			t.Errorf("round trip mismatch:\n got %#v\nwant %#v", back, list)
		}
	})

	t.Run("Unknown Type Fails", func(t *testing.T) {
		var back BlockList
		err := json.Unmarshal([]byte(`[{"type":"video","id":"x","order":0,"content":""}]`), &back)
		if err == nil {
			t.Error("expected error for unknown block type")
		}
	})
}
