package core

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Color is the card color of a note.
type Color string

// The twelve card colors.
const (
	ColorDefault Color = "default"
	ColorRed     Color = "red"
	ColorOrange  Color = "orange"
	ColorYellow  Color = "yellow"
	ColorGreen   Color = "green"
	ColorTeal    Color = "teal"
	ColorBlue    Color = "blue"
	ColorDark    Color = "darkblue"
	ColorPurple  Color = "purple"
	ColorPink    Color = "pink"
	ColorBrown   Color = "brown"
	ColorGray    Color = "gray"
)

// Colors lists every valid card color.
func Colors() []Color {
	return []Color{
		ColorDefault, ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorTeal,
		ColorBlue, ColorDark, ColorPurple, ColorPink, ColorBrown, ColorGray,
	}
}

// Valid reports whether c is one of the twelve card colors.
func (c Color) Valid() bool {
	for _, v := range Colors() {
		if c == v {
			return true
		}
	}
	return false
}

// SyncStatus tracks whether a note's latest state has reached the remote.
type SyncStatus string

const (
	SyncSynced   SyncStatus = "synced"
	SyncPending  SyncStatus = "pending"
	SyncConflict SyncStatus = "conflict"
)

// Collaborator is the data shape of a sharing entry. The collaboration
// feature itself is out of scope; only the shape is persisted.
type Collaborator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Note aggregates a block tree with card metadata. A note owns its blocks
// exclusively; labels are referenced by id.
type Note struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Color         Color          `json:"color"`
	Blocks        BlockList      `json:"blocks"`
	Labels        []string       `json:"labels,omitempty"`
	Pinned        bool           `json:"pinned"`
	Archived      bool           `json:"archived"`
	Trashed       bool           `json:"trashed"`
	TrashedAt     *time.Time     `json:"trashedAt,omitempty"`
	Reminder      *time.Time     `json:"reminder,omitempty"`
	Collaborators []Collaborator `json:"collaborators,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Order         float64        `json:"order"`
	SyncStatus    SyncStatus     `json:"syncStatus"`
}

func (n *Note) Key() string           { return n.ID }
func (n *Note) OrderKey() float64     { return n.Order }
func (n *Note) SetOrderKey(v float64) { n.Order = v }

// NewNote creates an empty note at the given board order. The editor never
// presents zero blocks, so a fresh note starts with one empty text block.
func NewNote(order float64, now time.Time) *Note {
	return &Note{
		ID:         uuid.NewString(),
		Color:      ColorDefault,
		Blocks:     BlockList{NewTextBlock(0)},
		CreatedAt:  now,
		UpdatedAt:  now,
		Order:      order,
		SyncStatus: SyncSynced,
	}
}

// Touch refreshes the modification timestamp and recomputes the sync status
// from the connectivity state. Every repository mutation funnels through it.
func (n *Note) Touch(now time.Time, online bool) {
	n.UpdatedAt = now
	if online {
		n.SyncStatus = SyncSynced
	} else {
		n.SyncStatus = SyncPending
	}
}

// Validate checks the note-level invariants: color, block count ceiling and
// per-block content rules.
func (n *Note) Validate() error {
	if n.Color != "" && !n.Color.Valid() {
		return Validation("color", fmt.Sprintf("unknown color %q", n.Color))
	}
	if len(n.Blocks) > MaxBlocksPerNote {
		return Validation("blocks", fmt.Sprintf("a note holds at most %d top-level blocks", MaxBlocksPerNote))
	}
	for _, b := range n.Blocks {
		if err := ValidateBlock(b); err != nil {
			return err
		}
	}
	return nil
}

// ensureSeed re-establishes the "never zero blocks" invariant.
func (n *Note) ensureSeed() {
	if len(n.Blocks) == 0 {
		n.Blocks = BlockList{NewTextBlock(0)}
	}
}

// renumber renumbers the top-level siblings and every toggle's children.
func (n *Note) renumber() {
	n.Blocks = BlockList(Renumber([]Block(n.Blocks)))
	for _, b := range n.Blocks {
		if tb, ok := b.(*ToggleBlock); ok {
			tb.Children = BlockList(Renumber([]Block(tb.Children)))
		}
	}
}

// findSiblings locates the sibling list containing id: the top-level list or
// one toggle's children. Returns the owning toggle (nil for top level).
func (n *Note) findSiblings(id string) (*ToggleBlock, BlockList, bool) {
	if n.Blocks.Find(id) != nil {
		return nil, n.Blocks, true
	}
	for _, b := range n.Blocks {
		if tb, ok := b.(*ToggleBlock); ok && tb.Children.Find(id) != nil {
			return tb, tb.Children, true
		}
	}
	return nil, nil, false
}

// Block returns the block with the given id, searching toggle children too.
func (n *Note) Block(id string) (Block, error) {
	_, siblings, ok := n.findSiblings(id)
	if !ok {
		return nil, fmt.Errorf("block %s: %w", id, ErrNotFound)
	}
	return siblings.Find(id), nil
}

// InsertBlockAfter creates a new block of the given kind right after the
// anchor sibling. A missing anchor falls back to append-at-end instead of
// failing: the user gesture "add a block" should survive a stale anchor.
func (n *Note) InsertBlockAfter(kind BlockKind, anchorID string) (Block, error) {
	if len(n.Blocks) >= MaxBlocksPerNote {
		return nil, Validation("blocks", fmt.Sprintf("a note holds at most %d top-level blocks", MaxBlocksPerNote))
	}

	order, err := InsertAfter([]Block(n.Blocks), anchorID)
	if errors.Is(err, ErrAnchorNotFound) {
		order = AppendOrder([]Block(n.Blocks))
	} else if err != nil {
		return nil, err
	}

	b, err := NewBlock(kind, order)
	if err != nil {
		return nil, err
	}
	n.Blocks = append(n.Blocks, b)
	n.renumber()
	return b, nil
}

// InsertChildAfter inserts a new child block inside a toggle. Toggles cannot
// nest, so the child kind must be text or checklist.
func (n *Note) InsertChildAfter(toggleID string, kind BlockKind, anchorID string) (Block, error) {
	if kind == KindToggle {
		return nil, Validation("children", "toggle blocks cannot be nested inside a toggle")
	}
	parent, err := n.Block(toggleID)
	if err != nil {
		return nil, err
	}
	tb, ok := parent.(*ToggleBlock)
	if !ok {
		return nil, Validation("block", fmt.Sprintf("block %s is not a toggle", toggleID))
	}

	order, err := InsertAfter([]Block(tb.Children), anchorID)
	if errors.Is(err, ErrAnchorNotFound) {
		order = AppendOrder([]Block(tb.Children))
	} else if err != nil {
		return nil, err
	}

	b, err := NewBlock(kind, order)
	if err != nil {
		return nil, err
	}
	tb.Children = append(tb.Children, b)
	n.renumber()
	return b, nil
}

// MoveBlock drags the block to targetIndex within its own sibling list.
func (n *Note) MoveBlock(id string, targetIndex int) error {
	parent, _, ok := n.findSiblings(id)
	if !ok {
		return fmt.Errorf("block %s: %w", id, ErrNotFound)
	}
	if parent == nil {
		moved, err := Move([]Block(n.Blocks), id, targetIndex)
		if err != nil {
			return err
		}
		n.Blocks = BlockList(moved)
		return nil
	}
	moved, err := Move([]Block(parent.Children), id, targetIndex)
	if err != nil {
		return err
	}
	parent.Children = BlockList(moved)
	return nil
}

// RemoveBlock deletes a block. Deleting the last top-level block re-seeds a
// single empty text block so the editor never faces an empty note.
func (n *Note) RemoveBlock(id string) error {
	parent, _, ok := n.findSiblings(id)
	if !ok {
		return fmt.Errorf("block %s: %w", id, ErrNotFound)
	}
	if parent == nil {
		rest, err := n.Blocks.Remove(id)
		if err != nil {
			return err
		}
		n.Blocks = rest
		n.ensureSeed()
	} else {
		rest, err := parent.Children.Remove(id)
		if err != nil {
			return err
		}
		parent.Children = rest
	}
	n.renumber()
	return nil
}

// DuplicateBlock deep-clones a block (fresh ids throughout) next to the
// original and renumbers.
func (n *Note) DuplicateBlock(id string) (Block, error) {
	parent, siblings, ok := n.findSiblings(id)
	if !ok {
		return nil, fmt.Errorf("block %s: %w", id, ErrNotFound)
	}
	if parent == nil && len(n.Blocks) >= MaxBlocksPerNote {
		return nil, Validation("blocks", fmt.Sprintf("a note holds at most %d top-level blocks", MaxBlocksPerNote))
	}

	dup := Duplicate(siblings.Find(id))
	if parent == nil {
		n.Blocks = append(n.Blocks, dup)
	} else {
		parent.Children = append(parent.Children, dup)
	}
	n.renumber()
	return dup, nil
}

// ChangeBlockType converts a block in place. See ChangeType for the
// discardChildren contract.
func (n *Note) ChangeBlockType(id string, kind BlockKind, discardChildren bool) (Block, error) {
	parent, siblings, ok := n.findSiblings(id)
	if !ok {
		return nil, fmt.Errorf("block %s: %w", id, ErrNotFound)
	}
	if parent != nil && kind == KindToggle {
		return nil, Validation("children", "toggle blocks cannot be nested inside a toggle")
	}

	converted, err := ChangeType(siblings.Find(id), kind, discardChildren)
	if err != nil {
		return nil, err
	}
	for i, b := range siblings {
		if b.Key() == id {
			siblings[i] = converted
			break
		}
	}
	return converted, nil
}

// SetBlockText replaces a block's content, enforcing the length limits.
func (n *Note) SetBlockText(id, content string) error {
	b, err := n.Block(id)
	if err != nil {
		return err
	}
	probe := b.Clone()
	probe.SetText(content)
	if err := ValidateBlock(probe); err != nil {
		return err
	}
	b.SetText(content)
	return nil
}

// SetChecked toggles a checklist item.
func (n *Note) SetChecked(id string, checked bool) error {
	b, err := n.Block(id)
	if err != nil {
		return err
	}
	cb, ok := b.(*ChecklistBlock)
	if !ok {
		return Validation("block", fmt.Sprintf("block %s is not a checklist item", id))
	}
	cb.Checked = checked
	return nil
}

// PlainText concatenates the content of all text and checklist blocks,
// including toggle children, in render order. The search index tokenizes it.
func (n *Note) PlainText() string {
	var out []byte
	appendLine := func(s string) {
		if s == "" {
			return
		}
		if len(out) > 0 {
			out = append(out, '\n')
		}
		out = append(out, s...)
	}
	for _, b := range n.Blocks {
		appendLine(b.Text())
		if tb, ok := b.(*ToggleBlock); ok {
			for _, child := range tb.Children {
				appendLine(child.Text())
			}
		}
	}
	return string(out)
}

// HasLabel reports whether the note references the label id.
func (n *Note) HasLabel(labelID string) bool {
	for _, id := range n.Labels {
		if id == labelID {
			return true
		}
	}
	return false
}

// AddLabel attaches a label reference, keeping the set sorted and unique.
func (n *Note) AddLabel(labelID string) {
	if n.HasLabel(labelID) {
		return
	}
	n.Labels = append(n.Labels, labelID)
	sort.Strings(n.Labels)
}

// RemoveLabel detaches a label reference.
func (n *Note) RemoveLabel(labelID string) {
	for i, id := range n.Labels {
		if id == labelID {
			n.Labels = append(n.Labels[:i], n.Labels[i+1:]...)
			return
		}
	}
}

// Archive moves the note off the main board. Archiving clears the pin.
func (n *Note) Archive() {
	n.Archived = true
	n.Pinned = false
}

// Unarchive returns the note to the main board.
func (n *Note) Unarchive() {
	n.Archived = false
}

// MoveToTrash soft-deletes the note. Trashing clears the pin.
func (n *Note) MoveToTrash(now time.Time) {
	n.Trashed = true
	n.TrashedAt = &now
	n.Pinned = false
}

// RestoreFromTrash undoes a soft delete.
func (n *Note) RestoreFromTrash() {
	n.Trashed = false
	n.TrashedAt = nil
}
