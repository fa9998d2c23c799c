package core

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// BlockKind discriminates the content block variants.
type BlockKind string

const (
	KindText      BlockKind = "text"
	KindChecklist BlockKind = "checklist"
	KindToggle    BlockKind = "toggle"
)

// Content limits. Taken from the stricter of the two editor variants;
// enforced at the Note boundary for the block count, here for text lengths.
const (
	MaxBlocksPerNote   = 25
	MaxChecklistLength = 500
	MaxTextLength      = 10000
)

// Block is a single unit of note content. It is a closed tagged union:
// TextBlock, ChecklistBlock and ToggleBlock are the only variants, so each
// carries only the fields valid for its kind.
type Block interface {
	Ordered

	// Kind returns the variant tag.
	Kind() BlockKind

	// Text returns the block's content string.
	Text() string

	// SetText replaces the block's content string.
	SetText(s string)

	// Clone returns a deep copy of the block, preserving all ids.
	Clone() Block
}

// TextBlock is a plain line of text.
type TextBlock struct {
	ID      string
	Order   float64
	Content string
}

// ChecklistBlock is a line of text with a checkbox.
type ChecklistBlock struct {
	ID      string
	Order   float64
	Content string
	Checked bool
}

// ToggleBlock is a collapsible group holding its own ordered sibling list.
type ToggleBlock struct {
	ID       string
	Order    float64
	Content  string
	Expanded bool
	Children BlockList
}

// NewTextBlock creates an empty text block at the given order key.
func NewTextBlock(order float64) *TextBlock {
	return &TextBlock{ID: uuid.NewString(), Order: order}
}

func (b *TextBlock) Key() string           { return b.ID }
func (b *TextBlock) OrderKey() float64     { return b.Order }
func (b *TextBlock) SetOrderKey(v float64) { b.Order = v }
func (b *TextBlock) Kind() BlockKind       { return KindText }
func (b *TextBlock) Text() string          { return b.Content }
func (b *TextBlock) SetText(s string)      { b.Content = s }

func (b *TextBlock) Clone() Block {
	c := *b
	return &c
}

func (b *ChecklistBlock) Key() string           { return b.ID }
func (b *ChecklistBlock) OrderKey() float64     { return b.Order }
func (b *ChecklistBlock) SetOrderKey(v float64) { b.Order = v }
func (b *ChecklistBlock) Kind() BlockKind       { return KindChecklist }
func (b *ChecklistBlock) Text() string          { return b.Content }
func (b *ChecklistBlock) SetText(s string)      { b.Content = s }

func (b *ChecklistBlock) Clone() Block {
	c := *b
	return &c
}

func (b *ToggleBlock) Key() string           { return b.ID }
func (b *ToggleBlock) OrderKey() float64     { return b.Order }
func (b *ToggleBlock) SetOrderKey(v float64) { b.Order = v }
func (b *ToggleBlock) Kind() BlockKind       { return KindToggle }
func (b *ToggleBlock) Text() string          { return b.Content }
func (b *ToggleBlock) SetText(s string)      { b.Content = s }

func (b *ToggleBlock) Clone() Block {
	c := *b
	c.Children = make(BlockList, len(b.Children))
	for i, child := range b.Children {
		c.Children[i] = child.Clone()
	}
	return &c
}

// NewBlock creates an empty block of the given kind at the given order key.
func NewBlock(kind BlockKind, order float64) (Block, error) {
	id := uuid.NewString()
	switch kind {
	case KindText:
		return &TextBlock{ID: id, Order: order}, nil
	case KindChecklist:
		return &ChecklistBlock{ID: id, Order: order}, nil
	case KindToggle:
		return &ToggleBlock{ID: id, Order: order, Expanded: true, Children: BlockList{}}, nil
	default:
		return nil, Validation("block", fmt.Sprintf("unknown block kind %q", kind))
	}
}

// ChangeType converts a block to another kind, preserving its id, order key
// and content string. A checklist starts unchecked; a toggle starts expanded
// and empty. Converting a toggle with children to any other kind discards
// the children irreversibly, so it must be requested explicitly via
// discardChildren — otherwise the conversion fails with a ValidationError.
func ChangeType(b Block, kind BlockKind, discardChildren bool) (Block, error) {
	if b.Kind() == kind {
		return b, nil
	}
	if tb, ok := b.(*ToggleBlock); ok && len(tb.Children) > 0 && !discardChildren {
		return nil, Validation("block", "converting a toggle with children discards them; pass discardChildren")
	}

	switch kind {
	case KindText:
		return &TextBlock{ID: b.Key(), Order: b.OrderKey(), Content: b.Text()}, nil
	case KindChecklist:
		return &ChecklistBlock{ID: b.Key(), Order: b.OrderKey(), Content: b.Text()}, nil
	case KindToggle:
		return &ToggleBlock{ID: b.Key(), Order: b.OrderKey(), Content: b.Text(), Expanded: true, Children: BlockList{}}, nil
	default:
		return nil, Validation("block", fmt.Sprintf("unknown block kind %q", kind))
	}
}

// Duplicate deep-clones a block with fresh ids throughout (descendants
// included) and an order key of original+0.5, placing the copy right after
// the original until the caller renumbers.
func Duplicate(b Block) Block {
	c := b.Clone()
	reissueIDs(c)
	c.SetOrderKey(b.OrderKey() + 0.5)
	return c
}

func reissueIDs(b Block) {
	switch v := b.(type) {
	case *TextBlock:
		v.ID = uuid.NewString()
	case *ChecklistBlock:
		v.ID = uuid.NewString()
	case *ToggleBlock:
		v.ID = uuid.NewString()
		for _, child := range v.Children {
			reissueIDs(child)
		}
	}
}

// ValidateBlock checks the per-variant content rules. Toggle children are
// validated recursively; nesting a toggle inside a toggle exceeds the
// supported depth of one and is rejected.
func ValidateBlock(b Block) error {
	switch v := b.(type) {
	case *TextBlock:
		if len(v.Content) > MaxTextLength {
			return Validation("content", fmt.Sprintf("text block exceeds %d characters", MaxTextLength))
		}
	case *ChecklistBlock:
		if len(v.Content) > MaxChecklistLength {
			return Validation("content", fmt.Sprintf("checklist item exceeds %d characters", MaxChecklistLength))
		}
	case *ToggleBlock:
		if len(v.Content) > MaxTextLength {
			return Validation("content", fmt.Sprintf("toggle title exceeds %d characters", MaxTextLength))
		}
		for _, child := range v.Children {
			if child.Kind() == KindToggle {
				return Validation("children", "toggle blocks cannot be nested inside a toggle")
			}
			if err := ValidateBlock(child); err != nil {
				return err
			}
		}
	}
	return nil
}

// BlockList is an ordered sibling list. It owns the JSON envelope encoding
// so that the tagged union survives a round trip intact.
type BlockList []Block

// Remove deletes the block with the given id from the list.
// Returns ErrNotFound if the id is not a direct sibling.
func (l BlockList) Remove(id string) (BlockList, error) {
	for i, b := range l {
		if b.Key() == id {
			out := append(append(BlockList{}, l[:i]...), l[i+1:]...)
			return out, nil
		}
	}
	return l, ErrNotFound
}

// Find returns the block with the given id, or nil.
func (l BlockList) Find(id string) Block {
	for _, b := range l {
		if b.Key() == id {
			return b
		}
	}
	return nil
}

// blockEnvelope is the wire shape of a single block. Variant-specific fields
// are always written for the owning kind so round trips are lossless.
type blockEnvelope struct {
	Type     BlockKind `json:"type"`
	ID       string    `json:"id"`
	Order    float64   `json:"order"`
	Content  string    `json:"content"`
	Checked  *bool     `json:"checked,omitempty"`
	Expanded *bool     `json:"expanded,omitempty"`
	Children BlockList `json:"children,omitempty"`
}

// MarshalJSON encodes each block as a tagged envelope.
func (l BlockList) MarshalJSON() ([]byte, error) {
	envs := make([]blockEnvelope, 0, len(l))
	for _, b := range l {
		env := blockEnvelope{
			Type:    b.Kind(),
			ID:      b.Key(),
			Order:   b.OrderKey(),
			Content: b.Text(),
		}
		switch v := b.(type) {
		case *ChecklistBlock:
			checked := v.Checked
			env.Checked = &checked
		case *ToggleBlock:
			expanded := v.Expanded
			env.Expanded = &expanded
			env.Children = v.Children
		}
		envs = append(envs, env)
	}
	return json.Marshal(envs)
}

// UnmarshalJSON decodes the tagged envelopes back into concrete variants.
func (l *BlockList) UnmarshalJSON(data []byte) error {
	var envs []blockEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return err
	}

	out := make(BlockList, 0, len(envs))
	for _, env := range envs {
		switch env.Type {
		case KindText:
			out = append(out, &TextBlock{ID: env.ID, Order: env.Order, Content: env.Content})
		case KindChecklist:
			b := &ChecklistBlock{ID: env.ID, Order: env.Order, Content: env.Content}
			if env.Checked != nil {
				b.Checked = *env.Checked
			}
			out = append(out, b)
		case KindToggle:
			b := &ToggleBlock{ID: env.ID, Order: env.Order, Content: env.Content, Children: env.Children}
			if env.Expanded != nil {
				b.Expanded = *env.Expanded
			}
			if b.Children == nil {
				b.Children = BlockList{}
			}
			out = append(out, b)
		default:
			return fmt.Errorf("unknown block type %q", env.Type)
		}
	}
	*l = out
	return nil
}
