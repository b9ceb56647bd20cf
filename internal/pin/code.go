package pin

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// MaxLength bounds the number of slots a code can have.
const MaxLength = 12

// ErrInvalidLength is returned by New for lengths outside [1, MaxLength].
var ErrInvalidLength = errors.New("invalid pin length")

// FocusMode controls which slots may hold focus.
type FocusMode int

const (
	// FocusTarget pins focus to the first empty slot (or the last slot once full).
	FocusTarget FocusMode = iota
	// FocusFree lets focus move to any slot up to the target.
	FocusFree
)

func (m FocusMode) String() string {
	switch m {
	case FocusFree:
		return "free"
	default:
		return "target"
	}
}

// ParseFocusMode maps a config value onto a FocusMode.
func ParseFocusMode(s string) (FocusMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "target":
		return FocusTarget, nil
	case "free":
		return FocusFree, nil
	default:
		return FocusTarget, fmt.Errorf("unknown focus mode %q", s)
	}
}

// Outcome describes what an edit did and what the surrounding UI should do next.
type Outcome struct {
	Changed  bool // a slot value changed
	Moved    bool // focus index changed
	Complete bool // every slot is filled after the edit
	Dismiss  bool // focus should leave the field
	Reveal   bool // the input surface should be shown
}

// Code is a fixed-length sequence of optional digits plus a focus index.
type Code struct {
	slots []rune
	focus int
	mode  FocusMode
}

type Option func(*Code)

// WithFocusMode selects the focus policy.
func WithFocusMode(mode FocusMode) Option {
	return func(c *Code) { c.mode = mode }
}

func New(length int, opts ...Option) (*Code, error) {
	if length < 1 || length > MaxLength {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	c := &Code{slots: make([]rune, length)}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Code) Len() int        { return len(c.slots) }
func (c *Code) Focus() int      { return c.focus }
func (c *Code) Mode() FocusMode { return c.mode }

// At returns the digit in slot i and whether the slot is filled.
func (c *Code) At(i int) (rune, bool) {
	if i < 0 || i >= len(c.slots) {
		return 0, false
	}
	r := c.slots[i]
	return r, r != 0
}

// Slots returns a copy of the slot values; empty slots are 0.
func (c *Code) Slots() []rune {
	out := make([]rune, len(c.slots))
	copy(out, c.slots)
	return out
}

// String joins the filled digits in slot order.
func (c *Code) String() string {
	var b strings.Builder
	b.Grow(len(c.slots))
	for _, r := range c.slots {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (c *Code) Filled() int {
	n := 0
	for _, r := range c.slots {
		if r != 0 {
			n++
		}
	}
	return n
}

func (c *Code) Complete() bool { return c.Filled() == len(c.slots) }
func (c *Code) Empty() bool    { return c.Filled() == 0 }

// FirstEmpty returns the index of the first empty slot, or -1.
func (c *Code) FirstEmpty() int {
	for i, r := range c.slots {
		if r == 0 {
			return i
		}
	}
	return -1
}

// LastFilled returns the index of the last filled slot, or -1.
func (c *Code) LastFilled() int {
	for i := len(c.slots) - 1; i >= 0; i-- {
		if c.slots[i] != 0 {
			return i
		}
	}
	return -1
}

// Target is the slot that accepts the next digit: the first empty one, or the
// last slot once the code is full.
func (c *Code) Target() int {
	if i := c.FirstEmpty(); i >= 0 {
		return i
	}
	return len(c.slots) - 1
}

// Focusable reports whether slot i may currently take focus.
func (c *Code) Focusable(i int) bool {
	if i < 0 || i >= len(c.slots) {
		return false
	}
	if c.mode == FocusFree {
		return i <= c.Target()
	}
	return i == c.Target()
}

// Type writes digit r into the focused slot and advances focus.
func (c *Code) Type(r rune) Outcome {
	if !isDigit(r) {
		return Outcome{}
	}
	before := c.focus
	c.slots[c.focus] = r
	out := Outcome{Changed: true}

	switch {
	case c.mode == FocusTarget:
		c.focus = c.Target()
	case c.focus < len(c.slots)-1:
		c.focus++
	default:
		c.focus = c.Target()
	}

	if c.Complete() {
		c.focus = len(c.slots) - 1
		out.Complete = true
		out.Dismiss = true
	}
	out.Moved = c.focus != before
	return out
}

// Backspace clears the focused slot when it holds a digit; otherwise it clears
// the previous slot and moves focus there.
func (c *Code) Backspace() Outcome {
	before := c.focus
	if c.slots[c.focus] != 0 {
		c.slots[c.focus] = 0
		c.settle()
		return Outcome{Changed: true, Moved: c.focus != before}
	}
	if c.focus == 0 {
		return Outcome{}
	}
	c.slots[c.focus-1] = 0
	c.focus--
	c.settle()
	return Outcome{Changed: true, Moved: c.focus != before}
}

// Paste distributes the digits of s. A paste holding at least Len digits
// replaces the whole code; shorter pastes fill empty slots in order.
func (c *Code) Paste(s string) Outcome {
	digits := Digits(s)
	if len(digits) == 0 {
		return Outcome{}
	}
	before := c.focus
	prev := c.Slots()

	if len(digits) >= len(c.slots) {
		copy(c.slots, digits[:len(c.slots)])
	} else {
		next := 0
		for i := range c.slots {
			if next >= len(digits) {
				break
			}
			if c.slots[i] == 0 {
				c.slots[i] = digits[next]
				next++
			}
		}
	}

	c.focus = c.Target()
	out := Outcome{Changed: !slices.Equal(prev, c.slots), Moved: c.focus != before}
	if c.Complete() {
		out.Complete = true
		out.Dismiss = true
	} else {
		out.Reveal = true
	}
	return out
}

// Input treats value as the new content of the focused slot: empty deletes,
// a single digit types, several digits paste.
func (c *Code) Input(value string) Outcome {
	if value == "" {
		return c.Backspace()
	}
	digits := Digits(value)
	switch len(digits) {
	case 0:
		return Outcome{}
	case 1:
		return c.Type(digits[0])
	default:
		return c.Paste(value)
	}
}

// Activate handles a click on slot i.
func (c *Code) Activate(i int) Outcome {
	before := c.focus
	target := c.Target()
	if c.mode == FocusFree && i >= 0 && i < target {
		c.focus = i
	} else {
		c.focus = target
	}
	return Outcome{Moved: c.focus != before, Reveal: true}
}

func (c *Code) Left() Outcome {
	if c.mode != FocusFree || c.focus == 0 {
		return Outcome{}
	}
	c.focus--
	return Outcome{Moved: true}
}

func (c *Code) Right() Outcome {
	if c.mode != FocusFree || c.focus >= c.Target() {
		return Outcome{}
	}
	c.focus++
	return Outcome{Moved: true}
}

// Next is the keyboard "next" action.
func (c *Code) Next() Outcome {
	if c.mode != FocusFree {
		return Outcome{}
	}
	return c.Right()
}

// Done is the keyboard "done" action.
func (c *Code) Done() Outcome {
	return Outcome{Complete: c.Complete(), Dismiss: true}
}

func (c *Code) Reset() Outcome {
	changed := !c.Empty()
	moved := c.focus != 0
	for i := range c.slots {
		c.slots[i] = 0
	}
	c.focus = 0
	return Outcome{Changed: changed, Moved: moved}
}

// Clone returns an independent copy, safe to hand to another goroutine.
func (c *Code) Clone() *Code {
	cp := *c
	cp.slots = slices.Clone(c.slots)
	return &cp
}

// settle keeps focus on the target when the mode requires it.
func (c *Code) settle() {
	if c.mode == FocusTarget {
		c.focus = c.Target()
		return
	}
	if t := c.Target(); c.focus > t {
		c.focus = t
	}
}

// Digits returns the ASCII digits of s in order.
func Digits(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if isDigit(r) {
			out = append(out, r)
		}
	}
	return out
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
