// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (stacks, cards, popup overlay compositor)
//
// Not allowed here:
// - key handling, focus, or PIN state
package widgets

// Widget renders itself into a width x height cell area.
type Widget interface {
	Render(width, height int) string
}

// Text adapts a pre-rendered string to Widget.
type Text string

func (t Text) Render(width, height int) string { return string(t) }
