// Package toolbar renders the one-line top bar of the PIN screen: a leading
// item, a centered title and trailing items, with an optional divider.
package toolbar

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/pinpad/internal/ui/theme"
)

// DefaultSectionWidth is the cell width reserved for the leading item.
const DefaultSectionWidth = 4

// endPad is the blank cell kept after the last trailing item.
const endPad = 1

var (
	titleStyle   = theme.Title
	itemStyle    = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	dividerStyle = lipgloss.NewStyle().Foreground(theme.Border)
)

// Item is a clickable glyph. Key identifies the action the screen runs when
// the item is hit.
type Item struct {
	Glyph string
	Label string
	Key   string
}

// cells is the glyph plus its one-cell start padding.
func (it Item) cells() int { return 1 + ansi.StringWidth(it.Glyph) }

type Toolbar struct {
	Title    string
	Leading  *Item
	Trailing []Item
	Divider  bool
	Layout   Layout
	// SectionWidth overrides DefaultSectionWidth when positive.
	SectionWidth int
}

type span struct {
	start int
	width int
	text  string
	style lipgloss.Style
	item  *Item
}

func (t Toolbar) sectionWidth() int {
	if t.SectionWidth > 0 {
		return t.SectionWidth
	}
	return DefaultSectionWidth
}

// Height is the number of lines Render produces.
func (t Toolbar) Height() int {
	if t.Divider {
		return 2
	}
	return 1
}

func (t Toolbar) leadCells() int {
	if t.Leading == nil {
		return 0
	}
	return t.Leading.cells()
}

func trailCells(items []Item) int {
	w := endPad
	for _, it := range items {
		w += it.cells()
	}
	return w
}

// visibleTrailing keeps trailing items in order while they fit between the
// leading item and the right edge. Items that do not fit are dropped from
// the right.
func (t Toolbar) visibleTrailing(width int) []Item {
	room := width - t.leadCells()
	used := endPad
	for i, it := range t.Trailing {
		used += it.cells()
		if used > room {
			return t.Trailing[:i]
		}
	}
	return t.Trailing
}

type align int

const (
	alignCenter align = iota
	alignStart
	alignEnd
)

// titleBounds returns the [lo, hi) cell range the title may occupy and how
// it is aligned in it. trail is the width of the visible trailing section.
func (t Toolbar) titleBounds(width, trail int) (lo, hi int, a align) {
	lead := t.leadCells()
	switch t.Layout {
	case LayoutSymmetric:
		side := max(t.sectionWidth(), lead, trail)
		return side, width - side, alignCenter
	case LayoutMeasured:
		return max(lead, trail), width - trail, alignEnd
	case LayoutOverlay:
		if lead > 0 {
			lead++
		}
		return lead, width - trail, alignCenter
	case LayoutStart:
		return max(t.sectionWidth(), lead), width - trail, alignStart
	default:
		return max(t.sectionWidth(), lead), width - trail, alignCenter
	}
}

// titleStart places a title of tw cells. Overlay centers on the full width
// and only shifts the title when it would run into an item.
func (t Toolbar) titleStart(width, lo, hi, tw int, a align) int {
	switch {
	case t.Layout == LayoutOverlay:
		return min(max((width-tw)/2, lo), hi-tw)
	case a == alignStart:
		return lo
	case a == alignEnd:
		return hi - tw
	default:
		return lo + (hi-lo-tw)/2
	}
}

func (t Toolbar) measure(width int) []span {
	var spans []span
	if t.Leading != nil {
		spans = append(spans, span{
			start: 1,
			width: ansi.StringWidth(t.Leading.Glyph),
			text:  t.Leading.Glyph,
			style: itemStyle,
			item:  t.Leading,
		})
	}
	trailing := t.visibleTrailing(width)
	trail := trailCells(trailing)
	x := width - trail
	for i := range trailing {
		it := &trailing[i]
		gw := ansi.StringWidth(it.Glyph)
		spans = append(spans, span{start: x + 1, width: gw, text: it.Glyph, style: itemStyle, item: it})
		x += it.cells()
	}

	lo, hi, a := t.titleBounds(width, trail)
	if avail := hi - lo; avail > 0 && t.Title != "" {
		title := ansi.Truncate(t.Title, avail, "…")
		tw := ansi.StringWidth(title)
		spans = append(spans, span{start: t.titleStart(width, lo, hi, tw, a), width: tw, text: title, style: titleStyle})
	}

	kept := spans[:0]
	for _, s := range spans {
		if s.start >= 0 && s.start+s.width <= width {
			kept = append(kept, s)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].start < kept[j].start })
	return kept
}

// Render draws the toolbar at exactly width cells per line.
func (t Toolbar) Render(width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	cur := 0
	for _, s := range t.measure(width) {
		if s.start < cur {
			continue
		}
		b.WriteString(strings.Repeat(" ", s.start-cur))
		b.WriteString(s.style.Render(s.text))
		cur = s.start + s.width
	}
	if cur < width {
		b.WriteString(strings.Repeat(" ", width-cur))
	}
	if t.Divider {
		b.WriteString("\n")
		b.WriteString(dividerStyle.Render(strings.Repeat("─", width)))
	}
	return b.String()
}

// HitTest maps a column on the toolbar line to the item drawn there. The
// padding cell before a glyph counts as part of the item.
func (t Toolbar) HitTest(width, x int) (Item, bool) {
	for _, s := range t.measure(width) {
		if s.item == nil {
			continue
		}
		if x >= s.start-1 && x < s.start+s.width {
			return *s.item, true
		}
	}
	return Item{}, false
}
