package widgets

import (
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VStack places widgets top to bottom, sharing height by Ratios with Spacing
// blank lines between them.
type VStack struct {
	Widgets []Widget
	Spacing int
	Ratios  []float64
}

func (v VStack) Render(width, height int) string {
	n := len(v.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	sizes := SplitSizes(max(1, height-v.Spacing*(n-1)), n, v.Ratios)
	sep := "\n" + strings.Repeat("\n", max(0, v.Spacing))

	var b strings.Builder
	for i, w := range v.Widgets {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(w.Render(width, max(1, sizes[i])))
	}
	return b.String()
}

// HStack places widgets left to right. Every column is padded to its share of
// the width so later columns line up.
type HStack struct {
	Widgets []Widget
	Ratios  []float64
	Gap     int
}

func (h HStack) Render(width, height int) string {
	n := len(h.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	sizes := SplitSizes(max(1, width-h.Gap*(n-1)), n, h.Ratios)
	columns := make([][]string, n)
	rows := 0
	for i, w := range h.Widgets {
		columns[i] = strings.Split(w.Render(max(1, sizes[i]), height), "\n")
		rows = max(rows, len(columns[i]))
	}

	gap := strings.Repeat(" ", max(0, h.Gap))
	lines := make([]string, rows)
	for r := range lines {
		var b strings.Builder
		for i, col := range columns {
			if i > 0 {
				b.WriteString(gap)
			}
			cell := ""
			if r < len(col) {
				cell = col[r]
			}
			b.WriteString(PadRight(cell, sizes[i]))
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// SplitSizes divides total cells between n parts. With one ratio per part the
// split is proportional (non-positive ratios count as 1); otherwise it is even.
// Cells lost to rounding go to the parts with the largest remainder, earlier
// parts first.
func SplitSizes(total, n int, ratios []float64) []int {
	if n <= 0 {
		return nil
	}
	weights := make([]float64, n)
	sum := 0.0
	for i := range weights {
		weights[i] = 1
		if len(ratios) == n && ratios[i] > 0 {
			weights[i] = ratios[i]
		}
		sum += weights[i]
	}

	out := make([]int, n)
	frac := make([]float64, n)
	used := 0
	for i, w := range weights {
		exact := w / sum * float64(total)
		out[i] = int(exact)
		frac[i] = exact - float64(out[i])
		used += out[i]
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return frac[order[a]] > frac[order[b]] })
	for k := 0; used < total; k = (k + 1) % n {
		out[order[k]]++
		used++
	}
	return out
}

// PadRight truncates or pads s to exactly width cells.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// Center pads every line of block so it sits in the middle of width cells.
// Blocks wider than width come back unchanged.
func Center(width int, block string) string {
	lines := strings.Split(block, "\n")
	blockW := 0
	for _, l := range lines {
		blockW = max(blockW, ansi.StringWidth(l))
	}
	if blockW >= width {
		return block
	}
	indent := strings.Repeat(" ", (width-blockW)/2)
	for i, l := range lines {
		lines[i] = PadRight(indent+l, width)
	}
	return strings.Join(lines, "\n")
}
