package toolbar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

var ErrUnknownLayout = errors.New("unknown toolbar layout")

// Layout selects how the toolbar measures its sections before placing the title.
type Layout int

const (
	// LayoutWeighted reserves a fixed leading section and gives the title the
	// remaining width between it and the trailing items.
	LayoutWeighted Layout = iota
	// LayoutSymmetric reserves the wider of the two sides on both ends.
	LayoutSymmetric
	// LayoutMeasured pads the leading section to the measured trailing width
	// and sets the title flush against the trailing items.
	LayoutMeasured
	// LayoutOverlay centers the title on the full width, ignoring sections,
	// and moves or truncates it only where it would meet an item.
	LayoutOverlay
	// LayoutStart left-aligns the title after the leading section.
	LayoutStart
)

var layoutNames = []string{"weighted", "symmetric", "measured", "overlay", "start"}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return fmt.Sprintf("layout(%d)", int(l))
	}
	return layoutNames[l]
}

// Layouts lists every strategy in declaration order.
func Layouts() []Layout {
	out := make([]Layout, len(layoutNames))
	for i := range out {
		out[i] = Layout(i)
	}
	return out
}

// ParseLayout resolves a layout name case-insensitively. Unknown names get
// the closest known name as a suggestion.
func ParseLayout(name string) (Layout, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return LayoutWeighted, nil
	}
	for i, known := range layoutNames {
		if n == known {
			return Layout(i), nil
		}
	}
	if s := suggest(n); s != "" {
		return LayoutWeighted, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownLayout, name, s)
	}
	return LayoutWeighted, fmt.Errorf("%w %q (want one of %s)", ErrUnknownLayout, name, strings.Join(layoutNames, ", "))
}

func suggest(name string) string {
	best, bestDist := "", -1
	for _, known := range layoutNames {
		d := levenshtein.ComputeDistance(name, known)
		if bestDist < 0 || d < bestDist {
			best, bestDist = known, d
		}
	}
	if bestDist > max(2, len(best)/3) {
		return ""
	}
	return best
}
