package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

type fixedWidget struct{ text string }

func (w fixedWidget) Render(width, height int) string {
	return w.text
}

func TestHStackRespectsRatios(t *testing.T) {
	h := HStack{Widgets: []Widget{fixedWidget{"A"}, fixedWidget{"B"}}, Ratios: []float64{0.75, 0.25}, Gap: 1}
	out := h.Render(21, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 1 {
		t.Fatalf("line count = %d, want 1", len(lines))
	}
	if got := strings.Index(lines[0], "B"); got != 16 {
		t.Fatalf("B column = %d, want 16 (15 cells + 1 gap)", got)
	}
}

func TestVStackSpacing(t *testing.T) {
	v := VStack{Widgets: []Widget{fixedWidget{"top"}, fixedWidget{"bottom"}}, Spacing: 1}
	out := v.Render(20, 6)
	if out != "top\n\nbottom" {
		t.Fatalf("VStack = %q", out)
	}
}

func TestSplitSizes(t *testing.T) {
	tests := []struct {
		total  int
		n      int
		ratios []float64
		want   []int
	}{
		{10, 3, nil, []int{4, 3, 3}},
		{20, 2, []float64{3, 1}, []int{15, 5}},
		{8, 2, []float64{0, 3}, []int{2, 6}},
		{5, 0, nil, nil},
	}
	for _, tt := range tests {
		got := SplitSizes(tt.total, tt.n, tt.ratios)
		if len(got) != len(tt.want) {
			t.Fatalf("SplitSizes(%d,%d,%v) = %v, want %v", tt.total, tt.n, tt.ratios, got, tt.want)
		}
		sum := 0
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("SplitSizes(%d,%d,%v) = %v, want %v", tt.total, tt.n, tt.ratios, got, tt.want)
			}
			sum += got[i]
		}
		if tt.n > 0 && sum != tt.total {
			t.Fatalf("sizes %v do not add up to %d", got, tt.total)
		}
	}
}

func TestCenterAndPadRight(t *testing.T) {
	if got := PadRight("abcdef", 3); got != "abc" {
		t.Fatalf("PadRight truncate = %q", got)
	}
	if got := PadRight("ab", 4); got != "ab  " {
		t.Fatalf("PadRight pad = %q", got)
	}
	got := Center(10, "ab\nabcd")
	lines := strings.Split(got, "\n")
	if lines[0] != "   ab     " || lines[1] != "   abcd   " {
		t.Fatalf("Center = %q", got)
	}
	if Center(2, "wide") != "wide" {
		t.Fatalf("Center should leave wide blocks alone")
	}
}

func TestCardFitsWidth(t *testing.T) {
	out := Card{Icon: "+", Label: "Open a personal account"}.Render(30, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("card lines = %d, want 3", len(lines))
	}
	for _, l := range lines {
		if w := ansi.StringWidth(l); w != 30 {
			t.Fatalf("card line width = %d, want 30: %q", w, l)
		}
	}
	if !strings.Contains(out, "(+)") || !strings.Contains(ansi.Strip(out), "Open a personal") {
		t.Fatalf("card missing icon or label: %q", out)
	}
}
