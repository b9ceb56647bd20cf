package widgets

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func screen(rows, cols int) string {
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = PadRight(fmt.Sprintf("row-%d", i), cols)
		lines[i] = strings.ReplaceAll(lines[i], " ", ".")
	}
	return strings.Join(lines, "\n")
}

func TestPopupCentersCardOverBase(t *testing.T) {
	base := screen(11, 30)
	out := Popup{Title: "OK", Body: "Done"}.Over(base, 30, 11)
	lines := strings.Split(out, "\n")
	if len(lines) != 11 {
		t.Fatalf("line count = %d, want 11", len(lines))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 30 {
			t.Fatalf("line %d width = %d", i, w)
		}
	}

	// card is 10 cells by 7 lines: rows 2..8, columns 10..19
	baseLines := strings.Split(base, "\n")
	for _, y := range []int{0, 1, 9, 10} {
		if lines[y] != baseLines[y] {
			t.Fatalf("row %d changed: %q", y, lines[y])
		}
	}
	mid := ansi.Strip(lines[5])
	if !strings.HasPrefix(mid, "row-5.....") || !strings.HasSuffix(mid, "..........") {
		t.Fatalf("base not kept beside the card: %q", mid)
	}
	if !strings.Contains(ansi.Strip(out), "Done") || !strings.Contains(ansi.Strip(out), "OK") {
		t.Fatalf("card content missing:\n%s", ansi.Strip(out))
	}
}

func TestPopupTallerThanScreenIsClipped(t *testing.T) {
	body := strings.Repeat("line\n", 20)
	out := Popup{Body: body}.Over("", 20, 6)
	if n := len(strings.Split(out, "\n")); n != 6 {
		t.Fatalf("line count = %d, want 6", n)
	}
}
