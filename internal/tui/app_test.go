package tui

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/pinpad/internal/config"
	"github.com/jask/pinpad/internal/database"
	"github.com/jask/pinpad/internal/database/repository"
	"github.com/jask/pinpad/internal/pin"
	"github.com/jask/pinpad/internal/service"
	"github.com/jask/pinpad/internal/ui/keypad"
)

func testConfig() config.Config {
	return config.Config{
		PIN: config.PINConfig{Length: 6, Expected: "123456", FocusMode: "target"},
		UI:  config.UIConfig{Title: "Enter PIN", ToolbarLayout: "weighted", Divider: true, Keypad: true, Mouse: true},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	return newTestAppWith(t, testConfig())
}

func newTestAppWith(t *testing.T, cfg config.Config) *App {
	t.Helper()
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := &service.Attempts{Repo: repository.NewAttemptRepo(db), Verifier: cfg.PIN.Verifier()}
	a, err := New(context.Background(), cfg, svc, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.field.Clipboard = nil
	a.digits.Clipboard = nil
	return a
}

// drain runs cmd and flattens sequenced and batched commands into messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for i := 0; i < v.Len(); i++ {
		if c, ok := v.Index(i).Interface().(tea.Cmd); ok && c != nil {
			out = append(out, drain(c)...)
		}
	}
	return out
}

// pump feeds msgs to the app and keeps feeding whatever the resulting
// commands produce until the queue is empty. It reports whether a quit was seen.
func pump(t *testing.T, a *App, msgs ...tea.Msg) bool {
	t.Helper()
	quit := false
	queue := append([]tea.Msg(nil), msgs...)
	for n := 0; len(queue) > 0; n++ {
		if n > 500 {
			t.Fatalf("message loop did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			quit = true
			continue
		}
		_, cmd := a.Update(msg)
		queue = append(queue, drain(cmd)...)
	}
	return quit
}

func typeKeys(s string) []tea.Msg {
	out := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

func resize(w, h int) tea.Msg { return tea.WindowSizeMsg{Width: w, Height: h} }

func click(x, y int) tea.Msg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestMeasuringAndTooSmall(t *testing.T) {
	a := newTestApp(t)
	if a.View() != measuringText {
		t.Fatalf("view before size = %q", a.View())
	}
	pump(t, a, resize(a.field.TotalWidth()+fieldPadding-1, 30))
	if got := ansi.Strip(a.View()); got != tooSmallText {
		t.Fatalf("narrow view = %q", got)
	}
	pump(t, a, resize(a.field.TotalWidth()+fieldPadding, 30))
	if strings.Contains(a.View(), tooSmallText) {
		t.Fatalf("view still too small at the threshold width")
	}
}

func TestFullViewGeometry(t *testing.T) {
	a := newTestApp(t)
	pump(t, a, drain(a.Init())...)
	pump(t, a, resize(80, 32))

	view := a.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 32 {
		t.Fatalf("view has %d lines", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 80 {
			t.Fatalf("line %d width %d", i, w)
		}
	}
	plain := ansi.Strip(view)
	for _, want := range []string{"Enter PIN", "Verify PIN", "Wpisz liczby", "Ready"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("view missing %q:\n%s", want, plain)
		}
	}
}

func TestWrongPinShowsErrorAndClears(t *testing.T) {
	a := newTestApp(t)
	pump(t, a, resize(80, 32))
	pump(t, a, typeKeys("654321")...)

	if a.field.Err() != "Incorrect PIN" {
		t.Fatalf("field error = %q", a.field.Err())
	}
	if !a.statusErr || a.submitting {
		t.Fatalf("status err %v submitting %v", a.statusErr, a.submitting)
	}
	if a.summary.ByKind[repository.OutcomeIncorrect] != 1 {
		t.Fatalf("summary not refreshed: %+v", a.summary)
	}
	if !strings.Contains(ansi.Strip(a.View()), "Incorrect PIN") {
		t.Fatalf("error not rendered")
	}

	// backspace after the dismiss reopens the field and clears the error
	pump(t, a, tea.KeyMsg{Type: tea.KeyBackspace})
	if a.field.Err() != "" || a.field.Value() != "65432" || !a.field.Focused() {
		t.Fatalf("after backspace err %q value %q focused %v", a.field.Err(), a.field.Value(), a.field.Focused())
	}

	pump(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.field.Value() != "" || a.status != "Cleared" {
		t.Fatalf("esc left value %q status %q", a.field.Value(), a.status)
	}
}

func TestIncompleteVerify(t *testing.T) {
	a := newTestApp(t)
	pump(t, a, resize(80, 32))
	pump(t, a, typeKeys("12")...)
	pump(t, a, tea.KeyMsg{Type: tea.KeyCtrlS})
	if a.field.Err() != "Please complete the PIN" {
		t.Fatalf("field error = %q", a.field.Err())
	}
}

func TestAcceptedPopupResetsField(t *testing.T) {
	a := newTestApp(t)
	pump(t, a, resize(80, 32))
	pump(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("123-456"), Paste: true})

	if a.popup != popupAccepted {
		t.Fatalf("popup = %v, status %q", a.popup, a.status)
	}
	if !strings.Contains(ansi.Strip(a.View()), "PIN accepted") {
		t.Fatalf("accepted popup not rendered")
	}
	recent, err := a.attempts.Recent(context.Background(), 1)
	if err != nil || len(recent) != 1 || recent[0].Source != string(pin.SourcePasted) {
		t.Fatalf("recorded attempt = %+v, %v", recent, err)
	}

	pump(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if a.popup != popupNone || a.field.Value() != "" || !a.field.Focused() {
		t.Fatalf("closing popup left popup %v value %q", a.popup, a.field.Value())
	}
}

func TestKeypadEntry(t *testing.T) {
	a := newTestApp(t)
	pump(t, a, resize(80, 32))
	if !a.pad.Visible() {
		t.Fatalf("keypad should start visible")
	}

	pump(t, a, keypad.KeyPressedMsg{Key: "1"}, keypad.KeyPressedMsg{Key: "2"}, keypad.KeyPressedMsg{Key: keypad.Backspace})
	if a.field.Value() != "1" {
		t.Fatalf("value = %q", a.field.Value())
	}
	pump(t, a, keypad.KeyPressedMsg{Key: keypad.Done})
	if a.field.Err() != "Please complete the PIN" {
		t.Fatalf("done on short code error = %q", a.field.Err())
	}
	if a.pad.Visible() {
		t.Fatalf("done should hide the keypad")
	}

	recent, err := a.attempts.Recent(context.Background(), 1)
	if err != nil || len(recent) != 1 || recent[0].Source != "keypad" || recent[0].Digits != 1 {
		t.Fatalf("recorded attempt = %+v, %v", recent, err)
	}

	pump(t, a, tea.KeyMsg{Type: tea.KeyCtrlK})
	if !a.pad.Visible() {
		t.Fatalf("ctrl+k should show the keypad")
	}
	x, y := a.geo.padX, a.geo.padY
	pump(t, a, click(x, y))
	if a.field.Value() != "11" {
		t.Fatalf("clicking key 1 gave value %q", a.field.Value())
	}
}

func TestFocusCycleAndQuit(t *testing.T) {
	a := newTestApp(t)
	pump(t, a, resize(80, 32))

	if pump(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}) {
		t.Fatalf("q should not quit while the PIN field has focus")
	}
	pump(t, a, tea.KeyMsg{Type: tea.KeyCtrlN})
	if a.focus != focusDigits || !a.digits.Focused() || a.field.Focused() {
		t.Fatalf("focus = %v", a.focus)
	}
	pump(t, a, typeKeys("4a2")...)
	if a.digits.Value() != "42" {
		t.Fatalf("digits value = %q", a.digits.Value())
	}
	pump(t, a, tea.KeyMsg{Type: tea.KeyCtrlN})
	if a.focus != focusKeypad || !a.pad.Focused() {
		t.Fatalf("focus = %v", a.focus)
	}
	pump(t, a, tea.KeyMsg{Type: tea.KeyCtrlP}, tea.KeyMsg{Type: tea.KeyCtrlP})
	if a.focus != focusField || !a.field.Focused() {
		t.Fatalf("focus = %v", a.focus)
	}
	pump(t, a, tea.KeyMsg{Type: tea.KeyCtrlP})
	if !pump(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}) {
		t.Fatalf("q should quit from the keypad")
	}
	if !pump(t, a, tea.KeyMsg{Type: tea.KeyCtrlC}) {
		t.Fatalf("ctrl+c should always quit")
	}
}

func TestMouseOnToolbarFieldAndCard(t *testing.T) {
	a := newTestApp(t)
	pump(t, a, resize(80, 32))

	historyX := -1
	for x := 0; x < 80; x++ {
		if it, ok := a.bar.HitTest(80, x); ok && it.Key == actionHistory {
			historyX = x
			break
		}
	}
	if historyX < 0 {
		t.Fatalf("history item not found on toolbar")
	}
	pump(t, a, click(historyX, 0))
	if a.popup != popupHistory || !strings.Contains(ansi.Strip(a.View()), "No attempts yet") {
		t.Fatalf("history popup not shown")
	}
	pump(t, a, click(0, 10))
	if a.popup != popupNone {
		t.Fatalf("click should close the popup")
	}

	pump(t, a, tea.KeyMsg{Type: tea.KeyCtrlN})
	pump(t, a, click(a.geo.fieldX+1, a.geo.fieldY+1))
	if a.focus != focusField || !a.field.Focused() {
		t.Fatalf("clicking a box should focus the field, focus %v", a.focus)
	}

	pump(t, a, typeKeys("12")...)
	pump(t, a, click(a.geo.cardX+2, a.geo.cardY+1))
	if a.field.Err() != "Please complete the PIN" {
		t.Fatalf("card click should verify, err %q", a.field.Err())
	}

	if !pump(t, a, click(1, 0)) {
		t.Fatalf("back item should quit")
	}
}

func TestErrorLineStaysOneRowForShortPins(t *testing.T) {
	cfg := testConfig()
	cfg.PIN.Length, cfg.PIN.Expected = 2, "12"
	a := newTestAppWith(t, cfg)

	pump(t, a, resize(30, 32))
	pump(t, a, typeKeys("1")...)
	pump(t, a, tea.KeyMsg{Type: tea.KeyCtrlS})
	if a.field.Err() != "Please complete the PIN" {
		t.Fatalf("field error = %q", a.field.Err())
	}
	lines := strings.Split(ansi.Strip(a.View()), "\n")
	if !strings.Contains(lines[a.geo.errY], "Please complete the PIN") {
		t.Fatalf("error row %d = %q", a.geo.errY, lines[a.geo.errY])
	}
	if strings.Contains(lines[a.geo.digitsY], "PIN") {
		t.Fatalf("error spilled onto the digits row: %q", lines[a.geo.digitsY])
	}

	// narrower than the message: truncated on its own row
	pump(t, a, resize(16, 32))
	lines = strings.Split(ansi.Strip(a.View()), "\n")
	if got := lines[a.geo.errY]; !strings.Contains(got, "Please complete") || !strings.Contains(got, "…") {
		t.Fatalf("narrow error row = %q", got)
	}
	for y := a.geo.errY + 1; y <= a.geo.digitsY; y++ {
		if strings.Contains(lines[y], "complete") || strings.Contains(lines[y], "PIN") {
			t.Fatalf("error wrapped onto row %d: %q", y, lines[y])
		}
	}
}

func TestVerifierFailureCountsAsRejected(t *testing.T) {
	a := newTestApp(t)
	a.attempts.Verifier = pin.Hashed("not a bcrypt hash")
	pump(t, a, resize(80, 32))
	pump(t, a, typeKeys("123456")...)

	if a.summary.ByKind[repository.OutcomeFailed] != 1 {
		t.Fatalf("summary = %+v", a.summary)
	}
	lines := strings.Split(ansi.Strip(a.View()), "\n")
	if status := lines[len(lines)-1]; !strings.Contains(status, "✗ 1") {
		t.Fatalf("status bar = %q", status)
	}
}

func TestPasteShortcutRevealsDismissedField(t *testing.T) {
	a := newTestApp(t)
	pump(t, a, resize(80, 32))
	pump(t, a, typeKeys("654321")...)
	if a.field.Focused() {
		t.Fatalf("field should be dismissed after a full code")
	}

	a.field.Clipboard = func() (string, error) { return "123456", nil }
	pump(t, a, tea.KeyMsg{Type: tea.KeyCtrlV})
	if a.popup != popupAccepted {
		t.Fatalf("ctrl+v after dismiss should paste and verify, popup %v err %q", a.popup, a.field.Err())
	}
	recent, err := a.attempts.Recent(context.Background(), 1)
	if err != nil || len(recent) != 1 || recent[0].Source != string(pin.SourcePasted) {
		t.Fatalf("recorded attempt = %+v, %v", recent, err)
	}
}
