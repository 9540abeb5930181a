package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testOptions() []Option {
	return []Option{
		{Label: "A", Text: "Red"},
		{Label: "B", Text: "Green"},
		{Label: "C", Text: "Blue"},
		{Label: "D", Text: "Yellow"},
	}
}

func TestMultiChoice_LetterAndNumberKeys(t *testing.T) {
	m := NewMultiChoice("Pick a color", testOptions())

	m, _ = m.Update(keyPress('c'))
	if opt, _ := m.Current(); opt.Label != "C" {
		t.Errorf("after 'c' current = %q, want C", opt.Label)
	}

	m, _ = m.Update(keyPress('2'))
	if opt, _ := m.Current(); opt.Label != "B" {
		t.Errorf("after '2' current = %q, want B", opt.Label)
	}

	m, _ = m.Update(keyPress('x'))
	if opt, _ := m.Current(); opt.Label != "B" {
		t.Errorf("unknown key moved cursor to %q", opt.Label)
	}
}

func TestMultiChoice_Arrows(t *testing.T) {
	m := NewMultiChoice("Pick", testOptions())

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Errorf("up at top: Selected = %d, want 0", m.Selected)
	}
	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if m.Selected != 3 {
		t.Errorf("down past end: Selected = %d, want 3", m.Selected)
	}
}

func TestMultiChoice_RevealLocks(t *testing.T) {
	m := NewMultiChoice("Pick", testOptions())
	m.Reveal("B", "A")

	m, _ = m.Update(keyPress('c'))
	if m.Selected != 0 {
		t.Errorf("revealed component moved cursor to %d", m.Selected)
	}
	if m.IsCorrect() {
		t.Error("IsCorrect() = true for wrong choice")
	}
	view := m.View()
	if !strings.Contains(view, "✓") || !strings.Contains(view, "✗") {
		t.Errorf("revealed view lacks marks:\n%s", view)
	}

	m.Reveal("A", "A")
	if !m.IsCorrect() {
		t.Error("IsCorrect() = false for correct choice")
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var picked string
	m := NewMenu([]MenuItem{
		{Label: "Continue", Disabled: true},
		{Label: "Start", Action: func() tea.Cmd { picked = "start"; return nil }},
		{Label: "Hidden", Disabled: true},
		{Label: "Exit", Hint: "bye", Action: func() tea.Cmd { picked = "exit"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("initial Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "exit" {
		t.Errorf("picked = %q, want exit", picked)
	}
	if !strings.Contains(m.View(), "bye") {
		t.Error("menu view lacks item hint")
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	p := NewProgressBar("", 1.5, true, 20)
	if !strings.Contains(p.View(), "150%") {
		t.Errorf("percent label missing:\n%s", p.View())
	}
	p = NewProgressBar("x", -1, false, 20)
	if p.View() == "" {
		t.Error("empty progress bar view")
	}
}

func TestButton_View(t *testing.T) {
	active := NewButton("N", "Keep going", true).View()
	if !strings.Contains(active, "▸") || !strings.Contains(active, "[N] Keep going") {
		t.Errorf("active button = %q", active)
	}
	idle := NewButton("Y", "Abandon quiz", false).View()
	if strings.Contains(idle, "▸") {
		t.Errorf("inactive button is marked: %q", idle)
	}
	if !strings.Contains(idle, "[Y] Abandon quiz") {
		t.Errorf("inactive button = %q", idle)
	}
}
