package count

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screens/screenstest"
	sessionscreen "github.com/abhisek/examtrainer/internal/screens/session"
	"github.com/abhisek/examtrainer/internal/selection"
	"github.com/abhisek/examtrainer/internal/settings"
)

func TestCountScreen_Parse(t *testing.T) {
	cases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"", 12, false}, // default 20, clamped to the 12-question catalog
		{"5", 5, false},
		{"12", 12, false},
		{"40", 12, false},
		{"0", 0, true},
	}
	for _, c := range cases {
		s := New(screenstest.NewDeps(t, settings.Defaults()), selection.ModeRandom)
		s.input.Model.SetValue(c.input)
		got, err := s.count()
		if c.wantErr {
			if err == nil {
				t.Errorf("count(%q) = %d, want error", c.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("count(%q) error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("count(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestCountScreen_EnterStartsQuiz(t *testing.T) {
	s := New(screenstest.NewDeps(t, settings.Defaults()), selection.ModeRandom)
	s.input.Model.SetValue("3")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := msg.Screen.(*sessionscreen.SessionScreen); !ok {
		t.Errorf("replacement = %T, want *session.SessionScreen", msg.Screen)
	}
}

func TestCountScreen_RejectsZero(t *testing.T) {
	s := New(screenstest.NewDeps(t, settings.Defaults()), selection.ModeRandom)
	s.input.Model.SetValue("0")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no navigation for an invalid count")
	}
	if s.errMsg == "" {
		t.Error("expected an error message")
	}
}

func TestCountScreen_Title(t *testing.T) {
	s := New(screenstest.NewDeps(t, settings.Defaults()), selection.ModeExam)
	if s.Title() != "Exam simulation" {
		t.Errorf("Title = %q", s.Title())
	}
	if s.fallback != selection.DefaultExamCount {
		t.Errorf("fallback = %d, want %d", s.fallback, selection.DefaultExamCount)
	}
}
