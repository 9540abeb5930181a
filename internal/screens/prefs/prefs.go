// Package prefs is the settings screen.
package prefs

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens"
	"github.com/abhisek/examtrainer/internal/settings"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/layout"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

var themes = []settings.Theme{settings.ThemeSystem, settings.ThemeDark, settings.ThemeLight}

// PrefsScreen toggles the learner's settings. Every change is saved
// right away.
type PrefsScreen struct {
	deps    screens.Deps
	menu    components.Menu
	changed bool
	notice  string
}

var _ screen.Screen = (*PrefsScreen)(nil)
var _ screen.KeyHintProvider = (*PrefsScreen)(nil)

// New creates a new PrefsScreen.
func New(deps screens.Deps) *PrefsScreen {
	s := &PrefsScreen{deps: deps}
	s.rebuild(0)
	return s
}

func (s *PrefsScreen) Init() tea.Cmd {
	return nil
}

func (s *PrefsScreen) Title() string {
	return "Settings"
}

func (s *PrefsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Change"},
		{Key: "Esc", Description: "Back"},
	}
}

// rebuild refreshes the labels from the current settings.
func (s *PrefsScreen) rebuild(selected int) {
	cur := s.deps.Settings.Get()
	feedback := "off"
	if cur.ImmediateFeedback {
		feedback = "on"
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{
			Label:  fmt.Sprintf("Immediate feedback: %s", feedback),
			Hint:   "show the verdict after every answer",
			Action: s.change(func(st *settings.Settings) {
				st.ImmediateFeedback = !st.ImmediateFeedback
			}),
		},
		{
			Label:  fmt.Sprintf("Question set: %s", cur.QuestionVariant),
			Hint:   "alternate wording, same numbers",
			Action: s.change(func(st *settings.Settings) {
				st.QuestionVariant = nextVariant(s.deps.Catalog.Variants(), st.QuestionVariant)
			}),
		},
		{
			Label:  fmt.Sprintf("Theme: %s", cur.Theme),
			Action: s.change(func(st *settings.Settings) {
				st.Theme = nextTheme(st.Theme)
			}),
		},
	})
	s.menu.Selected = selected
}

// change returns a menu action that applies fn and saves the result.
func (s *PrefsScreen) change(fn func(*settings.Settings)) func() tea.Cmd {
	return func() tea.Cmd {
		next := s.deps.Settings.Get()
		fn(&next)
		if err := s.deps.Settings.Update(next); err != nil {
			s.deps.Log.Warn("save settings", "error", err)
			s.notice = fmt.Sprintf("Not saved: %v", err)
			return nil
		}
		theme.Apply(string(next.Theme))
		s.deps.Log.Info("settings changed", "theme", next.Theme,
			"immediate_feedback", next.ImmediateFeedback, "variant", next.QuestionVariant)
		s.notice = ""
		s.changed = true
		return nil
	}
}

func nextVariant(all []catalog.Variant, cur catalog.Variant) catalog.Variant {
	if len(all) == 0 {
		return cur
	}
	for i, v := range all {
		if v == cur {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func nextTheme(cur settings.Theme) settings.Theme {
	for i, t := range themes {
		if t == cur {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

func (s *PrefsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	if s.changed {
		s.changed = false
		s.rebuild(s.menu.Selected)
	}
	return s, cmd
}

func (s *PrefsScreen) View(width, height int) string {
	cw := min(width-8, 70)
	out := "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(s.menu.View()))

	if p := s.deps.Settings.Path(); p != "" {
		out += "\n" + lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Saved to "+p)
	}
	if s.notice != "" {
		out += "\n\n" + lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.notice)
	}
	return out
}
