// Package home is the main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/progress"
	"github.com/abhisek/examtrainer/internal/quiz"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens"
	"github.com/abhisek/examtrainer/internal/screens/category"
	"github.com/abhisek/examtrainer/internal/screens/count"
	"github.com/abhisek/examtrainer/internal/screens/history"
	"github.com/abhisek/examtrainer/internal/screens/prefs"
	"github.com/abhisek/examtrainer/internal/screens/session"
	"github.com/abhisek/examtrainer/internal/screens/stats"
	"github.com/abhisek/examtrainer/internal/selection"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/layout"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps   screens.Deps
	menu   components.Menu
	active *quiz.ActiveInfo
	dash   dashboard
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screens.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.Refresh()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// Refresh reloads the resumable quiz and the dashboard figures. The router
// calls it whenever the home screen is revealed again.
func (h *HomeScreen) Refresh() tea.Cmd {
	ctx := context.Background()

	active, err := h.deps.Engine.ActiveInfo(ctx)
	if err != nil {
		h.deps.Log.Warn("read checkpoint", "error", err)
		active = nil
	}
	h.active = active

	h.dash = dashboard{
		answered: h.deps.Progress.TotalAnswered(),
		streak:   h.deps.Streak(ctx),
	}
	if view, err := h.deps.View(); err == nil {
		h.dash.total = view.Len()
		for _, id := range h.deps.Progress.WeakIDs(progress.DefaultWeakThreshold) {
			if view.Has(id) {
				h.dash.weak++
			}
		}
	}

	prev := h.menu.Selected
	h.menu = components.NewMenu(h.items())
	if prev > 0 && prev < len(h.menu.Items) && !h.menu.Items[prev].Disabled {
		h.menu.Selected = prev
	}
	return nil
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) items() []components.MenuItem {
	deps := h.deps

	resume := components.MenuItem{
		Label:    "CONTINUE",
		Disabled: true,
	}
	if a := h.active; a != nil {
		resume.Disabled = false
		resume.Hint = fmt.Sprintf("%s · Q %d/%d", deps.ModeLabel(a.Mode, a.CategoryID), a.Position(), a.Total)
		resume.Action = func() tea.Cmd { return push(session.NewResume(deps)) }
	}

	return []components.MenuItem{
		resume,
		{
			Label:  "ALL QUESTIONS",
			Hint:   "every question in catalog order",
			Action: func() tea.Cmd { return push(session.New(deps, selection.Request{Mode: selection.ModeAll})) },
		},
		{
			Label:  "RANDOM QUIZ",
			Hint:   "a random sample",
			Action: func() tea.Cmd { return push(count.New(deps, selection.ModeRandom)) },
		},
		{
			Label:  "BY CATEGORY",
			Hint:   "one topic, shuffled",
			Action: func() tea.Cmd { return push(category.New(deps)) },
		},
		{
			Label:    "WEAK QUESTIONS",
			Hint:     fmt.Sprintf("%d questions to revisit", h.dash.weak),
			Disabled: h.dash.weak == 0,
			Action:   func() tea.Cmd { return push(session.New(deps, selection.Request{Mode: selection.ModeWeak})) },
		},
		{
			Label:  "EXAM SIMULATION",
			Hint:   fmt.Sprintf("default %d questions", selection.DefaultExamCount),
			Action: func() tea.Cmd { return push(count.New(deps, selection.ModeExam)) },
		},
		{
			Label:  "STATISTICS",
			Action: func() tea.Cmd { return push(stats.New(deps)) },
		},
		{
			Label:  "HISTORY",
			Action: func() tea.Cmd { return push(history.New(deps)) },
		},
		{
			Label:  "SETTINGS",
			Action: func() tea.Cmd { return push(prefs.New(deps)) },
		},
		{
			Label:  "EXIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// fullHeight is the content height needed for the bordered menu.
const fullHeight = 48

func (h *HomeScreen) View(width, height int) string {
	compact := height < fullHeight || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	if compact {
		// The header already shows answered and streak.
		sections := []string{
			renderTitle(cw, true),
			renderArcadeMenuCompact(h.menu, cw),
		}
		if hint := renderHint(h.menu, cw); hint != "" {
			sections = append(sections, hint)
		}
		return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
	}

	sections := []string{
		renderTitle(cw, false),
		renderStatsBar(h.dash, cw),
		renderArcadeMenu(h.menu, cw),
	}
	if hint := renderHint(h.menu, cw); hint != "" {
		sections = append(sections, hint)
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
