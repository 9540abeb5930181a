package category

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens"
	sessionscreen "github.com/abhisek/examtrainer/internal/screens/session"
	"github.com/abhisek/examtrainer/internal/selection"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/layout"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// CategoryScreen lets the user pick a category to practice.
type CategoryScreen struct {
	deps       screens.Deps
	categories []catalog.Category
	menu       components.Menu
	errMsg     string
}

var _ screen.Screen = (*CategoryScreen)(nil)
var _ screen.KeyHintProvider = (*CategoryScreen)(nil)

// New creates a new CategoryScreen.
func New(deps screens.Deps) *CategoryScreen {
	s := &CategoryScreen{deps: deps}

	view, err := deps.View()
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.categories = view.Categories()

	items := make([]components.MenuItem, 0, len(s.categories))
	for _, c := range s.categories {
		count := view.CategoryQuestionCount(c.ID)
		req := selection.Request{Mode: selection.ModeCategory, CategoryID: c.ID}
		items = append(items, components.MenuItem{
			Label:    c.Name,
			Hint:     fmt.Sprintf("%d questions", count),
			Disabled: count == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: sessionscreen.New(deps, req)}
				}
			},
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *CategoryScreen) Init() tea.Cmd {
	return nil
}

func (s *CategoryScreen) Title() string {
	return "Categories"
}

func (s *CategoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CategoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *CategoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if len(s.categories) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  This catalog has no categories.")
	}

	cw := min(width-8, 70)
	body := lipgloss.NewStyle().Width(cw).Render(s.menu.View())

	desc := ""
	if s.menu.Selected >= 0 && s.menu.Selected < len(s.categories) {
		desc = s.categories[s.menu.Selected].Description
	}

	out := "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
	if desc != "" {
		out += "\n" + lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render(desc)
	}
	return out
}
