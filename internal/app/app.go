// Package app hosts the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/logger"
	"github.com/abhisek/examtrainer/internal/progress"
	"github.com/abhisek/examtrainer/internal/quiz"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens"
	"github.com/abhisek/examtrainer/internal/screens/home"
	"github.com/abhisek/examtrainer/internal/settings"
	"github.com/abhisek/examtrainer/internal/ui/layout"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// Options holds the services the TUI runs on.
type Options struct {
	Engine   *quiz.Engine
	Progress *progress.Service
	Catalog  *catalog.Catalog
	Settings *settings.Provider
	Log      *logger.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   screens.Deps
	width  int
	height int
	streak int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	deps := screens.Deps{
		Engine:   opts.Engine,
		Progress: opts.Progress,
		Catalog:  opts.Catalog,
		Settings: opts.Settings,
		Log:      opts.Log,
	}
	theme.Apply(string(opts.Settings.Get().Theme))

	return AppModel{
		router: router.New(home.New(deps)),
		deps:   deps,
		streak: deps.Streak(context.Background()),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.PopScreenMsg, router.PopToRootMsg, router.ReplaceScreenMsg:
		// A finished or abandoned quiz may have moved the streak.
		cmd := m.router.Update(msg)
		m.streak = m.deps.Streak(context.Background())
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// footerHints returns the active screen's hints, or the generic ones.
func (m AppModel) footerHints() []layout.KeyHint {
	if hp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(hp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.deps.Progress.TotalAnswered(), m.streak, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
