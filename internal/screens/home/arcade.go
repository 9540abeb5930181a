package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

const arcadeTitleFull = `███████╗██╗  ██╗ █████╗ ███╗   ███╗
██╔════╝╚██╗██╔╝██╔══██╗████╗ ████║
█████╗   ╚███╔╝ ███████║██╔████╔██║
██╔══╝   ██╔██╗ ██╔══██║██║╚██╔╝██║
███████╗██╔╝ ██╗██║  ██║██║ ╚═╝ ██║
╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝`

const arcadeSubtitle = "T · R · A · I · N · E · R"

const arcadeTitleCompact = "E X A M T R A I N E R"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)
	block := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	if compact {
		return block.Render(style.Render(arcadeTitleCompact))
	}
	sub := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(arcadeSubtitle)
	return block.Render(style.Render(arcadeTitleFull) + "\n" + sub)
}

// dashboard is the figures shown in the stats bar.
type dashboard struct {
	answered int
	total    int
	weak     int
	streak   int
}

// renderStatsBar renders the dashboard in a double-bordered box.
func renderStatsBar(d dashboard, cw int) string {
	answeredStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	weakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	streak := dimStyle.Render("★ NO STREAK")
	if d.streak > 0 {
		streak = streakStyle.Render(fmt.Sprintf("★ %d DAY STREAK", d.streak))
	}
	stats := fmt.Sprintf("%s  %s  %s",
		answeredStyle.Render(fmt.Sprintf("✓ %d/%d SEEN", d.answered, d.total)),
		weakStyle.Render(fmt.Sprintf("! %d WEAK", d.weak)),
		streak,
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(m components.Menu, cw int) string {
	disabledBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, item := range m.Items {
		if item.Disabled {
			buttons = append(buttons, disabledBtn.Render(item.Label))
			continue
		}
		buttons = append(buttons, components.ArcadeButton(item.Label, i == m.Selected, buttonWidth))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(m components.Menu, cw int) string {
	var lines []string
	for i, item := range m.Items {
		var line string
		switch {
		case item.Disabled:
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + item.Label)
		case i == m.Selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + item.Label + " ")
		default:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + item.Label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderHint renders the dim line under the menu describing the
// highlighted item.
func renderHint(m components.Menu, cw int) string {
	item, ok := m.Current()
	if !ok || item.Hint == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(item.Hint)
}
