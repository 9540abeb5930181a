package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is a full set of UI colors.
type Palette struct {
	Primary      color.Color
	Secondary    color.Color
	Accent       color.Color
	Success      color.Color
	Error        color.Color
	Text         color.Color
	TextDim      color.Color
	BgDark       color.Color
	BgCard       color.Color
	Border       color.Color
	ArcadeYellow color.Color
	ArcadeCyan   color.Color
}

// Dark is the default palette.
var Dark = Palette{
	Primary:      lipgloss.Color("#3B82F6"), // Blue
	Secondary:    lipgloss.Color("#14B8A6"), // Teal
	Accent:       lipgloss.Color("#F59E0B"), // Amber
	Success:      lipgloss.Color("#22C55E"), // Green
	Error:        lipgloss.Color("#F43F5E"), // Rose
	Text:         lipgloss.Color("#F8FAFC"), // White
	TextDim:      lipgloss.Color("#94A3B8"), // Slate
	BgDark:       lipgloss.Color("#0F172A"), // Deep Navy
	BgCard:       lipgloss.Color("#1E293B"), // Dark Slate
	Border:       lipgloss.Color("#334155"), // Slate
	ArcadeYellow: lipgloss.Color("#FACC15"),
	ArcadeCyan:   lipgloss.Color("#22D3EE"),
}

// Light is used on light terminal backgrounds.
var Light = Palette{
	Primary:      lipgloss.Color("#1D4ED8"),
	Secondary:    lipgloss.Color("#0F766E"),
	Accent:       lipgloss.Color("#B45309"),
	Success:      lipgloss.Color("#15803D"),
	Error:        lipgloss.Color("#BE123C"),
	Text:         lipgloss.Color("#0F172A"),
	TextDim:      lipgloss.Color("#475569"),
	BgDark:       lipgloss.Color("#F8FAFC"),
	BgCard:       lipgloss.Color("#E2E8F0"),
	Border:       lipgloss.Color("#CBD5E1"),
	ArcadeYellow: lipgloss.Color("#CA8A04"),
	ArcadeCyan:   lipgloss.Color("#0E7490"),
}

// Active colors. Use Apply to switch palettes.
var (
	Primary      color.Color
	Secondary    color.Color
	Accent       color.Color
	Success      color.Color
	Error        color.Color
	Text         color.Color
	TextDim      color.Color
	BgDark       color.Color
	BgCard       color.Color
	Border       color.Color
	ArcadeYellow color.Color
	ArcadeCyan   color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

// Components
var (
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

func init() {
	Use(Dark)
}

// Apply selects a palette by theme name: "light" picks Light, anything
// else (including "system") picks Dark.
func Apply(name string) {
	if name == "light" {
		Use(Light)
		return
	}
	Use(Dark)
}

// Use installs p and rebuilds the shared styles.
func Use(p Palette) {
	Primary = p.Primary
	Secondary = p.Secondary
	Accent = p.Accent
	Success = p.Success
	Error = p.Error
	Text = p.Text
	TextDim = p.TextDim
	BgDark = p.BgDark
	BgCard = p.BgCard
	Border = p.Border
	ArcadeYellow = p.ArcadeYellow
	ArcadeCyan = p.ArcadeCyan

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(Text).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
