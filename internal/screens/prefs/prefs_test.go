package prefs

import (
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/screens/screenstest"
	"github.com/abhisek/examtrainer/internal/settings"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

func press(s *PrefsScreen, msgs ...tea.Msg) *PrefsScreen {
	for _, m := range msgs {
		scr, _ := s.Update(m)
		s = scr.(*PrefsScreen)
	}
	return s
}

var (
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
)

func TestPrefsScreen_ToggleFeedback(t *testing.T) {
	deps := screenstest.NewDeps(t, settings.Defaults())
	s := New(deps)
	require.Contains(t, s.View(100, 24), "Immediate feedback: on")

	s = press(s, enter)

	assert.False(t, deps.Settings.ImmediateFeedback())
	assert.Contains(t, s.View(100, 24), "Immediate feedback: off")
	assert.Equal(t, 0, s.menu.Selected)
}

func TestPrefsScreen_CycleVariant(t *testing.T) {
	deps := screenstest.NewDeps(t, settings.Defaults())
	s := press(New(deps), down, enter)

	assert.Equal(t, catalog.VariantBZFE, deps.Settings.Variant())
	assert.Equal(t, 1, s.menu.Selected)

	press(s, enter)
	assert.Equal(t, catalog.VariantBZF, deps.Settings.Variant())
}

func TestPrefsScreen_CycleThemeApplies(t *testing.T) {
	t.Cleanup(func() { theme.Use(theme.Dark) })

	deps := screenstest.NewDeps(t, settings.Defaults())
	s := press(New(deps), down, down, enter)
	assert.Equal(t, settings.ThemeDark, deps.Settings.Get().Theme)

	press(s, enter)
	assert.Equal(t, settings.ThemeLight, deps.Settings.Get().Theme)
	assert.Equal(t, theme.Light.Text, theme.Text)
}

func TestPrefsScreen_PersistsToFile(t *testing.T) {
	deps := screenstest.NewDeps(t, settings.Defaults())
	path := filepath.Join(t.TempDir(), "settings.yaml")
	prov, err := settings.NewProvider(path)
	require.NoError(t, err)
	deps.Settings = prov

	s := press(New(deps), enter)

	loaded, err := settings.Load(path)
	require.NoError(t, err)
	assert.False(t, loaded.ImmediateFeedback)
	assert.True(t, strings.Contains(s.View(120, 24), "Saved to "))
}

func TestNextTheme(t *testing.T) {
	assert.Equal(t, settings.ThemeDark, nextTheme(settings.ThemeSystem))
	assert.Equal(t, settings.ThemeSystem, nextTheme(settings.ThemeLight))
	assert.Equal(t, settings.ThemeSystem, nextTheme("neon"))
}
