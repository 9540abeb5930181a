// Package settings reads and writes the learner's preferences file.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/examtrainer/internal/catalog"
)

// Theme selects the TUI color palette.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

const configEnv = "EXAMTRAINER_CONFIG"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid settings")

// Settings are the learner's preferences.
type Settings struct {
	Theme             Theme
	ImmediateFeedback bool
	QuestionVariant   catalog.Variant
	Language          string
}

// Defaults returns the settings used when no file exists.
func Defaults() Settings {
	return Settings{
		Theme:             ThemeSystem,
		ImmediateFeedback: true,
		QuestionVariant:   catalog.DefaultVariant,
		Language:          "en",
	}
}

// yamlSettings is the on-disk shape. Pointers distinguish "absent" from
// a zero value so partial files keep the remaining defaults.
type yamlSettings struct {
	Theme             *string `yaml:"theme,omitempty"`
	ImmediateFeedback *bool   `yaml:"immediate_feedback,omitempty"`
	QuestionVariant   *string `yaml:"question_variant,omitempty"`
	Language          *string `yaml:"language,omitempty"`
}

// Validate checks enumerated fields.
func (s Settings) Validate() error {
	if !s.Theme.Valid() {
		return fmt.Errorf("%w: theme %q (want light, dark or system)", ErrInvalid, s.Theme)
	}
	if !s.QuestionVariant.Valid() {
		return fmt.Errorf("%w: question_variant %q (want %s or %s)", ErrInvalid, s.QuestionVariant, catalog.VariantBZF, catalog.VariantBZFE)
	}
	if strings.TrimSpace(s.Language) == "" {
		return fmt.Errorf("%w: language must not be empty", ErrInvalid)
	}
	return nil
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (Settings, error) {
	s := Defaults()

	var raw yamlSettings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}
	if raw.Theme != nil {
		s.Theme = Theme(*raw.Theme)
	}
	if raw.ImmediateFeedback != nil {
		s.ImmediateFeedback = *raw.ImmediateFeedback
	}
	if raw.QuestionVariant != nil {
		s.QuestionVariant = catalog.Variant(*raw.QuestionVariant)
	}
	if raw.Language != nil {
		s.Language = *raw.Language
	}

	if err := s.Validate(); err != nil {
		return Defaults(), err
	}
	return s, nil
}

// Marshal encodes s as YAML.
func (s Settings) Marshal() ([]byte, error) {
	theme := string(s.Theme)
	variant := string(s.QuestionVariant)
	feedback := s.ImmediateFeedback
	lang := s.Language
	return yaml.Marshal(yamlSettings{
		Theme:             &theme,
		ImmediateFeedback: &feedback,
		QuestionVariant:   &variant,
		Language:          &lang,
	})
}

// Load reads settings from path. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}

// Save validates s and writes it to path, creating the parent directory.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// DefaultPath resolves the settings file path in priority order:
// 1. EXAMTRAINER_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/examtrainer/settings.yaml
// 3. ~/.config/examtrainer/settings.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv(configEnv); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "examtrainer", "settings.yaml"), nil
}

// Keys lists the names accepted by Set.
func Keys() []string {
	keys := []string{"theme", "immediate_feedback", "question_variant", "language"}
	sort.Strings(keys)
	return keys
}

// Set updates one field by its YAML key and validates the result.
func (s *Settings) Set(key, value string) error {
	next := *s
	switch key {
	case "theme":
		next.Theme = Theme(value)
	case "immediate_feedback":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: immediate_feedback %q is not a boolean", ErrInvalid, value)
		}
		next.ImmediateFeedback = b
	case "question_variant":
		next.QuestionVariant = catalog.Variant(value)
	case "language":
		next.Language = value
	default:
		return fmt.Errorf("%w: unknown key %q (want one of %s)", ErrInvalid, key, strings.Join(Keys(), ", "))
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

// Provider hands the current settings to long-lived components. The
// quiz engine reads it on every answer, so changes apply without a
// restart.
type Provider struct {
	path    string
	current Settings
}

// NewProvider loads path once and serves the result.
func NewProvider(path string) (*Provider, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Provider{path: path, current: s}, nil
}

// Static returns a provider that is never persisted.
func Static(s Settings) *Provider {
	return &Provider{current: s}
}

// Get returns the current settings.
func (p *Provider) Get() Settings {
	return p.current
}

// ImmediateFeedback reports whether answer feedback should be shown.
func (p *Provider) ImmediateFeedback() bool {
	return p.current.ImmediateFeedback
}

// Variant returns the active question variant.
func (p *Provider) Variant() catalog.Variant {
	return p.current.QuestionVariant
}

// Update validates and stores s, writing it to disk when the provider
// has a path.
func (p *Provider) Update(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if p.path != "" {
		if err := Save(p.path, s); err != nil {
			return err
		}
	}
	p.current = s
	return nil
}

// Path is the backing file, or "" for a static provider.
func (p *Provider) Path() string {
	return p.path
}
