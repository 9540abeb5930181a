// Package catalog loads the static question and category data. The
// catalog is read once per process and treated as immutable afterwards.
package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"

	"golang.org/x/mod/semver"
	"golang.org/x/sync/errgroup"
)

//go:embed data/*.json
var embeddedData embed.FS

// SupportedFormatMajor is the categories.json format major version this
// build understands.
const SupportedFormatMajor = "v1"

// File names inside a catalog directory.
const (
	questionsFile  = "questions.json"
	questionsEFile = "questions-e.json"
	categoriesName = "categories.json"
)

var (
	// ErrUnsupportedFormat is returned for a categories.json whose
	// formatVersion has a different major version.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")

	// ErrUnknownVariant is returned by View for an unrecognized variant.
	ErrUnknownVariant = errors.New("unknown question variant")
)

// Catalog holds every variant's questions plus the shared categories.
type Catalog struct {
	variants      map[Variant][]Question
	categories    []Category
	mapping       map[int]string
	formatVersion string
}

// LoadDefault loads the catalog compiled into the binary.
func LoadDefault(ctx context.Context) (*Catalog, error) {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded catalog: %w", err)
	}
	return Load(ctx, sub)
}

// LoadDir loads a catalog from a directory on disk.
func LoadDir(ctx context.Context, dir string) (*Catalog, error) {
	return Load(ctx, os.DirFS(dir))
}

// Load reads and validates both question variants and the category file.
// The three files are read concurrently.
func Load(ctx context.Context, fsys fs.FS) (*Catalog, error) {
	var (
		bzf, bzfe []Question
		cats      categoriesFile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		qs, err := readQuestions(gctx, fsys, questionsFile)
		bzf = qs
		return err
	})
	g.Go(func() error {
		qs, err := readQuestions(gctx, fsys, questionsEFile)
		bzfe = qs
		return err
	})
	g.Go(func() error {
		c, err := readCategories(gctx, fsys)
		cats = c
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mapping, err := parseMapping(cats.QuestionMapping)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		variants: map[Variant][]Question{
			VariantBZF:  bzf,
			VariantBZFE: bzfe,
		},
		categories:    cats.Categories,
		mapping:       mapping,
		formatVersion: cats.FormatVersion,
	}, nil
}

func readQuestions(ctx context.Context, fsys fs.FS, name string) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if err := validateDocument("questions", questionsSchemaDef, raw); err != nil {
		return nil, fmt.Errorf("validate %s: %w", name, err)
	}

	var qs []Question
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if seen[q.Number] {
			return nil, fmt.Errorf("%s: duplicate question number %d", name, q.Number)
		}
		seen[q.Number] = true
	}
	return qs, nil
}

func readCategories(ctx context.Context, fsys fs.FS) (categoriesFile, error) {
	var cats categoriesFile
	if err := ctx.Err(); err != nil {
		return cats, err
	}
	raw, err := fs.ReadFile(fsys, categoriesName)
	if err != nil {
		return cats, fmt.Errorf("read %s: %w", categoriesName, err)
	}
	if err := validateDocument("categories", categoriesSchemaDef, raw); err != nil {
		return cats, fmt.Errorf("validate %s: %w", categoriesName, err)
	}
	if err := json.Unmarshal(raw, &cats); err != nil {
		return cats, fmt.Errorf("decode %s: %w", categoriesName, err)
	}
	if err := checkFormatVersion(cats.FormatVersion); err != nil {
		return cats, err
	}
	return cats, nil
}

// checkFormatVersion accepts an empty version (legacy files) or any
// semver with the supported major.
func checkFormatVersion(v string) error {
	if v == "" {
		return nil
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: invalid formatVersion %q", ErrUnsupportedFormat, v)
	}
	if semver.Major(v) != SupportedFormatMajor {
		return fmt.Errorf("%w: formatVersion %s, want %s.x", ErrUnsupportedFormat, v, SupportedFormatMajor)
	}
	return nil
}

func parseMapping(raw map[string]string) (map[int]string, error) {
	mapping := make(map[int]string, len(raw))
	for k, cat := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("question mapping key %q: %w", k, err)
		}
		mapping[id] = cat
	}
	return mapping, nil
}

// FormatVersion returns the categories.json format version ("" if unset).
func (c *Catalog) FormatVersion() string {
	return c.formatVersion
}

// View returns the read-only projection for one variant.
func (c *Catalog) View(v Variant) (*View, error) {
	if v == "" {
		v = DefaultVariant
	}
	qs, ok := c.variants[v]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}

	byID := make(map[int]Question, len(qs))
	ids := make([]int, 0, len(qs))
	for _, q := range qs {
		byID[q.Number] = q
		ids = append(ids, q.Number)
	}

	return &View{
		variant:    v,
		ids:        ids,
		byID:       byID,
		categories: c.categories,
		mapping:    c.mapping,
	}, nil
}

// TotalQuestions is the size of the default variant; both variants are
// expected to hold the same question numbers.
func (c *Catalog) TotalQuestions() int {
	if n := len(c.variants[DefaultVariant]); n > 0 {
		return n
	}
	for _, qs := range c.variants {
		return len(qs)
	}
	return 0
}

// Variants lists the loaded variants in a stable order.
func (c *Catalog) Variants() []Variant {
	out := make([]Variant, 0, len(c.variants))
	for v := range c.variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
