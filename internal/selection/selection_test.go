package selection

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/shuffle"
)

type fakeProgress struct {
	weak     []int
	answered map[int]bool
}

func (f *fakeProgress) WeakIDs(int) []int { return f.weak }

func (f *fakeProgress) NeverAnsweredIDs(all []int) []int {
	var out []int
	for _, id := range all {
		if !f.answered[id] {
			out = append(out, id)
		}
	}
	return out
}

func testCatalog(n int) *catalog.View {
	qs := make([]catalog.Question, n)
	mapping := make(map[int]string, n)
	for i := range qs {
		qs[i] = catalog.Question{Number: i + 1}
		if i%2 == 0 {
			mapping[i+1] = "even-index"
		} else {
			mapping[i+1] = "odd-index"
		}
	}
	cats := []catalog.Category{{ID: "even-index", Name: "Even"}, {ID: "odd-index", Name: "Odd"}, {ID: "empty", Name: "Empty"}}
	return catalog.NewView(catalog.VariantBZF, qs, cats, mapping)
}

func sorted(ids []int) []int {
	out := append([]int(nil), ids...)
	sort.Ints(out)
	return out
}

func assertDistinct(t *testing.T, ids []int) {
	t.Helper()
	seen := map[int]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d in %v", id, ids)
		}
		seen[id] = true
	}
}

func TestSelectAllKeepsCatalogOrder(t *testing.T) {
	s := NewSelector(&fakeProgress{}, shuffle.NewSeeded(1))
	ids, err := s.Select(testCatalog(6), Request{Mode: ModeAll})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids)
}

func TestSelectUnknownModeFallsBackToAll(t *testing.T) {
	s := NewSelector(&fakeProgress{}, shuffle.NewSeeded(1))
	ids, err := s.Select(testCatalog(4), Request{Mode: "marathon"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, ids)
}

func TestSelectRandomAndExamCounts(t *testing.T) {
	cat := testCatalog(150)
	s := NewSelector(&fakeProgress{}, shuffle.NewSeeded(7))

	tests := []struct {
		req  Request
		want int
	}{
		{Request{Mode: ModeRandom}, DefaultRandomCount},
		{Request{Mode: ModeRandom, Count: 5}, 5},
		{Request{Mode: ModeRandom, Count: -3}, DefaultRandomCount},
		{Request{Mode: ModeExam}, DefaultExamCount},
		{Request{Mode: ModeExam, Count: 500}, 150},
	}
	for _, tt := range tests {
		ids, err := s.Select(cat, tt.req)
		require.NoError(t, err)
		if len(ids) != tt.want {
			t.Errorf("%s count=%d: len = %d, want %d", tt.req.Mode, tt.req.Count, len(ids), tt.want)
		}
		assertDistinct(t, ids)
		for _, id := range ids {
			assert.True(t, cat.Has(id))
		}
	}
}

func TestSelectCategory(t *testing.T) {
	cat := testCatalog(10)
	s := NewSelector(&fakeProgress{}, shuffle.NewSeeded(3))

	ids, err := s.Select(cat, Request{Mode: ModeCategory, CategoryID: "odd-index"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6, 8, 10}, sorted(ids))
}

func TestSelectCategoryErrors(t *testing.T) {
	cat := testCatalog(4)
	s := NewSelector(&fakeProgress{}, shuffle.NewSeeded(3))

	for _, id := range []string{"", "nope"} {
		_, err := s.Select(cat, Request{Mode: ModeCategory, CategoryID: id})
		if !errors.Is(err, ErrMissingCategory) {
			t.Errorf("category %q: err = %v, want ErrMissingCategory", id, err)
		}
	}

	_, err := s.Select(cat, Request{Mode: ModeCategory, CategoryID: "empty"})
	if !errors.Is(err, ErrNoQuestionsAvailable) {
		t.Errorf("empty category: err = %v, want ErrNoQuestionsAvailable", err)
	}
}

func TestSelectWeak(t *testing.T) {
	cat := testCatalog(5)
	// 99 is not in this catalog variant and must be dropped.
	prog := &fakeProgress{weak: []int{2, 4, 99}, answered: map[int]bool{2: true, 4: true}}
	s := NewSelector(prog, shuffle.NewSeeded(5))

	ids, err := s.Select(cat, Request{Mode: ModeWeak})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, sorted(ids))
}

func TestSelectWeakFallsBackToNeverAnswered(t *testing.T) {
	cat := testCatalog(5)
	s := NewSelector(&fakeProgress{}, shuffle.NewSeeded(5))

	ids, err := s.Select(cat, Request{Mode: ModeWeak})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, sorted(ids))
}

func TestSelectWeakFallsBackToSample(t *testing.T) {
	cat := testCatalog(30)
	answered := map[int]bool{}
	for i := 1; i <= 30; i++ {
		answered[i] = true
	}
	s := NewSelector(&fakeProgress{answered: answered}, shuffle.NewSeeded(5))

	ids, err := s.Select(cat, Request{Mode: ModeWeak})
	require.NoError(t, err)
	assert.Len(t, ids, DefaultWeakFallbackCount)
	assertDistinct(t, ids)
}

func TestSelectEmptyCatalog(t *testing.T) {
	cat := testCatalog(0)
	s := NewSelector(&fakeProgress{}, shuffle.NewSeeded(5))

	for _, m := range []Mode{ModeAll, ModeRandom, ModeWeak, ModeExam} {
		_, err := s.Select(cat, Request{Mode: m})
		if !errors.Is(err, ErrNoQuestionsAvailable) {
			t.Errorf("%s: err = %v, want ErrNoQuestionsAvailable", m, err)
		}
	}
}

func TestSelectDoesNotMutateCatalog(t *testing.T) {
	cat := testCatalog(8)
	s := NewSelector(&fakeProgress{}, shuffle.NewSeeded(9))
	_, err := s.Select(cat, Request{Mode: ModeCategory, CategoryID: "even-index"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, cat.QuestionIDs())
}
