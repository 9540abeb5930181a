package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	c, err := Load(context.Background(), testFS(map[string]string{
		questionsEFile: `[{"number": 1, "question": "Other", "A": "Mayday call", "B": "b", "C": "c", "D": "d"}]`,
	}))
	require.NoError(t, err)

	tests := []struct {
		name     string
		query    string
		variants []Variant
		want     int
		field    MatchField
	}{
		{"too short", "q", nil, 0, ""},
		{"question text both variants", "q2", nil, 1, MatchQuestion},
		{"case insensitive answer", "MAYDAY", nil, 1, MatchAnswer},
		{"restricted to variant", "right", []Variant{VariantBZF}, 3, MatchAnswer},
		{"no hit", "zulu", nil, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(tt.query, tt.variants...)
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d (%+v)", len(got), tt.want, got)
			}
			for _, r := range got {
				assert.Equal(t, tt.field, r.MatchedIn)
			}
		})
	}

	hits := c.Search("mayday")
	require.Len(t, hits, 1)
	assert.Equal(t, VariantBZFE, hits[0].Variant)
	assert.Equal(t, "A", hits[0].MatchedKey)
}

func TestSearchCapsResults(t *testing.T) {
	var b strings.Builder
	b.WriteString("[")
	for i := 1; i <= 60; i++ {
		if i > 1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"number": %d, "question": "Squawk %d", "A": "a", "B": "b", "C": "c", "D": "d"}`, i, i)
	}
	b.WriteString("]")

	c, err := Load(context.Background(), testFS(map[string]string{questionsFile: b.String()}))
	require.NoError(t, err)
	assert.Len(t, c.Search("squawk"), MaxSearchResults)
}
