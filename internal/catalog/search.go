package catalog

import "strings"

// Search limits.
const (
	MinSearchQuery   = 2
	MaxSearchResults = 40
)

// MatchField says where a search hit was found.
type MatchField string

const (
	MatchQuestion MatchField = "question"
	MatchAnswer   MatchField = "answer"
)

// SearchResult is one question matching a search.
type SearchResult struct {
	Variant     Variant
	Question    Question
	MatchedIn   MatchField
	MatchedText string
	MatchedKey  string // choice key for answer matches
}

// Search finds questions whose text or any choice contains query,
// case-insensitively. Each question is reported once per variant with
// question-text matches taking precedence. Queries shorter than
// MinSearchQuery return nothing; results stop at MaxSearchResults.
func (c *Catalog) Search(query string, variants ...Variant) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < MinSearchQuery {
		return nil
	}
	if len(variants) == 0 {
		variants = c.Variants()
	}

	var out []SearchResult
	for _, v := range variants {
		for _, question := range c.variants[v] {
			if len(out) >= MaxSearchResults {
				return out
			}
			if strings.Contains(strings.ToLower(question.Text), q) {
				out = append(out, SearchResult{
					Variant:     v,
					Question:    question,
					MatchedIn:   MatchQuestion,
					MatchedText: question.Text,
				})
				continue
			}
			for _, key := range ChoiceKeys {
				text := question.Choice(key)
				if strings.Contains(strings.ToLower(text), q) {
					out = append(out, SearchResult{
						Variant:     v,
						Question:    question,
						MatchedIn:   MatchAnswer,
						MatchedText: text,
						MatchedKey:  key,
					})
					break
				}
			}
		}
	}
	return out
}
