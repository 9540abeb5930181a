package progress

import "sort"

// CategoryStats aggregates progress for one category.
//
// Correct counts a question when it was answered correctly last time or
// has more correct than wrong answers. The two criteria are also reported
// on their own; Divergent counts questions where they disagree.
type CategoryStats struct {
	CategoryID       string
	Total            int
	Answered         int
	Correct          int
	CorrectByLast    int
	CorrectByBalance int
	Divergent        int
}

// Percent returns Correct / Total as a percentage.
func (c CategoryStats) Percent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Total) * 100
}

// CategoryRollup groups the ledger by the question → category mapping.
// Every category in the mapping gets an entry, answered or not. The
// result is ordered by category id.
func (s *Service) CategoryRollup(mapping map[int]string) []CategoryStats {
	byCat := make(map[string]*CategoryStats)
	for qid, cat := range mapping {
		cs, ok := byCat[cat]
		if !ok {
			cs = &CategoryStats{CategoryID: cat}
			byCat[cat] = cs
		}
		cs.Total++

		p, answered := s.ledger[qid]
		if !answered {
			continue
		}
		cs.Answered++

		byLast := p.LastCorrect
		byBalance := p.CorrectCount > p.WrongCount
		if byLast {
			cs.CorrectByLast++
		}
		if byBalance {
			cs.CorrectByBalance++
		}
		if byLast || byBalance {
			cs.Correct++
		}
		if byLast != byBalance {
			cs.Divergent++
		}
	}

	out := make([]CategoryStats, 0, len(byCat))
	for _, cs := range byCat {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	return out
}
