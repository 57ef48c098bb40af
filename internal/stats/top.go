package stats

import (
	"sort"

	"github.com/ruri-sayo/word-test-KAI/internal/model"
)

// MostMissedWords returns up to n words with at least one miss, ordered by
// miss count, then lowest accuracy, then word. n <= 0 returns all of them.
func MostMissedWords(aggs []model.WordAggregate, n int) []model.WordAggregate {
	candidates := make([]model.WordAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Incorrect > 0 {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Incorrect != b.Incorrect {
			return a.Incorrect > b.Incorrect
		}
		if ai, bi := wordAccuracy(a), wordAccuracy(b); ai != bi {
			return ai < bi
		}
		return a.Word < b.Word
	})
	if n > 0 && n < len(candidates) {
		candidates = candidates[:n]
	}
	return candidates
}

func wordAccuracy(agg model.WordAggregate) float64 {
	if agg.Correct+agg.Incorrect == 0 {
		return 1.0
	}
	return Accuracy(agg.Correct, agg.Incorrect)
}
