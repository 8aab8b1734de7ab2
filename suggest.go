package stylegen

import (
	"sort"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/mo"
)

// maxSuggestionDistance is the largest edit distance still worth suggesting.
const maxSuggestionDistance = 8

// SuggestReplacement picks the current code name closest to a deprecated one.
// Fuzzy subsequence matches rank first; otherwise the smallest edit distance
// within maxSuggestionDistance wins. Ties go to the alphabetically first name.
func SuggestReplacement(deprecated string, candidates []string) mo.Option[string] {
	if deprecated == "" || len(candidates) == 0 {
		return mo.None[string]()
	}

	// A renamed style usually keeps its old name as a fragment ("red" → "brandRed")
	ranks := fuzzy.RankFindNormalizedFold(deprecated, candidates)
	if len(ranks) > 0 {
		sort.SliceStable(ranks, func(i, j int) bool {
			if ranks[i].Distance != ranks[j].Distance {
				return ranks[i].Distance < ranks[j].Distance
			}
			return ranks[i].Target < ranks[j].Target
		})
		return mo.Some(ranks[0].Target)
	}

	best, bestDistance := "", maxSuggestionDistance+1
	for _, c := range candidates {
		d := levenshtein.Distance(deprecated, c)
		if d < bestDistance || (d == bestDistance && c < best) {
			best, bestDistance = c, d
		}
	}
	if best == "" {
		return mo.None[string]()
	}
	return mo.Some(best)
}
