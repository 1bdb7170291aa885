package scoring

import (
	"hash/fnv"
	"math/rand"
	"regexp"
	"strings"

	"github.com/qemqemqem/JSTR/internal/schema"
	"github.com/qemqemqem/JSTR/internal/statistics"
)

var (
	answerPrefixRE   = regexp.MustCompile(`^Answer:\s*`)
	capitalizedWords = regexp.MustCompile(`\b[A-Z][a-z]*\b`)
)

// ExtractInviteList pulls guest names out of free-form response text:
// capitalized words that match the guide's roster, in order of appearance,
// truncated to the guide's set size. A leading "Answer:" tag is stripped.
func ExtractInviteList(responseText string, guide *schema.ScoringGuide) []string {
	text := answerPrefixRE.ReplaceAllString(strings.TrimSpace(responseText), "")

	roster := make(map[string]bool, len(guide.People))
	for _, p := range guide.People {
		roster[p.Name] = true
	}

	seen := map[string]bool{}
	var names []string
	for _, word := range capitalizedWords.FindAllString(text, -1) {
		if len(names) >= guide.SetSize {
			break
		}
		if !roster[word] || seen[word] {
			continue
		}
		seen[word] = true
		names = append(names, word)
	}
	return names
}

// scorePercentile rates a dinner score against a sampled distribution of
// random invite lists for the same problem. The sampling seed is derived
// from the problem ID, so the percentile for a given (problem, score) pair
// is stable across runs and machines.
func scorePercentile(problem *schema.Problem, score float64) float64 {
	guide := &problem.ScoringGuide

	h := fnv.New64a()
	h.Write([]byte(problem.ID)) //nolint:errcheck
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	names := guide.GuestNames()
	setSize := guide.SetSize
	if setSize > len(names) {
		setSize = len(names)
	}
	dist := statistics.Sample(rng, statistics.DefaultSampleCount, func(rng *rand.Rand) float64 {
		perm := rng.Perm(len(names))
		invited := make([]string, setSize)
		for i := 0; i < setSize; i++ {
			invited[i] = names[perm[i]]
		}
		return guide.ScoreInviteList(invited)
	})

	percentile, _, _ := dist.Ranking(score)
	return percentile
}
