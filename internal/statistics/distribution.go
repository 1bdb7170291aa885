// Package statistics samples score distributions for generated problems and
// ranks observed scores against them.
package statistics

import (
	"math/rand"
	"sort"
)

// DefaultSampleCount is the number of random invite lists sampled when
// estimating a problem's score distribution.
const DefaultSampleCount = 1000

// Distribution holds sampled scores for one problem, sorted descending.
type Distribution struct {
	scores []float64
}

// Sample draws n scores using the provided draw function and the caller's
// seeded source. All randomness flows through rng; sampling the same problem
// with the same seed always produces the same distribution.
func Sample(rng *rand.Rand, n int, draw func(rng *rand.Rand) float64) *Distribution {
	scores := make([]float64, n)
	for i := 0; i < n; i++ {
		scores[i] = draw(rng)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	return &Distribution{scores: scores}
}

// Len returns the number of sampled scores.
func (d *Distribution) Len() int {
	return len(d.scores)
}

// KthHighest returns the kth highest sampled score (1-based). When fewer
// than k samples exist it returns the lowest sample, and 0 for an empty
// distribution.
func (d *Distribution) KthHighest(k int) float64 {
	if len(d.scores) == 0 {
		return 0
	}
	if k > len(d.scores) {
		return d.scores[len(d.scores)-1]
	}
	return d.scores[k-1]
}

// Ranking rates a score against the sampled distribution. It returns the
// percentile (fraction of samples at or below the score), the absolute rank
// (1 = better than every sample), and the fraction of the best sampled
// score.
func (d *Distribution) Ranking(score float64) (percentile float64, rank int, percentOfMax float64) {
	if len(d.scores) == 0 {
		return 0.0, 1, 1.0
	}

	atOrBelow := 0
	above := 0
	for _, s := range d.scores {
		if s <= score {
			atOrBelow++
		}
		if s > score {
			above++
		}
	}

	percentile = float64(atOrBelow) / float64(len(d.scores))
	rank = above + 1

	max := d.scores[0]
	percentOfMax = 1.0
	if max > 0 {
		percentOfMax = score / max
	}
	return percentile, rank, percentOfMax
}
