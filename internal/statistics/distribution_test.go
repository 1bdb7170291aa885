package statistics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedDistribution(scores ...float64) *Distribution {
	i := -1
	rng := rand.New(rand.NewSource(0))
	return Sample(rng, len(scores), func(*rand.Rand) float64 {
		i++
		return scores[i]
	})
}

func TestSampleIsDeterministic(t *testing.T) {
	draw := func(rng *rand.Rand) float64 { return rng.Float64() * 100 }

	a := Sample(rand.New(rand.NewSource(5)), 50, draw)
	b := Sample(rand.New(rand.NewSource(5)), 50, draw)

	require.Equal(t, a.Len(), b.Len())
	for k := 1; k <= a.Len(); k++ {
		assert.Equal(t, a.KthHighest(k), b.KthHighest(k))
	}
}

func TestKthHighest(t *testing.T) {
	dist := fixedDistribution(3, 9, 7, 1, 5)

	tests := []struct {
		k    int
		want float64
	}{
		{1, 9},
		{2, 7},
		{3, 5},
		{5, 1},
		{6, 1}, // past the end, lowest sample
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dist.KthHighest(tt.k), "k=%d", tt.k)
	}
}

func TestKthHighestEmpty(t *testing.T) {
	dist := fixedDistribution()
	assert.Equal(t, 0.0, dist.KthHighest(1))
}

func TestRanking(t *testing.T) {
	dist := fixedDistribution(10, 20, 30, 40)

	tests := []struct {
		name           string
		score          float64
		wantPercentile float64
		wantRank       int
		wantPctOfMax   float64
	}{
		{"beats everything", 50, 1.0, 1, 1.25},
		{"matches the best", 40, 1.0, 1, 1.0},
		{"middle of the pack", 25, 0.5, 3, 0.625},
		{"below everything", 5, 0.0, 5, 0.125},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percentile, rank, pctOfMax := dist.Ranking(tt.score)
			assert.Equal(t, tt.wantPercentile, percentile)
			assert.Equal(t, tt.wantRank, rank)
			assert.InDelta(t, tt.wantPctOfMax, pctOfMax, 1e-9)
		})
	}
}

func TestRankingEmpty(t *testing.T) {
	percentile, rank, pctOfMax := fixedDistribution().Ranking(12)
	assert.Equal(t, 0.0, percentile)
	assert.Equal(t, 1, rank)
	assert.Equal(t, 1.0, pctOfMax)
}
