package party

import (
	"math/rand"
	"testing"

	"github.com/qemqemqem/JSTR/internal/dataset"
	"github.com/qemqemqem/JSTR/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seed := int64(1234)
	cfg := &Config{
		AvgPoints:    25,
		PointsSpread: 0,
		MinInterests: 2,
		MaxInterests: 6,
		Bimodal:      BimodalDiscount{Discount: 0, Population: 15},
		NumParties:   2,
		SetSizes:     []int{3, 4, 5, 7},
		Seed:         &seed,
	}

	result, err := Generate(cfg)
	require.NoError(t, err)
	require.Empty(t, result.Skipped)

	// Two replicates per requested size.
	require.Len(t, result.Problems, 8)

	bySize := map[int]int{}
	for _, p := range result.Problems {
		bySize[p.ScoringGuide.SetSize]++
	}
	assert.Equal(t, map[int]int{3: 2, 4: 2, 5: 2, 7: 2}, bySize)

	for _, p := range result.Problems {
		guide := p.ScoringGuide

		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Question)
		assert.Equal(t, schema.GuideVersion, guide.Version)
		assert.Equal(t, schema.SelectionTopSharedInterests, guide.SelectionCriterion)
		assert.Greater(t, len(guide.People), guide.SetSize, "pool must exceed the set size")

		for _, guest := range guide.People {
			// spread 0 pins every point value, discount or not.
			assert.Equal(t, 25.0, guest.Points, "guest %s", guest.Name)

			count := len(guest.Interests)
			assert.GreaterOrEqual(t, count, cfg.MinInterests, "guest %s", guest.Name)
			assert.LessOrEqual(t, count, cfg.MaxInterests, "guest %s", guest.Name)

			for label, level := range guest.Interests {
				assert.GreaterOrEqual(t, level, MinInterestLevel, "guest %s interest %s", guest.Name, label)
				assert.LessOrEqual(t, level, MaxInterestLevel, "guest %s interest %s", guest.Name, label)
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	seed := int64(99)
	cfg := &Config{
		AvgPoints:    20,
		PointsSpread: 5,
		MinInterests: 2,
		MaxInterests: 4,
		Bimodal:      BimodalDiscount{Discount: 30, Population: 20},
		NumParties:   3,
		SetSizes:     []int{4, 6},
		Seed:         &seed,
	}

	first, err := Generate(cfg)
	require.NoError(t, err)
	second, err := Generate(cfg)
	require.NoError(t, err)

	require.Len(t, second.Problems, len(first.Problems))
	for i := range first.Problems {
		a, err := dataset.MarshalProblem(&first.Problems[i])
		require.NoError(t, err)
		b, err := dataset.MarshalProblem(&second.Problems[i])
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
	}
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	mk := func(seed int64) *Result {
		cfg := validConfig()
		cfg.Seed = &seed
		result, err := Generate(cfg)
		require.NoError(t, err)
		return result
	}

	a := mk(1)
	b := mk(2)
	assert.NotEqual(t, a.Problems[0].ID, b.Problems[0].ID)
	assert.NotEqual(t, a.Problems[0].Question, b.Problems[0].Question)
}

func TestGenerate_TargetScoreIsAchievable(t *testing.T) {
	result, err := Generate(validConfig())
	require.NoError(t, err)

	for _, p := range result.Problems {
		assert.Greater(t, p.TargetScore, 0.0)

		// An exhaustive best would beat it, but any full-size invite list
		// scores within the same scale; the target came from rank 3 of
		// sampled lists so it cannot exceed the best sampled list.
		names := make([]string, 0, len(p.ScoringGuide.People))
		for _, g := range p.ScoringGuide.People {
			names = append(names, g.Name)
		}
		best := p.ScoringGuide.ScoreInviteList(names[:p.ScoringGuide.SetSize])
		assert.Greater(t, best, 0.0)
	}
}

func TestSamplePoints_SpreadZeroOverridesDiscount(t *testing.T) {
	cfg := &Config{
		AvgPoints:    25,
		PointsSpread: 0,
		Bimodal:      BimodalDiscount{Discount: 40, Population: 30},
	}
	rng := rand.New(rand.NewSource(7))

	points := samplePoints(rng, cfg, 20)
	for _, v := range points {
		assert.Equal(t, 25.0, v)
	}
}

func TestSamplePoints_BimodalSplit(t *testing.T) {
	cfg := &Config{
		AvgPoints:    100,
		PointsSpread: 5,
		Bimodal:      BimodalDiscount{Discount: 50, Population: 25},
	}
	rng := rand.New(rand.NewSource(11))

	const poolSize = 200
	points := samplePoints(rng, cfg, poolSize)
	require.Len(t, points, poolSize)

	// With a 50% discount and a 5 point spread the two modes cannot overlap:
	// the minority lies in [45, 55], the majority around 116.7. Split on the
	// midpoint and check the cluster means.
	var loSum, hiSum float64
	var loN, hiN int
	for _, v := range points {
		if v < 80 {
			loSum += v
			loN++
		} else {
			hiSum += v
			hiN++
		}
	}
	require.Equal(t, poolSize/4, loN, "a quarter of the pool is discounted")

	loMean := loSum / float64(loN)
	hiMean := hiSum / float64(hiN)
	assert.InDelta(t, 50.0, loMean, 3.0)
	assert.Less(t, loMean, hiMean)

	// The overall mean stays pinned to avg_points (within rounding noise).
	total := (loSum + hiSum) / float64(poolSize)
	assert.InDelta(t, 100.0, total, 2.0)
}

func TestSamplePoints_ClampsAtFloor(t *testing.T) {
	cfg := &Config{
		AvgPoints:    1,
		PointsSpread: 10,
	}
	rng := rand.New(rand.NewSource(3))

	for _, v := range samplePoints(rng, cfg, 100) {
		assert.GreaterOrEqual(t, v, minPointValue)
	}
}

func TestPoolValidate(t *testing.T) {
	valid := func() *Pool {
		return &Pool{
			Vocabulary: []string{"hiking", "chess"},
			Guests: []Guest{
				{Name: "Alice", Points: 10, Interests: []Interest{{Label: "hiking", Level: 3}}},
				{Name: "Bob", Points: 12, Interests: []Interest{{Label: "chess", Level: 5}}},
			},
		}
	}
	require.NoError(t, valid().Validate(1, 2))

	tests := []struct {
		name   string
		mutate func(*Pool)
	}{
		{
			name:   "duplicate guest names",
			mutate: func(p *Pool) { p.Guests[1].Name = "Alice" },
		},
		{
			name:   "non-positive points",
			mutate: func(p *Pool) { p.Guests[0].Points = 0 },
		},
		{
			name:   "interest outside vocabulary",
			mutate: func(p *Pool) { p.Guests[0].Interests[0].Label = "spelunking" },
		},
		{
			name:   "repeated interest label",
			mutate: func(p *Pool) { p.Guests[0].Interests = append(p.Guests[0].Interests, Interest{Label: "hiking", Level: 1}) },
		},
		{
			name:   "level out of range",
			mutate: func(p *Pool) { p.Guests[0].Interests[0].Level = 6 },
		},
		{
			name:   "empty vocabulary",
			mutate: func(p *Pool) { p.Vocabulary = nil },
		},
		{
			name:   "no guests",
			mutate: func(p *Pool) { p.Guests = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := valid()
			tt.mutate(pool)

			err := pool.Validate(1, 2)
			var malformed *MalformedPoolError
			require.ErrorAs(t, err, &malformed)
			assert.NotEmpty(t, malformed.Violation)
		})
	}
}
