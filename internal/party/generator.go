package party

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/qemqemqem/JSTR/internal/schema"
	"github.com/qemqemqem/JSTR/internal/statistics"
)

// targetScoreRank is which sampled score becomes the "score to beat": the
// kth highest over the sampled random invite lists.
const targetScoreRank = 3

// minPointValue is the floor applied after sampling so point values stay
// positive even when avg_points - points_spread dips below zero.
const minPointValue = 0.1

// SkippedItem records one requested problem the generator could not build.
// Skips are collected and reported alongside the successes, never dropped.
type SkippedItem struct {
	SetSize   int
	Replicate int
	Err       error
}

// Result is the outcome of one generation run.
type Result struct {
	Problems []schema.Problem
	Skipped  []SkippedItem
}

// Generate produces NumParties problems for every requested set size. The
// config is validated eagerly; nothing is sampled if validation fails.
// Infeasible items are skipped, logged, and reported in Result.Skipped; the
// call as a whole fails only when no item at all could be produced.
//
// Emission order and content are fully determined by the config and its
// seed: two calls with identical inputs serialize byte-identically.
func Generate(cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(*cfg.Seed))
	result := &Result{}

	for _, setSize := range cfg.SetSizes {
		for rep := 1; rep <= cfg.NumParties; rep++ {
			problem, err := generateOne(rng, cfg, setSize, rep)
			if err != nil {
				if infeasible, ok := err.(*InfeasiblePoolError); ok {
					slog.Warn("skipping infeasible party",
						"set_size", setSize,
						"replicate", rep,
						"reason", infeasible.Reason)
					result.Skipped = append(result.Skipped, SkippedItem{SetSize: setSize, Replicate: rep, Err: err})
					continue
				}
				// Anything else (notably MalformedPool) is a generator bug.
				return nil, err
			}
			result.Problems = append(result.Problems, *problem)
		}
	}

	if len(result.Problems) == 0 {
		return nil, fmt.Errorf("no problems could be generated: all %d requested items were infeasible", len(result.Skipped))
	}
	return result, nil
}

func generateOne(rng *rand.Rand, cfg *Config, setSize, replicate int) (*schema.Problem, error) {
	pool, err := buildPool(rng, cfg, setSize)
	if err != nil {
		return nil, err
	}

	maxInterests := cfg.MaxInterests
	if maxInterests > len(pool.Vocabulary) {
		maxInterests = len(pool.Vocabulary)
	}
	if err := pool.Validate(min(cfg.MinInterests, maxInterests), maxInterests); err != nil {
		return nil, err
	}

	guide := buildGuide(pool, setSize)

	dist := statistics.Sample(rng, statistics.DefaultSampleCount, func(rng *rand.Rand) float64 {
		return guide.ScoreInviteList(randomInviteList(rng, pool, setSize))
	})
	target := dist.KthHighest(targetScoreRank)

	return &schema.Problem{
		ID:           problemID(*cfg.Seed, setSize, replicate),
		Question:     renderQuestion(pool, setSize, target),
		TargetScore:  target,
		ScoringGuide: guide,
	}, nil
}

// problemID derives a stable identifier from the seed and the item's place
// in the run, so reruns emit identical records.
func problemID(seed int64, setSize, replicate int) string {
	name := fmt.Sprintf("jstr/party/%d/%d/%d", seed, setSize, replicate)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func buildPool(rng *rand.Rand, cfg *Config, setSize int) (*Pool, error) {
	poolSize := cfg.poolSizeFor(setSize)
	if poolSize <= setSize {
		return nil, &InfeasiblePoolError{
			SetSize:  setSize,
			PoolSize: poolSize,
			Reason:   "pool size must exceed set size",
		}
	}
	if poolSize > len(guestNames) {
		return nil, &InfeasiblePoolError{
			SetSize:  setSize,
			PoolSize: poolSize,
			Reason:   fmt.Sprintf("name corpus has only %d names", len(guestNames)),
		}
	}

	names := sampleStrings(rng, guestNames, poolSize)
	vocab := sampleStrings(rng, interestLabels, cfg.vocabSizeFor())
	points := samplePoints(rng, cfg, poolSize)

	guests := make([]Guest, poolSize)
	for i, name := range names {
		guests[i] = Guest{
			Name:      name,
			Interests: sampleInterests(rng, cfg, vocab),
			Points:    points[i],
		}
	}

	return &Pool{Guests: guests, Vocabulary: vocab}, nil
}

// samplePoints draws one point value per guest. With points_spread = 0 every
// guest gets exactly avg_points: the spread of zero overrides the bimodal
// discount's value shift (the population split still happens, it just moves
// nothing). With a non-zero spread and a non-zero discount, the minority
// mode's mean is discounted and the majority mode's mean is raised so the
// pool mean stays at avg_points; both modes keep the full spread.
func samplePoints(rng *rand.Rand, cfg *Config, poolSize int) []float64 {
	minorityCount := int(math.Round(float64(poolSize) * cfg.Bimodal.Population / 100.0))
	minority := make([]bool, poolSize)
	for _, idx := range rng.Perm(poolSize)[:minorityCount] {
		minority[idx] = true
	}

	points := make([]float64, poolSize)
	if cfg.PointsSpread == 0 {
		for i := range points {
			points[i] = cfg.AvgPoints
		}
		return points
	}

	minorityMean := cfg.AvgPoints
	majorityMean := cfg.AvgPoints
	if minorityCount > 0 && cfg.Bimodal.Discount > 0 {
		minorityMean = cfg.AvgPoints * (1 - cfg.Bimodal.Discount/100.0)
		majorityMean = (cfg.AvgPoints*float64(poolSize) - minorityMean*float64(minorityCount)) /
			float64(poolSize-minorityCount)
	}

	for i := range points {
		mean := majorityMean
		if minority[i] {
			mean = minorityMean
		}
		v := mean + (rng.Float64()*2-1)*cfg.PointsSpread
		v = math.Round(v*10) / 10
		if v < minPointValue {
			v = minPointValue
		}
		points[i] = v
	}
	return points
}

// sampleInterests draws a guest's interest set: a count uniform in
// [min_interests, max_interests] (capped by the vocabulary), distinct labels
// from the pool vocabulary, each with a level uniform in 1..5.
func sampleInterests(rng *rand.Rand, cfg *Config, vocab []string) []Interest {
	lo, hi := cfg.MinInterests, cfg.MaxInterests
	if hi > len(vocab) {
		hi = len(vocab)
	}
	if lo > hi {
		lo = hi
	}
	count := lo + rng.Intn(hi-lo+1)

	labels := sampleStrings(rng, vocab, count)
	interests := make([]Interest, count)
	for i, label := range labels {
		interests[i] = Interest{
			Label: label,
			Level: MinInterestLevel + rng.Intn(MaxInterestLevel-MinInterestLevel+1),
		}
	}
	return interests
}

// sampleStrings draws n distinct elements from src, in permutation order.
func sampleStrings(rng *rand.Rand, src []string, n int) []string {
	perm := rng.Perm(len(src))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = src[perm[i]]
	}
	return out
}

func randomInviteList(rng *rand.Rand, pool *Pool, setSize int) []string {
	return sampleStrings(rng, pool.Names(), setSize)
}

func buildGuide(pool *Pool, setSize int) schema.ScoringGuide {
	people := make([]schema.GuestEntry, len(pool.Guests))
	for i, g := range pool.Guests {
		people[i] = schema.GuestEntry{
			Name:      g.Name,
			Interests: g.InterestMap(),
			Points:    g.Points,
		}
	}

	return schema.ScoringGuide{
		Version:            schema.GuideVersion,
		TaskDescription:    taskDescription(setSize),
		SelectionCriterion: schema.SelectionTopSharedInterests,
		People:             people,
		SetSize:            setSize,
		Dimensions:         schema.DefaultDimensions(),
	}
}
