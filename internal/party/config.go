package party

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BimodalDiscount splits the point-value distribution into a majority mode
// and a discounted minority mode. Discount is the percentage knocked off the
// minority's mean; Population is the percentage of guests placed in the
// minority. Both zero means a plain unimodal distribution.
type BimodalDiscount struct {
	Discount   float64 `yaml:"discount_pct" json:"discount_pct"`
	Population float64 `yaml:"population_pct" json:"population_pct"`
}

// IsZero reports whether the discount degenerates to a unimodal distribution.
func (b BimodalDiscount) IsZero() bool {
	return b.Discount == 0 && b.Population == 0
}

// Config carries every generation parameter. All sampling is driven by the
// explicit Seed; there is no ambient randomness anywhere in the generator.
type Config struct {
	AvgPoints    float64         `yaml:"avg_points"`
	PointsSpread float64         `yaml:"points_spread"`
	MinInterests int             `yaml:"min_interests"`
	MaxInterests int             `yaml:"max_interests"`
	Bimodal      BimodalDiscount `yaml:"bimodal_discount"`

	// NumParties is the number of problems generated per requested set size.
	NumParties int `yaml:"num_parties"`

	// SetSizes lists the target invite-list sizes. Problems are generated
	// for every size, NumParties replicates each.
	SetSizes []int `yaml:"set_size"`

	// Seed drives every sampling decision. It is required: a nil seed fails
	// validation rather than falling back to a global source.
	Seed *int64 `yaml:"seed"`

	// PoolSize and VocabSize override the derived pool and vocabulary
	// sizes. Zero means derive them from the set size (see poolSizeFor and
	// vocabSizeFor).
	PoolSize  int `yaml:"pool_size,omitempty"`
	VocabSize int `yaml:"vocab_size,omitempty"`
}

// LoadConfig reads and validates a generation config from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// maxPoolSize is the largest pool any configuration can ask for, bounded by
// the embedded name corpus.
func maxPoolSize() int {
	return len(guestNames)
}

// poolSizeFor picks a pool size for a target set size: big enough that the
// selection is neither forced nor impossible, small enough that the prompt
// stays readable.
func (c *Config) poolSizeFor(setSize int) int {
	if c.PoolSize > 0 {
		return c.PoolSize
	}
	size := 2 * setSize
	if size < setSize+3 {
		size = setSize + 3
	}
	if size > maxPoolSize() {
		size = maxPoolSize()
	}
	return size
}

// vocabSizeFor picks a per-pool vocabulary size. It always exceeds
// MaxInterests so distinct interest sets exist and repeated full overlap
// between guests is not the common case.
func (c *Config) vocabSizeFor() int {
	if c.VocabSize > 0 {
		return c.VocabSize
	}
	size := 2 * c.MaxInterests
	if size < c.MaxInterests+2 {
		size = c.MaxInterests + 2
	}
	if size > len(interestLabels) {
		size = len(interestLabels)
	}
	return size
}

// Validate checks every parameter eagerly and returns an
// *InvalidConfigError naming the first offending field. Generate refuses to
// sample anything until this passes.
func (c *Config) Validate() error {
	if c.AvgPoints <= 0 {
		return &InvalidConfigError{Field: "avg_points", Reason: fmt.Sprintf("must be > 0, got %v", c.AvgPoints)}
	}
	if c.PointsSpread < 0 {
		return &InvalidConfigError{Field: "points_spread", Reason: fmt.Sprintf("must be >= 0, got %v", c.PointsSpread)}
	}
	if c.MinInterests < 1 {
		return &InvalidConfigError{Field: "min_interests", Reason: fmt.Sprintf("must be >= 1, got %d", c.MinInterests)}
	}
	if c.MaxInterests < c.MinInterests {
		return &InvalidConfigError{Field: "max_interests", Reason: fmt.Sprintf("must be >= min_interests (%d), got %d", c.MinInterests, c.MaxInterests)}
	}
	if c.MaxInterests > len(interestLabels) {
		return &InvalidConfigError{Field: "max_interests", Reason: fmt.Sprintf("must be <= interest corpus size (%d), got %d", len(interestLabels), c.MaxInterests)}
	}
	if c.Bimodal.Discount < 0 || c.Bimodal.Discount >= 100 {
		return &InvalidConfigError{Field: "bimodal_discount", Reason: fmt.Sprintf("discount_pct must be in [0, 100), got %v", c.Bimodal.Discount)}
	}
	if c.Bimodal.Population < 0 || c.Bimodal.Population > 50 {
		return &InvalidConfigError{Field: "bimodal_discount", Reason: fmt.Sprintf("population_pct must be in [0, 50] (the discounted group is a minority), got %v", c.Bimodal.Population)}
	}
	if c.NumParties < 1 {
		return &InvalidConfigError{Field: "num_parties", Reason: fmt.Sprintf("must be >= 1, got %d", c.NumParties)}
	}
	if len(c.SetSizes) == 0 {
		return &InvalidConfigError{Field: "set_size", Reason: "at least one set size is required"}
	}
	for _, size := range c.SetSizes {
		if size < 1 {
			return &InvalidConfigError{Field: "set_size", Reason: fmt.Sprintf("sizes must be >= 1, got %d", size)}
		}
		if size >= c.poolSizeFor(size) {
			return &InvalidConfigError{Field: "set_size", Reason: fmt.Sprintf("size %d cannot be satisfied by any feasible pool (max pool size %d)", size, c.poolSizeFor(size))}
		}
	}
	if c.PoolSize > 0 && c.PoolSize > maxPoolSize() {
		return &InvalidConfigError{Field: "pool_size", Reason: fmt.Sprintf("must be <= name corpus size (%d), got %d", maxPoolSize(), c.PoolSize)}
	}
	if c.VocabSize > 0 {
		if c.VocabSize < c.MinInterests {
			return &InvalidConfigError{Field: "vocab_size", Reason: fmt.Sprintf("must be >= min_interests (%d), got %d", c.MinInterests, c.VocabSize)}
		}
		if c.VocabSize > len(interestLabels) {
			return &InvalidConfigError{Field: "vocab_size", Reason: fmt.Sprintf("must be <= interest corpus size (%d), got %d", len(interestLabels), c.VocabSize)}
		}
	}
	if c.Seed == nil {
		return &InvalidConfigError{Field: "seed", Reason: "an explicit seed is required"}
	}
	return nil
}
