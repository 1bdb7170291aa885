// Package wizard provides the interactive form behind `jstr init`, which
// scaffolds a generation config YAML.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ConfigSpec holds all fields collected during the interactive wizard.
type ConfigSpec struct {
	AvgPoints     float64
	PointsSpread  float64
	MinInterests  int
	MaxInterests  int
	DiscountPct   float64
	PopulationPct float64
	NumParties    int
	SetSizes      []int
	Seed          int64
}

const configTemplate = `# jstr generation config
avg_points: {{ .AvgPoints }}
points_spread: {{ .PointsSpread }}
min_interests: {{ .MinInterests }}
max_interests: {{ .MaxInterests }}
bimodal_discount:
  discount_pct: {{ .DiscountPct }}
  population_pct: {{ .PopulationPct }}
num_parties: {{ .NumParties }}
set_size: [{{ joinInts .SetSizes }}]
seed: {{ .Seed }}
`

// RunConfigWizard runs an interactive huh form to collect generation
// parameters.
func RunConfigWizard(in io.Reader, out io.Writer) (*ConfigSpec, error) {
	var (
		avgPoints     = "25"
		pointsSpread  = "0"
		minInterests  = "2"
		maxInterests  = "6"
		discountPct   = "0"
		populationPct = "0"
		numParties    = "10"
		setSizesRaw   = "5"
		seedRaw       = "0"
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Average points").
				Description("Mean point value per guest (> 0)").
				Value(&avgPoints).
				Validate(requireFloat(func(v float64) error {
					if v <= 0 {
						return fmt.Errorf("must be > 0")
					}
					return nil
				})),
			huh.NewInput().
				Title("Points spread").
				Description("Dispersion around the mean; 0 gives every guest the mean exactly").
				Value(&pointsSpread).
				Validate(requireFloat(nonNegative)),
			huh.NewInput().
				Title("Min interests").
				Value(&minInterests).
				Validate(requireInt(atLeast(1))),
			huh.NewInput().
				Title("Max interests").
				Value(&maxInterests).
				Validate(requireInt(atLeast(1))),
			huh.NewInput().
				Title("Bimodal discount %").
				Description("Percentage knocked off the minority group's mean (0 disables)").
				Value(&discountPct).
				Validate(requireFloat(nonNegative)),
			huh.NewInput().
				Title("Bimodal population %").
				Description("Percentage of guests in the discounted minority (0-50)").
				Value(&populationPct).
				Validate(requireFloat(nonNegative)),
			huh.NewInput().
				Title("Parties per set size").
				Value(&numParties).
				Validate(requireInt(atLeast(1))),
			huh.NewInput().
				Title("Set sizes").
				Description("Comma-separated target invite-list sizes, e.g. 3,5,7").
				Value(&setSizesRaw).
				Validate(func(s string) error {
					_, err := splitInts(s)
					return err
				}),
			huh.NewInput().
				Title("Seed").
				Description("Random seed; identical config and seed reproduce the dataset byte for byte").
				Value(&seedRaw).
				Validate(func(s string) error {
					_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					return err
				}),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	setSizes, err := splitInts(setSizesRaw)
	if err != nil {
		return nil, err
	}
	seed, err := strconv.ParseInt(strings.TrimSpace(seedRaw), 10, 64)
	if err != nil {
		return nil, err
	}

	return &ConfigSpec{
		AvgPoints:     mustFloat(avgPoints),
		PointsSpread:  mustFloat(pointsSpread),
		MinInterests:  mustInt(minInterests),
		MaxInterests:  mustInt(maxInterests),
		DiscountPct:   mustFloat(discountPct),
		PopulationPct: mustFloat(populationPct),
		NumParties:    mustInt(numParties),
		SetSizes:      setSizes,
		Seed:          seed,
	}, nil
}

// GenerateConfigYAML renders a generation config file from the given spec.
func GenerateConfigYAML(spec *ConfigSpec) (string, error) {
	tmpl, err := template.New("config").Funcs(template.FuncMap{
		"joinInts": func(vals []int) string {
			parts := make([]string, len(vals))
			for i, v := range vals {
				parts[i] = strconv.Itoa(v)
			}
			return strings.Join(parts, ", ")
		},
	}).Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func splitInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", part)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one set size is required")
	}
	return out, nil
}

func requireFloat(check func(float64) error) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		return check(v)
	}
}

func requireInt(check func(int) error) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%q is not an integer", s)
		}
		return check(v)
	}
}

func nonNegative(v float64) error {
	if v < 0 {
		return fmt.Errorf("must be >= 0")
	}
	return nil
}

func atLeast(n int) func(int) error {
	return func(v int) error {
		if v < n {
			return fmt.Errorf("must be >= %d", n)
		}
		return nil
	}
}

func mustFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func mustInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}
