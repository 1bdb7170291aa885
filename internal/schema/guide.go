package schema

import "sort"

// GuideVersion is the current scoring-guide schema version. Bump this when
// the guide's shape changes; the scorer refuses guides it doesn't know how
// to read so old datasets fail loudly at the boundary instead of mid-run.
const GuideVersion = 1

// SelectionTopSharedInterests is the selection criterion used by generated
// problems: collect every interest of the invited guests, rank interests by
// (number of guests sharing, sum of levels, label), and sum all levels of
// the top three.
const SelectionTopSharedInterests = "top_shared_interests"

// TopInterestCount is how many of the best shared interests count toward a
// party's score.
const TopInterestCount = 3

// Metric score bounds shared by every judging dimension.
const (
	MetricMin = 0.0
	MetricMax = 10.0
)

// Judging dimension names. These are the keys a judge must return.
const (
	DimAnswerQuality   = "answer_quality"
	DimCreativity      = "creativity"
	DimAppropriateness = "appropriateness"
)

// MetricNames lists the judging dimensions in canonical order.
var MetricNames = []string{DimAnswerQuality, DimCreativity, DimAppropriateness}

// GuestEntry is one guest as recorded in a scoring guide.
type GuestEntry struct {
	Name      string         `json:"name"`
	Interests map[string]int `json:"interests"`
	Points    float64        `json:"points"`
}

// Dimension declares one judging dimension and its score bounds.
type Dimension struct {
	Name        string  `json:"name"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Description string  `json:"description,omitempty"`
}

// ScoringGuide is the structured judging criteria attached to every generated
// problem. It is the only contract shared between the generator and the
// scorer: anything the scorer needs must be present here.
type ScoringGuide struct {
	Version            int          `json:"version"`
	TaskDescription    string       `json:"task_description"`
	SelectionCriterion string       `json:"selection_criterion"`
	People             []GuestEntry `json:"people"`
	SetSize            int          `json:"set_size"`
	Dimensions         []Dimension  `json:"dimensions"`
}

// DefaultDimensions returns the three judging dimensions every generated
// guide carries.
func DefaultDimensions() []Dimension {
	return []Dimension{
		{Name: DimAnswerQuality, Min: MetricMin, Max: MetricMax,
			Description: "Does the answer name a valid invite list of the right size and score well against the selection criterion?"},
		{Name: DimCreativity, Min: MetricMin, Max: MetricMax,
			Description: "Does the answer show non-obvious reasoning about interest overlap and trade-offs?"},
		{Name: DimAppropriateness, Min: MetricMin, Max: MetricMax,
			Description: "Does the answer stay on task, justify the selection via the stated criteria, and handle ties sensibly?"},
	}
}

// interestTally accumulates levels for one interest across invited guests.
type interestTally struct {
	label  string
	levels []int
}

func (t interestTally) sum() int {
	total := 0
	for _, lv := range t.levels {
		total += lv
	}
	return total
}

// ScoreInviteList scores a selection of guest names against this guide's
// criterion. Names not present in the guide are ignored; only the first
// SetSize matching guests count. The algorithm: pool the interests of the
// invited guests, order interests by share count (desc), then level sum
// (desc), then label (asc), and sum every level of the top three.
func (g *ScoringGuide) ScoreInviteList(names []string) float64 {
	invited := g.lookupGuests(names)

	byLabel := map[string]*interestTally{}
	for _, guest := range invited {
		for label, level := range guest.Interests {
			t, ok := byLabel[label]
			if !ok {
				t = &interestTally{label: label}
				byLabel[label] = t
			}
			t.levels = append(t.levels, level)
		}
	}

	tallies := make([]*interestTally, 0, len(byLabel))
	for _, t := range byLabel {
		tallies = append(tallies, t)
	}
	sort.Slice(tallies, func(i, j int) bool {
		a, b := tallies[i], tallies[j]
		if len(a.levels) != len(b.levels) {
			return len(a.levels) > len(b.levels)
		}
		if a.sum() != b.sum() {
			return a.sum() > b.sum()
		}
		return a.label < b.label
	})

	score := 0.0
	for i, t := range tallies {
		if i >= TopInterestCount {
			break
		}
		score += float64(t.sum())
	}
	return score
}

// lookupGuests resolves names to guide entries, preserving the order the
// names were given, dropping unknowns and duplicates, and truncating to the
// guide's set size.
func (g *ScoringGuide) lookupGuests(names []string) []GuestEntry {
	byName := make(map[string]GuestEntry, len(g.People))
	for _, p := range g.People {
		byName[p.Name] = p
	}

	seen := map[string]bool{}
	var invited []GuestEntry
	for _, name := range names {
		if len(invited) >= g.SetSize {
			break
		}
		guest, ok := byName[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		invited = append(invited, guest)
	}
	return invited
}

// GuestNames returns the roster in guide order.
func (g *ScoringGuide) GuestNames() []string {
	names := make([]string, 0, len(g.People))
	for _, p := range g.People {
		names = append(names, p.Name)
	}
	return names
}
