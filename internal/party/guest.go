package party

import "fmt"

// Interest level bounds, matching the rendered "level N" scale.
const (
	MinInterestLevel = 1
	MaxInterestLevel = 5
)

// Interest is one of a guest's interests. Order is meaningful: it is the
// sampling order, which keeps rendered prompts stable for a fixed seed.
type Interest struct {
	Label string
	Level int
}

// Guest is one candidate invitee.
type Guest struct {
	Name      string
	Interests []Interest
	Points    float64
}

// InterestMap returns the guest's interests keyed by label.
func (g *Guest) InterestMap() map[string]int {
	m := make(map[string]int, len(g.Interests))
	for _, in := range g.Interests {
		m[in.Label] = in.Level
	}
	return m
}

// Pool is the guest pool backing one generated problem.
type Pool struct {
	Guests     []Guest
	Vocabulary []string
}

// Names returns guest names in pool order.
func (p *Pool) Names() []string {
	names := make([]string, 0, len(p.Guests))
	for _, g := range p.Guests {
		names = append(names, g.Name)
	}
	return names
}

// Validate checks the structural invariants every pool must satisfy before
// it is handed to later stages. It returns a *MalformedPoolError naming the
// first violated invariant; any failure here is a generator defect, never an
// expected runtime condition.
func (p *Pool) Validate(minInterests, maxInterests int) error {
	if len(p.Vocabulary) == 0 {
		return &MalformedPoolError{Violation: "empty interest vocabulary"}
	}
	if len(p.Guests) == 0 {
		return &MalformedPoolError{Violation: "empty guest pool"}
	}

	vocab := make(map[string]bool, len(p.Vocabulary))
	for _, label := range p.Vocabulary {
		vocab[label] = true
	}

	seenNames := make(map[string]bool, len(p.Guests))
	for _, g := range p.Guests {
		if g.Name == "" {
			return &MalformedPoolError{Violation: "guest with empty name"}
		}
		if seenNames[g.Name] {
			return &MalformedPoolError{Violation: fmt.Sprintf("duplicate guest name %q", g.Name)}
		}
		seenNames[g.Name] = true

		if g.Points <= 0 {
			return &MalformedPoolError{Violation: fmt.Sprintf("guest %q has non-positive point value %v", g.Name, g.Points)}
		}
		if n := len(g.Interests); n < minInterests || n > maxInterests {
			return &MalformedPoolError{Violation: fmt.Sprintf("guest %q has %d interests, want [%d, %d]", g.Name, n, minInterests, maxInterests)}
		}

		seenLabels := make(map[string]bool, len(g.Interests))
		for _, in := range g.Interests {
			if !vocab[in.Label] {
				return &MalformedPoolError{Violation: fmt.Sprintf("guest %q has interest %q outside the pool vocabulary", g.Name, in.Label)}
			}
			if seenLabels[in.Label] {
				return &MalformedPoolError{Violation: fmt.Sprintf("guest %q repeats interest %q", g.Name, in.Label)}
			}
			seenLabels[in.Label] = true
			if in.Level < MinInterestLevel || in.Level > MaxInterestLevel {
				return &MalformedPoolError{Violation: fmt.Sprintf("guest %q interest %q has level %d, want [%d, %d]", g.Name, in.Label, in.Level, MinInterestLevel, MaxInterestLevel)}
			}
		}
	}
	return nil
}
