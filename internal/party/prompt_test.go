package party

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderQuestion(t *testing.T) {
	pool := &Pool{
		Vocabulary: []string{"hiking", "chess", "baking"},
		Guests: []Guest{
			{Name: "Alice", Points: 25, Interests: []Interest{{Label: "hiking", Level: 4}, {Label: "chess", Level: 2}}},
			{Name: "Bob", Points: 12.5, Interests: []Interest{{Label: "baking", Level: 5}}},
		},
	}

	question := renderQuestion(pool, 2, 11)

	assert.True(t, strings.HasPrefix(question,
		"Select 2 people for a dinner party that will have the most engaging conversations."))
	assert.Contains(t, question, "1. Alice [25 points]: hiking (level 4), chess (level 2)")
	assert.Contains(t, question, "2. Bob [12.5 points]: baking (level 5)")
	assert.Contains(t, question, "Please choose 2 people")
	assert.Contains(t, question, "Scoring Explanation:")
	assert.Contains(t, question, "The top 3 interests are selected.")
	assert.True(t, strings.HasSuffix(question, "Your score to beat is: 11."))
}

func TestFormatPoints(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{25, "25"},
		{12.5, "12.5"},
		{0.1, "0.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatPoints(tt.in))
	}
}

func TestCorpusWellFormed(t *testing.T) {
	require.NotEmpty(t, guestNames)
	require.NotEmpty(t, interestLabels)

	seen := map[string]bool{}
	for _, name := range guestNames {
		assert.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true

		// Name extraction at scoring time only recognizes a capitalized
		// word; the corpus must stay compatible with it.
		assert.Regexp(t, `^[A-Z][a-z]*$`, name)
	}

	seenLabel := map[string]bool{}
	for _, label := range interestLabels {
		assert.False(t, seenLabel[label], "duplicate label %q", label)
		seenLabel[label] = true
		assert.NotEmpty(t, label)
	}
}
