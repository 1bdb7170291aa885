package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGuide() *ScoringGuide {
	return &ScoringGuide{
		Version:            GuideVersion,
		TaskDescription:    "Select 3 people for a dinner party that will have the most engaging conversations.",
		SelectionCriterion: SelectionTopSharedInterests,
		SetSize:            3,
		Dimensions:         DefaultDimensions(),
		People: []GuestEntry{
			{Name: "Alice", Points: 25, Interests: map[string]int{"hiking": 4, "chess": 2, "baking": 5}},
			{Name: "Bob", Points: 25, Interests: map[string]int{"hiking": 3, "chess": 5}},
			{Name: "Carol", Points: 25, Interests: map[string]int{"hiking": 2, "baking": 1, "painting": 5}},
			{Name: "Dave", Points: 25, Interests: map[string]int{"astronomy": 5, "painting": 4}},
			{Name: "Erin", Points: 25, Interests: map[string]int{"chess": 1, "astronomy": 3}},
		},
	}
}

func TestScoreInviteList(t *testing.T) {
	guide := testGuide()

	// Alice, Bob, Carol pool:
	//   hiking  shared by 3, levels 4+3+2 = 9
	//   chess   shared by 2, levels 2+5   = 7
	//   baking  shared by 2, levels 5+1   = 6
	//   painting shared by 1, level 5 (outside the top three)
	// Score sums every level of the top three interests: 9 + 7 + 6 = 22.
	score := guide.ScoreInviteList([]string{"Alice", "Bob", "Carol"})
	assert.Equal(t, 22.0, score)
}

func TestScoreInviteList_TieBreaksOnLabel(t *testing.T) {
	guide := &ScoringGuide{
		SetSize: 2,
		People: []GuestEntry{
			{Name: "A", Interests: map[string]int{"zebra": 3, "apple": 3}},
			{Name: "B", Interests: map[string]int{"zebra": 3, "apple": 3, "mango": 1}},
		},
	}

	// zebra and apple tie on share count and level sum; apple wins the top
	// slot alphabetically. With TopInterestCount = 3 all three contribute
	// anyway, so the score exposes only the total: 6 + 6 + 1.
	assert.Equal(t, 13.0, guide.ScoreInviteList([]string{"A", "B"}))
}

func TestScoreInviteList_TruncatesToSetSize(t *testing.T) {
	guide := testGuide()
	guide.SetSize = 2

	// Only Alice and Bob count; Carol is past the set size.
	// hiking 4+3=7, chess 2+5=7, baking 5. Total 19.
	score := guide.ScoreInviteList([]string{"Alice", "Bob", "Carol"})
	assert.Equal(t, 19.0, score)
}

func TestScoreInviteList_IgnoresUnknownAndDuplicateNames(t *testing.T) {
	guide := testGuide()
	guide.SetSize = 2

	with := guide.ScoreInviteList([]string{"Zelda", "Alice", "Alice", "Bob"})
	without := guide.ScoreInviteList([]string{"Alice", "Bob"})
	assert.Equal(t, without, with)
}

func TestScoreInviteList_EmptySelection(t *testing.T) {
	guide := testGuide()
	assert.Equal(t, 0.0, guide.ScoreInviteList(nil))
	assert.Equal(t, 0.0, guide.ScoreInviteList([]string{"Nobody", "Here"}))
}

func TestGuestNames(t *testing.T) {
	guide := testGuide()
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave", "Erin"}, guide.GuestNames())
}

func TestDefaultDimensions(t *testing.T) {
	dims := DefaultDimensions()
	require.Len(t, dims, len(MetricNames))
	for i, d := range dims {
		assert.Equal(t, MetricNames[i], d.Name)
		assert.Equal(t, MetricMin, d.Min)
		assert.Equal(t, MetricMax, d.Max)
	}
}
