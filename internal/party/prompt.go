package party

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/qemqemqem/JSTR/internal/schema"
)

func taskDescription(setSize int) string {
	return fmt.Sprintf("Select %d people for a dinner party that will have the most engaging conversations.", setSize)
}

// renderQuestion renders the full natural-language scenario: task line,
// numbered roster with interests and point values, the question, and an
// explanation of the scoring method with the score to beat.
func renderQuestion(pool *Pool, setSize int, targetScore float64) string {
	var sb strings.Builder

	sb.WriteString(taskDescription(setSize))
	sb.WriteString("\n\nPeople and their interests:\n")
	for i, g := range pool.Guests {
		parts := make([]string, len(g.Interests))
		for j, in := range g.Interests {
			parts[j] = fmt.Sprintf("%s (level %d)", in.Label, in.Level)
		}
		sb.WriteString(fmt.Sprintf("%d. %s [%s points]: %s\n",
			i+1, g.Name, formatPoints(g.Points), strings.Join(parts, ", ")))
	}

	sb.WriteString(fmt.Sprintf("\nPlease choose %d people that would create the most engaging dinner party.\n", setSize))
	sb.WriteString("\nScoring Explanation:\n")
	sb.WriteString("The dinner party is scored based on the interests of the selected people. ")
	sb.WriteString("The scoring process works as follows:\n")
	sb.WriteString("1. All interests of the selected people are collected.\n")
	sb.WriteString("2. Interests are sorted by: number of people sharing the interest (descending), ")
	sb.WriteString("sum of interest levels (descending), and alphabetically.\n")
	sb.WriteString(fmt.Sprintf("3. The top %d interests are selected.\n", schema.TopInterestCount))
	sb.WriteString("4. The final score is the sum of all interest levels for these top interests.\n")
	sb.WriteString("Each person's point value reflects how strongly they want to attend; prefer ")
	sb.WriteString("higher-point guests when selections are otherwise tied.\n")
	sb.WriteString("Your goal is to maximize this score by selecting a diverse group with strong, shared interests.\n")
	sb.WriteString(fmt.Sprintf("\nYour score to beat is: %s.", formatPoints(targetScore)))

	return sb.String()
}

// formatPoints renders a point value without trailing zeros (25 rather than
// 25.0) so prompts read naturally.
func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
