package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/qemqemqem/JSTR/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generateDataset runs the generate command and returns the problems it wrote.
func generateDataset(t *testing.T, dir string) (string, []string) {
	t.Helper()

	path := filepath.Join(dir, "problems.jsonl")
	_, err := runCommand(t, "generate", "--seed", "11", "-n", "2", "--set-size", "3", "--output", path)
	require.NoError(t, err)

	problems, err := dataset.ReadProblems(path)
	require.NoError(t, err)

	ids := make([]string, len(problems))
	for i, p := range problems {
		ids[i] = p.ID
	}
	return path, ids
}

func writeResponses(t *testing.T, dir string, responses []dataset.Response) string {
	t.Helper()

	path := filepath.Join(dir, "responses.jsonl")
	f, err := os.Create(path)
	require.NoError(t, err)
	enc := json.NewEncoder(f)
	for _, r := range responses {
		require.NoError(t, enc.Encode(r))
	}
	require.NoError(t, f.Close())
	return path
}

func TestScoreCommand(t *testing.T) {
	dir := t.TempDir()
	problemsPath, ids := generateDataset(t, dir)
	require.Len(t, ids, 2)

	responsesPath := writeResponses(t, dir, []dataset.Response{
		{ProblemID: ids[0], Response: "Answer: Alice, Bob, Carol"},
		{ProblemID: ids[1], Response: ""},
	})
	scoredPath := filepath.Join(dir, "scored.jsonl")

	stdout, err := runCommand(t,
		"score",
		"--problems", problemsPath,
		"--responses", responsesPath,
		"--output", scoredPath,
		"--judge", "mock",
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "scored")
	assert.Contains(t, stdout, "failed")
	assert.Contains(t, stdout, "response text is empty")
	assert.Contains(t, stdout, "Aggregate over 1 scored responses")
	assert.Contains(t, stdout, "Failed items excluded from the mean: 1")

	scored, err := dataset.ReadScored(scoredPath)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, ids[0], scored[0].ProblemID)
	assert.Equal(t, 5.0, scored[0].AnswerQuality)
}

func TestScoreCommand_UnknownProblemID(t *testing.T) {
	dir := t.TempDir()
	problemsPath, _ := generateDataset(t, dir)

	responsesPath := writeResponses(t, dir, []dataset.Response{
		{ProblemID: "not-a-real-id", Response: "Alice and Bob"},
	})

	stdout, err := runCommand(t,
		"score",
		"--problems", problemsPath,
		"--responses", responsesPath,
		"--judge", "mock",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "no such problem in the dataset")
	assert.Contains(t, stdout, "No scored responses to aggregate.")
}

func TestScoreCommand_MissingFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := runCommand(t,
		"score",
		"--problems", filepath.Join(dir, "nope.jsonl"),
		"--responses", filepath.Join(dir, "nope.jsonl"),
		"--judge", "mock",
	)
	require.Error(t, err)
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	problemsPath, ids := generateDataset(t, dir)

	responsesPath := writeResponses(t, dir, []dataset.Response{
		{ProblemID: ids[0], Response: "Answer: Alice, Bob, Carol"},
	})
	scoredPath := filepath.Join(dir, "scored.jsonl")

	_, err := runCommand(t,
		"score",
		"--problems", problemsPath,
		"--responses", responsesPath,
		"--output", scoredPath,
		"--judge", "mock",
	)
	require.NoError(t, err)

	stdout, err := runCommand(t, "report", scoredPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Aggregate over 1 scored responses")
	assert.Contains(t, stdout, "answer_quality")
}
