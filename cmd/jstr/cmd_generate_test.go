package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/qemqemqem/JSTR/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "problems.jsonl")

	stdout, err := runCommand(t,
		"generate",
		"--seed", "42",
		"--num-parties", "2",
		"--set-size", "3,5",
		"--output", output,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Generated 4 of 4 requested problems")

	problems, err := dataset.ReadProblems(output)
	require.NoError(t, err)
	assert.Len(t, problems, 4)
}

func TestGenerateCommand_Reproducible(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.jsonl")
	pathB := filepath.Join(dir, "b.jsonl")

	for _, path := range []string{pathA, pathB} {
		_, err := runCommand(t, "generate", "--seed", "7", "-n", "3", "--output", path)
		require.NoError(t, err)
	}

	a, err := os.ReadFile(pathA)
	require.NoError(t, err)
	b, err := os.ReadFile(pathB)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateCommand_FromConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "gen_config.yaml")
	output := filepath.Join(dir, "problems.jsonl.gz")

	config := `
avg_points: 25
points_spread: 0
min_interests: 2
max_interests: 6
bimodal_discount:
  discount_pct: 0
  population_pct: 15
num_parties: 2
set_size: [3, 4, 5, 7]
seed: 42
`
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	stdout, err := runCommand(t, "generate", "--config", configPath, "--seed", "42", "--output", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Generated 8 of 8 requested problems")

	problems, err := dataset.ReadProblems(output)
	require.NoError(t, err)
	require.Len(t, problems, 8)
	for _, p := range problems {
		for _, g := range p.ScoringGuide.People {
			assert.Equal(t, 25.0, g.Points)
		}
	}
}

func TestGenerateCommand_InvalidConfig(t *testing.T) {
	output := filepath.Join(t.TempDir(), "problems.jsonl")

	_, err := runCommand(t,
		"generate",
		"--seed", "1",
		"--min-interests", "5",
		"--max-interests", "2",
		"--output", output,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_interests")
	assert.NoFileExists(t, output)
}

func TestGenerateCommand_JSONSummary(t *testing.T) {
	output := filepath.Join(t.TempDir(), "problems.jsonl")

	stdout, err := runCommand(t, "generate", "--seed", "3", "-n", "1", "--output", output, "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"requested": 1`)
	assert.Contains(t, stdout, `"produced": 1`)
}
