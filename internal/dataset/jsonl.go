// Package dataset reads and writes the JSON Lines artifacts that connect the
// generator, the external evaluation harness, and the scorer.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/qemqemqem/JSTR/internal/schema"
)

// maxLineBytes bounds a single record; rendered questions for large pools
// run a few KB, so this leaves generous headroom.
const maxLineBytes = 4 * 1024 * 1024

// MarshalProblem encodes one problem as a single JSON line (no trailing
// newline). Field order is struct-driven and map keys are sorted by the
// encoder, so identical problems always marshal to identical bytes and
// generation runs can be diffed.
func MarshalProblem(p *schema.Problem) ([]byte, error) {
	return json.Marshal(p)
}

// WriteProblems writes problems to path, one JSON object per line. A path
// ending in .gz is gzip-compressed transparently.
func WriteProblems(path string, problems []schema.Problem) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	w, closeWriter := maybeGzipWriter(f, path)

	for i := range problems {
		line, err := MarshalProblem(&problems[i])
		if err != nil {
			return fmt.Errorf("dataset: marshal problem %s: %w", problems[i].ID, err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("dataset: write %s: %w", path, err)
		}
	}

	if err := closeWriter(); err != nil {
		return fmt.Errorf("dataset: flush %s: %w", path, err)
	}
	return f.Close()
}

// ReadProblems reads a generated dataset, validating every record against
// the scoring-guide schema before decoding it. Old files that no longer
// match the schema fail here, at the boundary, with their line number.
func ReadProblems(path string) ([]schema.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	r, err := maybeGzipReader(f, path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}

	var problems []schema.Problem
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if msgs := schema.ValidateProblemBytes([]byte(line)); len(msgs) > 0 {
			return nil, fmt.Errorf("dataset: %s line %d: %s", path, lineNo, strings.Join(msgs, "; "))
		}

		var p schema.Problem
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			return nil, fmt.Errorf("dataset: %s line %d: %w", path, lineNo, err)
		}
		problems = append(problems, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}

	if len(problems) == 0 {
		return nil, fmt.Errorf("dataset: %s contains no records", path)
	}
	return problems, nil
}

// Response is one model answer awaiting scoring, keyed by problem ID.
type Response struct {
	ProblemID string `json:"problem_id"`
	Response  string `json:"response"`
}

// ReadResponses reads a responses file (one JSON object per line with
// problem_id and response fields).
func ReadResponses(path string) ([]Response, error) {
	var responses []Response
	err := readJSONLines(path, func(lineNo int, line []byte) error {
		var r Response
		if err := json.Unmarshal(line, &r); err != nil {
			return err
		}
		if r.ProblemID == "" {
			return fmt.Errorf("missing problem_id")
		}
		responses = append(responses, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// WriteScored writes scored responses, one JSON object per line.
func WriteScored(path string, scored []schema.ScoredResponse) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	w, closeWriter := maybeGzipWriter(f, path)
	enc := json.NewEncoder(w)
	for i := range scored {
		if err := enc.Encode(&scored[i]); err != nil {
			return fmt.Errorf("dataset: write %s: %w", path, err)
		}
	}

	if err := closeWriter(); err != nil {
		return fmt.Errorf("dataset: flush %s: %w", path, err)
	}
	return f.Close()
}

// ReadScored reads a scored-results file.
func ReadScored(path string) ([]schema.ScoredResponse, error) {
	var scored []schema.ScoredResponse
	err := readJSONLines(path, func(lineNo int, line []byte) error {
		var s schema.ScoredResponse
		if err := json.Unmarshal(line, &s); err != nil {
			return err
		}
		scored = append(scored, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scored, nil
}

func readJSONLines(path string, handle func(lineNo int, line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	r, err := maybeGzipReader(f, path)
	if err != nil {
		return fmt.Errorf("dataset: open %s: %w", path, err)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := handle(lineNo, []byte(line)); err != nil {
			return fmt.Errorf("dataset: %s line %d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("dataset: read %s: %w", path, err)
	}
	return nil
}

func maybeGzipWriter(f *os.File, path string) (io.Writer, func() error) {
	if !strings.HasSuffix(path, ".gz") {
		return f, func() error { return nil }
	}
	gz := gzip.NewWriter(f)
	return gz, gz.Close
}

func maybeGzipReader(f *os.File, path string) (io.Reader, error) {
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	return gzip.NewReader(f)
}
