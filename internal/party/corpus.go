package party

import (
	_ "embed"
	"strings"
)

// The generator takes no filesystem defaults: the name and interest corpora
// ship compiled into the binary.

//go:embed data/names.txt
var namesRaw string

//go:embed data/interests.txt
var interestsRaw string

var (
	// guestNames is the full corpus of guest names available to a pool.
	guestNames = splitCorpus(namesRaw)

	// interestLabels is the full vocabulary of interest labels. Each pool
	// samples its own subset so repeated full overlap between guests is not
	// the common case.
	interestLabels = splitCorpus(interestsRaw)
)

func splitCorpus(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
