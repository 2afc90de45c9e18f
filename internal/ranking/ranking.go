// Package ranking turns a score map into a deterministic total ordering.
package ranking

import (
	"sort"

	"frec/internal/errors"
)

// Direction selects the sort order of the ranked output
type Direction string

const (
	// Descending puts the highest score first (default)
	Descending Direction = "descending"
	// Ascending puts the lowest score first
	Ascending Direction = "ascending"
)

// ParseDirection validates a direction string
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Descending, Ascending:
		return Direction(s), nil
	default:
		return "", errors.NewFrecError(
			errors.InvalidConfig,
			"Sort direction must be 'descending' or 'ascending'",
			nil,
			nil,
		).WithDetails(map[string]interface{}{"direction": s})
	}
}

// Entry is one ranked file: the engine's output contract
type Entry struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// Rank orders a score map by score with an ascending-path tie-break, so
// identical input always yields byte-identical output. Every key appears
// exactly once; limit 0 keeps all entries.
func Rank(scores map[string]float64, direction Direction, limit int) []Entry {
	entries := make([]Entry, 0, len(scores))
	for path, score := range scores {
		entries = append(entries, Entry{Path: path, Score: score})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			if direction == Ascending {
				return entries[i].Score < entries[j].Score
			}
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Path < entries[j].Path
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
