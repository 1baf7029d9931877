package progress

import (
	"encoding/json"
	"fmt"
	"slices"
)

// CompletedLevelsKey is the storage key of the completed level indices.
const CompletedLevelsKey = "museum_guard_completed_levels"

// EncodeLevels serialises level indices as a sorted JSON array without duplicates.
func EncodeLevels(levels []int) string {
	out := slices.Clone(levels)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []int{}
	}
	b, _ := json.Marshal(out)
	return string(b)
}

// DecodeLevels parses a JSON array of non-negative integers.
func DecodeLevels(s string) ([]int, error) {
	var levels []int
	if err := json.Unmarshal([]byte(s), &levels); err != nil {
		return nil, fmt.Errorf("decode completed levels: %w", err)
	}
	for _, l := range levels {
		if l < 0 {
			return nil, fmt.Errorf("decode completed levels: negative index %d", l)
		}
	}
	slices.Sort(levels)
	return slices.Compact(levels), nil
}
