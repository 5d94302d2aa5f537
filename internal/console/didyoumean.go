package console

import (
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// maxSuggestions caps the names offered after an unknown command.
const maxSuggestions = 3

// didYouMean returns registered command names close to name by Levenshtein distance.
func (c *Console) didYouMean(name string) []string {
	return closestNames(name, c.commands.Names())
}

func closestNames(name string, candidates []string) []string {
	type scored struct {
		name     string
		distance int
	}

	dmp := diffmatchpatch.New()
	threshold := max(2, len(name)/3)
	lowered := strings.ToLower(name)

	var matches []scored
	for _, candidate := range candidates {
		diffs := dmp.DiffMain(lowered, strings.ToLower(candidate), false)
		distance := dmp.DiffLevenshtein(diffs)
		if strings.HasPrefix(candidate, lowered) {
			distance = min(distance, 1)
		}
		if distance <= threshold {
			matches = append(matches, scored{name: candidate, distance: distance})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})

	var names []string
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		names = append(names, matches[i].name)
	}
	return names
}
