package registry

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/AmarilloArts/outfit-manager/internal/model"
)

// suggest returns the candidate closest to input by edit distance, or
// "" when nothing is close enough to be a plausible typo. Matching is
// case-insensitive; a distance above 40% of the longer name is
// rejected, so unrelated names never produce a misleading hint.
func suggest(input string, candidates []string) string {
	best := ""
	bestDist := -1

	upper := strings.ToUpper(input)
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(upper, strings.ToUpper(c))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = c, dist
		}
	}

	if best == "" || best == input {
		return ""
	}

	longest := len(input)
	if len(best) > longest {
		longest = len(best)
	}
	if longest == 0 || float64(bestDist)/float64(longest) >= 0.4 {
		return ""
	}
	return best
}

// overridableKeys returns the object's shape keys minus the basis key,
// the set a user can actually target with an override. Returns nil
// when the object does not resolve.
func overridableKeys(host Host, object string) []string {
	names, ok := host.ShapeKeyNames(object)
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(names))
	for _, n := range names {
		if n != model.BasisKey {
			keys = append(keys, n)
		}
	}
	return keys
}
