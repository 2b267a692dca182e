package geonear

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxFuzzyDistance caps the edit distance Lookup accepts, so a large value
// cannot turn every short name into a match.
const maxFuzzyDistance = 3

// maxLookupInputLen bounds the Levenshtein work done per candidate.
const maxLookupInputLen = 256

// Lookup finds the record whose name best matches name.
//
// With maxDistance 0 only case-insensitive exact matches count. Otherwise a
// record matches when the Levenshtein distance between the lower-cased
// names is at most maxDistance (capped at 3). Among matches the smallest
// distance wins, then the largest population, then the earliest record.
func Lookup(records []CityRecord, name string, maxDistance int) (CityRecord, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CityRecord{}, false
	}
	if runes := []rune(name); len(runes) > maxLookupInputLen {
		name = string(runes[:maxLookupInputLen])
	}

	if maxDistance < 0 {
		maxDistance = 0
	}
	if maxDistance > maxFuzzyDistance {
		maxDistance = maxFuzzyDistance
	}

	query := strings.ToLower(name)
	best := -1
	bestDist := maxDistance + 1

	for i, rec := range records {
		dist, ok := nameDistance(query, rec.Name, maxDistance)
		if !ok {
			continue
		}
		if dist < bestDist || (dist == bestDist && rec.Population > records[best].Population) {
			best = i
			bestDist = dist
		}
	}

	if best < 0 {
		return CityRecord{}, false
	}
	return records[best], true
}

// nameDistance returns the edit distance between query (already lower-cased)
// and candidate when it is within maxDist.
func nameDistance(query, candidate string, maxDist int) (int, bool) {
	if candidate == "" {
		return 0, false
	}
	if strings.EqualFold(query, candidate) {
		return 0, true
	}
	if maxDist == 0 {
		return 0, false
	}
	dist := levenshtein.ComputeDistance(query, strings.ToLower(candidate))
	return dist, dist <= maxDist
}
