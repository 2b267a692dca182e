package geonear

import "sort"

// RankedResult is a city together with its distance from the query target.
type RankedResult struct {
	Name       string
	DistanceKm float64
	Location   GeoPoint
}

// FindNearest parses rows and returns the n cities closest to target,
// nearest first. Rows without usable coordinates are skipped. The result
// has min(n, valid rows) entries and is empty, never nil, when n <= 0 or
// no row is valid. Cities at equal distance keep their input order.
func FindNearest(target GeoPoint, rows [][]string, n int, opts ...Option) []RankedResult {
	if n <= 0 {
		return []RankedResult{}
	}
	return Rank(target, ParseRecords(rows, opts...), n)
}

// Rank is FindNearest over already parsed records.
func Rank(target GeoPoint, records []CityRecord, n int) []RankedResult {
	if n <= 0 || len(records) == 0 {
		return []RankedResult{}
	}

	results := make([]RankedResult, len(records))
	for i, rec := range records {
		results[i] = RankedResult{
			Name:       rec.Name,
			DistanceKm: Distance(target, rec.Location),
			Location:   rec.Location,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	if n < len(results) {
		results = results[:n:n]
	}
	return results
}
