package geonear

import (
	"strconv"
	"strings"
)

// CityRecord is one valid row of the city dataset.
type CityRecord struct {
	Name       string   // Display name, may be empty
	Location   GeoPoint // City coordinates
	Population int64    // Zero when the population field is absent or unparseable
}

// field returns row[idx], resolving negative indexes from the end.
func field(row []string, idx int) (string, bool) {
	if idx < 0 {
		idx += len(row)
	}
	if idx < 0 || idx >= len(row) {
		return "", false
	}
	return row[idx], true
}

// parseCoordinates parses a "<lat>,<lon>" field. Anything other than two
// finite, in-range numbers is rejected.
func parseCoordinates(s string) (GeoPoint, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return GeoPoint{}, false
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLng != nil {
		return GeoPoint{}, false
	}

	// ParseFloat accepts "NaN" and "Inf"; those would poison the sort.
	p := GeoPoint{Latitude: lat, Longitude: lng}
	if !p.IsValid() {
		return GeoPoint{}, false
	}
	return p, true
}

func parsePopulation(row []string, idx int) (int64, bool) {
	raw, ok := field(row, idx)
	if !ok {
		return 0, false
	}
	pop, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || pop < 0 {
		return 0, false
	}
	return pop, true
}

// ParseRecord builds a CityRecord from one raw row. ok is false when the
// row has no usable coordinates or fails the population filter; a missing
// name never rejects a row.
func ParseRecord(row []string, opts ...Option) (CityRecord, bool) {
	return parseRecord(row, newConfig(opts))
}

func parseRecord(row []string, cfg *Config) (CityRecord, bool) {
	coords, ok := field(row, cfg.Columns.Coordinates)
	if !ok {
		return CityRecord{}, false
	}
	loc, ok := parseCoordinates(coords)
	if !ok {
		return CityRecord{}, false
	}

	name, _ := field(row, cfg.Columns.Name)
	rec := CityRecord{Name: name, Location: loc}

	pop, ok := parsePopulation(row, cfg.Columns.Population)
	if cfg.MinPopulation > 0 && (!ok || pop < cfg.MinPopulation) {
		return CityRecord{}, false
	}
	rec.Population = pop
	return rec, true
}

// ParseRecords parses every row and keeps the valid ones in input order.
func ParseRecords(rows [][]string, opts ...Option) []CityRecord {
	cfg := newConfig(opts)
	records := make([]CityRecord, 0, len(rows))
	for _, row := range rows {
		if rec, ok := parseRecord(row, cfg); ok {
			records = append(records, rec)
		}
	}
	return records
}
