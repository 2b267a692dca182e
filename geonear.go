// Package geonear finds the cities nearest to a coordinate in a flat,
// delimited city dataset such as the Geonames "cities with a population
// over 10000" export.
//
// Distances are great-circle distances on a spherical Earth computed with
// the haversine formula. Selection is a linear scan followed by a stable
// sort, so equal distances keep their dataset order.
//
// Example:
//
//	d, err := geonear.LoadDataset("data/geonames-all-cities-with-a-population-10000-csv.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range d.Nearest(geonear.GeoPoint{Latitude: 52.52, Longitude: 13.405}, 5) {
//	    fmt.Printf("%s: %.2f km\n", r.Name, r.DistanceKm)
//	}
package geonear

import "fmt"

// ColumnMapping tells the record parser which fields of a raw row hold
// which values. Negative indexes count from the end of the row, so -1 is
// the last field.
type ColumnMapping struct {
	Name        int // Display name (default 1)
	Coordinates int // "<lat>,<lon>" pair (default -1)
	Population  int // Population count, read only when MinPopulation > 0 (default 13)
}

// DefaultColumns matches the Geonames semicolon export: name in the second
// field, population in the fourteenth, coordinates in the last.
var DefaultColumns = ColumnMapping{
	Name:        1,
	Coordinates: -1,
	Population:  13,
}

// Config contains the options shared by the source reader and the record
// parser.
type Config struct {
	Columns       ColumnMapping // Field positions within a row
	MinPopulation int64         // Discard cities below this population (0 = no filter)
	Delimiter     rune          // Field separator of the input file (default ';')
}

// Option is a functional option for configuring parsing and reading.
type Option func(*Config)

// WithColumns replaces the whole column mapping.
func WithColumns(m ColumnMapping) Option {
	return func(c *Config) {
		c.Columns = m
	}
}

// WithNameColumn sets the field index holding the city name.
func WithNameColumn(idx int) Option {
	return func(c *Config) {
		c.Columns.Name = idx
	}
}

// WithCoordinateColumn sets the field index holding the "<lat>,<lon>" pair.
func WithCoordinateColumn(idx int) Option {
	return func(c *Config) {
		c.Columns.Coordinates = idx
	}
}

// WithPopulationColumn sets the field index holding the population count.
func WithPopulationColumn(idx int) Option {
	return func(c *Config) {
		c.Columns.Population = idx
	}
}

// WithMinPopulation keeps only cities whose population is at least pop.
// Rows without a parseable population are discarded while the filter is on.
func WithMinPopulation(pop int64) Option {
	return func(c *Config) {
		c.MinPopulation = pop
	}
}

// WithDelimiter sets the field separator used when reading a source file.
func WithDelimiter(r rune) Option {
	return func(c *Config) {
		c.Delimiter = r
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	return &Config{
		Columns:   DefaultColumns,
		Delimiter: ';',
	}
}

func newConfig(opts []Option) *Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Dataset is an in-memory set of parsed city records.
// Safe for concurrent use after LoadDataset returns.
type Dataset struct {
	records []CityRecord
	source  string
}

// LoadDataset reads and parses the city file at path. Malformed rows are
// skipped; an unreadable source is an error and no partial dataset is
// returned.
func LoadDataset(path string, opts ...Option) (*Dataset, error) {
	rows, err := ReadRows(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return &Dataset{
		records: ParseRecords(rows, opts...),
		source:  path,
	}, nil
}

// NewDataset wraps already parsed records.
func NewDataset(records []CityRecord) *Dataset {
	return &Dataset{records: append([]CityRecord(nil), records...)}
}

// Len returns the number of valid records.
func (d *Dataset) Len() int { return len(d.records) }

// Source returns the path the dataset was loaded from, or "" for datasets
// built with NewDataset.
func (d *Dataset) Source() string { return d.source }

// Records returns a copy of the parsed records in dataset order.
func (d *Dataset) Records() []CityRecord {
	return append([]CityRecord(nil), d.records...)
}

// Nearest returns the n records closest to target, nearest first.
func (d *Dataset) Nearest(target GeoPoint, n int) []RankedResult {
	return Rank(target, d.records, n)
}

// Lookup finds a record by name. See the package-level Lookup.
func (d *Dataset) Lookup(name string, maxDistance int) (CityRecord, bool) {
	return Lookup(d.records, name, maxDistance)
}
