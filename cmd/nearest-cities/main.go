// Command nearest-cities prints the cities closest to a coordinate.
//
// Usage:
//
//	go run ./cmd/nearest-cities -data cities.csv -lat 52.52 -lon 13.405 -n 5
//
// The target can also be given as a city name from the dataset (-city, with
// optional -fuzzy edit distance) or as a geohash (-geohash). Without any
// target flag the Berlin example coordinates are used.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"unicode/utf8"

	"github.com/andreiashu/geonear"
)

const defaultDataPath = "data/geonames-all-cities-with-a-population-10000-csv.csv"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	dataPath      string
	lat, lon      float64
	n             int
	city          string
	fuzzy         int
	geohash       string
	showGeohash   bool
	minPopulation int64
	delimiter     string
	nameCol       int
	coordsCol     int
	popCol        int
	verbose       bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("nearest-cities", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.dataPath, "data", defaultDataPath, "path to the semicolon-delimited city file (.csv, .gz, .bz2 or .zip)")
	fs.Float64Var(&o.lat, "lat", 52.5200, "target latitude in degrees")
	fs.Float64Var(&o.lon, "lon", 13.4050, "target longitude in degrees")
	fs.IntVar(&o.n, "n", 5, "number of cities to print")
	fs.StringVar(&o.city, "city", "", "use the named dataset city as the target")
	fs.IntVar(&o.fuzzy, "fuzzy", 0, "maximum edit distance when matching -city (0-3)")
	fs.StringVar(&o.geohash, "geohash", "", "use the center of this geohash cell as the target")
	fs.BoolVar(&o.showGeohash, "show-geohash", false, "append each city's geohash to its line")
	fs.Int64Var(&o.minPopulation, "min-population", 0, "skip cities below this population")
	fs.StringVar(&o.delimiter, "delimiter", ";", "field separator of the data file")
	fs.IntVar(&o.nameCol, "name-col", geonear.DefaultColumns.Name, "field index of the city name (negative counts from the end)")
	fs.IntVar(&o.coordsCol, "coords-col", geonear.DefaultColumns.Coordinates, "field index of the \"lat,lon\" pair (negative counts from the end)")
	fs.IntVar(&o.popCol, "pop-col", geonear.DefaultColumns.Population, "field index of the population count (negative counts from the end)")
	fs.BoolVar(&o.verbose, "v", false, "log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if o.city != "" && o.geohash != "" {
		return nil, errors.New("-city and -geohash are mutually exclusive")
	}
	if utf8.RuneCountInString(o.delimiter) != 1 {
		return nil, fmt.Errorf("-delimiter must be a single character, got %q", o.delimiter)
	}
	return o, nil
}

func (o *options) geonearOptions() []geonear.Option {
	delim, _ := utf8.DecodeRuneInString(o.delimiter)
	return []geonear.Option{
		geonear.WithColumns(geonear.ColumnMapping{
			Name:        o.nameCol,
			Coordinates: o.coordsCol,
			Population:  o.popCol,
		}),
		geonear.WithMinPopulation(o.minPopulation),
		geonear.WithDelimiter(delim),
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "nearest-cities: ", 0)

	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if !o.verbose {
		logger.SetOutput(io.Discard)
	}

	d, err := geonear.LoadDataset(o.dataPath, o.geonearOptions()...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.Printf("info: loaded %d cities from %s", d.Len(), d.Source())

	target, err := resolveTarget(o, d)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.Printf("info: target %s", target)

	fmt.Fprintf(stdout, "\nNearest cities to %s:\n", target)
	for _, r := range d.Nearest(target, o.n) {
		if o.showGeohash {
			fmt.Fprintf(stdout, "%s: %.2f km [%s]\n", r.Name, r.DistanceKm, r.Location.Geohash(7))
			continue
		}
		fmt.Fprintf(stdout, "%s: %.2f km\n", r.Name, r.DistanceKm)
	}
	return 0
}

func resolveTarget(o *options, d *geonear.Dataset) (geonear.GeoPoint, error) {
	switch {
	case o.city != "":
		rec, ok := d.Lookup(o.city, o.fuzzy)
		if !ok {
			return geonear.GeoPoint{}, fmt.Errorf("city %q not found in %s", o.city, d.Source())
		}
		return rec.Location, nil
	case o.geohash != "":
		return geonear.PointFromGeohash(o.geohash)
	default:
		p := geonear.GeoPoint{Latitude: o.lat, Longitude: o.lon}
		if !p.IsValid() {
			return geonear.GeoPoint{}, fmt.Errorf("target %s is outside [-90, 90] x [-180, 180]", p)
		}
		return p, nil
	}
}
