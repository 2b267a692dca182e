package geonear

import (
	"errors"
	"fmt"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
)

// ErrInvalidGeohash is returned by PointFromGeohash for malformed input.
var ErrInvalidGeohash = errors.New("invalid geohash")

const geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// maxGeohashPrecision is the longest geohash worth producing from float64
// coordinates (~3.7cm cells).
const maxGeohashPrecision = 12

// Geohash encodes the point with the given number of characters, clamped
// to [1, 12].
func (p GeoPoint) Geohash(precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > maxGeohashPrecision {
		precision = maxGeohashPrecision
	}
	return geohash.EncodeWithPrecision(p.Latitude, p.Longitude, precision)
}

// PointFromGeohash returns the center of the cell named by hash.
func PointFromGeohash(hash string) (GeoPoint, error) {
	hash = strings.ToLower(strings.TrimSpace(hash))
	if hash == "" || len(hash) > maxGeohashPrecision {
		return GeoPoint{}, fmt.Errorf("%w: %q", ErrInvalidGeohash, hash)
	}
	for _, r := range hash {
		if !strings.ContainsRune(geohashAlphabet, r) {
			return GeoPoint{}, fmt.Errorf("%w: %q contains %q", ErrInvalidGeohash, hash, r)
		}
	}

	center := geohash.Decode(hash).Center()
	return GeoPoint{Latitude: center.Lat(), Longitude: center.Lng()}, nil
}
