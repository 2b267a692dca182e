package geonear

import (
	"math"
	"strconv"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius used for all distances.
const EarthRadiusKm = 6371.0

// MaxDistanceKm is half the circumference of the sphere, the largest
// distance Distance can return.
const MaxDistanceKm = math.Pi * EarthRadiusKm

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// IsValid reports whether the point is finite, latitude is within [-90, 90]
// and longitude within [-180, 180].
func (p GeoPoint) IsValid() bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) ||
		math.IsInf(p.Latitude, 0) || math.IsInf(p.Longitude, 0) {
		return false
	}
	return math.Abs(p.Latitude) <= 90 && math.Abs(p.Longitude) <= 180
}

// LatLng converts the point for use with github.com/golang/geo.
func (p GeoPoint) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Latitude, p.Longitude)
}

// String formats the point as "(lat, lon)" with the shortest exact decimal
// representation of each coordinate.
func (p GeoPoint) String() string {
	return "(" + strconv.FormatFloat(p.Latitude, 'f', -1, 64) + ", " +
		strconv.FormatFloat(p.Longitude, 'f', -1, 64) + ")"
}

func toRadians(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

// Distance returns the great-circle distance between p1 and p2 in
// kilometers using the haversine formula.
func Distance(p1, p2 GeoPoint) float64 {
	lat1 := toRadians(p1.Latitude)
	lon1 := toRadians(p1.Longitude)
	lat2 := toRadians(p2.Latitude)
	lon2 := toRadians(p2.Longitude)

	sinDLat := math.Sin((lat2 - lat1) / 2)
	sinDLon := math.Sin((lon2 - lon1) / 2)

	a := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon

	// Rounding can push a slightly past 1 for near-antipodal points, which
	// would make Asin return NaN.
	a = math.Max(0, math.Min(1, a))

	c := 2 * math.Asin(math.Sqrt(a))
	return EarthRadiusKm * c
}
