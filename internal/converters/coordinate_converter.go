package converters

import (
	"github.com/golang/geo/r3"
)

// Well known spatial reference ids
const (
	SridWGS84           = 4326
	SridWGS84Geocentric = 4978
	SridWorldMercator   = 3395
	SridWebMercator     = 3857
)

type CoordinateConverter interface {
	// Converts a single coordinate. Geographic coordinates are (lon, lat, height) in degrees and metres.
	ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord r3.Vector) (r3.Vector, error)
	// Converts points in place
	ConvertPoints(sourceSrid int, targetSrid int, points []r3.Vector) error
	Cleanup()
}

type ElevationCorrector interface {
	CorrectElevation(lon, lat, z float64) float64
}
