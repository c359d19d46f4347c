package proj4_coordinate_converter

import (
	"sync"

	"github.com/ecopia-map/label_placer/internal/converters"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	proj4 "github.com/xeonx/proj4"
)

type proj4CoordinateConverter struct {
	projectionsCache map[int]*proj4.Proj
	lock             sync.Mutex
}

func NewProj4CoordinateConverter() converters.CoordinateConverter {
	return &proj4CoordinateConverter{
		projectionsCache: make(map[int]*proj4.Proj),
	}
}

func (c *proj4CoordinateConverter) ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord r3.Vector) (r3.Vector, error) {
	points := []r3.Vector{coord}
	if err := c.ConvertPoints(sourceSrid, targetSrid, points); err != nil {
		return coord, err
	}
	return points[0], nil
}

func (c *proj4CoordinateConverter) ConvertPoints(sourceSrid int, targetSrid int, points []r3.Vector) error {
	if sourceSrid == targetSrid || len(points) == 0 {
		return nil
	}

	// proj handles are not safe for concurrent use
	c.lock.Lock()
	defer c.lock.Unlock()

	src, err := c.getProjection(sourceSrid)
	if err != nil {
		return err
	}
	dst, err := c.getProjection(targetSrid)
	if err != nil {
		return err
	}

	x := make([]float64, len(points))
	y := make([]float64, len(points))
	z := make([]float64, len(points))
	for i, p := range points {
		x[i], y[i], z[i] = p.X, p.Y, p.Z
	}
	if err := proj4.Transform3(src, dst, x, y, z); err != nil {
		return errors.Wrapf(err, "cannot convert %d points from EPSG:%d to EPSG:%d", len(points), sourceSrid, targetSrid)
	}
	for i := range points {
		points[i] = r3.Vector{X: x[i], Y: y[i], Z: z[i]}
	}
	return nil
}

// Releases the cached projections
func (c *proj4CoordinateConverter) Cleanup() {
	c.lock.Lock()
	defer c.lock.Unlock()
	for srid, p := range c.projectionsCache {
		p.Close()
		delete(c.projectionsCache, srid)
	}
}

func (c *proj4CoordinateConverter) getProjection(srid int) (*proj4.Proj, error) {
	if p, ok := c.projectionsCache[srid]; ok {
		return p, nil
	}
	def, ok := epsgDefinition(srid)
	if !ok {
		return nil, errors.Errorf("unsupported srid EPSG:%d", srid)
	}
	p, err := proj4.InitPlus(def)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot initialize projection EPSG:%d", srid)
	}
	c.projectionsCache[srid] = p
	return p, nil
}
