package placer

import (
	"math"

	"github.com/ecopia-map/label_placer/internal/geometry"
)

// Fraction of the larger label dimension under which a neighbour starts dimming a label
const opacityFalloff = 0.1

// Screen space grid of tiles, each remembering the label rectangles that touch it.
// A rectangle is stored in every tile it spans so overlap tests only look at nearby labels.
type TileGrid struct {
	origin   [2]float64
	size     [2]float64
	tileSize [2]float64
	numTiles [2]int
	tiles    [][]geometry.Rect
}

func NewTileGrid(viewport geometry.Rect, tileSize [2]float64) *TileGrid {
	g := &TileGrid{}
	g.Reset(viewport, tileSize)
	return g
}

// Empties the grid and resizes it. Tile storage is reused when possible.
func (g *TileGrid) Reset(viewport geometry.Rect, tileSize [2]float64) {
	g.origin = [2]float64{viewport.Xmin, viewport.Ymin}
	g.size = [2]float64{viewport.Width(), viewport.Height()}
	g.tileSize = tileSize
	for axis := 0; axis < 2; axis++ {
		if g.size[axis] <= 0 || tileSize[axis] <= 0 {
			g.numTiles[axis] = 0
			continue
		}
		g.numTiles[axis] = int(math.Ceil(g.size[axis] / tileSize[axis]))
	}

	n := g.numTiles[0] * g.numTiles[1]
	if cap(g.tiles) >= n {
		g.tiles = g.tiles[:n]
	} else {
		tiles := make([][]geometry.Rect, n)
		copy(tiles, g.tiles[:cap(g.tiles)])
		g.tiles = tiles
	}
	for i := range g.tiles {
		g.tiles[i] = g.tiles[i][:0]
	}
}

func (g *TileGrid) NumberOfTiles() [2]int {
	return g.numTiles
}

// Number of rectangles stored, counting a rectangle once per tile it spans
func (g *TileGrid) NumberOfEntries() int {
	count := 0
	for _, t := range g.tiles {
		count += len(t)
	}
	return count
}

// Tries to reserve r. Fails when r lies outside the grid or overlaps a rectangle already placed.
// On success the returned opacity is 1 unless a neighbour is closer than a tenth of
// the larger dimension of r, in which case it fades linearly down to 0 at contact.
func (g *TileGrid) PlaceLabel(r geometry.Rect) (bool, float64) {
	x0, x1, okX := g.span(r.Xmin, r.Xmax, 0)
	y0, y1, okY := g.span(r.Ymin, r.Ymax, 1)
	if !okX || !okY {
		return false, 0
	}

	opacity := 1.0
	scale := opacityFalloff * math.Max(r.Width(), r.Height())
	for ty := y0; ty < y1; ty++ {
		for tx := x0; tx < x1; tx++ {
			for _, other := range g.tiles[ty*g.numTiles[0]+tx] {
				if r.Overlaps(other) {
					return false, 0
				}
				if scale <= 0 {
					continue
				}
				metric := r.Separation(other) / scale
				opacity = math.Min(opacity, math.Max(0, math.Min(1, metric)))
			}
		}
	}

	for ty := y0; ty < y1; ty++ {
		for tx := x0; tx < x1; tx++ {
			i := ty*g.numTiles[0] + tx
			g.tiles[i] = append(g.tiles[i], r)
		}
	}
	return true, opacity
}

// Half open range of tile indices covered by [lo, hi] along axis
func (g *TileGrid) span(lo, hi float64, axis int) (int, int, bool) {
	if g.numTiles[axis] == 0 || math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 0, false
	}
	ts := g.tileSize[axis]
	first := int(math.Floor((lo - g.origin[axis]) / ts))
	last := int(math.Ceil((hi - g.origin[axis]) / ts))
	if last == first {
		// zero width rectangle lying on a tile border
		last++
	}
	if last <= 0 || first >= g.numTiles[axis] {
		return 0, 0, false
	}
	if first < 0 {
		first = 0
	}
	if last > g.numTiles[axis] {
		last = g.numTiles[axis]
	}
	return first, last, true
}
