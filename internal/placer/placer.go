package placer

import (
	"github.com/ecopia-map/label_placer/internal/camera"
	"github.com/ecopia-map/label_placer/internal/data"
	"github.com/ecopia-map/label_placer/internal/geometry"
	"github.com/ecopia-map/label_placer/internal/labeling"
	"github.com/ecopia-map/label_placer/internal/octree"
	"github.com/ecopia-map/label_placer/internal/octree/label_iterator"
	"github.com/golang/geo/r3"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// A label accepted for the current frame
type Placement struct {
	LabelID  int
	Position r3.Vector     // Anchor in world or display coordinates depending on the options
	Display  r3.Vector     // Projected anchor, pixels and normalized depth
	Rect     geometry.Rect // Display rectangle reserved by the label, margin included
	Opacity  float64
	Kind     data.LabelKind
}

// Counters of a single Place call
type Stats struct {
	Candidates     int // distinct labels streamed by the iterator
	Duplicates     int
	Clipped        int // outside the clipping range
	BackFacing     int
	Occluded       int
	OffScreen      int
	Overlapping    int
	Placed         int
	NodesVisited   int
	RenderedArea   float64
	AllowableArea  float64
	BudgetExceeded bool
}

// Selects, for a camera and viewport, a non overlapping subset of the labels of a hierarchy.
// A Placer keeps the labels placed in the previous frame to give them precedence in the next one.
type Placer struct {
	options    *labeling.Options
	tiles      *TileGrid
	lastPlaced []int
	placed     []int
	stats      Stats
	visitor    label_iterator.NodeVisitor
}

func NewPlacer(opts *labeling.Options) (*Placer, error) {
	if opts == nil {
		opts = labeling.DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid placement options")
	}
	return &Placer{options: opts.Copy()}, nil
}

func (p *Placer) Options() *labeling.Options {
	return p.options
}

// Ids placed by the last successful Place call, in placement order
func (p *Placer) LastPlaced() []int {
	return append([]int(nil), p.lastPlaced...)
}

// Forgets the labels of the previous frame
func (p *Placer) ResetHistory() {
	p.lastPlaced = p.lastPlaced[:0]
}

func (p *Placer) Stats() Stats {
	return p.stats
}

// Registers a callback receiving the geometry of every node traversed by Place
func (p *Placer) SetNodeVisitor(visitor label_iterator.NodeVisitor) {
	p.visitor = visitor
}

// Places the labels of tree for one frame. depth may be nil, it is only used when
// the depth buffer option is set. An unusable tree, camera or viewport yields no placements.
func (p *Placer) Place(tree octree.ITree, cam *camera.Camera, viewport camera.Viewport, depth DepthOracle) []Placement {
	p.stats = Stats{}
	p.placed = p.placed[:0]
	if tree == nil || !tree.IsBuilt() {
		glog.Warning("Label hierarchy is not built, nothing to place")
		return nil
	}
	if cam == nil {
		glog.Warning("No camera, nothing to place")
		return nil
	}
	if err := cam.Validate(); err != nil {
		glog.Warningf("Invalid camera, nothing to place: %v", err)
		return nil
	}
	if viewport.IsEmpty() {
		glog.Warningf("Empty viewport %dx%d, nothing to place", viewport.Width, viewport.Height)
		return nil
	}

	opts := p.options
	anchors := tree.Anchors()
	numLabels := anchors.Len()
	bounds := viewport.Bounds()
	if p.tiles == nil {
		p.tiles = NewTileGrid(bounds, opts.TileSize)
	} else {
		p.tiles.Reset(bounds, opts.TileSize)
	}

	frustum := cam.FrustumPlanes(viewport.Aspect())
	projector := camera.NewProjector(cam, viewport)
	it := label_iterator.NewIterator(opts.Strategy, tree, cam, frustum, opts.PositionsAsNormals, opts.TileSize)
	it.SetNodeVisitor(func(center r3.Vector, halfSize float64) {
		p.stats.NodesVisited++
		if p.visitor != nil {
			p.visitor(center, halfSize)
		}
	})

	var replay []int
	if opts.ReplayLastPlaced {
		replay = p.lastPlaced
	}

	near, far := cam.ClippingRange[0], cam.ClippingRange[1]
	vpn := cam.ViewPlaneNormal()
	p.stats.AllowableArea = viewport.Area() * opts.MaximumLabelFraction
	seen := make([]bool, numLabels)
	var placements []Placement

	for it.Begin(replay); !it.IsAtEnd(); it.Next() {
		id := it.LabelID()
		if id < 0 || id >= numLabels {
			continue
		}
		if seen[id] {
			p.stats.Duplicates++
			continue
		}
		seen[id] = true
		p.stats.Candidates++

		if opts.EnforceAreaBudget && p.stats.RenderedArea > p.stats.AllowableArea {
			p.stats.BudgetExceeded = true
			break
		}

		anchor := anchors.Point(id)
		d := cam.DepthOf(anchor)
		if d < near || d > far {
			p.stats.Clipped++
			continue
		}
		if opts.PositionsAsNormals && vpn.Dot(anchor) < 0 {
			p.stats.BackFacing++
			continue
		}

		display := projector.WorldToDisplay(anchor)
		if opts.UseDepthBuffer && depth != nil && depth.IsOccluded(anchor, display) {
			p.stats.Occluded++
			continue
		}

		rect := AnchorRect(opts.Gravity, display.X, display.Y, anchors.Size(id))
		if opts.Margin > 0 {
			rect = rect.Expand(opts.Margin)
		}
		visible, onScreen := rect.Clip(bounds)
		if !onScreen {
			p.stats.OffScreen++
			continue
		}

		opacity := 1.0
		if !opts.PlaceAllLabels {
			var ok bool
			if ok, opacity = p.tiles.PlaceLabel(rect); !ok {
				p.stats.Overlapping++
				continue
			}
		}

		p.stats.RenderedArea += visible.Area()
		position := anchor
		if opts.OutputCoordinates == labeling.DisplayCoordinates {
			position = display
		}
		placements = append(placements, Placement{
			LabelID:  id,
			Position: position,
			Display:  display,
			Rect:     rect,
			Opacity:  opacity,
			Kind:     anchors.Kind(id),
		})
		p.placed = append(p.placed, id)
	}

	p.stats.Placed = len(placements)
	if !opts.EnforceAreaBudget && p.stats.RenderedArea > p.stats.AllowableArea {
		p.stats.BudgetExceeded = true
		glog.V(1).Infof("Labels cover %.0f pixels, above the %.0f pixels budget",
			p.stats.RenderedArea, p.stats.AllowableArea)
	}
	glog.V(2).Infof("Placed %d of %d candidate labels using %s traversal of %d nodes",
		p.stats.Placed, p.stats.Candidates, opts.Strategy, p.stats.NodesVisited)

	p.lastPlaced, p.placed = p.placed, p.lastPlaced[:0]
	return placements
}
