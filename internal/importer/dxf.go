package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/Nithilan10/buildai/internal/model"
)

// rectangularTolerance is the relative difference between outline area and
// bounding-box area below which a shape counts as a rectangle.
const rectangularTolerance = 0.01

// PlanSurface is one closed shape from a floor plan.
type PlanSurface struct {
	Surface     model.Surface `json:"surface"` // Bounding box in drawing units
	Area        float64       `json:"area"`    // Outline area in drawing units squared
	Rectangular bool          `json:"rectangular"`
	Outline     orb.Ring      `json:"-"`
}

// PlanResult holds the surfaces read from a DXF drawing.
type PlanResult struct {
	Surfaces []PlanSurface
	Errors   []string
	Warnings []string
}

type segment struct {
	start orb.Point
	end   orb.Point
}

// ImportDXF reads closed shapes from a DXF floor plan. Closed LWPOLYLINEs,
// CIRCLEs and chains of LINE/ARC segments each become one surface. unit is
// the drawing unit recorded on every surface.
func ImportDXF(path string, unit model.Unit) PlanResult {
	result := PlanResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var rings []orb.Ring
	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			ring := lwPolylineToRing(e)
			if len(ring) >= 3 {
				rings = append(rings, ring)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}
		case *entity.Circle:
			rings = append(rings, circleToRing(e.Center[0], e.Center[1], e.Radius, 64))
		case *entity.Arc:
			pts := arcToPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}
		case *entity.Line:
			segments = append(segments, segment{
				start: orb.Point{e.Start[0], e.Start[1]},
				end:   orb.Point{e.End[0], e.End[1]},
			})
		}
	}
	rings = append(rings, chainSegments(segments, 0.01)...)

	if len(rings) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, ring := range rings {
		ps, ok := planSurface(fmt.Sprintf("Plan Surface %d", i+1), ring, unit)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", ps.Surface.Width, ps.Surface.Height))
			continue
		}
		result.Surfaces = append(result.Surfaces, ps)
	}
	return result
}

// planSurface measures ring. It reports false for shapes thinner than 0.01
// drawing units.
func planSurface(label string, ring orb.Ring, unit model.Unit) (PlanSurface, bool) {
	bound := ring.Bound()
	width := bound.Right() - bound.Left()
	height := bound.Top() - bound.Bottom()

	ps := PlanSurface{
		Surface: model.Surface{Label: label, Width: width, Height: height, Unit: unit},
		Outline: ring,
	}
	if width < 0.01 || height < 0.01 {
		return ps, false
	}

	ps.Area = ringArea(ring)
	boxArea := width * height
	ps.Rectangular = math.Abs(boxArea-ps.Area) <= rectangularTolerance*boxArea
	return ps, true
}

// lwPolylineToRing converts a polyline; bulged vertices are interpolated as
// arcs to the following vertex.
func lwPolylineToRing(lw *entity.LwPolyline) orb.Ring {
	var ring orb.Ring
	for i, v := range lw.Vertices {
		current := orb.Point{v[0], v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) > 1e-9 {
			nv := lw.Vertices[(i+1)%len(lw.Vertices)]
			pts := bulgeArcPoints(current, orb.Point{nv[0], nv[1]}, bulge, 32)
			ring = append(ring, pts[:len(pts)-1]...)
		} else {
			ring = append(ring, current)
		}
	}
	return ring
}

// bulgeArcPoints samples the arc between p1 and p2 described by a DXF bulge
// (tangent of a quarter of the included angle).
func bulgeArcPoints(p1, p2 orb.Point, bulge float64, n int) []orb.Point {
	mx, my := (p1.X()+p2.X())/2, (p1.Y()+p2.Y())/2
	dx, dy := p2.X()-p1.X(), p2.Y()-p1.Y()
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return []orb.Point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	px, py := -dy/chord, dx/chord
	if bulge > 0 {
		px, py = -px, -py
	}
	dist := radius - sagitta
	cx, cy := mx+px*dist, my+py*dist

	start := math.Atan2(p1.Y()-cy, p1.X()-cx)
	end := math.Atan2(p2.Y()-cy, p2.X()-cx)
	if bulge < 0 && end > start {
		end -= 2 * math.Pi
	} else if bulge > 0 && end < start {
		end += 2 * math.Pi
	}

	pts := make([]orb.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := start + float64(i)/float64(n)*(end-start)
		pts = append(pts, orb.Point{cx + radius*math.Cos(a), cy + radius*math.Sin(a)})
	}
	return pts
}

func circleToRing(cx, cy, r float64, n int) orb.Ring {
	ring := make(orb.Ring, n)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = orb.Point{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return ring
}

func arcToPoints(a *entity.Arc, n int) []orb.Point {
	cx, cy, r := a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	pts := make([]orb.Point, n+1)
	for i := range pts {
		ang := start + float64(i)/float64(n)*(end-start)
		pts[i] = orb.Point{cx + r*math.Cos(ang), cy + r*math.Sin(ang)}
	}
	return pts
}

func pointsToSegments(pts []orb.Point) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments joins segments whose endpoints lie within tolerance into
// rings, largest area first. Open chains are dropped.
func chainSegments(segs []segment, tolerance float64) []orb.Ring {
	used := make([]bool, len(segs))
	var rings []orb.Ring

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}
		used[startIdx] = true
		chain := []orb.Point{segs[startIdx].start, segs[startIdx].end}

		for changed := true; changed; {
			changed = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
				} else if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
				} else {
					continue
				}
				used[i] = true
				changed = true
				break
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			rings = append(rings, orb.Ring(chain[:len(chain)-1]))
		}
	}

	sort.SliceStable(rings, func(i, j int) bool {
		return ringArea(rings[i]) > ringArea(rings[j])
	})
	return rings
}

// ringArea returns the absolute area of r, closing it first if needed.
func ringArea(r orb.Ring) float64 {
	if len(r) < 3 {
		return 0
	}
	if !r.Closed() {
		r = append(append(orb.Ring(nil), r...), r[0])
	}
	return math.Abs(planar.Area(r))
}

func pointsClose(a, b orb.Point, tolerance float64) bool {
	return planar.Distance(a, b) <= tolerance
}
