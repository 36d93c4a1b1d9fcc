package importer

import (
	"fmt"
	"math"

	"github.com/piwi3910/MachCost/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// boundsTolerance is how far (in drawing units) a circle may sit from the
// overall bounding box and still count as the stock outline.
const boundsTolerance = 0.01

// GeometryResult holds the part dimensions read from a drawing.
type GeometryResult struct {
	Geometry model.PartGeometry
	Shape    model.Shape
	Errors   []string
	Warnings []string
}

type point struct {
	x, y float64
}

// bbox is an axis-aligned bounding box that grows as points are added.
type bbox struct {
	min, max point
	empty    bool
}

func newBBox() bbox {
	return bbox{empty: true}
}

func (b *bbox) add(p point) {
	if b.empty {
		b.min, b.max, b.empty = p, p, false
		return
	}
	b.min.x = math.Min(b.min.x, p.x)
	b.min.y = math.Min(b.min.y, p.y)
	b.max.x = math.Max(b.max.x, p.x)
	b.max.y = math.Max(b.max.y, p.y)
}

func (b bbox) width() float64  { return b.max.x - b.min.x }
func (b bbox) height() float64 { return b.max.y - b.min.y }

// ImportGeometryDXF reads the top view of a part from a DXF file. A circle
// that bounds the whole drawing gives a cylindrical part of that diameter;
// otherwise the bounding box of every LINE, LWPOLYLINE, ARC and CIRCLE
// gives the rectangular length and width. depth is the dimension the top
// view cannot show: the length of a cylinder or the thickness of a block.
func ImportGeometryDXF(path string, depth float64) GeometryResult {
	drawing, err := dxf.Open(path)
	if err != nil {
		return GeometryResult{Errors: []string{fmt.Sprintf("Cannot open DXF file: %v", err)}}
	}
	return geometryFromEntities(drawing.Entities(), depth)
}

func geometryFromEntities(entities []entity.Entity, depth float64) GeometryResult {
	result := GeometryResult{}
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	box := newBBox()
	var largest *entity.Circle
	skipped := 0

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			for i, v := range e.Vertices {
				box.add(point{v[0], v[1]})
				if i < len(e.Bulges) && math.Abs(e.Bulges[i]) > 1e-9 {
					next := e.Vertices[(i+1)%len(e.Vertices)]
					for _, p := range bulgeArcPoints(point{v[0], v[1]}, point{next[0], next[1]}, e.Bulges[i], 32) {
						box.add(p)
					}
				}
			}

		case *entity.Circle:
			cx, cy, r := e.Center[0], e.Center[1], e.Radius
			box.add(point{cx - r, cy - r})
			box.add(point{cx + r, cy + r})
			if largest == nil || r > largest.Radius {
				largest = e
			}

		case *entity.Arc:
			for _, p := range arcToPoints(e, 32) {
				box.add(p)
			}

		case *entity.Line:
			box.add(point{e.Start[0], e.Start[1]})
			box.add(point{e.End[0], e.End[1]})

		default:
			skipped++
		}
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}
	if box.empty || box.width() < boundsTolerance || box.height() < boundsTolerance {
		result.Errors = append(result.Errors, "No usable outline found in DXF file")
		return result
	}
	if depth <= 0 {
		result.Warnings = append(result.Warnings, "No depth given, volume will be zero until one is entered")
	}

	if largest != nil && circleBounds(largest, box) {
		result.Shape = model.ShapeCylindrical
		result.Geometry = model.PartGeometry{Diameter: 2 * largest.Radius, Length: depth}
		return result
	}

	length := math.Max(box.width(), box.height())
	width := math.Min(box.width(), box.height())
	result.Shape = model.ShapeRectangular
	result.Geometry = model.PartGeometry{Length: length, Width: width, Thickness: depth}
	return result
}

// circleBounds reports whether c touches all four sides of box.
func circleBounds(c *entity.Circle, box bbox) bool {
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	return math.Abs(cx-r-box.min.x) <= boundsTolerance &&
		math.Abs(cx+r-box.max.x) <= boundsTolerance &&
		math.Abs(cy-r-box.min.y) <= boundsTolerance &&
		math.Abs(cy+r-box.max.y) <= boundsTolerance
}

// bulgeArcPoints generates points along an arc defined by two endpoints and a
// DXF bulge factor. The bulge is the tangent of 1/4 the included angle.
func bulgeArcPoints(p1, p2 point, bulge float64, numSegments int) []point {
	mx := (p1.x + p2.x) / 2
	my := (p1.y + p2.y) / 2
	dx := p2.x - p1.x
	dy := p2.y - p1.y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return []point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	// Center sits on the perpendicular through the chord midpoint
	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.y-cy, p1.x-cx)
	endAngle := math.Atan2(p2.y-cy, p2.x-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else if endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make([]point, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, point{cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)})
	}
	return pts
}

// arcToPoints samples a DXF ARC entity.
func arcToPoints(a *entity.Arc, numSegments int) []point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]point, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = point{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pts
}
