package importer

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/piwi3910/MachCost/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func line(x1, y1, x2, y2 float64) *entity.Line {
	return &entity.Line{Start: []float64{x1, y1, 0}, End: []float64{x2, y2, 0}}
}

func TestGeometryFromEntities_Rectangle(t *testing.T) {
	ents := []entity.Entity{
		line(0, 0, 40, 0),
		line(40, 0, 40, 120),
		line(40, 120, 0, 120),
		line(0, 120, 0, 0),
		// mounting hole inside the outline
		&entity.Circle{Center: []float64{20, 60, 0}, Radius: 5},
	}
	res := geometryFromEntities(ents, 12)

	if len(res.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.Shape != model.ShapeRectangular {
		t.Fatalf("expected rectangular, got %s", res.Shape)
	}
	g := res.Geometry
	if g.Length != 120 || g.Width != 40 || g.Thickness != 12 {
		t.Errorf("unexpected geometry %+v", g)
	}
}

func TestGeometryFromEntities_Polyline(t *testing.T) {
	ents := []entity.Entity{
		&entity.LwPolyline{Vertices: [][]float64{{10, 10}, {60, 10}, {60, 30}, {10, 30}}},
	}
	res := geometryFromEntities(ents, 5)
	if res.Geometry.Length != 50 || res.Geometry.Width != 20 {
		t.Errorf("unexpected geometry %+v", res.Geometry)
	}
}

func TestGeometryFromEntities_Cylinder(t *testing.T) {
	ents := []entity.Entity{
		&entity.Circle{Center: []float64{0, 0, 0}, Radius: 25},
		&entity.Circle{Center: []float64{0, 0, 0}, Radius: 8},
		line(-5, 0, 5, 0),
	}
	res := geometryFromEntities(ents, 80)
	if res.Shape != model.ShapeCylindrical {
		t.Fatalf("expected cylindrical, got %s", res.Shape)
	}
	if res.Geometry.Diameter != 50 || res.Geometry.Length != 80 {
		t.Errorf("unexpected geometry %+v", res.Geometry)
	}

	v, err := model.CalculateVolume(res.Geometry, model.UnitsMetric)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Pi * 25 * 25 * 80 / 1000
	if math.Abs(v-want) > 1e-9 {
		t.Errorf("expected %f cm³, got %f", want, v)
	}
}

func TestGeometryFromEntities_Empty(t *testing.T) {
	if res := geometryFromEntities(nil, 1); len(res.Errors) == 0 {
		t.Error("expected error for empty drawing")
	}
	if res := geometryFromEntities([]entity.Entity{line(0, 0, 10, 0)}, 1); len(res.Errors) == 0 {
		t.Error("expected error for degenerate outline")
	}
}

func TestGeometryFromEntities_NoDepthWarns(t *testing.T) {
	res := geometryFromEntities([]entity.Entity{line(0, 0, 10, 10)}, 0)
	if len(res.Warnings) == 0 {
		t.Error("expected warning when depth is missing")
	}
}

func TestBulgeArcPointsSemicircle(t *testing.T) {
	pts := bulgeArcPoints(point{0, 0}, point{10, 0}, 1, 32)
	box := newBBox()
	for _, p := range pts {
		box.add(p)
	}
	if math.Abs(box.height()-5) > 0.01 {
		t.Errorf("expected semicircle height 5, got %f", box.height())
	}
}

func TestImportGeometryDXF_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "round.dxf")
	d := dxf.NewDrawing()
	if _, err := d.Circle(50, 50, 0, 30); err != nil {
		t.Fatalf("failed to add circle: %v", err)
	}
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save DXF: %v", err)
	}

	res := ImportGeometryDXF(path, 100)
	if len(res.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.Shape != model.ShapeCylindrical || math.Abs(res.Geometry.Diameter-60) > 1e-6 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestImportGeometryDXF_FileNotFound(t *testing.T) {
	res := ImportGeometryDXF(filepath.Join(t.TempDir(), "missing.dxf"), 1)
	if len(res.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}
