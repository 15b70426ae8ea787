package spine

import (
	"math"
	"testing"
)

var lShape = []float64{0, 0, 20, 0, 20, 10, 10, 10, 10, 20, 0, 20}

func indexedArea(verts []float64, tris []int) float64 {
	var sum float64
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := tris[i]*2, tris[i+1]*2, tris[i+2]*2
		sum += cross(verts[a], verts[a+1], verts[b], verts[b+1], verts[c], verts[c+1]) / 2
	}
	return sum
}

func TestTriangulateSquare(t *testing.T) {
	var tr Triangulator
	square := []float64{0, 0, 10, 0, 10, 10, 0, 10}
	tris := tr.Triangulate(square)
	if len(tris) != 6 {
		t.Fatalf("indices = %d, want 6", len(tris))
	}
	if got := indexedArea(square, tris); math.Abs(got-100) > 1e-9 {
		t.Errorf("area = %v, want 100", got)
	}
}

func TestTriangulateConcave(t *testing.T) {
	var tr Triangulator
	tris := tr.Triangulate(lShape)
	if len(tris) != 12 {
		t.Fatalf("indices = %d, want 12 (4 triangles)", len(tris))
	}
	if got := indexedArea(lShape, tris); math.Abs(got-300) > 1e-9 {
		t.Errorf("area = %v, want 300", got)
	}
}

func TestTriangulateKeepsClockwiseWinding(t *testing.T) {
	var tr Triangulator
	cw := []float64{0, 0, 0, 10, 10, 10, 10, 0}
	tris := tr.Triangulate(cw)
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := tris[i]*2, tris[i+1]*2, tris[i+2]*2
		if cross(cw[a], cw[a+1], cw[b], cw[b+1], cw[c], cw[c+1]) >= 0 {
			t.Errorf("triangle %v is not clockwise", tris[i:i+3])
		}
	}
}

func TestTriangulateTooFewVertices(t *testing.T) {
	var tr Triangulator
	if tris := tr.Triangulate([]float64{0, 0, 1, 1}); len(tris) != 0 {
		t.Errorf("indices = %d, want 0", len(tris))
	}
}

func TestDecomposeSquareIsOnePolygon(t *testing.T) {
	var tr Triangulator
	square := []float64{0, 0, 10, 0, 10, 10, 0, 10}
	polys := tr.Decompose(square, tr.Triangulate(square))
	if len(polys) != 1 {
		t.Fatalf("polygons = %d, want 1", len(polys))
	}
	if len(polys[0]) != 8 {
		t.Errorf("polygon vertices = %d, want 4", len(polys[0])/2)
	}
}

func TestDecomposeConcaveIntoConvex(t *testing.T) {
	var tr Triangulator
	polys := tr.Decompose(lShape, tr.Triangulate(lShape))
	if len(polys) < 2 {
		t.Fatalf("polygons = %d, want >= 2", len(polys))
	}
	var total float64
	for _, p := range polys {
		if polygonArea(p) <= 0 {
			t.Errorf("polygon %v is not counter-clockwise", p)
		}
		total += polygonArea(p) / 2
	}
	if math.Abs(total-300) > 1e-9 {
		t.Errorf("total area = %v, want 300", total)
	}
}

func TestMakeCounterClockwise(t *testing.T) {
	cw := []float64{0, 0, 0, 10, 10, 10, 10, 0}
	makeCounterClockwise(cw)
	if polygonArea(cw) <= 0 {
		t.Errorf("polygon %v still clockwise", cw)
	}
}
