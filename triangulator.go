package spine

// Triangulator splits simple polygons into triangles and convex pieces. It
// keeps its working buffers between calls; it is not safe for concurrent use.
type Triangulator struct {
	indices   []int
	triangles []int
	polys     [][]int
}

// Triangulate ear-clips a simple polygon given as x,y pairs and returns
// vertex indices, three per triangle, wound like the input. The returned
// slice is reused by the next call.
func (t *Triangulator) Triangulate(verts []float64) []int {
	n := len(verts) / 2
	t.triangles = t.triangles[:0]
	if n < 3 {
		return t.triangles
	}

	if cap(t.indices) < n {
		t.indices = make([]int, n)
	}
	idx := t.indices[:n]
	ccw := polygonArea(verts) >= 0
	for i := range idx {
		if ccw {
			idx[i] = i
		} else {
			idx[i] = n - 1 - i
		}
	}

	for len(idx) > 3 {
		m := len(idx)
		found := false
		for i := 0; i < m; i++ {
			p, c, nx := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
			if !isEar(verts, idx, p, c, nx) {
				continue
			}
			t.triangles = appendTriangle(t.triangles, ccw, p, c, nx)
			idx = append(idx[:i], idx[i+1:]...)
			found = true
			break
		}
		if !found {
			// Self-intersecting or degenerate input; clip the first vertex
			// so the loop always terminates.
			t.triangles = appendTriangle(t.triangles, ccw, idx[m-1], idx[0], idx[1])
			idx = idx[1:]
		}
	}
	t.triangles = appendTriangle(t.triangles, ccw, idx[0], idx[1], idx[2])
	return t.triangles
}

// appendTriangle appends a counter-clockwise triangle, restoring the input
// winding when the polygon was clockwise.
func appendTriangle(dst []int, ccw bool, a, b, c int) []int {
	if ccw {
		return append(dst, a, b, c)
	}
	return append(dst, c, b, a)
}

// isEar reports whether (p, c, n) is a convex corner with no other remaining
// vertex inside or on it. idx is wound counter-clockwise.
func isEar(verts []float64, idx []int, p, c, n int) bool {
	ax, ay := verts[p*2], verts[p*2+1]
	bx, by := verts[c*2], verts[c*2+1]
	cx, cy := verts[n*2], verts[n*2+1]
	if cross(ax, ay, bx, by, cx, cy) <= 0 {
		return false
	}
	for _, j := range idx {
		if j == p || j == c || j == n {
			continue
		}
		px, py := verts[j*2], verts[j*2+1]
		if cross(ax, ay, bx, by, px, py) >= 0 &&
			cross(bx, by, cx, cy, px, py) >= 0 &&
			cross(cx, cy, ax, ay, px, py) >= 0 {
			return false
		}
	}
	return true
}

// Decompose merges triangles from Triangulate into convex polygons, each
// returned as counter-clockwise x,y pairs. Degenerate triangles are dropped.
func (t *Triangulator) Decompose(verts []float64, triangles []int) [][]float64 {
	t.polys = t.polys[:0]
	for i := 0; i+2 < len(triangles); i += 3 {
		a, b, c := triangles[i], triangles[i+1], triangles[i+2]
		area := cross(verts[a*2], verts[a*2+1], verts[b*2], verts[b*2+1], verts[c*2], verts[c*2+1])
		switch {
		case area > 1e-9:
			t.polys = append(t.polys, []int{a, b, c})
		case area < -1e-9:
			t.polys = append(t.polys, []int{c, b, a})
		}
	}

	// Hertel-Mehlhorn: remove shared diagonals while the union stays convex.
	for merged := true; merged; {
		merged = false
		for i := 0; i < len(t.polys) && !merged; i++ {
			for j := i + 1; j < len(t.polys); j++ {
				u := mergePolygons(t.polys[i], t.polys[j])
				if u == nil || !isConvex(verts, u) {
					continue
				}
				t.polys[i] = u
				t.polys = append(t.polys[:j], t.polys[j+1:]...)
				merged = true
				break
			}
		}
	}

	out := make([][]float64, len(t.polys))
	for i, p := range t.polys {
		poly := make([]float64, 0, len(p)*2)
		for _, v := range p {
			poly = append(poly, verts[v*2], verts[v*2+1])
		}
		out[i] = poly
	}
	return out
}

// mergePolygons joins two counter-clockwise index polygons across a shared
// edge. Returns nil when they share no edge.
func mergePolygons(a, b []int) []int {
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		u, v := a[i], a[(i+1)%na]
		for j := 0; j < nb; j++ {
			if b[j] != v || b[(j+1)%nb] != u {
				continue
			}
			out := make([]int, 0, na+nb-2)
			for k := 0; k < na; k++ {
				out = append(out, a[(i+1+k)%na])
			}
			for k := 2; k < nb; k++ {
				out = append(out, b[(j+k)%nb])
			}
			return out
		}
	}
	return nil
}

// isConvex reports whether a counter-clockwise index polygon has no reflex
// corners. Collinear corners are allowed.
func isConvex(verts []float64, poly []int) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b, c := poly[i], poly[(i+1)%n], poly[(i+2)%n]
		if cross(verts[a*2], verts[a*2+1], verts[b*2], verts[b*2+1], verts[c*2], verts[c*2+1]) < -1e-9 {
			return false
		}
	}
	return true
}

// cross returns the z component of (b-a) × (c-a). Positive when a, b, c turn
// counter-clockwise.
func cross(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// polygonArea returns twice the signed area of a polygon of x,y pairs.
// Positive for counter-clockwise winding.
func polygonArea(verts []float64) float64 {
	n := len(verts)
	var area float64
	for i := 0; i < n; i += 2 {
		j := (i + 2) % n
		area += verts[i]*verts[j+1] - verts[j]*verts[i+1]
	}
	return area
}

// makeCounterClockwise reverses the vertex order of a clockwise polygon in
// place.
func makeCounterClockwise(verts []float64) {
	if polygonArea(verts) >= 0 {
		return
	}
	for i, j := 0, len(verts)-2; i < j; i, j = i+2, j-2 {
		verts[i], verts[j] = verts[j], verts[i]
		verts[i+1], verts[j+1] = verts[j+1], verts[i+1]
	}
}
