package lattice

import (
	"math"

	"github.com/ctessum/geom"

	"github.com/edkwan/framegen/internal/model"
)

// toGeom converts a boundary vertex list (no repeated closing vertex)
// into a single-ring polygon.
func toGeom(boundary []model.Point2) geom.Polygon {
	ring := make([]geom.Point, len(boundary))
	for i, p := range boundary {
		ring[i] = geom.Point{X: p.X, Y: p.Y}
	}
	return geom.Polygon{ring}
}

// Area returns the enclosed area of a boundary polygon.
func Area(boundary []model.Point2) float64 {
	return math.Abs(toGeom(boundary).Area())
}

// Perimeter returns the closed-ring length of a boundary polygon.
func Perimeter(boundary []model.Point2) float64 {
	n := len(boundary)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		a, b := boundary[i], boundary[(i+1)%n]
		total += math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	return total
}

// covers reports whether the plan-view point lies inside or on the
// boundary of the polygon.
func covers(poly geom.Polygon, p model.Point2) bool {
	return geom.Point{X: p.X, Y: p.Y}.Within(poly) != geom.Outside
}

// IsSimple reports whether the boundary forms a simple polygon: at
// least three vertices and no two non-adjacent edges intersecting.
// Containment tests are only well-defined on simple polygons.
func IsSimple(boundary []model.Point2) bool {
	n := len(boundary)
	if n < 3 {
		return false
	}
	edge := func(i int) (model.Point2, model.Point2) {
		return boundary[i], boundary[(i+1)%n]
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			// Adjacent edges share a vertex; skip them, including the
			// wrap-around pair (last edge, first edge).
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			a1, a2 := edge(i)
			b1, b2 := edge(j)
			if segmentsIntersect(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

func segmentsIntersect(p1, p2, q1, q2 model.Point2) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	// Collinear overlaps also break simplicity.
	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

func cross(a, b, c model.Point2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, p model.Point2) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
