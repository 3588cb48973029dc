package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edkwan/framegen/internal/model"
)

func rect(w, h float64) []model.Point2 {
	return []model.Point2{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
}

func TestAreaAndPerimeter(t *testing.T) {
	b := rect(400, 300)
	assert.InDelta(t, 120000, Area(b), 1e-9)
	assert.InDelta(t, 1400, Perimeter(b), 1e-9)

	// Winding order does not change the magnitude.
	rev := []model.Point2{{X: 0, Y: 300}, {X: 400, Y: 300}, {X: 400, Y: 0}, {X: 0, Y: 0}}
	assert.InDelta(t, 120000, Area(rev), 1e-9)
}

func TestCovers(t *testing.T) {
	poly := toGeom(rect(400, 300))

	assert.True(t, covers(poly, model.Point2{X: 200, Y: 150}))
	assert.False(t, covers(poly, model.Point2{X: 500, Y: 150}))
	assert.True(t, covers(poly, model.Point2{X: 0, Y: 150}), "boundary edge counts as covered")
	assert.True(t, covers(poly, model.Point2{X: 400, Y: 300}), "corner counts as covered")
}

func TestIsSimple(t *testing.T) {
	assert.True(t, IsSimple(rect(10, 10)))

	lShape := []model.Point2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 10}}
	assert.True(t, IsSimple(lShape))

	bowtie := []model.Point2{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	assert.False(t, IsSimple(bowtie))

	assert.False(t, IsSimple([]model.Point2{{X: 0, Y: 0}, {X: 10, Y: 0}}), "degenerate vertex count")
}
