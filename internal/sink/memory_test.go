package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edkwan/framegen/internal/model"
)

func TestFrameAndAreaIDSpacesAreIndependent(t *testing.T) {
	m := NewMemory()

	frameID, err := m.CreateFrame(model.Point3{}, model.Point3{Z: 144}, "W14X90")
	require.NoError(t, err)
	wallID, err := m.CreateWall([4]model.Point3{}, "WALL12")
	require.NoError(t, err)

	// Both counters start at one, so the IDs collide numerically.
	assert.Equal(t, frameID, wallID)
	assert.NotNil(t, m.Frames[frameID])
	require.NotNil(t, m.Areas[wallID])
	assert.True(t, m.Areas[wallID].Wall)
}

func TestWallMutationsRejectFloors(t *testing.T) {
	m := NewMemory()
	floorID, err := m.CreateFloor([]model.Point2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, 144, "SLAB8")
	require.NoError(t, err)

	assert.Error(t, m.SetWallSection(floorID, "WALL12"))
	assert.Error(t, m.SetPier(floorID, "P2"))
	assert.NoError(t, m.SetDiaphragm(floorID, model.DiaphragmRigid))
}

func TestPointsDeduplicate(t *testing.T) {
	m := NewMemory()

	// Two columns sharing a joint at the origin.
	_, err := m.CreateFrame(model.Point3{}, model.Point3{Z: 144}, "C")
	require.NoError(t, err)
	_, err = m.CreateFrame(model.Point3{}, model.Point3{X: 100}, "C")
	require.NoError(t, err)

	points, err := m.Points()
	require.NoError(t, err)
	assert.Len(t, points, 3)
}

func TestFailOps(t *testing.T) {
	m := NewMemory()
	m.FailOps = map[string]bool{"create_frame": true}

	id, err := m.CreateFrame(model.Point3{}, model.Point3{Z: 144}, "C")
	require.Error(t, err)
	assert.Zero(t, id)
	assert.Empty(t, m.Ops, "refused operations are not logged")
}
