package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edkwan/framegen/internal/groups"
	"github.com/edkwan/framegen/internal/logging"
	"github.com/edkwan/framegen/internal/model"
	"github.com/edkwan/framegen/internal/sink"
)

func TestTrimFloorAllOrNothing(t *testing.T) {
	mem := sink.NewMemory()
	gen, idx := newGenerator(mem, 0)
	f := testFloor()
	gen.GenerateFloor(&f)

	// Shrink the boundary so everything touching grid B (x=400) loses
	// coverage: 2 columns, both girders, and the beam on B.
	f.Boundary = rect(300, 300)
	trim := &Trimmer{Sink: mem, Index: idx, Members: gen.Members, Log: logging.Nop()}

	n, err := trim.TrimFloor(&f)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 3, mem.ActiveFrames())

	// Members are deleted whole, never clipped: no girder survives at
	// a shortened span.
	for _, rec := range mem.Frames {
		if !rec.Deleted {
			assert.LessOrEqual(t, rec.I.X, 300.0)
			assert.LessOrEqual(t, rec.J.X, 300.0)
		}
	}

	// Deleted IDs hold only the reserved tag.
	for _, id := range idx.Set(groups.Deleted) {
		assert.False(t, idx.Contains(groups.ByFloor("Roof"), id))
		assert.True(t, gen.Members[id].Deleted)
	}
	assert.Equal(t, 5, idx.Size(groups.Deleted))
}

func TestTrimFloorBoundaryEdgeCovered(t *testing.T) {
	mem := sink.NewMemory()
	gen, idx := newGenerator(mem, 0)
	f := testFloor()
	gen.GenerateFloor(&f)

	// The boundary passes exactly through the outer grid lines; members
	// on the edge stay.
	trim := &Trimmer{Sink: mem, Index: idx, Members: gen.Members, Log: logging.Nop()}
	n, err := trim.TrimFloor(&f)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 8, mem.ActiveFrames())
}

func TestTrimFloorNonSimplePolygon(t *testing.T) {
	mem := sink.NewMemory()
	gen, idx := newGenerator(mem, 0)
	f := testFloor()
	gen.GenerateFloor(&f)

	f.Boundary = []model.Point2{{X: 0, Y: 0}, {X: 400, Y: 300}, {X: 400, Y: 0}, {X: 0, Y: 300}}
	trim := &Trimmer{Sink: mem, Index: idx, Members: gen.Members, Log: logging.Nop()}

	_, err := trim.TrimFloor(&f)
	var polyErr *NonSimplePolygonError
	require.ErrorAs(t, err, &polyErr)
	assert.Equal(t, "Roof", polyErr.Floor)

	// Nothing was deleted before the abort.
	assert.Equal(t, 8, mem.ActiveFrames())
	assert.Zero(t, idx.Size(groups.Deleted))
}

func TestTrimFloorSinkRefusal(t *testing.T) {
	mem := sink.NewMemory()
	gen, idx := newGenerator(mem, 0)
	f := testFloor()
	gen.GenerateFloor(&f)

	// A refused sink deletion still removes the member from the index;
	// the model-side record is authoritative.
	mem.FailOps = map[string]bool{"delete_member": true}
	f.Boundary = rect(300, 300)
	trim := &Trimmer{Sink: mem, Index: idx, Members: gen.Members, Log: logging.Nop()}

	n, err := trim.TrimFloor(&f)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, idx.Size(groups.Deleted))
}
