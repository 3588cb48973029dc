// Package sink defines the model-sink capability the generator writes
// into, plus an in-memory implementation used by tests and dry runs.
// The core depends only on this contract, never on a concrete
// structural-analysis automation binding.
package sink

import (
	"github.com/edkwan/framegen/internal/grid"
	"github.com/edkwan/framegen/internal/model"
)

// Point is one joint reported by the sink.
type Point struct {
	ID      int64
	X, Y, Z float64
}

// Sink is the structural-analysis model boundary. Creation calls return
// the sink-assigned ID; an error leaves the caller with the null ID
// (zero), and all subsequent operations on a null ID must be skipped by
// the caller. Implementations never panic on failure.
//
// Frame objects and area objects (floors, walls) draw IDs from separate
// numeric spaces, which is why wall mutations have dedicated methods.
type Sink interface {
	// Stories and grids.
	DefineStories(baseElevation float64, names []string, heights []float64) error
	DefineGridLine(family grid.Family, label string, ordinate float64) error

	// Floor diaphragms.
	CreateFloor(boundary []model.Point2, elevation float64, section string) (int64, error)
	SetDiaphragm(id int64, kind model.DiaphragmKind) error
	SetUniformLoad(id int64, pattern string, value float64) error

	// Frame members.
	CreateFrame(i, j model.Point3, section string) (int64, error)
	SetReleases(id int64, pinned bool) error
	SetInsertionPoint(id int64, cardinal int) error
	SetEndOffsets(id int64, rigid bool) error
	RotateLocalAxis(id int64, angle float64) error
	SetSection(id int64, section string) error
	DeleteMember(id int64) error

	// Wall panels and piers.
	CreateWall(vertices [4]model.Point3, section string) (int64, error)
	SetWallSection(id int64, section string) error
	SetPier(id int64, pier string) error
	ListPiers() ([]string, error)
	DeletePier(name string) error

	// Named groups.
	CreateGroup(name string) error
	DeleteGroup(name string) error
	AssignFrameToGroup(id int64, name string) error
	AssignAreaToGroup(id int64, name string) error

	// Joints.
	Points() ([]Point, error)
	SetPointRestraint(id int64, fixed bool) error
}
