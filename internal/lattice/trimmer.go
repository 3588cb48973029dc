package lattice

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edkwan/framegen/internal/groups"
	"github.com/edkwan/framegen/internal/model"
	"github.com/edkwan/framegen/internal/sink"
)

// NonSimplePolygonError aborts a floor's trim step: containment against
// a self-intersecting boundary is not well-defined.
type NonSimplePolygonError struct {
	Floor string
}

func (e *NonSimplePolygonError) Error() string {
	return fmt.Sprintf("floor %q: boundary polygon is not simple", e.Floor)
}

// Trimmer deletes lattice members whose horizontal projection is not
// fully covered by the floor boundary. Coverage is all-or-nothing: a
// member with even one projected endpoint outside the polygon is
// deleted whole, never clipped or split. Endpoints on the boundary edge
// count as covered.
type Trimmer struct {
	Sink    sink.Sink
	Index   *groups.Index
	Members map[int64]*model.Member
	Log     zerolog.Logger
}

// TrimFloor removes out-of-bounds members for one floor and returns the
// number deleted. Deleted IDs move to the reserved deleted tag and leave
// every other tag.
func (t *Trimmer) TrimFloor(f *model.Floor) (int, error) {
	if !IsSimple(f.Boundary) {
		return 0, &NonSimplePolygonError{Floor: f.Name}
	}
	poly := toGeom(f.Boundary)

	deleted := 0
	for _, id := range t.Index.Set(groups.ByFloor(f.Name)) {
		m, ok := t.Members[id]
		if !ok || m.Deleted {
			continue
		}
		if covers(poly, m.I.XY()) && covers(poly, m.J.XY()) {
			continue
		}
		if err := t.Sink.DeleteMember(id); err != nil {
			t.Log.Warn().Err(err).Int64("id", id).
				Str("role", string(m.Role)).Str("story", m.Story).
				Msg("member deletion failed")
		}
		m.Deleted = true
		t.Index.MarkDeleted(id)
		deleted++
	}
	return deleted, nil
}
