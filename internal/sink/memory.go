package sink

import (
	"fmt"
	"sort"

	"github.com/edkwan/framegen/internal/grid"
	"github.com/edkwan/framegen/internal/model"
)

// FrameRec is the memory sink's record of one frame object.
type FrameRec struct {
	ID       int64
	I, J     model.Point3
	Section  string
	Pinned   bool
	Cardinal int
	RigidEnd bool
	Rotation float64
	Deleted  bool
	Groups   []string
}

// AreaRec is the memory sink's record of one area object (floor or wall).
type AreaRec struct {
	ID        int64
	Section   string
	Elevation float64
	Wall      bool
	Diaphragm model.DiaphragmKind
	Loads     map[string]float64
	Pier      string
	Groups    []string
}

// Memory is an in-process Sink that records every mutation. It doubles
// as the test double and the dry-run target. Frame and area IDs are
// issued from independent counters, so a wall and a frame can share the
// same numeric ID just like the real automation endpoint.
type Memory struct {
	Frames map[int64]*FrameRec
	Areas  map[int64]*AreaRec
	Piers  map[string]bool
	Ops    []string // chronological mutation log

	// FailOps causes the named operations to return an error, for
	// exercising the best-effort creation paths.
	FailOps map[string]bool

	frameSeq   int64
	areaSeq    int64
	pointSeq   int64
	points     map[[3]float64]int64
	restraints map[int64]bool
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{
		Frames:     make(map[int64]*FrameRec),
		Areas:      make(map[int64]*AreaRec),
		Piers:      map[string]bool{"P1": true},
		points:     make(map[[3]float64]int64),
		restraints: make(map[int64]bool),
	}
}

func (m *Memory) fail(op string) error {
	if m.FailOps[op] {
		return fmt.Errorf("sink: %s refused", op)
	}
	return nil
}

func (m *Memory) record(format string, args ...any) {
	m.Ops = append(m.Ops, fmt.Sprintf(format, args...))
}

func (m *Memory) point(x, y, z float64) int64 {
	key := [3]float64{x, y, z}
	if id, ok := m.points[key]; ok {
		return id
	}
	m.pointSeq++
	m.points[key] = m.pointSeq
	return m.pointSeq
}

func (m *Memory) DefineStories(base float64, names []string, heights []float64) error {
	if err := m.fail("define_stories"); err != nil {
		return err
	}
	m.record("define_stories base=%g names=%v heights=%v", base, names, heights)
	return nil
}

func (m *Memory) DefineGridLine(f grid.Family, label string, ordinate float64) error {
	if err := m.fail("define_grid_line"); err != nil {
		return err
	}
	m.record("define_grid_line family=%s label=%s ordinate=%g", f, label, ordinate)
	return nil
}

func (m *Memory) CreateFloor(boundary []model.Point2, elevation float64, section string) (int64, error) {
	if err := m.fail("create_floor"); err != nil {
		return 0, err
	}
	m.areaSeq++
	id := m.areaSeq
	m.Areas[id] = &AreaRec{ID: id, Section: section, Elevation: elevation, Loads: make(map[string]float64)}
	for _, p := range boundary {
		m.point(p.X, p.Y, elevation)
	}
	m.record("create_floor z=%g section=%s vertices=%d -> %d", elevation, section, len(boundary), id)
	return id, nil
}

func (m *Memory) SetDiaphragm(id int64, kind model.DiaphragmKind) error {
	if err := m.fail("set_diaphragm"); err != nil {
		return err
	}
	a, ok := m.Areas[id]
	if !ok {
		return fmt.Errorf("sink: no area %d", id)
	}
	a.Diaphragm = kind
	m.record("set_diaphragm id=%d kind=%s", id, kind)
	return nil
}

func (m *Memory) SetUniformLoad(id int64, pattern string, value float64) error {
	if err := m.fail("set_uniform_load"); err != nil {
		return err
	}
	a, ok := m.Areas[id]
	if !ok {
		return fmt.Errorf("sink: no area %d", id)
	}
	a.Loads[pattern] = value
	m.record("set_uniform_load id=%d pattern=%q value=%g", id, pattern, value)
	return nil
}

func (m *Memory) CreateFrame(i, j model.Point3, section string) (int64, error) {
	if err := m.fail("create_frame"); err != nil {
		return 0, err
	}
	m.frameSeq++
	id := m.frameSeq
	m.Frames[id] = &FrameRec{ID: id, I: i, J: j, Section: section}
	m.point(i.X, i.Y, i.Z)
	m.point(j.X, j.Y, j.Z)
	m.record("create_frame %s->%s section=%s -> %d", i, j, section, id)
	return id, nil
}

func (m *Memory) SetReleases(id int64, pinned bool) error {
	if err := m.fail("set_releases"); err != nil {
		return err
	}
	f, ok := m.Frames[id]
	if !ok {
		return fmt.Errorf("sink: no frame %d", id)
	}
	f.Pinned = pinned
	m.record("set_releases id=%d pinned=%t", id, pinned)
	return nil
}

func (m *Memory) SetInsertionPoint(id int64, cardinal int) error {
	if err := m.fail("set_insertion_point"); err != nil {
		return err
	}
	f, ok := m.Frames[id]
	if !ok {
		return fmt.Errorf("sink: no frame %d", id)
	}
	f.Cardinal = cardinal
	m.record("set_insertion_point id=%d cardinal=%d", id, cardinal)
	return nil
}

func (m *Memory) SetEndOffsets(id int64, rigid bool) error {
	if err := m.fail("set_end_offsets"); err != nil {
		return err
	}
	f, ok := m.Frames[id]
	if !ok {
		return fmt.Errorf("sink: no frame %d", id)
	}
	f.RigidEnd = rigid
	m.record("set_end_offsets id=%d rigid=%t", id, rigid)
	return nil
}

func (m *Memory) RotateLocalAxis(id int64, angle float64) error {
	if err := m.fail("rotate_local_axis"); err != nil {
		return err
	}
	f, ok := m.Frames[id]
	if !ok {
		return fmt.Errorf("sink: no frame %d", id)
	}
	f.Rotation = angle
	m.record("rotate_local_axis id=%d angle=%g", id, angle)
	return nil
}

func (m *Memory) SetSection(id int64, section string) error {
	if err := m.fail("set_section"); err != nil {
		return err
	}
	f, ok := m.Frames[id]
	if !ok {
		return fmt.Errorf("sink: no frame %d", id)
	}
	f.Section = section
	m.record("set_section id=%d section=%s", id, section)
	return nil
}

func (m *Memory) DeleteMember(id int64) error {
	if err := m.fail("delete_member"); err != nil {
		return err
	}
	f, ok := m.Frames[id]
	if !ok {
		return fmt.Errorf("sink: no frame %d", id)
	}
	f.Deleted = true
	m.record("delete_member id=%d", id)
	return nil
}

func (m *Memory) CreateWall(vertices [4]model.Point3, section string) (int64, error) {
	if err := m.fail("create_wall"); err != nil {
		return 0, err
	}
	m.areaSeq++
	id := m.areaSeq
	m.Areas[id] = &AreaRec{ID: id, Section: section, Wall: true, Loads: make(map[string]float64)}
	for _, v := range vertices {
		m.point(v.X, v.Y, v.Z)
	}
	m.record("create_wall %s->%s section=%s -> %d", vertices[0], vertices[2], section, id)
	return id, nil
}

func (m *Memory) SetWallSection(id int64, section string) error {
	if err := m.fail("set_wall_section"); err != nil {
		return err
	}
	a, ok := m.Areas[id]
	if !ok || !a.Wall {
		return fmt.Errorf("sink: no wall %d", id)
	}
	a.Section = section
	m.record("set_wall_section id=%d section=%s", id, section)
	return nil
}

func (m *Memory) SetPier(id int64, pier string) error {
	if err := m.fail("set_pier"); err != nil {
		return err
	}
	a, ok := m.Areas[id]
	if !ok || !a.Wall {
		return fmt.Errorf("sink: no wall %d", id)
	}
	m.Piers[pier] = true
	a.Pier = pier
	m.record("set_pier id=%d pier=%s", id, pier)
	return nil
}

func (m *Memory) ListPiers() ([]string, error) {
	if err := m.fail("list_piers"); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(m.Piers))
	for name := range m.Piers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (m *Memory) DeletePier(name string) error {
	if err := m.fail("delete_pier"); err != nil {
		return err
	}
	delete(m.Piers, name)
	m.record("delete_pier name=%s", name)
	return nil
}

func (m *Memory) CreateGroup(name string) error {
	if err := m.fail("create_group"); err != nil {
		return err
	}
	m.record("create_group name=%q", name)
	return nil
}

func (m *Memory) DeleteGroup(name string) error {
	if err := m.fail("delete_group"); err != nil {
		return err
	}
	m.record("delete_group name=%q", name)
	return nil
}

func (m *Memory) AssignFrameToGroup(id int64, name string) error {
	if err := m.fail("assign_frame_to_group"); err != nil {
		return err
	}
	f, ok := m.Frames[id]
	if !ok {
		return fmt.Errorf("sink: no frame %d", id)
	}
	f.Groups = append(f.Groups, name)
	m.record("assign_frame_to_group id=%d name=%q", id, name)
	return nil
}

func (m *Memory) AssignAreaToGroup(id int64, name string) error {
	if err := m.fail("assign_area_to_group"); err != nil {
		return err
	}
	a, ok := m.Areas[id]
	if !ok {
		return fmt.Errorf("sink: no area %d", id)
	}
	a.Groups = append(a.Groups, name)
	m.record("assign_area_to_group id=%d name=%q", id, name)
	return nil
}

func (m *Memory) Points() ([]Point, error) {
	if err := m.fail("points"); err != nil {
		return nil, err
	}
	out := make([]Point, 0, len(m.points))
	for key, id := range m.points {
		out = append(out, Point{ID: id, X: key[0], Y: key[1], Z: key[2]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SetPointRestraint(id int64, fixed bool) error {
	if err := m.fail("set_point_restraint"); err != nil {
		return err
	}
	m.restraints[id] = fixed
	m.record("set_point_restraint id=%d fixed=%t", id, fixed)
	return nil
}

// Restrained reports whether a joint has a fixed base restraint.
func (m *Memory) Restrained(id int64) bool { return m.restraints[id] }

// ActiveFrames counts frames that have not been deleted.
func (m *Memory) ActiveFrames() int {
	n := 0
	for _, f := range m.Frames {
		if !f.Deleted {
			n++
		}
	}
	return n
}
