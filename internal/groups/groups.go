// Package groups implements the tag-based membership index that makes
// incremental resynchronization possible. Every generator registers the
// members it creates under orthogonal, overlapping tags (role, floor,
// grid line, lateral system); the trimmer, the lateral placer, and the
// resync pass all query it by tag intersection instead of re-deriving
// geometry.
//
// Tags are structured (kind, value) pairs rather than concatenated
// strings, so a floor named "SFRS" can never collide with a system tag.
// Frame members and wall panels live in two separate Index instances
// because the sink assigns them IDs from different numeric spaces.
package groups

import (
	"sort"

	"github.com/edkwan/framegen/internal/model"
)

// Kind partitions the tag namespace.
type Kind string

const (
	KindRole    Kind = "role"    // gravity role: column, girder, beam
	KindFloor   Kind = "floor"   // floor name
	KindGrid    Kind = "grid"    // grid-line label the member lies on
	KindLateral Kind = "lateral" // SFRS and its direction-qualified subgroups
	KindState   Kind = "state"   // reserved lifecycle tags
)

// Tag identifies one membership set.
type Tag struct {
	Kind  Kind
	Value string
}

// Deleted is the reserved tag for members removed by the boundary
// trimmer. An ID in this set is never re-added to any other tag.
var Deleted = Tag{Kind: KindState, Value: "deleted"}

// SFRS is the umbrella tag for every lateral member.
var SFRS = Tag{Kind: KindLateral, Value: "SFRS"}

// ByRole tags members by gravity role.
func ByRole(r model.Role) Tag { return Tag{Kind: KindRole, Value: string(r)} }

// ByFloor tags members by the floor they belong to.
func ByFloor(name string) Tag { return Tag{Kind: KindFloor, Value: name} }

// OnGrid tags members lying on a grid line.
func OnGrid(label string) Tag { return Tag{Kind: KindGrid, Value: label} }

// Lateral builds a direction-qualified SFRS subgroup tag, for example
// Lateral("SFRS_brace", DirectionX) -> SFRS_braceX.
func Lateral(prefix string, dir model.Direction) Tag {
	return Tag{Kind: KindLateral, Value: prefix + string(dir)}
}

// Index is the tag -> set-of-IDs mapping. The zero value is not usable;
// call New.
type Index struct {
	tags    map[Tag]map[int64]struct{}
	deleted map[int64]struct{}
}

// New returns an empty index.
func New() *Index {
	return &Index{
		tags:    make(map[Tag]map[int64]struct{}),
		deleted: make(map[int64]struct{}),
	}
}

// Add registers an ID under a tag. Adding the sink's null ID (zero) or
// an ID that has been deleted is a no-op: failed creations are never
// indexed and deleted members never rejoin a live set.
func (x *Index) Add(t Tag, id int64) {
	if id == 0 {
		return
	}
	if _, gone := x.deleted[id]; gone && t != Deleted {
		return
	}
	set := x.tags[t]
	if set == nil {
		set = make(map[int64]struct{})
		x.tags[t] = set
	}
	set[id] = struct{}{}
}

// Contains reports membership of id under t.
func (x *Index) Contains(t Tag, id int64) bool {
	_, ok := x.tags[t][id]
	return ok
}

// Set returns the IDs registered under a tag, sorted ascending.
func (x *Index) Set(t Tag) []int64 {
	return sortedIDs(x.tags[t])
}

// Size returns the number of IDs under a tag.
func (x *Index) Size(t Tag) int { return len(x.tags[t]) }

// Intersect returns the IDs present under both tags, sorted ascending.
func (x *Index) Intersect(a, b Tag) []int64 {
	sa, sb := x.tags[a], x.tags[b]
	if len(sa) > len(sb) {
		sa, sb = sb, sa
	}
	out := make(map[int64]struct{})
	for id := range sa {
		if _, ok := sb[id]; ok {
			out[id] = struct{}{}
		}
	}
	return sortedIDs(out)
}

// MarkDeleted moves an ID into the reserved deleted set and strips it
// from every other tag. The operation is irreversible.
func (x *Index) MarkDeleted(id int64) {
	if id == 0 {
		return
	}
	for t, set := range x.tags {
		if t != Deleted {
			delete(set, id)
		}
	}
	x.deleted[id] = struct{}{}
	x.Add(Deleted, id)
}

// IsDeleted reports whether the ID has been removed by the trimmer.
func (x *Index) IsDeleted(id int64) bool {
	_, ok := x.deleted[id]
	return ok
}

// Tags returns every tag with at least one member, sorted by kind then
// value, for deterministic persistence.
func (x *Index) Tags() []Tag {
	out := make([]Tag, 0, len(x.tags))
	for t, set := range x.tags {
		if len(set) > 0 {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func sortedIDs(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
