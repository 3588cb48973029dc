package generate

import (
	"github.com/rs/zerolog"

	"github.com/edkwan/framegen/internal/groups"
	"github.com/edkwan/framegen/internal/model"
	"github.com/edkwan/framegen/internal/sink"
)

// GroupAllLateral collects every SFRS member and wall panel.
const GroupAllLateral = "ALL LATERAL"

// sinkGroups maps the sink-side convenience groups to index tags.
var sinkGroups = []struct {
	name string
	tag  groups.Tag
	wall bool
}{
	{"SFRS_BM X", groups.Lateral("SFRS_beam", model.DirectionX), false},
	{"SFRS_BM Y", groups.Lateral("SFRS_beam", model.DirectionY), false},
	{"SFRS_COL X", groups.Lateral("SFRS_column", model.DirectionX), false},
	{"SFRS_COL Y", groups.Lateral("SFRS_column", model.DirectionY), false},
	{"SFRS_BRACE X", groups.Lateral("SFRS_brace", model.DirectionX), false},
	{"SFRS_BRACE Y", groups.Lateral("SFRS_brace", model.DirectionY), false},
	{"SFRS_WALL X", groups.Lateral("SFRS_wall", model.DirectionX), true},
	{"SFRS_WALL Y", groups.Lateral("SFRS_wall", model.DirectionY), true},
}

// syncGroups recreates the sink-side named groups from the index.
// Groups are deleted and recreated so a regenerated model never carries
// stale assignments.
func syncGroups(s sink.Sink, st *State, log zerolog.Logger) {
	recreate := func(name string) {
		if err := s.DeleteGroup(name); err != nil {
			log.Debug().Err(err).Str("group", name).Msg("group deletion skipped")
		}
		if err := s.CreateGroup(name); err != nil {
			log.Warn().Err(err).Str("group", name).Msg("group creation failed")
		}
	}

	recreate(GroupAllLateral)
	for _, id := range st.Index.Set(groups.SFRS) {
		if err := s.AssignFrameToGroup(id, GroupAllLateral); err != nil {
			log.Warn().Err(err).Int64("id", id).Msg("group assignment failed")
		}
	}
	for _, dir := range []model.Direction{model.DirectionX, model.DirectionY} {
		for _, id := range st.WallIndex.Set(groups.Lateral("SFRS_wall", dir)) {
			if err := s.AssignAreaToGroup(id, GroupAllLateral); err != nil {
				log.Warn().Err(err).Int64("id", id).Msg("group assignment failed")
			}
		}
	}

	for _, g := range sinkGroups {
		recreate(g.name)
		idx := st.Index
		assign := s.AssignFrameToGroup
		if g.wall {
			idx = st.WallIndex
			assign = s.AssignAreaToGroup
		}
		for _, id := range idx.Set(g.tag) {
			if err := assign(id, g.name); err != nil {
				log.Warn().Err(err).Int64("id", id).Str("group", g.name).Msg("group assignment failed")
			}
		}
	}
}
