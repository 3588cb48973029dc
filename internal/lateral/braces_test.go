package lateral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edkwan/framegen/internal/groups"
	"github.com/edkwan/framegen/internal/model"
)

func TestBracePairsTopologies(t *testing.T) {
	span := baySpan{dir: model.DirectionX, abscissa: 0}
	ords := []float64{0, 120}

	tests := []struct {
		config model.BraceConfig
		want   [][2]model.Point3
	}{
		{
			config: model.BraceSingleA,
			want: [][2]model.Point3{
				{{X: 0, Y: 0, Z: 0}, {X: 120, Y: 0, Z: 144}},
			},
		},
		{
			config: model.BraceSingleB,
			want: [][2]model.Point3{
				{{X: 120, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 144}},
			},
		},
		{
			config: model.BraceV,
			want: [][2]model.Point3{
				{{X: 0, Y: 0, Z: 144}, {X: 60, Y: 0, Z: 0}},
				{{X: 60, Y: 0, Z: 0}, {X: 120, Y: 0, Z: 144}},
			},
		},
		{
			config: model.BraceChevron,
			want: [][2]model.Point3{
				{{X: 0, Y: 0, Z: 0}, {X: 60, Y: 0, Z: 144}},
				{{X: 60, Y: 0, Z: 144}, {X: 120, Y: 0, Z: 0}},
			},
		},
		{
			config: model.BraceX,
			want: [][2]model.Point3{
				{{X: 0, Y: 0, Z: 0}, {X: 60, Y: 0, Z: 72}},
				{{X: 60, Y: 0, Z: 72}, {X: 120, Y: 0, Z: 144}},
				{{X: 0, Y: 0, Z: 144}, {X: 60, Y: 0, Z: 72}},
				{{X: 60, Y: 0, Z: 72}, {X: 120, Y: 0, Z: 0}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.config), func(t *testing.T) {
			got := bracePairs(tt.config, span, ords, 0, 144)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBracePairsSubBays(t *testing.T) {
	span := baySpan{dir: model.DirectionY, abscissa: 480}
	// Three ordinates make two sub-bays.
	got := bracePairs(model.BraceV, span, []float64{0, 240, 480}, 144, 288)
	require.Len(t, got, 4)

	// Y-direction spans run along Y at constant X.
	assert.Equal(t, model.Point3{X: 480, Y: 0, Z: 288}, got[0][0])
	assert.Equal(t, model.Point3{X: 480, Y: 120, Z: 144}, got[0][1])
	assert.Equal(t, model.Point3{X: 480, Y: 360, Z: 144}, got[2][1])
}

func TestPlaceBraces(t *testing.T) {
	mem, p, f := fixture(t)
	row := model.BraceRow{
		SectionX: "HSS8X8X1/2", ConfigX: model.BraceX,
		SectionY: "HSS6X6X3/8", ConfigY: model.BraceChevron,
	}

	errs := p.PlaceBraces(&f, []string{"1;A-B", "A;1-2"}, row)
	require.Empty(t, errs)

	// X config yields four diagonals in the X bay, Chevron two in Y.
	xBraces := p.Index.Set(groups.Lateral("SFRS_brace", model.DirectionX))
	yBraces := p.Index.Set(groups.Lateral("SFRS_brace", model.DirectionY))
	assert.Len(t, xBraces, 4)
	assert.Len(t, yBraces, 2)

	for _, id := range xBraces {
		m := p.Members[id]
		assert.Equal(t, model.RoleSFRSBrace, m.Role)
		assert.True(t, m.IsLateral)
		assert.Equal(t, "HSS8X8X1/2", mem.Frames[id].Section)
		assert.False(t, mem.Frames[id].Pinned)
		assert.True(t, p.Index.Contains(groups.OnGrid("1"), id))
	}
	for _, id := range yBraces {
		assert.Equal(t, "HSS6X6X3/8", mem.Frames[id].Section)
	}
	assert.Equal(t, 6, p.Index.Size(groups.SFRS))
}

func TestPlaceBracesBadDescriptor(t *testing.T) {
	mem, p, f := fixture(t)
	before := len(mem.Frames)

	errs := p.PlaceBraces(&f, []string{"1;A-Q"}, model.BraceRow{ConfigX: model.BraceV})
	require.Len(t, errs, 1)
	assert.Len(t, mem.Frames, before, "failed bays create nothing")
}
