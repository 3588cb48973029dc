package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSystem() *System {
	return NewSystem(
		map[string]float64{"1": 0, "2": 300, "10": 600},
		map[string]float64{"A": 0, "B": 240, "C": 480, "D": 720},
	)
}

func TestNewSystemOrdering(t *testing.T) {
	s := testSystem()

	x := s.XLines()
	require.Len(t, x, 3)
	assert.Equal(t, []Line{{"1", 0}, {"2", 300}, {"10", 600}}, x)

	y := s.YLines()
	require.Len(t, y, 4)
	assert.Equal(t, "A", y[0].Label)
	assert.Equal(t, "D", y[3].Label)
}

func TestOrdinateAndFamilyOf(t *testing.T) {
	s := testSystem()

	v, ok := s.Ordinate(FamilyX, "2")
	require.True(t, ok)
	assert.Equal(t, 300.0, v)

	_, ok = s.Ordinate(FamilyX, "B")
	assert.False(t, ok, "labels do not cross families")

	f, ok := s.FamilyOf("C")
	require.True(t, ok)
	assert.Equal(t, FamilyY, f)

	_, ok = s.FamilyOf("Z")
	assert.False(t, ok)
}

func TestResolveBay(t *testing.T) {
	s := testSystem()

	lo, hi, err := s.ResolveBay("B", "D", FamilyY)
	require.NoError(t, err)
	assert.Equal(t, 240.0, lo)
	assert.Equal(t, 720.0, hi)

	// Label order inside the range does not matter.
	lo2, hi2, err := s.ResolveBay("D", "B", FamilyY)
	require.NoError(t, err)
	assert.Equal(t, lo, lo2)
	assert.Equal(t, hi, hi2)

	_, _, err = s.ResolveBay("B", "Q", FamilyY)
	var unknownErr *UnknownGridLabelError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "Q", unknownErr.Label)
	assert.Equal(t, FamilyY, unknownErr.Family)
}

func TestLinesWithin(t *testing.T) {
	s := testSystem()

	lines := s.LinesWithin(FamilyY, 240, 720)
	require.Len(t, lines, 3)
	assert.Equal(t, "B", lines[0].Label)
	assert.Equal(t, "D", lines[2].Label)

	// Bounds are inclusive on both ends.
	assert.Len(t, s.LinesWithin(FamilyY, 240, 240), 1)
	assert.Empty(t, s.LinesWithin(FamilyY, 1000, 2000))
}

func TestLabelsNumericOrder(t *testing.T) {
	s := testSystem()
	assert.Equal(t, []string{"1", "2", "10"}, s.Labels(FamilyX),
		"numeric labels compare by value, not lexically")
	assert.Equal(t, []string{"A", "B", "C", "D"}, s.Labels(FamilyY))
}
