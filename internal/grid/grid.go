// Package grid holds the two-axis grid system the frame lattice is
// built on. X grid lines run parallel to the X axis and are positioned
// by a Y ordinate (conventionally numeric labels, "1"-"25"); Y grid
// lines run parallel to the Y axis and are positioned by an X ordinate
// (conventionally letters, "A"-"Y"). A bay is the span between two
// lines of one family measured along the other family's ordinate axis.
package grid

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Family names one of the two grid-line families.
type Family string

const (
	FamilyX Family = "X"
	FamilyY Family = "Y"
)

// Line is a single named grid line.
type Line struct {
	Label    string
	Ordinate float64 // in
}

// UnknownGridLabelError reports a label absent from the family it was
// looked up in.
type UnknownGridLabelError struct {
	Label  string
	Family Family
}

func (e *UnknownGridLabelError) Error() string {
	return fmt.Sprintf("grid label %q not defined in %s family", e.Label, e.Family)
}

// System is the full two-family grid definition. Lines within a family
// are kept ordered by ordinate, which fixes the iteration order of every
// generation pass.
type System struct {
	x, y       []Line
	xByLabel   map[string]float64
	yByLabel   map[string]float64
	labelOrder *collate.Collator
}

// NewSystem builds a System from ordinate maps keyed by label.
func NewSystem(x, y map[string]float64) *System {
	s := &System{
		xByLabel:   make(map[string]float64, len(x)),
		yByLabel:   make(map[string]float64, len(y)),
		labelOrder: collate.New(language.Und, collate.Numeric),
	}
	for label, ord := range x {
		s.x = append(s.x, Line{Label: label, Ordinate: ord})
		s.xByLabel[label] = ord
	}
	for label, ord := range y {
		s.y = append(s.y, Line{Label: label, Ordinate: ord})
		s.yByLabel[label] = ord
	}
	sort.Slice(s.x, func(i, j int) bool { return s.x[i].Ordinate < s.x[j].Ordinate })
	sort.Slice(s.y, func(i, j int) bool { return s.y[i].Ordinate < s.y[j].Ordinate })
	return s
}

// XLines returns the X-family lines in ascending ordinate order.
func (s *System) XLines() []Line { return s.x }

// YLines returns the Y-family lines in ascending ordinate order.
func (s *System) YLines() []Line { return s.y }

// Lines returns one family's lines in ascending ordinate order.
func (s *System) Lines(f Family) []Line {
	if f == FamilyX {
		return s.x
	}
	return s.y
}

// Ordinate looks up a label within one family.
func (s *System) Ordinate(f Family, label string) (float64, bool) {
	if f == FamilyX {
		v, ok := s.xByLabel[label]
		return v, ok
	}
	v, ok := s.yByLabel[label]
	return v, ok
}

// FamilyOf reports which family defines the given label. Labels are
// unique within a family; if a label somehow exists in both, the X
// family wins, matching the descriptor conventions.
func (s *System) FamilyOf(label string) (Family, bool) {
	if _, ok := s.xByLabel[label]; ok {
		return FamilyX, true
	}
	if _, ok := s.yByLabel[label]; ok {
		return FamilyY, true
	}
	return "", false
}

// ResolveBay looks up two labels in a family and returns their ordinates
// as (min, max). Label order in the descriptor is not significant.
func (s *System) ResolveBay(from, to string, f Family) (lo, hi float64, err error) {
	a, ok := s.Ordinate(f, from)
	if !ok {
		return 0, 0, &UnknownGridLabelError{Label: from, Family: f}
	}
	b, ok := s.Ordinate(f, to)
	if !ok {
		return 0, 0, &UnknownGridLabelError{Label: to, Family: f}
	}
	if a > b {
		a, b = b, a
	}
	return a, b, nil
}

// LinesWithin returns the family's lines whose ordinate falls inside
// [lo, hi], in ascending ordinate order. Brace and wall generation
// iterates consecutive pairs of this slice as sub-bays.
func (s *System) LinesWithin(f Family, lo, hi float64) []Line {
	var out []Line
	for _, l := range s.Lines(f) {
		if l.Ordinate >= lo && l.Ordinate <= hi {
			out = append(out, l)
		}
	}
	return out
}

// Labels returns the family's labels in natural order, with numeric
// labels compared by value so "2" sorts before "10".
func (s *System) Labels(f Family) []string {
	lines := s.Lines(f)
	labels := make([]string, len(lines))
	for i, l := range lines {
		labels[i] = l.Label
	}
	s.labelOrder.SortStrings(labels)
	return labels
}
