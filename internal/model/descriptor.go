package model

import (
	"fmt"
	"strconv"
	"strings"
)

// DescriptorError reports a malformed bay descriptor or brace
// configuration token. It is raised before any sink mutation for the
// offending table entry.
type DescriptorError struct {
	Descriptor string
	Reason     string
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("bad descriptor %q: %s", e.Descriptor, e.Reason)
}

// BaySpec is one parsed SFRS bay descriptor. On names the grid line the
// members sit on; From and To bound the bay on the crossing family.
// Raw preserves the descriptor text for pier labeling.
type BaySpec struct {
	On   string
	From string
	To   string
	Raw  string
}

// ParseBay parses a descriptor of the form "<on>;<from>-<to>",
// e.g. "1;B-E" or "A;3-7". Label order inside the range does not matter.
func ParseBay(s string) (BaySpec, error) {
	raw := s
	s = strings.TrimSpace(s)
	on, fromTo, ok := strings.Cut(s, ";")
	if !ok {
		return BaySpec{}, &DescriptorError{Descriptor: raw, Reason: `missing ";" separator`}
	}
	from, to, ok := strings.Cut(fromTo, "-")
	if !ok {
		return BaySpec{}, &DescriptorError{Descriptor: raw, Reason: `range missing "-" separator`}
	}
	spec := BaySpec{
		On:   strings.TrimSpace(on),
		From: strings.TrimSpace(from),
		To:   strings.TrimSpace(to),
		Raw:  raw,
	}
	if spec.On == "" || spec.From == "" || spec.To == "" {
		return BaySpec{}, &DescriptorError{Descriptor: raw, Reason: "empty grid label"}
	}
	return spec, nil
}

// BraceConfig selects one of the five diagonal-brace topologies.
type BraceConfig string

const (
	BraceSingleA BraceConfig = "SingleA" // one diagonal, rising /
	BraceSingleB BraceConfig = "SingleB" // one diagonal, mirrored \
	BraceX       BraceConfig = "X"       // four half-height diagonals
	BraceV       BraceConfig = "V"       // pair meeting at mid-bay below
	BraceChevron BraceConfig = "Chevron" // inverted V meeting at mid-bay above
)

// ParseBraceConfig matches a configuration token from the input tables.
// SingleA and SingleB are matched by prefix so annotated forms such as
// "SingleA (/)" resolve cleanly.
func ParseBraceConfig(s string) (BraceConfig, error) {
	t := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(t, string(BraceSingleA)):
		return BraceSingleA, nil
	case strings.HasPrefix(t, string(BraceSingleB)):
		return BraceSingleB, nil
	}
	switch BraceConfig(t) {
	case BraceX, BraceV, BraceChevron:
		return BraceConfig(t), nil
	}
	return "", &DescriptorError{Descriptor: s, Reason: "unknown brace configuration"}
}

// ParsePolygon parses a boundary polygon written as a vertex list,
// e.g. "(0,0);(444,0);(444,312);(0,312)". The last vertex does not
// repeat the first.
func ParsePolygon(s string) ([]Point2, error) {
	raw := s
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, &DescriptorError{Descriptor: raw, Reason: "empty polygon"}
	}
	var pts []Point2
	for _, part := range strings.Split(s, ";") {
		body := strings.TrimSuffix(strings.TrimPrefix(part, "("), ")")
		xs, ys, ok := strings.Cut(body, ",")
		if !ok {
			return nil, &DescriptorError{Descriptor: raw, Reason: fmt.Sprintf("bad vertex %q", part)}
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, &DescriptorError{Descriptor: raw, Reason: fmt.Sprintf("bad x ordinate %q", xs)}
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, &DescriptorError{Descriptor: raw, Reason: fmt.Sprintf("bad y ordinate %q", ys)}
		}
		pts = append(pts, Point2{X: x, Y: y})
	}
	if len(pts) < 3 {
		return nil, &DescriptorError{Descriptor: raw, Reason: "polygon needs at least 3 vertices"}
	}
	return pts, nil
}

// FormatPolygon is the inverse of ParsePolygon, used by the store.
func FormatPolygon(pts []Point2) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("(%g,%g)", p.X, p.Y)
	}
	return strings.Join(parts, ";")
}
