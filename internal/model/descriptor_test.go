package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBay(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    BaySpec
		wantErr bool
	}{
		{
			name: "letter range on numeric grid",
			in:   "1;B-E",
			want: BaySpec{On: "1", From: "B", To: "E", Raw: "1;B-E"},
		},
		{
			name: "numeric range on letter grid",
			in:   "A;3-7",
			want: BaySpec{On: "A", From: "3", To: "7", Raw: "A;3-7"},
		},
		{
			name: "whitespace tolerated",
			in:   " C ; 2 - 5 ",
			want: BaySpec{On: "C", From: "2", To: "5", Raw: " C ; 2 - 5 "},
		},
		{name: "missing semicolon", in: "1B-E", wantErr: true},
		{name: "missing dash", in: "1;BE", wantErr: true},
		{name: "empty on label", in: ";B-E", wantErr: true},
		{name: "empty range label", in: "1;B-", wantErr: true},
		{name: "empty string", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBay(tt.in)
			if tt.wantErr {
				var descErr *DescriptorError
				require.ErrorAs(t, err, &descErr)
				assert.Equal(t, tt.in, descErr.Descriptor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBraceConfig(t *testing.T) {
	tests := []struct {
		in      string
		want    BraceConfig
		wantErr bool
	}{
		{in: "SingleA", want: BraceSingleA},
		{in: "SingleB", want: BraceSingleB},
		{in: "SingleA (/)", want: BraceSingleA},
		{in: "SingleB (\\)", want: BraceSingleB},
		{in: "X", want: BraceX},
		{in: "V", want: BraceV},
		{in: "Chevron", want: BraceChevron},
		{in: "Single", wantErr: true},
		{in: "K", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBraceConfig(tt.in)
			if tt.wantErr {
				var descErr *DescriptorError
				require.ErrorAs(t, err, &descErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePolygon(t *testing.T) {
	pts, err := ParsePolygon("(0,0);(444,0);(444,312);(0,312)")
	require.NoError(t, err)
	require.Len(t, pts, 4)
	assert.Equal(t, Point2{X: 444, Y: 312}, pts[2])

	_, err = ParsePolygon("(0,0);(10,0)")
	var descErr *DescriptorError
	require.True(t, errors.As(err, &descErr))

	_, err = ParsePolygon("(0,0);(ten,0);(10,10)")
	require.Error(t, err)

	_, err = ParsePolygon("")
	require.Error(t, err)
}

func TestFormatPolygonRoundTrip(t *testing.T) {
	in := []Point2{{0, 0}, {37.5, 0}, {37.5, 26}, {0, 26}}
	out, err := ParsePolygon(FormatPolygon(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
