package gazetteer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/job-radar/internal/gazetteer"
)

func TestGuessCity(t *testing.T) {
	m := gazetteer.New(gazetteer.DefaultThreshold)

	tests := []struct {
		name     string
		location string
		want     string
	}{
		{name: "district implies city", location: "Tầng 5, Quận 1, TP.HCM", want: "Hồ Chí Minh"},
		{name: "ascii spelling", location: "Hanoi, Vietnam", want: "Hà Nội"},
		{name: "table order breaks ties", location: "Bình Dương (gần TP HCM)", want: "Hồ Chí Minh"},
		{name: "country fallback", location: "Số 1 Lê Lợi, Thừa Thiên Huế, Việt Nam", want: "Thừa Thiên Huế"},
		{name: "country fallback outside gazetteer", location: "12 Main Street, Nowhere Town, Vietnam", want: ""},
		{name: "no marker", location: "Singapore", want: ""},
		{name: "empty", location: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, m.GuessCity(tt.location))
		})
	}
}

func TestGuessCityStaysInsideGazetteer(t *testing.T) {
	m := gazetteer.New(gazetteer.DefaultThreshold)
	known := make(map[string]struct{}, len(gazetteer.Provinces))
	for _, p := range gazetteer.Provinces {
		known[p] = struct{}{}
	}
	for _, loc := range []string{"Cầu Giấy, Hà Nội", "Đồng Nai", "Ninh Kiều, Cần Thơ, Việt Nam", "A, B, Vietnam", "Ngô Quyền"} {
		got := m.GuessCity(loc)
		if got == "" {
			continue
		}
		_, ok := known[got]
		require.True(t, ok, got)
	}
}

func TestResolveMisspellings(t *testing.T) {
	m := gazetteer.New(gazetteer.DefaultThreshold)

	tests := []struct {
		input string
		want  string
	}{
		{input: "Hanoi", want: "Hà Nội"},
		{input: "Ho Chi Mnh", want: "Hồ Chí Minh"},
		{input: "Ho Chi Min", want: "Hồ Chí Minh"},
		{input: "Đà Nẳng", want: "Đà Nẵng"},
		{input: "Da Nag", want: "Đà Nẵng"},
		{input: "Cantho", want: "Cần Thơ"},
		{input: "Haiphong", want: "Hải Phòng"},
		{input: "Dak Lak", want: "Đắk Lắk"},
		{input: "thanh hoa", want: "Thanh Hóa"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, []string{tt.want}, m.Resolve(tt.input))
		})
	}
}

func TestResolveKeepsUnmatchedText(t *testing.T) {
	m := gazetteer.New(gazetteer.DefaultThreshold)
	require.Equal(t, []string{"Xyzzy Qwerty"}, m.Resolve("xyzzy qwerty"))
	require.Equal(t, []string{"Singapore"}, m.Resolve("singapore"))
}

func TestResolveExplodesAndSkipsPlaceholders(t *testing.T) {
	m := gazetteer.New(gazetteer.DefaultThreshold)
	require.Equal(t, []string{"Hà Nội", "Hồ Chí Minh"}, m.Resolve("Unknown, Hà Nội; N/A, Hồ Chí Minh"))
	require.Empty(t, m.Resolve(""))
	require.Empty(t, m.Resolve("none; na"))
}

func TestThresholdIsConfigurable(t *testing.T) {
	strict := gazetteer.New(99)
	require.Equal(t, float64(99), strict.Threshold())
	require.Equal(t, []string{"Ho Chi Mnh"}, strict.Resolve("Ho Chi Mnh"))

	require.Equal(t, float64(gazetteer.DefaultThreshold), gazetteer.New(0).Threshold())
}

func TestScore(t *testing.T) {
	require.InDelta(t, 100.0, gazetteer.Score("Hà Nội", "ha noi"), 0.001)
	require.InDelta(t, 90.909, gazetteer.Score("Hanoi", "Hà Nội"), 0.01)
	require.Less(t, gazetteer.Score("xyzzy", "Hà Nội"), 50.0)
}
