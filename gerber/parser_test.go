package gerber

import (
	"strings"
	"testing"

	"github.com/iwtcode/graphtecAdapter/models"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, lines ...string) *models.Layer {
	t.Helper()
	layer, err := ParseLayer([]byte(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return layer
}

func TestParseLinearDraw(t *testing.T) {
	layer := parse(t,
		"%FSLAX24Y24*%",
		"%MOIN*%",
		"G01*",
		"X10000Y0D02*",
		"X10000Y20000D01*",
		"M02*",
	)

	require.Equal(t, "inch", layer.Units)
	require.Len(t, layer.Primitives, 1)

	p := layer.Primitives[0]
	require.Equal(t, models.KindLine, p.Kind)
	require.Equal(t, models.Point{X: 1, Y: 0}, p.Start)
	require.Equal(t, models.Point{X: 1, Y: 2}, p.End)
}

func TestParseFormatSpecDecimals(t *testing.T) {
	layer := parse(t,
		"%FSLAX26Y26*%",
		"X1000000Y500000D02*",
		"X2000000D01*",
		"M02*",
	)

	require.Len(t, layer.Primitives, 1)
	p := layer.Primitives[0]
	require.Equal(t, models.Point{X: 1, Y: 0.5}, p.Start)
	// Y модальна: не указана в D01, наследуется от D02.
	require.Equal(t, models.Point{X: 2, Y: 0.5}, p.End)
}

func TestParseUnitsMillimeters(t *testing.T) {
	layer := parse(t, "%MOMM*%", "M02*")
	require.Equal(t, "mm", layer.Units)
}

func TestParseArcDraw(t *testing.T) {
	layer := parse(t,
		"%FSLAX24Y24*%",
		"G75*",
		"X0Y10000D02*",
		"G02X10000Y0I0J-10000D01*",
		"M02*",
	)

	require.Len(t, layer.Primitives, 1)
	p := layer.Primitives[0]
	require.Equal(t, models.KindArc, p.Kind)
	require.Equal(t, models.Point{X: 0, Y: 1}, p.Start)
	require.Equal(t, models.Point{X: 1, Y: 0}, p.End)
	require.Equal(t, models.Point{X: 0, Y: 0}, p.Center)
	require.InDelta(t, 1.0, p.Radius, 1e-9)
	require.NotNil(t, p.Clockwise)
	require.True(t, *p.Clockwise)
}

func TestParseRegion(t *testing.T) {
	layer := parse(t,
		"%FSLAX24Y24*%",
		"G36*",
		"X0Y0D02*",
		"X10000Y0D01*",
		"X10000Y10000D01*",
		"X0Y0D01*",
		"G37*",
		"M02*",
	)

	require.Len(t, layer.Primitives, 1)
	region := layer.Primitives[0]
	require.Equal(t, models.KindRegion, region.Kind)
	require.Len(t, region.Children, 3)
	for _, child := range region.Children {
		require.Equal(t, models.KindLine, child.Kind)
	}
}

func TestParseUnterminatedRegionIsFlushed(t *testing.T) {
	layer := parse(t,
		"%FSLAX24Y24*%",
		"G36*",
		"X0Y0D02*",
		"X10000Y0D01*",
	)

	require.Len(t, layer.Primitives, 1)
	require.Equal(t, models.KindRegion, layer.Primitives[0].Kind)
	require.Len(t, layer.Primitives[0].Children, 1)
}

func TestParseApertureFlashes(t *testing.T) {
	layer := parse(t,
		"%FSLAX24Y24*%",
		"%ADD10C,0.0200*%",
		"%ADD11R,0.0600X0.0400*%",
		"%ADD12O,0.0500*%",
		"%ADD13P,0.0400X6*%",
		"D10*",
		"X10000Y10000D03*",
		"D11*",
		"X20000Y10000D03*",
		"D12*",
		"X30000Y10000D03*",
		"D13*",
		"X40000Y10000D03*",
		"M02*",
	)

	require.Len(t, layer.Primitives, 4)

	circle := layer.Primitives[0]
	require.Equal(t, models.KindCircle, circle.Kind)
	require.Equal(t, models.Point{X: 1, Y: 1}, circle.Center)
	require.InDelta(t, 0.01, circle.Radius, 1e-9)

	rect := layer.Primitives[1]
	require.Equal(t, models.KindRectangle, rect.Kind)
	require.InDelta(t, 0.06, rect.Width, 1e-9)
	require.InDelta(t, 0.04, rect.Height, 1e-9)

	obround := layer.Primitives[2]
	require.Equal(t, models.KindObround, obround.Kind)
	require.InDelta(t, 0.05, obround.Width, 1e-9)
	require.InDelta(t, 0.05, obround.Height, 1e-9, "высота по умолчанию равна ширине")

	poly := layer.Primitives[3]
	require.Equal(t, models.KindPolygon, poly.Kind)
	require.Len(t, poly.Vertices, 6)
}

func TestParseUnknownApertureFlash(t *testing.T) {
	layer := parse(t,
		"%FSLAX24Y24*%",
		"D99*",
		"X10000Y10000D03*",
		"M02*",
	)

	// Вспышка неизвестной апертурой не фатальна и дает KindUnknown.
	require.Len(t, layer.Primitives, 1)
	require.Equal(t, models.KindUnknown, layer.Primitives[0].Kind)
}

func TestParseUnterminatedExtendedCode(t *testing.T) {
	_, err := ParseLayer([]byte("%FSLAX24Y24*"))
	require.Error(t, err)
}

func TestParseEndToEndStrokes(t *testing.T) {
	layer := parse(t,
		"%FSLAX24Y24*%",
		"%MOIN*%",
		"%ADD10C,0.0200*%",
		"D10*",
		"G01*",
		"X0Y0D02*",
		"X10000Y0D01*",
		"X5000Y5000D03*",
		"M02*",
	)

	strokes := ExtractStrokes(layer)
	require.Len(t, strokes, 2)
	require.Len(t, strokes[0], 2)
	require.True(t, strokes[1].IsClosed())
}
