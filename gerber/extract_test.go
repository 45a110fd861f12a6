package gerber

import (
	"testing"

	"github.com/iwtcode/graphtecAdapter/models"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(segments int) (*Extractor, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return NewExtractor(segments, logger), hook
}

func TestExtractLine(t *testing.T) {
	e, _ := newTestExtractor(8)
	layer := &models.Layer{Primitives: []models.Primitive{
		{Kind: models.KindLine, Start: models.Point{X: 0, Y: 0}, End: models.Point{X: 1, Y: 1}},
	}}

	strokes := e.ExtractStrokes(layer)
	require.Len(t, strokes, 1)
	require.Equal(t, models.Stroke{{X: 0, Y: 0}, {X: 1, Y: 1}}, strokes[0])
	require.False(t, strokes[0].IsClosed())
}

func TestExtractRectangle(t *testing.T) {
	e, _ := newTestExtractor(8)
	layer := &models.Layer{Primitives: []models.Primitive{
		{Kind: models.KindRectangle, Center: models.Point{X: 5, Y: 5}, Width: 2, Height: 4},
	}}

	strokes := e.ExtractStrokes(layer)
	require.Len(t, strokes, 1)
	require.Equal(t, models.Stroke{
		{X: 4, Y: 3},
		{X: 6, Y: 3},
		{X: 6, Y: 7},
		{X: 4, Y: 7},
		{X: 4, Y: 3},
	}, strokes[0])
	require.True(t, strokes[0].IsClosed())
}

func TestExtractObroundDefaultsHeightToWidth(t *testing.T) {
	e, _ := newTestExtractor(8)
	layer := &models.Layer{Primitives: []models.Primitive{
		{Kind: models.KindObround, Center: models.Point{X: 0, Y: 0}, Width: 2},
	}}

	strokes := e.ExtractStrokes(layer)
	require.Len(t, strokes, 1)
	require.Equal(t, models.Point{X: -1, Y: -1}, strokes[0][0])
	require.Equal(t, models.Point{X: 1, Y: 1}, strokes[0][2])
}

func TestExtractPolygonClosesContour(t *testing.T) {
	e, _ := newTestExtractor(8)
	layer := &models.Layer{Primitives: []models.Primitive{
		{Kind: models.KindPolygon, Vertices: []any{
			models.Point{X: 0, Y: 0},
			models.Point{X: 1, Y: 0},
			models.Point{X: 0, Y: 1},
		}},
	}}

	strokes := e.ExtractStrokes(layer)
	require.Len(t, strokes, 1)
	require.Len(t, strokes[0], 4)
	require.Equal(t, strokes[0][0], strokes[0][3])
}

func TestExtractRegionRecursion(t *testing.T) {
	line := func(x float64) models.Primitive {
		return models.Primitive{
			Kind:  models.KindLine,
			Start: models.Point{X: x, Y: 0},
			End:   models.Point{X: x, Y: 1},
		}
	}

	nested := &models.Layer{Primitives: []models.Primitive{
		line(0),
		{Kind: models.KindRegion, Children: []models.Primitive{
			line(1),
			{Kind: models.KindRegion, Children: []models.Primitive{line(2)}},
		}},
		line(3),
	}}
	flat := &models.Layer{Primitives: []models.Primitive{
		line(0), line(1), line(2), line(3),
	}}

	e, _ := newTestExtractor(8)
	// Вложенность контейнеров не должна влиять на результат.
	require.Equal(t, e.ExtractStrokes(flat), e.ExtractStrokes(nested))
}

func TestExtractUnknownPrimitiveIsNonFatal(t *testing.T) {
	e, hook := newTestExtractor(8)
	layer := &models.Layer{Primitives: []models.Primitive{
		{Kind: models.KindLine, Start: models.Point{X: 0, Y: 0}, End: models.Point{X: 1, Y: 0}},
		{Kind: models.KindUnknown},
		{Kind: models.KindLine, Start: models.Point{X: 0, Y: 1}, End: models.Point{X: 1, Y: 1}},
	}}

	strokes := e.ExtractStrokes(layer)
	require.Len(t, strokes, 2, "неизвестный примитив пропускается, остальные обрабатываются")

	require.Len(t, hook.Entries, 1)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	require.Equal(t, "unknown", hook.LastEntry().Data["kind"])
}

func TestExtractMalformedPrimitiveIsNonFatal(t *testing.T) {
	e, hook := newTestExtractor(8)
	layer := &models.Layer{Primitives: []models.Primitive{
		{Kind: models.KindLine, Start: "bad", End: models.Point{X: 1, Y: 0}},
		{Kind: models.KindCircle, Center: models.Point{}},
	}}

	strokes := e.ExtractStrokes(layer)
	require.Empty(t, strokes)
	require.Len(t, hook.Entries, 2)
}

func TestExtractCircleFromWidth(t *testing.T) {
	e, _ := newTestExtractor(16)
	layer := &models.Layer{Primitives: []models.Primitive{
		{Kind: models.KindCircle, Center: models.Point{X: 1, Y: 1}, Width: 4},
	}}

	strokes := e.ExtractStrokes(layer)
	require.Len(t, strokes, 1)
	require.Len(t, strokes[0], 17)
	require.InDelta(t, 3, strokes[0][0].X, 1e-9, "радиус = width/2")
}

func TestScale(t *testing.T) {
	strokes := []models.Stroke{{{X: 25.4, Y: 50.8}}}
	scaled := Scale(strokes, 25.4)
	require.Equal(t, []models.Stroke{{{X: 1, Y: 2}}}, scaled)
	// Исходные контуры не изменяются.
	require.Equal(t, 25.4, strokes[0][0].X)
}
