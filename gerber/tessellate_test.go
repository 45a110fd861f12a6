package gerber

import (
	"math"
	"testing"

	"github.com/iwtcode/graphtecAdapter/models"

	"github.com/stretchr/testify/require"
)

type xyValue struct{ x, y float64 }

func (v xyValue) XY() (float64, float64) { return v.x, v.y }

type accessorValue struct{ x, y float64 }

func (v accessorValue) X() float64 { return v.x }
func (v accessorValue) Y() float64 { return v.y }

func TestXYSupportedRepresentations(t *testing.T) {
	cases := []struct {
		name string
		in   any
	}{
		{"point", models.Point{X: 1, Y: 2}},
		{"pointPtr", &models.Point{X: 1, Y: 2}},
		{"array", [2]float64{1, 2}},
		{"slice", []float64{1, 2}},
		{"sliceExtra", []float64{1, 2, 99}},
		{"xyer", xyValue{1, 2}},
		{"accessor", accessorValue{1, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pt, err := XY(tc.in)
			require.NoError(t, err)
			require.Equal(t, models.Point{X: 1, Y: 2}, pt)
		})
	}
}

func TestXYUnsupportedRepresentations(t *testing.T) {
	for _, in := range []any{"1,2", 42, []float64{1}, nil, (*models.Point)(nil)} {
		_, err := XY(in)
		require.ErrorIs(t, err, ErrUnsupportedPointType, "value %#v", in)
	}
}

func TestCirclePoints(t *testing.T) {
	center := models.Point{X: 3, Y: -1}
	const radius = 2.5
	const segments = 16

	stroke := CirclePoints(center, radius, segments)
	require.Len(t, stroke, segments+1)
	require.Equal(t, stroke[0], stroke[len(stroke)-1], "контур должен замыкаться точно")

	for _, pt := range stroke {
		d := math.Hypot(pt.X-center.X, pt.Y-center.Y)
		require.InDelta(t, radius, d, 1e-9)
	}
}

func TestCirclePointsDefaultsSegments(t *testing.T) {
	stroke := CirclePoints(models.Point{}, 1, 0)
	require.Len(t, stroke, DefaultSegments+1)
}

func TestArcPointsClockwiseMonotone(t *testing.T) {
	center := models.Point{X: 0, Y: 0}
	start := models.Point{X: 0, Y: 1} // 90°
	end := models.Point{X: 1, Y: 0}   // 0°

	stroke := ArcPoints(start, end, center, 1, true, 8)
	require.Len(t, stroke, 9)
	require.InDelta(t, start.X, stroke[0].X, 1e-9)
	require.InDelta(t, end.Y, stroke[len(stroke)-1].Y, 1e-9)

	prev := math.Atan2(stroke[0].Y, stroke[0].X)
	for _, pt := range stroke[1:] {
		theta := math.Atan2(pt.Y, pt.X)
		require.Less(t, theta, prev, "угол должен монотонно убывать по часовой")
		prev = theta
	}
}

func TestArcPointsClockwiseWrapsLongWay(t *testing.T) {
	center := models.Point{X: 0, Y: 0}
	start := models.Point{X: 1, Y: 0} // 0°
	end := models.Point{X: 0, Y: 1}   // 90°

	// По часовой из 0° в 90° дуга обязана идти длинным путем через -90°,
	// а не коротким против объявленного направления.
	stroke := ArcPoints(start, end, center, 1, true, 8)
	mid := stroke[len(stroke)/2]
	require.InDelta(t, -3*math.Pi/4, math.Atan2(mid.Y, mid.X), 1e-9)

	// Развернутый угол монотонно убывает на всем протяжении.
	prev := 0.0
	unwrapped := 0.0
	for i, pt := range stroke {
		theta := math.Atan2(pt.Y, pt.X)
		if i > 0 {
			delta := theta - prev
			if delta > math.Pi {
				delta -= 2 * math.Pi
			}
			require.Negative(t, delta)
			unwrapped += delta
		}
		prev = theta
	}
	require.InDelta(t, -3*math.Pi/2, unwrapped, 1e-9)
}

func TestArcPointsCounterClockwiseWraps(t *testing.T) {
	center := models.Point{X: 0, Y: 0}
	start := models.Point{X: 1, Y: 0} // 0°
	end := models.Point{X: 0, Y: -1}  // -90°, против часовой это 270°

	stroke := ArcPoints(start, end, center, 1, false, 8)
	// Без коррекции угла дуга пошла бы коротким путем через -45°;
	// против часовой середина дуги должна оказаться около 135°.
	mid := stroke[len(stroke)/2]
	require.InDelta(t, 3*math.Pi/4, math.Atan2(mid.Y, mid.X), 1e-9)
}

func TestArcPointsFullCircle(t *testing.T) {
	center := models.Point{X: 0, Y: 0}
	pt := models.Point{X: 1, Y: 0}

	stroke := ArcPoints(pt, pt, center, 1, false, 32)
	require.Len(t, stroke, 33)
	require.InDelta(t, stroke[0].X, stroke[len(stroke)-1].X, 1e-9)
	require.InDelta(t, stroke[0].Y, stroke[len(stroke)-1].Y, 1e-9)

	// Полный оборот: противоположная точка дуги лежит на -1 по X.
	mid := stroke[len(stroke)/2]
	require.InDelta(t, -1, mid.X, 1e-9)
}

func boolPtr(b bool) *bool { return &b }

func TestArcClockwisePriority(t *testing.T) {
	start := models.Point{X: 0, Y: 1}
	end := models.Point{X: 1, Y: 0}
	center := models.Point{}

	// Геометрически эта дуга идет по часовой (cross < 0).
	require.True(t, arcClockwise(models.Primitive{}, start, end, center))

	// Текстовая метка перекрывает геометрию.
	require.False(t, arcClockwise(models.Primitive{Direction: "counterclockwise"}, start, end, center))
	require.True(t, arcClockwise(models.Primitive{Direction: "CW"}, start, end, center))
	require.True(t, arcClockwise(models.Primitive{Direction: "Clockwise"}, start, end, center))

	// Явный флаг имеет высший приоритет.
	p := models.Primitive{Clockwise: boolPtr(false), Direction: "clockwise"}
	require.False(t, arcClockwise(p, start, end, center))
}

func TestCircleRadius(t *testing.T) {
	r, err := circleRadius(models.Primitive{Radius: 3})
	require.NoError(t, err)
	require.Equal(t, 3.0, r)

	r, err = circleRadius(models.Primitive{Width: 3})
	require.NoError(t, err)
	require.Equal(t, 1.5, r)

	// Явный радиус имеет приоритет над шириной.
	r, err = circleRadius(models.Primitive{Radius: 2, Width: 10})
	require.NoError(t, err)
	require.Equal(t, 2.0, r)

	_, err = circleRadius(models.Primitive{})
	require.ErrorIs(t, err, ErrMissingRadius)
}
