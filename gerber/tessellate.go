package gerber

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/iwtcode/graphtecAdapter/models"
)

// DefaultSegments задает качество аппроксимации дуг и окружностей.
const DefaultSegments = 32

var (
	// ErrUnsupportedPointType возвращается, когда из значения невозможно
	// извлечь координаты (x, y).
	ErrUnsupportedPointType = errors.New("unsupported point type")
	// ErrMissingRadius возвращается, когда у окружности нет ни радиуса,
	// ни ширины, из которой его можно вывести.
	ErrMissingRadius = errors.New("circle primitive lacks both radius and width")
)

// XYer описывает значение, отдающее координаты одним вызовом.
type XYer interface {
	XY() (float64, float64)
}

// Accessor описывает значение с раздельными методами доступа к координатам.
type Accessor interface {
	X() float64
	Y() float64
}

// XY извлекает пару координат из произвольного точечного представления.
// Поддерживаются models.Point, указатели на него, массивы и срезы из
// двух и более чисел, а также значения с методами доступа.
func XY(pt any) (models.Point, error) {
	switch v := pt.(type) {
	case models.Point:
		return v, nil
	case *models.Point:
		if v != nil {
			return *v, nil
		}
	case [2]float64:
		return models.Point{X: v[0], Y: v[1]}, nil
	case []float64:
		if len(v) >= 2 {
			return models.Point{X: v[0], Y: v[1]}, nil
		}
	case XYer:
		x, y := v.XY()
		return models.Point{X: x, Y: y}, nil
	case Accessor:
		return models.Point{X: v.X(), Y: v.Y()}, nil
	}
	return models.Point{}, fmt.Errorf("%w: %T", ErrUnsupportedPointType, pt)
}

// CirclePoints аппроксимирует окружность ломаной из segments отрезков.
// Возвращает segments+1 точек; первая и последняя совпадают по построению.
func CirclePoints(center models.Point, radius float64, segments int) models.Stroke {
	if segments < 1 {
		segments = DefaultSegments
	}
	stroke := make(models.Stroke, 0, segments+1)
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i%segments) / float64(segments)
		stroke = append(stroke, models.Point{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
		})
	}
	return stroke
}

// ArcPoints аппроксимирует дугу ломаной из segments отрезков.
// Угол конца корректируется так, чтобы интерполяция шла монотонно в
// заданном направлении без перескока через 2π. Дуга с совпадающими
// началом и концом трактуется как полная окружность.
func ArcPoints(start, end, center models.Point, radius float64, clockwise bool, segments int) models.Stroke {
	if segments < 1 {
		segments = DefaultSegments
	}

	theta0 := math.Atan2(start.Y-center.Y, start.X-center.X)
	theta1 := math.Atan2(end.Y-center.Y, end.X-center.X)

	if clockwise && theta1 > theta0 {
		theta1 -= 2 * math.Pi
	} else if !clockwise && theta1 < theta0 {
		theta1 += 2 * math.Pi
	}
	// start == end: полный оборот в выбранном направлении.
	if theta1 == theta0 {
		if clockwise {
			theta1 -= 2 * math.Pi
		} else {
			theta1 += 2 * math.Pi
		}
	}

	stroke := make(models.Stroke, 0, segments+1)
	for i := 0; i <= segments; i++ {
		theta := theta0 + (theta1-theta0)*float64(i)/float64(segments)
		stroke = append(stroke, models.Point{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
		})
	}
	return stroke
}

// arcClockwise определяет направление обхода дуги. Приоритет: явный флаг,
// затем текстовая метка, затем знак векторного произведения
// (start-center) x (end-center) — отрицательный означает по часовой.
func arcClockwise(p models.Primitive, start, end, center models.Point) bool {
	if p.Clockwise != nil {
		return *p.Clockwise
	}
	if p.Direction != "" {
		d := strings.ToLower(p.Direction)
		return strings.HasPrefix(d, "clockwise") || strings.HasPrefix(d, "cw")
	}
	cross := (start.X-center.X)*(end.Y-center.Y) - (start.Y-center.Y)*(end.X-center.X)
	return cross < 0
}

// circleRadius извлекает радиус окружности: явное поле Radius,
// иначе половина Width, иначе ошибка.
func circleRadius(p models.Primitive) (float64, error) {
	if p.Radius != 0 {
		return p.Radius, nil
	}
	if p.Width != 0 {
		return p.Width / 2.0, nil
	}
	return 0, fmt.Errorf("%w", ErrMissingRadius)
}
