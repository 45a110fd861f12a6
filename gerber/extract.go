package gerber

import (
	"github.com/iwtcode/graphtecAdapter/models"
	"github.com/sirupsen/logrus"
)

// Extractor обходит дерево примитивов разобранного слоя и строит по одному
// контуру на каждый терминальный примитив. Контейнеры разворачиваются
// рекурсивно в порядке обхода в глубину.
type Extractor struct {
	segments int
	logger   *logrus.Logger
}

// NewExtractor создает экстрактор с заданным качеством аппроксимации дуг.
func NewExtractor(segments int, logger *logrus.Logger) *Extractor {
	if segments < 1 {
		segments = DefaultSegments
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Extractor{segments: segments, logger: logger}
}

// ExtractStrokes возвращает контуры всех примитивов слоя в порядке их
// следования в источнике. Неподдерживаемые примитивы и примитивы с
// некорректной геометрией пропускаются с диагностикой в лог и никогда
// не прерывают обработку остального слоя.
func (e *Extractor) ExtractStrokes(layer *models.Layer) []models.Stroke {
	if layer == nil {
		return nil
	}
	strokes := make([]models.Stroke, 0, len(layer.Primitives))
	for i := range layer.Primitives {
		strokes = e.appendStrokes(strokes, layer.Primitives[i])
	}
	return strokes
}

func (e *Extractor) appendStrokes(strokes []models.Stroke, p models.Primitive) []models.Stroke {
	switch p.Kind {
	case models.KindLine:
		start, err := XY(p.Start)
		if err != nil {
			return e.skip(strokes, p, err)
		}
		end, err := XY(p.End)
		if err != nil {
			return e.skip(strokes, p, err)
		}
		return append(strokes, models.Stroke{start, end})

	case models.KindCircle:
		center, err := XY(p.Center)
		if err != nil {
			return e.skip(strokes, p, err)
		}
		radius, err := circleRadius(p)
		if err != nil {
			return e.skip(strokes, p, err)
		}
		return append(strokes, CirclePoints(center, radius, e.segments))

	case models.KindRectangle, models.KindObround:
		center, err := XY(p.Center)
		if err != nil {
			return e.skip(strokes, p, err)
		}
		w, h := p.Width, p.Height
		if h == 0 {
			h = w
		}
		return append(strokes, models.Stroke{
			{X: center.X - w/2, Y: center.Y - h/2},
			{X: center.X + w/2, Y: center.Y - h/2},
			{X: center.X + w/2, Y: center.Y + h/2},
			{X: center.X - w/2, Y: center.Y + h/2},
			{X: center.X - w/2, Y: center.Y - h/2},
		})

	case models.KindArc:
		start, err := XY(p.Start)
		if err != nil {
			return e.skip(strokes, p, err)
		}
		end, err := XY(p.End)
		if err != nil {
			return e.skip(strokes, p, err)
		}
		center, err := XY(p.Center)
		if err != nil {
			return e.skip(strokes, p, err)
		}
		cw := arcClockwise(p, start, end, center)
		return append(strokes, ArcPoints(start, end, center, p.Radius, cw, e.segments))

	case models.KindPolygon:
		if len(p.Vertices) == 0 {
			return e.skip(strokes, p, ErrUnsupportedPointType)
		}
		stroke := make(models.Stroke, 0, len(p.Vertices)+1)
		for _, v := range p.Vertices {
			pt, err := XY(v)
			if err != nil {
				return e.skip(strokes, p, err)
			}
			stroke = append(stroke, pt)
		}
		// Повторяем первую вершину, чтобы замкнуть контур.
		return append(strokes, append(stroke, stroke[0]))

	case models.KindRegion:
		for i := range p.Children {
			strokes = e.appendStrokes(strokes, p.Children[i])
		}
		return strokes

	default:
		e.logger.WithField("kind", p.Kind.String()).Warn("Unhandled primitive type, skipping")
		return strokes
	}
}

// skip регистрирует диагностическое событие и возвращает контуры без изменений.
func (e *Extractor) skip(strokes []models.Stroke, p models.Primitive, err error) []models.Stroke {
	e.logger.WithField("kind", p.Kind.String()).WithError(err).Warn("Malformed primitive, skipping")
	return strokes
}

// ExtractStrokes извлекает контуры с качеством аппроксимации по умолчанию.
func ExtractStrokes(layer *models.Layer) []models.Stroke {
	return NewExtractor(DefaultSegments, nil).ExtractStrokes(layer)
}

// Scale делит все координаты на divisor. Используется для перевода
// координат платы в единицы плоттера (divisor = 25.4).
func Scale(strokes []models.Stroke, divisor float64) []models.Stroke {
	scaled := make([]models.Stroke, len(strokes))
	for i, s := range strokes {
		out := make(models.Stroke, len(s))
		for j, pt := range s {
			out[j] = models.Point{X: pt.X / divisor, Y: pt.Y / divisor}
		}
		scaled[i] = out
	}
	return scaled
}
