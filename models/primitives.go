package models

// PrimitiveKind перечисляет варианты примитивов Gerber-слоя.
type PrimitiveKind int

const (
	KindUnknown PrimitiveKind = iota
	KindLine
	KindArc
	KindCircle
	KindRectangle
	KindObround
	KindPolygon
	// KindRegion — контейнер (Region/Outline), агрегирующий другие примитивы.
	KindRegion
)

func (k PrimitiveKind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindArc:
		return "arc"
	case KindCircle:
		return "circle"
	case KindRectangle:
		return "rectangle"
	case KindObround:
		return "obround"
	case KindPolygon:
		return "polygon"
	case KindRegion:
		return "region"
	default:
		return "unknown"
	}
}

// Primitive — размеченное объединение по всем вариантам примитивов.
// Заполняются только поля, относящиеся к Kind; остальные остаются нулевыми.
// Start, End и Center принимают любое точечное представление (Point,
// [2]float64, срез и т.д.), нормализация выполняется в пакете gerber.
type Primitive struct {
	Kind PrimitiveKind

	// Line, Arc
	Start any
	End   any

	// Arc, Circle
	Center any
	Radius float64

	// Arc: явный флаг направления имеет высший приоритет, затем текстовая
	// метка Direction, затем геометрический расчет по векторному произведению.
	Clockwise *bool
	Direction string

	// Rectangle, Obround; для Circle допускается Width как диаметр.
	Width  float64
	Height float64

	// Polygon
	Vertices []any

	// Region
	Children []Primitive
}

// Layer представляет разобранный Gerber-слой.
type Layer struct {
	// Units: "inch" или "mm" (из параметра %MO).
	Units      string
	Primitives []Primitive
}
