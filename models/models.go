package models

// Point представляет координату в исходных единицах Gerber-слоя.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke представляет один режущий контур как упорядоченную ломаную.
// Замкнутые фигуры повторяют первую точку в конце, поэтому замкнутость
// проверяется сравнением первой и последней точек.
type Stroke []Point

// IsClosed сообщает, замкнут ли контур (первая точка равна последней).
func (s Stroke) IsClosed() bool {
	if len(s) < 2 {
		return false
	}
	return s[0] == s[len(s)-1]
}

// DeviceDescriptor описывает одну поддерживаемую модель плоттера.
type DeviceDescriptor struct {
	VendorID    uint16 `json:"vendor_id"`
	ProductID   uint16 `json:"product_id"`
	DisplayName string `json:"display_name"`
}

// CutterState описывает состояние готовности плоттера,
// декодированное из байта статуса.
type CutterState int

const (
	// StateUnknown — ответ отсутствует или не распознан. Не является ошибкой.
	StateUnknown CutterState = iota
	StateReady
	StateMoving
	StateUnloaded
	StatePaused
)

func (s CutterState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateMoving:
		return "moving"
	case StateUnloaded:
		return "unloaded"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// MarshalText сериализует состояние в строку для JSON-ответов и Kafka.
func (s CutterState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText восстанавливает состояние из строкового представления.
// Нераспознанные значения дают StateUnknown.
func (s *CutterState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ready":
		*s = StateReady
	case "moving":
		*s = StateMoving
	case "unloaded":
		*s = StateUnloaded
	case "paused":
		*s = StatePaused
	default:
		*s = StateUnknown
	}
	return nil
}

// UploadProgress содержит снимок прогресса передачи задания на плоттер.
type UploadProgress struct {
	BytesSent  uint64 `json:"bytes_sent"`
	TotalBytes uint64 `json:"total_bytes"`
	Percent    int    `json:"percent"`
	Canceled   bool   `json:"canceled"`
}
