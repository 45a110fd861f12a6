package device

import (
	"context"
	"fmt"
	"time"

	"github.com/iwtcode/graphtecAdapter/models"
	"github.com/sirupsen/logrus"
)

// statusRequest — фиксированная двухбайтовая команда запроса статуса (ESC ENQ).
var statusRequest = []byte{0x1b, 0x05}

// DefaultStatusTimeout ограничивает чтение ответа статуса, чтобы
// периодический опрос оставался отзывчивым.
const DefaultStatusTimeout = 500 * time.Millisecond

// bulkWriter абстрагирует bulk OUT конечную точку.
type bulkWriter interface {
	WriteContext(ctx context.Context, buf []byte) (int, error)
}

// bulkReader абстрагирует bulk IN конечную точку.
type bulkReader interface {
	ReadContext(ctx context.Context, buf []byte) (int, error)
}

// DecodeState переводит ответ плоттера в состояние готовности.
// Пустой ответ и нераспознанный первый байт дают StateUnknown.
func DecodeState(reply []byte) models.CutterState {
	if len(reply) == 0 {
		return models.StateUnknown
	}
	switch reply[0] {
	case 0x00:
		return models.StateReady
	case 0x01:
		return models.StateMoving
	case 0x02:
		return models.StateUnloaded
	case 0x03:
		return models.StatePaused
	default:
		return models.StateUnknown
	}
}

// QueryState отправляет команду запроса статуса и декодирует однобайтовый
// ответ. Таймаут и ошибки ввода-вывода при чтении вырождаются в
// StateUnknown, а не в ошибку: кратковременные сбои USB не должны
// блокировать цикл проверки готовности. Вызов нельзя совмещать с активной
// передачей задания на том же устройстве — оба требуют один и тот же
// захваченный интерфейс.
func (s *Session) QueryState(ctx context.Context, timeout time.Duration) (models.CutterState, error) {
	if s.in == nil {
		return models.StateUnknown, fmt.Errorf("%w: status protocol requires a bulk IN endpoint", ErrEndpointNotFound)
	}
	if timeout <= 0 {
		timeout = DefaultStatusTimeout
	}
	return queryState(ctx, s.out, s.in, s.in.Desc.MaxPacketSize, timeout, s.logger), nil
}

func queryState(ctx context.Context, w bulkWriter, r bulkReader, packetSize int, timeout time.Duration, logger *logrus.Logger) models.CutterState {
	if packetSize <= 0 {
		packetSize = 64
	}

	if _, err := w.WriteContext(ctx, statusRequest); err != nil {
		logger.WithError(err).Warn("Status request write failed")
		return models.StateUnknown
	}

	readCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	buf := make([]byte, packetSize)
	n, err := r.ReadContext(readCtx, buf)
	if err != nil {
		logger.WithError(err).Debug("Status reply read failed or timed out")
		return models.StateUnknown
	}
	return DecodeState(buf[:n])
}
