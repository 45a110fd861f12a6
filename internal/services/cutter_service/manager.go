package cutter_service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/gousb"
	"github.com/iwtcode/graphtecAdapter/device"
	"github.com/iwtcode/graphtecAdapter/gerber"
	"github.com/iwtcode/graphtecAdapter/internal/config"
	dmodels "github.com/iwtcode/graphtecAdapter/internal/domain/models"
	"github.com/iwtcode/graphtecAdapter/internal/middleware/logging"
	lib "github.com/iwtcode/graphtecAdapter/models"
	apperrors "github.com/iwtcode/graphtecAdapter/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CutterManager владеет доступом к физическому плоттеру. Захваченный
// USB-интерфейс эксклюзивен, поэтому операциями владеет ровно один
// держатель токена: либо запрос статуса, либо передача задания.
type CutterManager struct {
	usb    *gousb.Context
	cfg    *config.AppConfig
	logger *logging.Logger
	// liblog передается в библиотечные пакеты gerber и device.
	liblog *logrus.Logger

	tokenMu sync.Mutex
	owner   string // "" — интерфейс свободен

	lastMu sync.RWMutex
	last   dmodels.CutterStatus
}

func NewCutterManager(usb *gousb.Context, cfg *config.AppConfig, logger *logging.Logger) *CutterManager {
	liblog := logrus.New()
	liblog.SetOutput(io.Discard) // диагностика библиотеки идет через сервисный логгер
	return &CutterManager{
		usb:    usb,
		cfg:    cfg,
		logger: logger.WithPrefix("CUTTER"),
		liblog: liblog,
		last:   dmodels.CutterStatus{State: lib.StateUnknown},
	}
}

// TryAcquire пытается захватить токен владения интерфейсом без ожидания.
func (m *CutterManager) TryAcquire(owner string) bool {
	m.tokenMu.Lock()
	defer m.tokenMu.Unlock()
	if m.owner != "" {
		return false
	}
	m.owner = owner
	return true
}

// Release освобождает токен. Чужой токен не трогается.
func (m *CutterManager) Release(owner string) {
	m.tokenMu.Lock()
	defer m.tokenMu.Unlock()
	if m.owner == owner {
		m.owner = ""
	}
}

// Owner возвращает текущего держателя токена.
func (m *CutterManager) Owner() string {
	m.tokenMu.Lock()
	defer m.tokenMu.Unlock()
	return m.owner
}

// Detect возвращает первый подключенный поддерживаемый плоттер.
func (m *CutterManager) Detect() (*lib.DeviceDescriptor, error) {
	desc, err := device.DetectConnected(m.usb)
	if err != nil {
		return nil, fmt.Errorf("обнаружение плоттера провалено: %w", err)
	}
	if desc == nil {
		return nil, apperrors.ErrCutterNotFound
	}
	return desc, nil
}

// QueryState захватывает интерфейс на время одного запроса статуса.
// Возвращает ErrCutterBusy, если интерфейсом владеет передача задания.
func (m *CutterManager) QueryState() (dmodels.CutterStatus, error) {
	if !m.TryAcquire("status") {
		return m.LastState(), fmt.Errorf("%w: держатель '%s'", apperrors.ErrCutterBusy, m.Owner())
	}
	defer m.Release("status")
	return m.queryStateOwned()
}

// queryStateOwned выполняет запрос статуса. Вызывающая сторона обязана
// владеть токеном интерфейса.
func (m *CutterManager) queryStateOwned() (dmodels.CutterStatus, error) {
	desc, err := m.Detect()
	if err != nil {
		return dmodels.CutterStatus{State: lib.StateUnknown, CheckedAt: time.Now()}, err
	}

	status := dmodels.CutterStatus{
		State: lib.StateUnknown,
		Device: &dmodels.CutterInfo{
			VendorID:    fmt.Sprintf("%04x", desc.VendorID),
			ProductID:   fmt.Sprintf("%04x", desc.ProductID),
			DisplayName: desc.DisplayName,
		},
		CheckedAt: time.Now(),
	}

	session, err := device.Open(m.usb, *desc, m.liblog)
	if err != nil {
		m.logger.Warn("Failed to open device session for status query", "device", desc.DisplayName, "error", err)
		m.storeLast(status)
		return status, err
	}
	defer session.Close()

	timeout := time.Duration(m.cfg.Cutter.StatusTimeoutMs) * time.Millisecond
	state, err := session.QueryState(context.Background(), timeout)
	if err != nil {
		// Нет IN-конечной точки: устройство видно, но статус недоступен.
		m.logger.Warn("Status protocol unavailable", "device", desc.DisplayName, "error", err)
	}
	status.State = state
	m.storeLast(status)
	return status, nil
}

// LastState возвращает последнее известное состояние без обращения к устройству.
func (m *CutterManager) LastState() dmodels.CutterStatus {
	m.lastMu.RLock()
	defer m.lastMu.RUnlock()
	return m.last
}

func (m *CutterManager) storeLast(status dmodels.CutterStatus) {
	m.lastMu.Lock()
	defer m.lastMu.Unlock()
	m.last = status
}

// ExtractStrokes разбирает Gerber-слой и возвращает контуры для предпросмотра.
func (m *CutterManager) ExtractStrokes(gerberPath string, segments int) (*dmodels.StrokesResponse, error) {
	layer, err := gerber.LoadLayer(gerberPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось разобрать Gerber-слой: %w", err)
	}
	if segments <= 0 {
		segments = m.cfg.Cutter.Segments
	}
	strokes := gerber.NewExtractor(segments, m.liblog).ExtractStrokes(layer)
	return &dmodels.StrokesResponse{
		Units:   layer.Units,
		Count:   len(strokes),
		Strokes: strokes,
	}, nil
}
