package interfaces

import (
	"time"

	dmodels "github.com/iwtcode/graphtecAdapter/internal/domain/models"
	lib "github.com/iwtcode/graphtecAdapter/models"
)

// CutterService - это агрегирующий интерфейс для всей бизнес-логики.
type CutterService interface {
	DeviceManager
	PollingManager
	UploadManager
}

// DeviceManager определяет контракт доступа к подключенному плоттеру.
// Захваченный USB-интерфейс эксклюзивен: в каждый момент времени им владеет
// либо запрос статуса, либо передача задания.
type DeviceManager interface {
	Detect() (*lib.DeviceDescriptor, error)
	QueryState() (dmodels.CutterStatus, error)
	LastState() dmodels.CutterStatus
	ExtractStrokes(gerberPath string, segments int) (*dmodels.StrokesResponse, error)
}

// PollingManager определяет контракт для периодического опроса статуса.
type PollingManager interface {
	StartPolling(interval time.Duration) error
	StopPolling() error
	IsPollingActive() bool
}

// UploadManager определяет контракт для передачи заданий на плоттер.
type UploadManager interface {
	StartUpload(jobID string, force bool) error
	CancelUpload(jobID string) error
}
