package interfaces

import (
	"time"

	"github.com/iwtcode/graphtecAdapter/internal/domain/entities"
	dmodels "github.com/iwtcode/graphtecAdapter/internal/domain/models"
	lib "github.com/iwtcode/graphtecAdapter/models"
)

// Usecases - это агрегирующий интерфейс для всех use cases
type Usecases interface {
	DetectCutter() (*lib.DeviceDescriptor, error)
	CutterStatus() (dmodels.CutterStatus, error)
	ExtractStrokes(req dmodels.StrokesRequest) (*dmodels.StrokesResponse, error)
	CreateJob(req dmodels.CreateJobRequest) (*entities.CutJob, error)
	GetJobs() ([]entities.CutJob, error)
	GetJob(jobID string) (*entities.CutJob, error)
	DeleteJob(jobID string) error
	StartUpload(req dmodels.UploadRequest) error
	CancelUpload(jobID string) error
	StartPolling(interval time.Duration) error
	StopPolling() error
}
