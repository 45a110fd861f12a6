package interfaces

import (
	"github.com/iwtcode/graphtecAdapter/internal/domain/entities"
)

// CutJobRepository определяет контракт для работы с заданиями резки в БД
type CutJobRepository interface {
	Create(job *entities.CutJob) error
	GetByID(jobID string) (*entities.CutJob, error)
	GetAll() ([]entities.CutJob, error)
	UpdateStatus(jobID, status, errMsg string) error
	UpdateProgress(jobID string, bytesSent uint64, progress int) error
	Delete(jobID string) error
}
