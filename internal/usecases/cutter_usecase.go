package usecases

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/iwtcode/graphtecAdapter/internal/domain/entities"
	dmodels "github.com/iwtcode/graphtecAdapter/internal/domain/models"
	"github.com/iwtcode/graphtecAdapter/internal/interfaces"
	lib "github.com/iwtcode/graphtecAdapter/models"
)

type Usecase struct {
	cutterSvc interfaces.CutterService
	repo      interfaces.CutJobRepository
}

func NewUsecase(cutterSvc interfaces.CutterService, repo interfaces.CutJobRepository) interfaces.Usecases {
	return &Usecase{
		cutterSvc: cutterSvc,
		repo:      repo,
	}
}

func (u *Usecase) DetectCutter() (*lib.DeviceDescriptor, error) {
	return u.cutterSvc.Detect()
}

func (u *Usecase) CutterStatus() (dmodels.CutterStatus, error) {
	return u.cutterSvc.QueryState()
}

func (u *Usecase) ExtractStrokes(req dmodels.StrokesRequest) (*dmodels.StrokesResponse, error) {
	return u.cutterSvc.ExtractStrokes(req.GerberPath, req.Segments)
}

// CreateJob регистрирует подготовленный файл команд как задание резки.
func (u *Usecase) CreateJob(req dmodels.CreateJobRequest) (*entities.CutJob, error) {
	info, err := os.Stat(req.JobPath)
	if err != nil {
		return nil, fmt.Errorf("файл задания недоступен: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("'%s' является директорией, ожидался файл задания", req.JobPath)
	}

	name := req.Name
	if name == "" {
		name = info.Name()
	}

	job := &entities.CutJob{
		JobID:      uuid.New().String(),
		Name:       name,
		GerberPath: req.GerberPath,
		JobPath:    req.JobPath,
		TotalBytes: uint64(info.Size()),
		Status:     entities.JobStatusCreated,
	}
	if err := u.repo.Create(job); err != nil {
		return nil, fmt.Errorf("не удалось сохранить задание в БД: %w", err)
	}
	return job, nil
}

func (u *Usecase) GetJobs() ([]entities.CutJob, error) {
	return u.repo.GetAll()
}

func (u *Usecase) GetJob(jobID string) (*entities.CutJob, error) {
	return u.repo.GetByID(jobID)
}

func (u *Usecase) DeleteJob(jobID string) error {
	return u.repo.Delete(jobID)
}

func (u *Usecase) StartUpload(req dmodels.UploadRequest) error {
	return u.cutterSvc.StartUpload(req.JobID, req.Force)
}

func (u *Usecase) CancelUpload(jobID string) error {
	return u.cutterSvc.CancelUpload(jobID)
}

func (u *Usecase) StartPolling(interval time.Duration) error {
	return u.cutterSvc.StartPolling(interval)
}

func (u *Usecase) StopPolling() error {
	return u.cutterSvc.StopPolling()
}
