package cutter_service

import (
	"time"

	"github.com/google/gousb"
	"github.com/iwtcode/graphtecAdapter/internal/config"
	dmodels "github.com/iwtcode/graphtecAdapter/internal/domain/models"
	"github.com/iwtcode/graphtecAdapter/internal/interfaces"
	"github.com/iwtcode/graphtecAdapter/internal/middleware/logging"
	lib "github.com/iwtcode/graphtecAdapter/models"
)

type cutterService struct {
	manager   *CutterManager
	pollMgr   *PollingManager
	uploadMgr *UploadManager
}

func NewCutterService(usb *gousb.Context, cfg *config.AppConfig, repo interfaces.CutJobRepository, producer interfaces.KafkaService, logger *logging.Logger) interfaces.CutterService {
	manager := NewCutterManager(usb, cfg, logger)
	pollingManager := NewPollingManager(manager, producer, logger)
	uploadManager := NewUploadManager(manager, repo, producer, logger)

	return &cutterService{
		manager:   manager,
		pollMgr:   pollingManager,
		uploadMgr: uploadManager,
	}
}

// --- Реализация методов интерфейса CutterService ---

func (s *cutterService) Detect() (*lib.DeviceDescriptor, error) {
	return s.manager.Detect()
}

func (s *cutterService) QueryState() (dmodels.CutterStatus, error) {
	return s.manager.QueryState()
}

func (s *cutterService) LastState() dmodels.CutterStatus {
	return s.manager.LastState()
}

func (s *cutterService) ExtractStrokes(gerberPath string, segments int) (*dmodels.StrokesResponse, error) {
	return s.manager.ExtractStrokes(gerberPath, segments)
}

func (s *cutterService) StartPolling(interval time.Duration) error {
	return s.pollMgr.StartPolling(interval)
}

func (s *cutterService) StopPolling() error {
	return s.pollMgr.StopPolling()
}

func (s *cutterService) IsPollingActive() bool {
	return s.pollMgr.IsPollingActive()
}

func (s *cutterService) StartUpload(jobID string, force bool) error {
	return s.uploadMgr.StartUpload(jobID, force)
}

func (s *cutterService) CancelUpload(jobID string) error {
	return s.uploadMgr.CancelUpload(jobID)
}
