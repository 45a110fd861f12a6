package cutter_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/iwtcode/graphtecAdapter/device"
	"github.com/iwtcode/graphtecAdapter/internal/domain/entities"
	dmodels "github.com/iwtcode/graphtecAdapter/internal/domain/models"
	"github.com/iwtcode/graphtecAdapter/internal/interfaces"
	"github.com/iwtcode/graphtecAdapter/internal/middleware/logging"
	lib "github.com/iwtcode/graphtecAdapter/models"
	apperrors "github.com/iwtcode/graphtecAdapter/pkg/errors"
)

// UploadManager запускает передачу заданий на плоттер в отдельной горутине,
// сохраняет прогресс в БД и публикует события в Kafka. На время передачи
// он владеет токеном интерфейса, что приостанавливает опрос статуса.
type UploadManager struct {
	manager  *CutterManager
	repo     interfaces.CutJobRepository
	producer interfaces.KafkaService
	logger   *logging.Logger

	mu     sync.Mutex
	active map[string]context.CancelFunc
}

func NewUploadManager(manager *CutterManager, repo interfaces.CutJobRepository, producer interfaces.KafkaService, logger *logging.Logger) *UploadManager {
	return &UploadManager{
		manager:  manager,
		repo:     repo,
		producer: producer,
		logger:   logger.WithPrefix("UPLOADER"),
		active:   make(map[string]context.CancelFunc),
	}
}

// StartUpload проверяет готовность плоттера и запускает асинхронную передачу
// задания. Передача разрешена из состояния ready; из unknown — только при
// явном подтверждении (устройство отвечает на обнаружение, но не на протокол
// статуса).
func (um *UploadManager) StartUpload(jobID string, force bool) error {
	job, err := um.repo.GetByID(jobID)
	if err != nil {
		return fmt.Errorf("задание '%s' не найдено: %w", jobID, err)
	}
	if job.Status == entities.JobStatusUploading {
		return fmt.Errorf("задание '%s' уже передается", jobID)
	}

	status, err := um.manager.QueryState()
	if err != nil {
		return err
	}
	switch status.State {
	case lib.StateReady:
		// Единственное состояние, безусловно разрешающее передачу.
	case lib.StateUnknown:
		if !force && !um.manager.cfg.Cutter.AllowUnknown {
			return fmt.Errorf("%w: состояние '%s'", apperrors.ErrCutterNotReady, status.State)
		}
		um.logger.Warn("Starting upload with unknown cutter state", "jobID", jobID)
	default:
		return fmt.Errorf("%w: состояние '%s'", apperrors.ErrCutterNotReady, status.State)
	}

	desc, err := um.manager.Detect()
	if err != nil {
		return err
	}

	owner := "upload:" + jobID
	if !um.manager.TryAcquire(owner) {
		return fmt.Errorf("%w: держатель '%s'", apperrors.ErrCutterBusy, um.manager.Owner())
	}

	f, err := os.Open(job.JobPath)
	if err != nil {
		um.manager.Release(owner)
		return fmt.Errorf("не удалось открыть файл задания: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		um.manager.Release(owner)
		return fmt.Errorf("не удалось получить размер файла задания: %w", err)
	}

	session, err := device.Open(um.manager.usb, *desc, um.manager.liblog)
	if err != nil {
		_ = f.Close()
		um.manager.Release(owner)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	um.mu.Lock()
	um.active[jobID] = cancel
	um.mu.Unlock()

	if err := um.repo.UpdateStatus(jobID, entities.JobStatusUploading, ""); err != nil {
		um.logger.Error("Failed to mark job as uploading", "jobID", jobID, "error", err)
	}

	um.logger.Info("Upload started", "jobID", jobID, "device", desc.DisplayName, "bytes", info.Size())

	go func() {
		defer func() {
			session.Close()
			_ = f.Close()
			um.manager.Release(owner)
			um.mu.Lock()
			delete(um.active, jobID)
			um.mu.Unlock()
			cancel()
		}()

		chunkSize := um.manager.cfg.Cutter.ChunkSize
		lastPercent := -1
		onProgress := func(p lib.UploadProgress) {
			if p.Percent == lastPercent && !p.Canceled {
				return
			}
			lastPercent = p.Percent
			if err := um.repo.UpdateProgress(jobID, p.BytesSent, p.Percent); err != nil {
				um.logger.Error("Failed to persist upload progress", "jobID", jobID, "error", err)
			}
			um.publish(dmodels.StatusEvent{
				Kind:      "upload",
				JobID:     jobID,
				BytesSent: p.BytesSent,
				Progress:  p.Percent,
				Timestamp: time.Now(),
			})
		}

		err := session.Upload(ctx, f, uint64(info.Size()), chunkSize, onProgress)
		um.finish(jobID, err)
	}()

	return nil
}

// CancelUpload взводит флаг отмены активной передачи. Отмена кооперативная:
// текущая порция дописывается, после чего передача завершается исходом canceled.
func (um *UploadManager) CancelUpload(jobID string) error {
	um.mu.Lock()
	cancel, exists := um.active[jobID]
	um.mu.Unlock()
	if !exists {
		return fmt.Errorf("активная передача для задания '%s' не найдена", jobID)
	}
	cancel()
	um.logger.Info("Upload cancellation requested", "jobID", jobID)
	return nil
}

// finish фиксирует терминальный исход передачи в БД и Kafka.
func (um *UploadManager) finish(jobID string, err error) {
	outcome := entities.JobStatusCompleted
	errMsg := ""
	switch {
	case err == nil:
	case errors.Is(err, device.ErrCanceled):
		outcome = entities.JobStatusCanceled
	default:
		outcome = entities.JobStatusFailed
		errMsg = err.Error()
	}

	if err := um.repo.UpdateStatus(jobID, outcome, errMsg); err != nil {
		um.logger.Error("Failed to persist terminal job status", "jobID", jobID, "error", err)
	}
	um.publish(dmodels.StatusEvent{
		Kind:      "upload",
		JobID:     jobID,
		Outcome:   outcome,
		Timestamp: time.Now(),
	})

	if errMsg != "" {
		um.logger.Error("Upload finished", "jobID", jobID, "outcome", outcome, "error", errMsg)
		return
	}
	um.logger.Info("Upload finished", "jobID", jobID, "outcome", outcome)
}

func (um *UploadManager) publish(event dmodels.StatusEvent) {
	jsonData, err := json.Marshal(event)
	if err != nil {
		um.logger.Error("Failed to serialize upload event for Kafka", "error", err)
		return
	}
	if err := um.producer.Produce(context.Background(), []byte(event.JobID), jsonData); err != nil {
		um.logger.Error("Failed to send upload event to Kafka", "error", err)
	}
}
