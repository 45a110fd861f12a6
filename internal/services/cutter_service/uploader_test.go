package cutter_service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/iwtcode/graphtecAdapter/device"
	"github.com/iwtcode/graphtecAdapter/internal/domain/entities"
	dmodels "github.com/iwtcode/graphtecAdapter/internal/domain/models"
	"github.com/iwtcode/graphtecAdapter/internal/middleware/logging"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu       sync.Mutex
	statuses map[string]string
	errs     map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{statuses: make(map[string]string), errs: make(map[string]string)}
}

func (r *fakeRepo) Create(job *entities.CutJob) error  { return nil }
func (r *fakeRepo) GetAll() ([]entities.CutJob, error) { return nil, nil }
func (r *fakeRepo) Delete(jobID string) error          { return nil }

func (r *fakeRepo) GetByID(jobID string) (*entities.CutJob, error) {
	return nil, errors.New("not found")
}

func (r *fakeRepo) UpdateProgress(jobID string, bytesSent uint64, progress int) error {
	return nil
}

func (r *fakeRepo) UpdateStatus(jobID, status, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[jobID] = status
	r.errs[jobID] = errMsg
	return nil
}

func (r *fakeRepo) status(jobID string) (string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statuses[jobID], r.errs[jobID]
}

type fakeProducer struct {
	mu     sync.Mutex
	events []dmodels.StatusEvent
}

func (p *fakeProducer) Produce(ctx context.Context, key, value []byte) error {
	var event dmodels.StatusEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return err
	}
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
	return nil
}

func (p *fakeProducer) Close() error { return nil }

func (p *fakeProducer) last() dmodels.StatusEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

func newTestUploader(t *testing.T) (*UploadManager, *fakeRepo, *fakeProducer) {
	t.Helper()
	repo := newFakeRepo()
	producer := &fakeProducer{}
	logger := logging.NewLogger(&logging.Config{Enabled: false, Level: "ERROR"}, "TEST")
	um := NewUploadManager(newTestManager(t), repo, producer, logger)
	return um, repo, producer
}

func TestFinishCompleted(t *testing.T) {
	um, repo, producer := newTestUploader(t)

	um.finish("job-1", nil)

	status, errMsg := repo.status("job-1")
	require.Equal(t, entities.JobStatusCompleted, status)
	require.Empty(t, errMsg)

	event := producer.last()
	require.Equal(t, "upload", event.Kind)
	require.Equal(t, entities.JobStatusCompleted, event.Outcome)
}

func TestFinishCanceledIsNotFailure(t *testing.T) {
	um, repo, producer := newTestUploader(t)

	um.finish("job-1", device.ErrCanceled)

	status, errMsg := repo.status("job-1")
	require.Equal(t, entities.JobStatusCanceled, status)
	require.Empty(t, errMsg, "отмена — нормальный исход, не ошибка")
	require.Equal(t, entities.JobStatusCanceled, producer.last().Outcome)
}

func TestFinishWrappedCanceled(t *testing.T) {
	um, repo, _ := newTestUploader(t)

	// device.Upload оборачивает ErrCanceled с контекстом прогресса.
	wrapped := errors.Join(errors.New("7 of 100 bytes sent"), device.ErrCanceled)
	um.finish("job-1", wrapped)

	status, _ := repo.status("job-1")
	require.Equal(t, entities.JobStatusCanceled, status)
}

func TestFinishFailed(t *testing.T) {
	um, repo, producer := newTestUploader(t)

	um.finish("job-1", errors.New("bulk write failed"))

	status, errMsg := repo.status("job-1")
	require.Equal(t, entities.JobStatusFailed, status)
	require.Contains(t, errMsg, "bulk write failed")
	require.Equal(t, entities.JobStatusFailed, producer.last().Outcome)
}

func TestCancelUploadUnknownJob(t *testing.T) {
	um, _, _ := newTestUploader(t)
	require.Error(t, um.CancelUpload("missing"))
}
