package cutter_service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	dmodels "github.com/iwtcode/graphtecAdapter/internal/domain/models"
	"github.com/iwtcode/graphtecAdapter/internal/interfaces"
	"github.com/iwtcode/graphtecAdapter/internal/middleware/logging"
)

// PollingManager периодически опрашивает состояние готовности плоттера и
// публикует его в Kafka. Такт пропускается, пока интерфейсом владеет
// передача задания: опрос и передача взаимоисключающи на одном устройстве.
type PollingManager struct {
	manager  *CutterManager
	producer interfaces.KafkaService
	logger   *logging.Logger

	mu     sync.Mutex
	ticker *time.Ticker
	done   chan bool
}

func NewPollingManager(manager *CutterManager, producer interfaces.KafkaService, logger *logging.Logger) *PollingManager {
	return &PollingManager{
		manager:  manager,
		producer: producer,
		logger:   logger.WithPrefix("POLLER"),
	}
}

func (pm *PollingManager) IsPollingActive() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.ticker != nil
}

func (pm *PollingManager) StartPolling(interval time.Duration) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.ticker != nil {
		return fmt.Errorf("опрос статуса уже запущен")
	}

	pm.ticker = time.NewTicker(interval)
	pm.done = make(chan bool)
	go pm.run(pm.ticker, pm.done, interval)
	return nil
}

func (pm *PollingManager) StopPolling() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.ticker == nil {
		return fmt.Errorf("опрос статуса не запущен")
	}
	pm.ticker.Stop()
	pm.done <- true
	close(pm.done)
	pm.ticker = nil
	pm.done = nil
	return nil
}

func (pm *PollingManager) run(ticker *time.Ticker, done chan bool, interval time.Duration) {
	pm.logger.Info("Starting status polling goroutine", "interval", interval)
	defer pm.logger.Info("Status polling goroutine stopped")

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			// Шаг 1: Пробуем захватить интерфейс. Во время передачи задания
			// такт пропускается, опрос возобновится на следующем.
			if !pm.manager.TryAcquire("polling") {
				pm.logger.Debug("Interface busy, skipping status tick", "owner", pm.manager.Owner())
				continue
			}

			status, err := pm.manager.queryStateOwned()
			pm.manager.Release("polling")

			if err != nil {
				pm.logger.Debug("Status tick failed", "error", err)
			}

			pm.publish(status)
		}
	}
}

func (pm *PollingManager) publish(status dmodels.CutterStatus) {
	event := dmodels.StatusEvent{
		Kind:      "status",
		State:     status.State,
		Timestamp: status.CheckedAt,
	}
	jsonData, err := json.Marshal(event)
	if err != nil {
		pm.logger.Error("Failed to serialize status event for Kafka", "error", err)
		return
	}
	if err := pm.producer.Produce(context.Background(), []byte("status"), jsonData); err != nil {
		pm.logger.Error("Failed to send status event to Kafka", "error", err)
	}
}
