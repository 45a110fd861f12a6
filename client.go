package graphtec

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/gousb"
	"github.com/iwtcode/graphtecAdapter/device"
	"github.com/iwtcode/graphtecAdapter/gerber"
	"github.com/iwtcode/graphtecAdapter/models"
	"github.com/iwtcode/graphtecAdapter/plan"
	"github.com/sirupsen/logrus"
)

// Client является основной точкой входа для взаимодействия с библиотекой.
// Он объединяет извлечение контуров из Gerber-слоя, планирование проходов
// и USB-протокол плоттера.
type Client struct {
	config *Config
	logger *logrus.Logger

	usbOnce sync.Once
	usb     *gousb.Context
}

// New создает и возвращает новый экземпляр клиента.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = Load()
	}

	logger := logrus.New()

	if cfg.LogLevel == "off" || cfg.LogLevel == "none" {
		logger.SetOutput(io.Discard)
	} else {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
		logger.SetOutput(os.Stdout)
	}

	// Настраиваем форматтер с понятным форматом времени
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Client{
		config: cfg,
		logger: logger,
	}, nil
}

// Close освобождает контекст USB, если он был создан.
func (c *Client) Close() {
	if c.usb != nil {
		_ = c.usb.Close()
		c.usb = nil
	}
}

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() *logrus.Logger {
	return c.logger
}

// usbContext лениво инициализирует контекст libusb один раз на клиента.
func (c *Client) usbContext() *gousb.Context {
	c.usbOnce.Do(func() {
		c.usb = gousb.NewContext()
	})
	return c.usb
}

// ExtractStrokes разбирает Gerber-файл и возвращает контуры всех его
// примитивов в порядке следования в источнике.
func (c *Client) ExtractStrokes(path string) ([]models.Stroke, error) {
	layer, err := gerber.LoadLayer(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load gerber layer: %w", err)
	}
	extractor := gerber.NewExtractor(c.config.Segments, c.logger)
	return extractor.ExtractStrokes(layer), nil
}

// PlanJob передает контуры внешнему кодеру заданий согласно конфигурации:
// смещение, матрица и по одному проходу на каждую пару скорость/усилие.
func (c *Client) PlanJob(strokes []models.Stroke, enc plan.Encoder, optimize plan.Optimizer, merge plan.Merger) error {
	return plan.Plan(strokes, plan.Params{
		Offset:         c.config.Offset,
		Border:         c.config.Border,
		Matrix:         c.config.Matrix,
		Speeds:         c.config.Speeds,
		Forces:         c.config.Forces,
		Merge:          c.config.Merge,
		MergeThreshold: c.config.MergeThreshold,
		CutMode:        c.config.CutMode,
		Optimize:       optimize,
		MergeFunc:      merge,
	}, enc)
}

// DetectCutter возвращает первый подключенный поддерживаемый плоттер
// или nil, если ни один не найден.
func (c *Client) DetectCutter() (*models.DeviceDescriptor, error) {
	return device.DetectConnected(c.usbContext())
}

// GetCutterState опрашивает состояние готовности плоттера. Сессия живет
// только на время запроса; интерфейс освобождается на любом пути выхода.
func (c *Client) GetCutterState(ctx context.Context, desc models.DeviceDescriptor) (models.CutterState, error) {
	session, err := device.Open(c.usbContext(), desc, c.logger)
	if err != nil {
		return models.StateUnknown, err
	}
	defer session.Close()

	timeout := time.Duration(c.config.StatusTimeoutMs) * time.Millisecond
	return session.QueryState(ctx, timeout)
}

// SendJob передает файл задания на плоттер порциями, сообщая прогресс.
// Отмена выполняется через ctx и действует между порциями.
func (c *Client) SendJob(ctx context.Context, desc models.DeviceDescriptor, jobPath string, onProgress device.ProgressFunc) error {
	f, err := os.Open(jobPath)
	if err != nil {
		return fmt.Errorf("failed to open job file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat job file: %w", err)
	}

	session, err := device.Open(c.usbContext(), desc, c.logger)
	if err != nil {
		return err
	}
	defer session.Close()

	return session.Upload(ctx, f, uint64(info.Size()), c.config.ChunkSize, onProgress)
}
