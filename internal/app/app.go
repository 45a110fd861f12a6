package app

import (
	"context"
	"net/http"
	"time"

	"github.com/iwtcode/graphtecAdapter/internal/adapters/handlers"
	"github.com/iwtcode/graphtecAdapter/internal/adapters/repositories/postgres"
	"github.com/iwtcode/graphtecAdapter/internal/config"
	"github.com/iwtcode/graphtecAdapter/internal/domain/entities"
	"github.com/iwtcode/graphtecAdapter/internal/interfaces"
	"github.com/iwtcode/graphtecAdapter/internal/middleware/logging"
	"github.com/iwtcode/graphtecAdapter/internal/middleware/swagger"
	"github.com/iwtcode/graphtecAdapter/internal/services/cutter_service"
	"github.com/iwtcode/graphtecAdapter/internal/services/kafka"
	"github.com/iwtcode/graphtecAdapter/internal/usecases"

	"github.com/google/gousb"
	"go.uber.org/fx"
)

// New создает новый экземпляр fx.App
func New() *fx.App {
	return fx.New(
		ConfigModule,
		LoggingModule,
		UsbModule,
		RepositoryModule,
		ProducerModule,
		ServiceModule,
		UsecaseModule,
		HttpServerModule,
		// Invoke-функции для запуска фоновых задач и хуков жизненного цикла
		fx.Invoke(InvokeFailInterruptedUploads),
		fx.Invoke(InvokeAutoPolling),
	)
}

// --- Модули FX ---

var ConfigModule = fx.Module("config_module",
	fx.Provide(config.LoadConfiguration),
)

func ProvideLogger(cfg *config.AppConfig) *logging.Logger {
	loggerCfg := &logging.Config{
		Enabled:    cfg.Logging.Enable,
		Level:      cfg.Logging.Level,
		LogsDir:    cfg.Logging.LogsDir,
		SavingDays: uint(cfg.Logging.SavingDays),
	}
	return logging.NewLogger(loggerCfg, "GraphtecServiceApp")
}

var LoggingModule = fx.Module("logging_module",
	fx.Provide(ProvideLogger),
)

// ProvideUsbContext создает общий контекст libusb и закрывает его при остановке приложения.
func ProvideUsbContext(lc fx.Lifecycle, logger *logging.Logger) *gousb.Context {
	usb := gousb.NewContext()
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing USB context...")
			return usb.Close()
		},
	})
	return usb
}

var UsbModule = fx.Module("usb_module",
	fx.Provide(ProvideUsbContext),
)

var RepositoryModule = fx.Module("repository_module",
	fx.Provide(postgres.NewRepository),
)

var ProducerModule = fx.Module("producer_module",
	fx.Provide(kafka.NewKafkaProducer),
)

var ServiceModule = fx.Module("service_module",
	fx.Provide(cutter_service.NewCutterService),
)

var UsecaseModule = fx.Module("usecases_module",
	fx.Provide(usecases.NewUsecases),
)

func NewSwaggerConfig() *swagger.Config {
	return &swagger.Config{
		Enabled: true,
		Path:    "/swagger",
	}
}

var HttpServerModule = fx.Module("http_server_module",
	fx.Provide(
		NewSwaggerConfig,
		handlers.NewHandler,
		handlers.ProvideRouter,
	),
	fx.Invoke(InvokeHttpServer),
)

// InvokeFailInterruptedUploads помечает задания, прерванные перезапуском сервиса.
// Передача не переживает перезапуск процесса, поэтому все задания в статусе
// uploading переводятся в failed.
func InvokeFailInterruptedUploads(lc fx.Lifecycle, repo interfaces.CutJobRepository, logger *logging.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			jobs, err := repo.GetAll()
			if err != nil {
				logger.Error("Failed to get job list from DB", "error", err)
				return nil // Не фатально, просто продолжаем
			}

			for _, job := range jobs {
				if job.Status != entities.JobStatusUploading {
					continue
				}
				logger.Warn("Marking interrupted upload as failed", "jobID", job.JobID)
				if err := repo.UpdateStatus(job.JobID, entities.JobStatusFailed, "upload interrupted by service restart"); err != nil {
					logger.Error("Failed to update interrupted job", "jobID", job.JobID, "error", err)
				}
			}
			return nil
		},
	})
}

// InvokeAutoPolling запускает опрос состояния плоттера при старте приложения.
func InvokeAutoPolling(lc fx.Lifecycle, cfg *config.AppConfig, cutterSvc interfaces.CutterService, logger *logging.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Cutter.PollIntervalMs <= 0 {
				logger.Info("Auto polling is disabled")
				return nil
			}
			interval := time.Duration(cfg.Cutter.PollIntervalMs) * time.Millisecond
			logger.Info("Starting status polling", "interval", interval)
			if err := cutterSvc.StartPolling(interval); err != nil {
				logger.Warn("Failed to start status polling", "error", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return cutterSvc.StopPolling()
		},
	})
}

// InvokeHttpServer запускает HTTP-сервер.
func InvokeHttpServer(lc fx.Lifecycle, cfg *config.AppConfig, h http.Handler, logger *logging.Logger) {
	serverAddr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("HTTP Server is starting", "address", serverAddr)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}
