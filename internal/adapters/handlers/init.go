package handlers

import (
	"net/http"

	"github.com/iwtcode/graphtecAdapter/internal/config"
	"github.com/iwtcode/graphtecAdapter/internal/interfaces"
	"github.com/iwtcode/graphtecAdapter/internal/middleware/logging"
	"github.com/iwtcode/graphtecAdapter/internal/middleware/swagger"

	"github.com/gin-gonic/gin"
)

// Handler - структура для обработчиков HTTP-запросов
type Handler struct {
	usecase interfaces.Usecases
	logger  *logging.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(usecase interfaces.Usecases, logger *logging.Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger.WithPrefix("HANDLER"),
	}
}

// ProvideRouter настраивает и возвращает HTTP-роутер
func ProvideRouter(h *Handler, cfg *config.AppConfig, swagCfg *swagger.Config) http.Handler {
	gin.SetMode(cfg.GinMode)

	router := gin.Default()

	// Swagger
	swagger.Setup(router, swagCfg)

	// Logger Middleware
	router.Use(LoggingMiddleware(h.logger))

	// Группа API v1
	v1 := router.Group("/api/v1")
	{
		cutter := v1.Group("/cutter")
		{
			cutter.GET("", h.DetectCutter)
			cutter.GET("/status", h.CutterStatus)
		}

		gerber := v1.Group("/gerber")
		{
			gerber.POST("/strokes", h.ExtractStrokes)
		}

		jobs := v1.Group("/jobs")
		{
			jobs.POST("", h.CreateJob)
			jobs.GET("", h.GetJobs)
			jobs.GET("/:id", h.GetJob)
			jobs.DELETE("/:id", h.DeleteJob)
			jobs.POST("/upload", h.StartUpload)
			jobs.POST("/cancel", h.CancelUpload)
		}

		polling := v1.Group("/polling")
		{
			polling.POST("/start", h.StartPolling)
			polling.POST("/stop", h.StopPolling)
		}
	}

	return router
}
