package handlers

import (
	"net/http"
	"time"

	dmodels "github.com/iwtcode/graphtecAdapter/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// StartPolling запускает периодический опрос состояния плоттера.
// @Summary Запустить опрос
// @Description Запускает периодический опрос состояния плоттера с заданным интервалом. Такты, совпавшие с активной передачей задания, пропускаются.
// @Tags Polling
// @Accept json
// @Produce json
// @Param input body dmodels.PollingRequest true "Интервал опроса в миллисекундах"
// @Success 200 {object} dmodels.MessageResponse "Сообщение об успешном запуске"
// @Failure 400 {object} dmodels.ErrorResponse "Неверный формат запроса"
// @Failure 500 {object} dmodels.ErrorResponse "Внутренняя ошибка сервера"
// @Router /polling/start [post]
func (h *Handler) StartPolling(c *gin.Context) {
	var req dmodels.PollingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	duration := time.Duration(req.Interval) * time.Millisecond
	h.logger.Info("Attempting to start polling", "interval", duration)

	if err := h.usecase.StartPolling(duration); err != nil {
		h.InternalError(c, err)
		return
	}

	h.logger.Info("Polling started successfully")
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Polling started",
	})
}

// StopPolling останавливает опрос состояния плоттера.
// @Summary Остановить опрос
// @Description Останавливает периодический опрос состояния плоттера.
// @Tags Polling
// @Produce json
// @Success 200 {object} dmodels.MessageResponse "Сообщение об успешной остановке"
// @Failure 500 {object} dmodels.ErrorResponse "Внутренняя ошибка сервера"
// @Router /polling/stop [post]
func (h *Handler) StopPolling(c *gin.Context) {
	h.logger.Info("Attempting to stop polling")

	if err := h.usecase.StopPolling(); err != nil {
		h.InternalError(c, err)
		return
	}

	h.logger.Info("Polling stopped successfully")
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Polling stopped",
	})
}
