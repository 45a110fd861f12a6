package handlers

import (
	"errors"
	"net/http"

	dmodels "github.com/iwtcode/graphtecAdapter/internal/domain/models"
	apperrors "github.com/iwtcode/graphtecAdapter/pkg/errors"

	"github.com/gin-gonic/gin"
)

// DetectCutter возвращает первый подключенный поддерживаемый плоттер.
// @Summary Обнаружить плоттер
// @Description Сканирует шину USB и возвращает первый поддерживаемый плоттер в порядке приоритета.
// @Tags Cutter
// @Produce json
// @Success 200 {object} dmodels.CutterStatus "Обнаруженный плоттер"
// @Failure 404 {object} dmodels.ErrorResponse "Поддерживаемый плоттер не подключен"
// @Router /cutter [get]
func (h *Handler) DetectCutter(c *gin.Context) {
	desc, err := h.usecase.DetectCutter()
	if err != nil {
		if errors.Is(err, apperrors.ErrCutterNotFound) {
			h.NotFound(c, err)
			return
		}
		h.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "cutter": desc})
}

// CutterStatus опрашивает состояние готовности плоттера.
// @Summary Статус плоттера
// @Description Отправляет команду запроса статуса и возвращает декодированное состояние. Во время активной передачи возвращает последнее известное состояние с признаком busy.
// @Tags Cutter
// @Produce json
// @Success 200 {object} dmodels.CutterStatus "Состояние готовности"
// @Failure 404 {object} dmodels.ErrorResponse "Поддерживаемый плоттер не подключен"
// @Router /cutter/status [get]
func (h *Handler) CutterStatus(c *gin.Context) {
	status, err := h.usecase.CutterStatus()
	if err != nil {
		if errors.Is(err, apperrors.ErrCutterBusy) {
			// Интерфейс занят передачей: отдаем последнее известное состояние.
			c.JSON(http.StatusOK, gin.H{"status": "busy", "cutter_status": status})
			return
		}
		if errors.Is(err, apperrors.ErrCutterNotFound) {
			h.NotFound(c, err)
			return
		}
		h.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "cutter_status": status})
}

// ExtractStrokes извлекает контуры из Gerber-слоя для предпросмотра.
// @Summary Извлечь контуры
// @Description Разбирает Gerber-файл и возвращает контуры всех его примитивов в порядке следования.
// @Tags Gerber
// @Accept json
// @Produce json
// @Param input body dmodels.StrokesRequest true "Путь к Gerber-файлу"
// @Success 200 {object} dmodels.StrokesResponse "Извлеченные контуры"
// @Failure 400 {object} dmodels.ErrorResponse "Неверный формат запроса"
// @Failure 500 {object} dmodels.ErrorResponse "Ошибка разбора слоя"
// @Router /gerber/strokes [post]
func (h *Handler) ExtractStrokes(c *gin.Context) {
	var req dmodels.StrokesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	h.logger.Info("Extracting strokes", "gerber", req.GerberPath)

	resp, err := h.usecase.ExtractStrokes(req)
	if err != nil {
		h.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
