package handlers

import (
	"errors"
	"net/http"

	dmodels "github.com/iwtcode/graphtecAdapter/internal/domain/models"
	apperrors "github.com/iwtcode/graphtecAdapter/pkg/errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateJob регистрирует подготовленный файл команд как задание резки.
// @Summary Создать задание
// @Description Регистрирует файл команд плоттера как задание и фиксирует его размер.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param input body dmodels.CreateJobRequest true "Пути к файлу задания и исходному слою"
// @Success 200 {object} dmodels.MessageResponse "Созданное задание"
// @Failure 400 {object} dmodels.ErrorResponse "Неверный формат запроса"
// @Failure 500 {object} dmodels.ErrorResponse "Файл недоступен или ошибка БД"
// @Router /jobs [post]
func (h *Handler) CreateJob(c *gin.Context) {
	var req dmodels.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	h.logger.Info("Attempting to create a new job", "job_path", req.JobPath)

	job, err := h.usecase.CreateJob(req)
	if err != nil {
		h.InternalError(c, err)
		return
	}

	h.logger.Info("Successfully created job", "jobID", job.JobID)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "job": job})
}

// GetJobs возвращает список всех заданий.
// @Summary Получить список заданий
// @Description Возвращает все зарегистрированные задания с их статусами и прогрессом.
// @Tags Jobs
// @Produce json
// @Success 200 {object} dmodels.MessageResponse "Список заданий"
// @Router /jobs [get]
func (h *Handler) GetJobs(c *gin.Context) {
	jobs, err := h.usecase.GetJobs()
	if err != nil {
		h.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"count":  len(jobs),
		"jobs":   jobs,
	})
}

// GetJob возвращает задание по его идентификатору.
// @Summary Получить задание
// @Description Возвращает задание с его статусом и прогрессом передачи.
// @Tags Jobs
// @Produce json
// @Param id path string true "ID задания"
// @Success 200 {object} dmodels.MessageResponse "Задание"
// @Failure 404 {object} dmodels.ErrorResponse "Задание не найдено"
// @Router /jobs/{id} [get]
func (h *Handler) GetJob(c *gin.Context) {
	job, err := h.usecase.GetJob(c.Param("id"))
	if err != nil {
		h.NotFound(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "job": job})
}

// DeleteJob удаляет задание.
// @Summary Удалить задание
// @Description Удаляет запись задания из БД. Сам файл команд не трогается.
// @Tags Jobs
// @Produce json
// @Param id path string true "ID задания"
// @Success 200 {object} dmodels.MessageResponse "Сообщение об успешном удалении"
// @Failure 404 {object} dmodels.ErrorResponse "Задание не найдено"
// @Router /jobs/{id} [delete]
func (h *Handler) DeleteJob(c *gin.Context) {
	jobID := c.Param("id")
	if err := h.usecase.DeleteJob(jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.NotFound(c, err)
			return
		}
		h.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Job " + jobID + " deleted successfully",
	})
}

// StartUpload запускает передачу задания на плоттер.
// @Summary Запустить передачу
// @Description Проверяет готовность плоттера и запускает асинхронную передачу файла задания. Опрос статуса приостанавливается до завершения.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param input body dmodels.UploadRequest true "ID задания и флаг принудительного запуска"
// @Success 200 {object} dmodels.MessageResponse "Передача запущена"
// @Failure 400 {object} dmodels.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} dmodels.ErrorResponse "Плоттер не готов или занят"
// @Failure 500 {object} dmodels.ErrorResponse "Внутренняя ошибка сервера"
// @Router /jobs/upload [post]
func (h *Handler) StartUpload(c *gin.Context) {
	var req dmodels.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Missing or invalid JobID")
		return
	}

	h.logger.Info("Attempting to start upload", "jobID", req.JobID, "force", req.Force)

	if err := h.usecase.StartUpload(req); err != nil {
		if errors.Is(err, apperrors.ErrCutterBusy) || errors.Is(err, apperrors.ErrCutterNotReady) {
			h.Conflict(c, err)
			return
		}
		h.InternalError(c, err)
		return
	}

	h.logger.Info("Upload started successfully", "jobID", req.JobID)
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Upload started for job " + req.JobID,
	})
}

// CancelUpload отменяет активную передачу задания.
// @Summary Отменить передачу
// @Description Взводит флаг кооперативной отмены; передача завершится после текущей порции с исходом canceled.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param input body dmodels.JobRequest true "ID задания"
// @Success 200 {object} dmodels.MessageResponse "Отмена запрошена"
// @Failure 400 {object} dmodels.ErrorResponse "Неверный формат запроса"
// @Failure 404 {object} dmodels.ErrorResponse "Активная передача не найдена"
// @Router /jobs/cancel [post]
func (h *Handler) CancelUpload(c *gin.Context) {
	var req dmodels.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Missing or invalid JobID")
		return
	}

	if err := h.usecase.CancelUpload(req.JobID); err != nil {
		h.NotFound(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Cancellation requested for job " + req.JobID,
	})
}
