package models

// CreateJobRequest определяет структуру запроса на регистрацию задания.
type CreateJobRequest struct {
	Name       string `json:"name"`
	JobPath    string `json:"job_path" binding:"required"` // подготовленный файл команд
	GerberPath string `json:"gerber_path"`                 // исходный слой, информативно
}

// JobRequest определяет структуру для запросов, использующих JobID.
type JobRequest struct {
	JobID string `json:"job_id" binding:"required"`
}

// UploadRequest определяет структуру запроса на запуск передачи задания.
type UploadRequest struct {
	JobID string `json:"job_id" binding:"required"`
	// Force разрешает передачу из состояния unknown (устройство отвечает
	// на обнаружение, но не на протокол статуса).
	Force bool `json:"force"`
}

// PollingRequest определяет структуру для запроса на запуск опроса.
type PollingRequest struct {
	Interval int `json:"interval" binding:"required,gt=0"` // в миллисекундах
}

// StrokesRequest определяет структуру запроса на извлечение контуров.
type StrokesRequest struct {
	GerberPath string `json:"gerber_path" binding:"required"`
	Segments   int    `json:"segments"` // 0 — значение по умолчанию
}
