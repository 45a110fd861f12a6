package entities

import "time"

const (
	JobStatusCreated   = "created"
	JobStatusUploading = "uploading"
	JobStatusCompleted = "completed"
	JobStatusCanceled  = "canceled"
	JobStatusFailed    = "failed"
)

// CutJob — зарегистрированное задание резки: подготовленный файл команд
// плоттера и прогресс его передачи.
type CutJob struct {
	JobID      string    `gorm:"primaryKey;not null" json:"job_id"`
	Name       string    `json:"name"`
	GerberPath string    `json:"gerber_path"`              // исходный Gerber-слой (информативно)
	JobPath    string    `gorm:"not null" json:"job_path"` // файл команд для передачи
	TotalBytes uint64    `json:"total_bytes"`
	BytesSent  uint64    `json:"bytes_sent"`
	Progress   int       `json:"progress"` // проценты, 0..100
	Status     string    `gorm:"not null" json:"status"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
