package models

import (
	"time"

	lib "github.com/iwtcode/graphtecAdapter/models"
)

// MessageResponse — стандартный ответ с сообщением.
type MessageResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message"`
}

// ErrorResponse — стандартный ответ с ошибкой.
type ErrorResponse struct {
	Status string `json:"status" example:"error"`
	Error  struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CutterInfo описывает обнаруженный плоттер в ответах API.
type CutterInfo struct {
	VendorID    string `json:"vendor_id" example:"0b4d"`
	ProductID   string `json:"product_id" example:"1123"`
	DisplayName string `json:"display_name" example:"Silhouette Portrait"`
}

// CutterStatus описывает состояние готовности плоттера.
type CutterStatus struct {
	State     lib.CutterState `json:"state" swaggertype:"string" example:"ready"`
	Device    *CutterInfo     `json:"device,omitempty"`
	CheckedAt time.Time       `json:"checked_at"`
}

// StrokesResponse — результат извлечения контуров из Gerber-слоя.
type StrokesResponse struct {
	Units   string       `json:"units"`
	Count   int          `json:"count"`
	Strokes []lib.Stroke `json:"strokes"`
}

// StatusEvent — событие, публикуемое в Kafka при опросе и передаче.
type StatusEvent struct {
	Kind      string          `json:"kind"` // status / upload
	State     lib.CutterState `json:"state,omitempty" swaggertype:"string"`
	JobID     string          `json:"job_id,omitempty"`
	BytesSent uint64          `json:"bytes_sent,omitempty"`
	Progress  int             `json:"progress,omitempty"`
	Outcome   string          `json:"outcome,omitempty"` // completed / canceled / failed
	Timestamp time.Time       `json:"timestamp"`
}
