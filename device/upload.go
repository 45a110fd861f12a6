package device

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/iwtcode/graphtecAdapter/models"
)

// DefaultChunkSize — размер порции при потоковой передаче задания.
const DefaultChunkSize = 8192

// ErrCanceled — нормальный терминальный исход отмененной передачи,
// а не ошибка ввода-вывода.
var ErrCanceled = errors.New("upload canceled")

// ProgressFunc получает снимки прогресса передачи. Вызывается после записи
// каждой порции и один раз с Canceled=true при отмене.
type ProgressFunc func(models.UploadProgress)

// Upload передает подготовленное задание в bulk OUT конечную точку порциями
// chunkSize байт. Отмена кооперативная: контекст проверяется до и после
// каждого чтения порции, текущая запись всегда довершается. Запись не
// ограничена таймаутом — плоттер может законно останавливаться посреди
// задания. Интерфейс остается захваченным сессией; освобождение — забота
// Close на вызывающей стороне, независимо от исхода.
func (s *Session) Upload(ctx context.Context, src io.Reader, totalBytes uint64, chunkSize int, onProgress ProgressFunc) error {
	return upload(ctx, s.out, src, totalBytes, chunkSize, onProgress)
}

func upload(ctx context.Context, w bulkWriter, src io.Reader, totalBytes uint64, chunkSize int, onProgress ProgressFunc) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if onProgress == nil {
		onProgress = func(models.UploadProgress) {}
	}

	progress := models.UploadProgress{TotalBytes: totalBytes}
	canceled := func() error {
		progress.Canceled = true
		onProgress(progress)
		return fmt.Errorf("%w: %d of %d bytes sent", ErrCanceled, progress.BytesSent, totalBytes)
	}

	buf := make([]byte, chunkSize)
	for {
		if ctx.Err() != nil {
			return canceled()
		}
		n, readErr := src.Read(buf)
		if ctx.Err() != nil {
			return canceled()
		}
		if n > 0 {
			// Запись без таймаута: остановка плоттера посреди задания
			// не является ошибкой на стороне хоста.
			if _, err := w.WriteContext(context.Background(), buf[:n]); err != nil {
				return fmt.Errorf("bulk write failed after %d bytes: %w", progress.BytesSent, err)
			}
			progress.BytesSent += uint64(n)
			if totalBytes > 0 {
				progress.Percent = int(progress.BytesSent * 100 / totalBytes)
			}
			onProgress(progress)
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("job source read failed after %d bytes: %w", progress.BytesSent, readErr)
		}
	}
}
