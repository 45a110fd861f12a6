package cut_job

import (
	"github.com/iwtcode/graphtecAdapter/internal/domain/entities"
	"gorm.io/gorm"
)

func (r *CutJobRepositoryImpl) Create(job *entities.CutJob) error {
	return r.db.Create(job).Error
}

func (r *CutJobRepositoryImpl) GetByID(jobID string) (*entities.CutJob, error) {
	var job entities.CutJob
	err := r.db.Where("job_id = ?", jobID).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetAll возвращает все зарегистрированные задания
func (r *CutJobRepositoryImpl) GetAll() ([]entities.CutJob, error) {
	var jobs []entities.CutJob
	if err := r.db.Order("created_at").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateStatus обновляет терминальный статус задания и текст ошибки
func (r *CutJobRepositoryImpl) UpdateStatus(jobID, status, errMsg string) error {
	updates := map[string]interface{}{
		"status": status,
		"error":  errMsg,
	}
	result := r.db.Model(&entities.CutJob{}).Where("job_id = ?", jobID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateProgress обновляет счетчики передачи задания
func (r *CutJobRepositoryImpl) UpdateProgress(jobID string, bytesSent uint64, progress int) error {
	updates := map[string]interface{}{
		"bytes_sent": bytesSent,
		"progress":   progress,
	}
	result := r.db.Model(&entities.CutJob{}).Where("job_id = ?", jobID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CutJobRepositoryImpl) Delete(jobID string) error {
	result := r.db.Where("job_id = ?", jobID).Delete(&entities.CutJob{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
