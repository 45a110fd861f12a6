package cut_job

import (
	"github.com/iwtcode/graphtecAdapter/internal/interfaces"
	"gorm.io/gorm"
)

type CutJobRepositoryImpl struct {
	db *gorm.DB
}

func NewCutJobRepository(db *gorm.DB) interfaces.CutJobRepository {
	return &CutJobRepositoryImpl{db: db}
}
