package repository

import (
	"context"

	"school_records_backend/internal/model"

	"gorm.io/gorm"
)

type ExportRepository struct {
	DB *gorm.DB
}

func NewExportRepository(db *gorm.DB) *ExportRepository {
	return &ExportRepository{DB: db}
}

func (r *ExportRepository) Create(ctx context.Context, e *model.ResultExport) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

// ListByClass returns the class's exports, newest first.
func (r *ExportRepository) ListByClass(ctx context.Context, classID uint) ([]model.ResultExport, error) {
	var exports []model.ResultExport
	err := r.DB.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("created_at desc").
		Find(&exports).Error
	return exports, err
}
