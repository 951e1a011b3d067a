package repository

import (
	"context"

	"school_records_backend/internal/grading"
	"school_records_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApprovalRuleRepository struct {
	DB *gorm.DB
}

func NewApprovalRuleRepository(db *gorm.DB) *ApprovalRuleRepository {
	return &ApprovalRuleRepository{DB: db}
}

func (r *ApprovalRuleRepository) Find(ctx context.Context, schoolID uint, level grading.EducationLevel) (*model.ApprovalRuleSet, error) {
	var rs model.ApprovalRuleSet
	err := r.DB.WithContext(ctx).
		Where("school_id = ? AND education_level = ?", schoolID, level).
		First(&rs).Error
	if err != nil {
		return nil, err
	}
	return &rs, nil
}

func (r *ApprovalRuleRepository) Save(ctx context.Context, rs *model.ApprovalRuleSet) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "school_id"}, {Name: "education_level"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"passing_grade", "min_attendance", "dependency_enabled",
			"max_dependency_components", "only_dependency", "updated_at",
		}),
	}).Create(rs).Error
}
