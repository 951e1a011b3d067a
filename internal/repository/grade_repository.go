package repository

import (
	"context"

	"school_records_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GradeRepository struct {
	DB *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

// Upsert writes the record keyed by (enrollment, component). NULL marks are
// written as NULL so a cleared bimester goes back to absent.
func (r *GradeRepository) Upsert(ctx context.Context, rec *model.GradeRecord) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "enrollment_id"}, {Name: "component_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"b1", "b2", "b3", "b4", "rec_s1", "rec_s2", "recovery",
			"average", "status", "updated_by", "updated_at",
		}),
	}).Create(rec).Error
}

func (r *GradeRepository) FindByEnrollmentAndComponent(ctx context.Context, enrollmentID, componentID uint) (*model.GradeRecord, error) {
	var rec model.GradeRecord
	err := r.DB.WithContext(ctx).
		Where("enrollment_id = ? AND component_id = ?", enrollmentID, componentID).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GradeRepository) ListByEnrollment(ctx context.Context, enrollmentID uint) ([]model.GradeRecord, error) {
	var recs []model.GradeRecord
	err := r.DB.WithContext(ctx).Where("enrollment_id = ?", enrollmentID).Find(&recs).Error
	return recs, err
}

// ListByClass returns every record of the class's enrollments.
func (r *GradeRepository) ListByClass(ctx context.Context, classID uint) ([]model.GradeRecord, error) {
	var recs []model.GradeRecord
	err := r.DB.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.id = grade_records.enrollment_id").
		Where("enrollments.class_id = ?", classID).
		Find(&recs).Error
	return recs, err
}

// UpdateComputed only touches the derived columns.
func (r *GradeRepository) UpdateComputed(ctx context.Context, id uint, average *float64, status string) error {
	return r.DB.WithContext(ctx).Model(&model.GradeRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"average": average, "status": status}).Error
}
