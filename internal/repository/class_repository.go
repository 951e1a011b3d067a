package repository

import (
	"context"

	"school_records_backend/internal/model"

	"gorm.io/gorm"
)

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

func (r *ClassRepository) FindClassByID(ctx context.Context, id uint) (*model.Class, error) {
	var c model.Class
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindEnrollmentByID loads the enrollment with its student and class.
func (r *ClassRepository) FindEnrollmentByID(ctx context.Context, id uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.WithContext(ctx).
		Preload("Student").
		Preload("Class").
		First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ClassRepository) ListEnrollments(ctx context.Context, classID uint) ([]model.Enrollment, error) {
	var es []model.Enrollment
	err := r.DB.WithContext(ctx).
		Preload("Student").
		Preload("Class").
		Where("class_id = ?", classID).
		Joins("JOIN students ON students.id = enrollments.student_id").
		Order("students.name asc").
		Find(&es).Error
	return es, err
}

// ListComponents returns the curriculum of a class in display order.
func (r *ClassRepository) ListComponents(ctx context.Context, classID uint) ([]model.CurriculumComponent, error) {
	var cs []model.CurriculumComponent
	err := r.DB.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("`order` asc, id asc").
		Find(&cs).Error
	return cs, err
}

func (r *ClassRepository) FindComponentByID(ctx context.Context, id uint) (*model.CurriculumComponent, error) {
	var c model.CurriculumComponent
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClassRepository) ListAllClasses(ctx context.Context) ([]model.Class, error) {
	var cs []model.Class
	err := r.DB.WithContext(ctx).Order("id asc").Find(&cs).Error
	return cs, err
}
