package service

import (
	"context"

	"school_records_backend/internal/grading"
	"school_records_backend/internal/model"
)

// The repository package satisfies these; services only depend on what they call.

type ClassStore interface {
	FindClassByID(ctx context.Context, id uint) (*model.Class, error)
	FindEnrollmentByID(ctx context.Context, id uint) (*model.Enrollment, error)
	ListEnrollments(ctx context.Context, classID uint) ([]model.Enrollment, error)
	ListComponents(ctx context.Context, classID uint) ([]model.CurriculumComponent, error)
	FindComponentByID(ctx context.Context, id uint) (*model.CurriculumComponent, error)
}

type GradeStore interface {
	Upsert(ctx context.Context, rec *model.GradeRecord) error
	FindByEnrollmentAndComponent(ctx context.Context, enrollmentID, componentID uint) (*model.GradeRecord, error)
	ListByEnrollment(ctx context.Context, enrollmentID uint) ([]model.GradeRecord, error)
	ListByClass(ctx context.Context, classID uint) ([]model.GradeRecord, error)
}

type RuleStore interface {
	Find(ctx context.Context, schoolID uint, level grading.EducationLevel) (*model.ApprovalRuleSet, error)
	Save(ctx context.Context, rs *model.ApprovalRuleSet) error
}
