package service

import (
	"context"
	"errors"
	"fmt"

	"school_records_backend/internal/grading"
	"school_records_backend/internal/model"
	"school_records_backend/internal/util"
	"school_records_backend/pkg/logger"
	"school_records_backend/pkg/monitoring"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GradeService struct {
	Classes ClassStore
	Grades  GradeStore
	Rules   *RulesService
	Cache   ResultCache
}

func NewGradeService(classes ClassStore, grades GradeStore, rules *RulesService, cache ResultCache) *GradeService {
	if cache == nil {
		cache = NoopResultCache{}
	}
	return &GradeService{Classes: classes, Grades: grades, Rules: rules, Cache: cache}
}

var entryValidator = validator.New()

// GradeEntryRequest carries every mark of a component. A null field clears
// the mark; 0 is stored as a real zero.
type GradeEntryRequest struct {
	B1       *float64 `json:"b1" validate:"omitempty,gte=0,lte=10"`
	B2       *float64 `json:"b2" validate:"omitempty,gte=0,lte=10"`
	B3       *float64 `json:"b3" validate:"omitempty,gte=0,lte=10"`
	B4       *float64 `json:"b4" validate:"omitempty,gte=0,lte=10"`
	RecS1    *float64 `json:"recS1" validate:"omitempty,gte=0,lte=10"`
	RecS2    *float64 `json:"recS2" validate:"omitempty,gte=0,lte=10"`
	Recovery *float64 `json:"recovery" validate:"omitempty,gte=0,lte=10"`
	// Concepts replaces B1..B4 for conceptual components ("OD", "DP", "ND",
	// "NT" or numeric text; "" leaves the bimester empty).
	Concepts []string `json:"concepts" validate:"omitempty,max=4"`
}

func (r GradeEntryRequest) quarters(conceptual bool) (grading.Quarters, error) {
	if conceptual && len(r.Concepts) > 0 {
		var q grading.Quarters
		for i, raw := range r.Concepts {
			m, err := grading.ParseConcept(raw)
			if err != nil {
				return q, fmt.Errorf("%w: bimester %d: %v", util.ErrInvalidMark, i+1, err)
			}
			q[i] = m
		}
		return q, nil
	}
	return grading.Quarters{
		grading.MarkFromPtr(r.B1),
		grading.MarkFromPtr(r.B2),
		grading.MarkFromPtr(r.B3),
		grading.MarkFromPtr(r.B4),
	}, nil
}

func (r GradeEntryRequest) recovery() grading.Recovery {
	return grading.Recovery{
		Semester1: grading.MarkFromPtr(r.RecS1),
		Semester2: grading.MarkFromPtr(r.RecS2),
		Final:     grading.MarkFromPtr(r.Recovery),
	}
}

func validateEntry(req GradeEntryRequest) error {
	if err := entryValidator.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", util.ErrInvalidMark, err)
	}
	return nil
}

// EvaluateRecord recomputes the derived columns of a stored record.
func EvaluateRecord(rec model.GradeRecord, component model.CurriculumComponent, passing float64) grading.ComponentEvaluation {
	return grading.EvaluateComponent(rec.Quarters(), rec.Recoveries(), component.Conceptual, passing)
}

type GradeEntryView struct {
	Record     *model.GradeRecord  `json:"record"`
	Evaluation grading.ComponentEvaluation `json:"evaluation"`
	Display    string              `json:"display"`
}

// SaveGrade stores the marks of one component of one enrollment together
// with the computed average and status.
func (s *GradeService) SaveGrade(ctx context.Context, enrollmentID, componentID uint, req GradeEntryRequest, userID uint) (*GradeEntryView, error) {
	if err := validateEntry(req); err != nil {
		return nil, err
	}

	enrollment, err := s.Classes.FindEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}
	if !enrollment.Status.Active() {
		return nil, util.ErrEnrollmentInactive
	}

	component, err := s.Classes.FindComponentByID(ctx, componentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrComponentNotFound
		}
		return nil, err
	}
	if component.ClassID != enrollment.ClassID {
		return nil, util.ErrComponentNotInClass
	}

	conceptual := component.Conceptual || enrollment.Class.EarlyChildhood()
	quarters, err := req.quarters(conceptual)
	if err != nil {
		return nil, err
	}
	recovery := req.recovery()
	if conceptual {
		recovery = grading.Recovery{}
	}

	rules, err := s.Rules.Resolve(ctx, enrollment.Class.SchoolID, enrollment.Class.EducationLevel)
	if err != nil {
		return nil, err
	}
	eval := grading.EvaluateComponent(quarters, recovery, conceptual, rules.PassingGrade)

	rec := &model.GradeRecord{
		EnrollmentID: enrollmentID,
		ComponentID:  componentID,
		B1:           quarters[0].Ptr(),
		B2:           quarters[1].Ptr(),
		B3:           quarters[2].Ptr(),
		B4:           quarters[3].Ptr(),
		RecS1:        recovery.Semester1.Ptr(),
		RecS2:        recovery.Semester2.Ptr(),
		Recovery:     recovery.Final.Ptr(),
		Average:      eval.Average.Ptr(),
		Status:       string(eval.Status),
		UpdatedBy:    userID,
	}
	if err := s.Grades.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, enrollmentID)
	monitoring.GradeEntryCounter.WithLabelValues(string(eval.Status)).Inc()
	logger.Log.Info("Grade saved",
		zap.Uint("enrollment_id", enrollmentID),
		zap.Uint("component_id", componentID),
		zap.Uint("user_id", userID),
		zap.String("status", string(eval.Status)),
	)

	return &GradeEntryView{Record: rec, Evaluation: eval, Display: displayAverage(eval.Average, conceptual)}, nil
}

type PreviewRequest struct {
	GradeEntryRequest
	Conceptual   bool    `json:"conceptual"`
	PassingGrade float64 `json:"passingGrade" validate:"omitempty,gt=0,lte=10"`
}

// PreviewAverage is the live on-screen average of the grade-entry form. It
// runs the same calculation as SaveGrade without touching storage.
func (s *GradeService) PreviewAverage(req PreviewRequest) (*GradeEntryView, error) {
	if err := validateEntry(req.GradeEntryRequest); err != nil {
		return nil, err
	}
	if err := entryValidator.Var(req.PassingGrade, "omitempty,gt=0,lte=10"); err != nil {
		return nil, fmt.Errorf("%w: passing grade: %v", util.ErrInvalidMark, err)
	}
	quarters, err := req.quarters(req.Conceptual)
	if err != nil {
		return nil, err
	}

	passing := req.PassingGrade
	if passing == 0 && s.Rules != nil {
		passing = s.Rules.Defaults().PassingGrade
	}
	eval := grading.EvaluateComponent(quarters, req.recovery(), req.Conceptual, passing)
	return &GradeEntryView{Evaluation: eval, Display: displayAverage(eval.Average, req.Conceptual)}, nil
}

type GradeLine struct {
	ComponentID uint                    `json:"componentId"`
	Component   string                  `json:"component"`
	Optional    bool                    `json:"optional"`
	Conceptual  bool                    `json:"conceptual"`
	Bimesters   [4]string               `json:"bimesters"`
	RecS1       string                  `json:"recS1"`
	RecS2       string                  `json:"recS2"`
	Recovery    string                  `json:"recovery"`
	Average     string                  `json:"average"`
	Status      grading.ComponentStatus `json:"status"`
}

// ListEnrollmentGrades returns the report-card lines of an enrollment with
// display strings, one line per curriculum component.
func (s *GradeService) ListEnrollmentGrades(ctx context.Context, enrollmentID uint) ([]GradeLine, error) {
	enrollment, err := s.Classes.FindEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}
	components, err := s.Classes.ListComponents(ctx, enrollment.ClassID)
	if err != nil {
		return nil, err
	}
	records, err := s.Grades.ListByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	rules, err := s.Rules.Resolve(ctx, enrollment.Class.SchoolID, enrollment.Class.EducationLevel)
	if err != nil {
		return nil, err
	}

	byComponent := make(map[uint]model.GradeRecord, len(records))
	for _, r := range records {
		byComponent[r.ComponentID] = r
	}

	lines := make([]GradeLine, 0, len(components))
	for _, c := range components {
		rec := byComponent[c.ID]
		conceptual := c.Conceptual || enrollment.Class.EarlyChildhood()
		c.Conceptual = conceptual
		eval := EvaluateRecord(rec, c, rules.PassingGrade)

		q := rec.Quarters()
		r := rec.Recoveries()
		line := GradeLine{
			ComponentID: c.ID,
			Component:   c.Name,
			Optional:    c.Optional,
			Conceptual:  conceptual,
			RecS1:       grading.FormatMark(r.Semester1),
			RecS2:       grading.FormatMark(r.Semester2),
			Recovery:    grading.FormatMark(r.Final),
			Average:     displayAverage(eval.Average, conceptual),
			Status:      eval.Status,
		}
		for i, m := range q {
			line.Bimesters[i] = displayAverage(m, conceptual)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func displayAverage(m grading.Mark, conceptual bool) string {
	if conceptual {
		return grading.FormatConcept(m)
	}
	return grading.FormatMark(m)
}
