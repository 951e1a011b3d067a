package service

import (
	"context"
	"errors"
	"strings"

	"school_records_backend/internal/grading"
	"school_records_backend/internal/model"
	"school_records_backend/internal/util"
	"school_records_backend/pkg/logger"
	"school_records_backend/pkg/monitoring"
	"school_records_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ApprovalService struct {
	Classes ClassStore
	Grades  GradeStore
	Rules   *RulesService
	Cache   ResultCache
}

func NewApprovalService(classes ClassStore, grades GradeStore, rules *RulesService, cache ResultCache) *ApprovalService {
	if cache == nil {
		cache = NoopResultCache{}
	}
	return &ApprovalService{Classes: classes, Grades: grades, Rules: rules, Cache: cache}
}

// StudentResultView is what the report card shows for one enrollment.
// Situation is the verdict for active enrollments and the upper-cased
// enrollment status otherwise, in which case Result is nil.
type StudentResultView struct {
	EnrollmentID uint                 `json:"enrollmentId"`
	StudentID    uint                 `json:"studentId"`
	StudentName  string               `json:"studentName"`
	Attendance   float64              `json:"attendance"`
	Situation    string               `json:"situation"`
	Result       *grading.FinalResult `json:"result,omitempty"`
}

func (s *ApprovalService) StudentResult(ctx context.Context, enrollmentID uint) (*StudentResultView, error) {
	enrollment, err := s.Classes.FindEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}
	if !enrollment.Status.Active() {
		return inactiveView(enrollment), nil
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

	return s.evaluate(ctx, enrollment, components, records, rules), nil
}

// ClassResults computes every enrollment of a class, bounded by the
// configured number of workers. Results keep the enrollment order.
func (s *ApprovalService) ClassResults(ctx context.Context, classID uint) ([]StudentResultView, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ApprovalService.ClassResults")
	defer span.End()
	span.SetAttributes(attribute.Int("class.id", int(classID)))

	class, err := s.Classes.FindClassByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}
	enrollments, err := s.Classes.ListEnrollments(ctx, classID)
	if err != nil {
		return nil, err
	}
	components, err := s.Classes.ListComponents(ctx, classID)
	if err != nil {
		return nil, err
	}
	records, err := s.Grades.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	rules, err := s.Rules.Resolve(ctx, class.SchoolID, class.EducationLevel)
	if err != nil {
		return nil, err
	}

	byEnrollment := make(map[uint][]model.GradeRecord, len(enrollments))
	for _, r := range records {
		byEnrollment[r.EnrollmentID] = append(byEnrollment[r.EnrollmentID], r)
	}

	results := make([]StudentResultView, len(enrollments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Rules.Workers())
	for i := range enrollments {
		i := i
		e := enrollments[i]
		e.Class = *class
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if !e.Status.Active() {
				results[i] = *inactiveView(&e)
				return nil
			}
			results[i] = *s.evaluate(gctx, &e, components, byEnrollment[e.ID], rules)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("class.enrollments", len(results)))
	logger.Log.Debug("Class results computed", zap.Uint("class_id", classID), zap.Int("enrollments", len(results)))
	return results, nil
}

func (s *ApprovalService) evaluate(ctx context.Context, e *model.Enrollment, components []model.CurriculumComponent, records []model.GradeRecord, rules grading.ApprovalRules) *StudentResultView {
	view := &StudentResultView{
		EnrollmentID: e.ID,
		StudentID:    e.StudentID,
		StudentName:  e.Student.Name,
		Attendance:   e.Attendance,
	}

	sc := grading.StudentContext{
		Attendance:     e.Attendance,
		Enrollment:     e.Status,
		Level:          e.Class.EducationLevel,
		GradeLabel:     e.Class.GradeLabel,
		EarlyChildhood: e.Class.EarlyChildhood(),
	}
	engine, fingerprint := s.Rules.Snapshot(rules, sc, components)
	if cached, ok := s.Cache.Get(ctx, e.ID, fingerprint); ok {
		view.Situation = string(cached.Verdict)
		view.Result = cached
		return view
	}

	byComponent := make(map[uint]model.GradeRecord, len(records))
	for _, r := range records {
		byComponent[r.ComponentID] = r
	}
	grades := make([]grading.ComponentGrade, 0, len(components))
	for _, c := range components {
		// a component without a record has every mark absent
		grades = append(grades, byComponent[c.ID].ComponentGrade(c))
	}

	res := engine.Evaluate(grades, sc, rules)

	s.Cache.Set(ctx, e.ID, fingerprint, &res)
	monitoring.VerdictCounter.WithLabelValues(string(res.Verdict)).Inc()

	view.Situation = string(res.Verdict)
	view.Result = &res
	return view
}

func inactiveView(e *model.Enrollment) *StudentResultView {
	return &StudentResultView{
		EnrollmentID: e.ID,
		StudentID:    e.StudentID,
		StudentName:  e.Student.Name,
		Attendance:   e.Attendance,
		Situation:    strings.ToUpper(string(e.Status)),
	}
}
