package grading

import (
	"fmt"
	"strings"
)

// ComponentGrade is one curriculum component of a student as read from storage.
type ComponentGrade struct {
	Name       string   `json:"name"`
	Optional   bool     `json:"optional"`
	Conceptual bool     `json:"conceptual"` // early-childhood, graded by concept
	Quarters   Quarters `json:"quarters"`
	Recovery   Recovery `json:"recovery"`
}

func (c ComponentGrade) hasAnyMark() bool {
	return c.Quarters.Any() || c.Recovery.Any()
}

type EnrollmentStatus string

const (
	EnrollmentActive      EnrollmentStatus = "cursando"
	EnrollmentTransferred EnrollmentStatus = "transferido"
	EnrollmentDropped     EnrollmentStatus = "abandono"
	EnrollmentRelocated   EnrollmentStatus = "remanejado"
	EnrollmentDeceased    EnrollmentStatus = "falecido"
)

func (s EnrollmentStatus) Active() bool {
	return s == EnrollmentActive || s == ""
}

// StudentContext carries what the engine needs to know about the enrollment.
type StudentContext struct {
	Attendance     float64          `json:"attendance"`
	Enrollment     EnrollmentStatus `json:"enrollmentStatus"`
	Level          EducationLevel   `json:"educationLevel"`
	GradeLabel     string           `json:"gradeLabel"`
	EarlyChildhood bool             `json:"earlyChildhood"`
}

type ComponentResult struct {
	Name    string          `json:"name"`
	Average Mark            `json:"average"`
	Status  ComponentStatus `json:"status"`
	Failed  bool            `json:"failed"`
}

type FinalResult struct {
	Verdict    Verdict           `json:"verdict"`
	Failed     []string          `json:"failed"`
	Rationale  string            `json:"rationale"`
	Components []ComponentResult `json:"components"`
}

// Engine aggregates all components of a student into a FinalResult.
// The zero value is usable and applies the default policy provider without
// attendance enforcement.
type Engine struct {
	Policies   *PolicyProvider
	Attendance AttendanceRule
}

func NewEngine(policies *PolicyProvider, attendance AttendanceRule) *Engine {
	return &Engine{Policies: policies, Attendance: attendance}
}

func (e *Engine) policies() *PolicyProvider {
	if e == nil || e.Policies == nil {
		return NewPolicyProvider(DefaultProviderConfig())
	}
	return e.Policies
}

func (e *Engine) attendance() AttendanceRule {
	if e == nil || e.Attendance == nil {
		return AttendanceNotEnforced{}
	}
	return e.Attendance
}

// Evaluate computes the final result of one student.
func (e *Engine) Evaluate(components []ComponentGrade, sc StudentContext, rules ApprovalRules) FinalResult {
	results := make([]ComponentResult, 0, len(components))
	recorded := false
	failed := []string{}
	passing := rules.passing()

	for _, c := range components {
		if c.hasAnyMark() {
			recorded = true
		}
		conceptual := c.Conceptual || sc.EarlyChildhood
		eval := EvaluateComponent(c.Quarters, c.Recovery, conceptual, passing)

		res := ComponentResult{Name: c.Name, Average: eval.Average, Status: eval.Status}
		if !conceptual {
			res.Failed = componentFailed(eval.Average, c.Optional, passing)
		}
		if res.Failed {
			failed = append(failed, c.Name)
		}
		results = append(results, res)
	}

	if !recorded {
		return FinalResult{
			Verdict:    VerdictInProgress,
			Failed:     []string{},
			Rationale:  "nenhuma nota lançada",
			Components: results,
		}
	}

	if len(failed) == 0 {
		verdict, rationale := VerdictApproved, "aprovado em todos os componentes curriculares"
		if !sc.EarlyChildhood {
			verdict, rationale = e.attendance().Apply(verdict, rationale, sc.Attendance, rules)
		}
		return FinalResult{
			Verdict:    verdict,
			Failed:     failed,
			Rationale:  rationale,
			Components: results,
		}
	}

	policy := e.policies().PolicyFor(sc.Level, sc.GradeLabel)
	verdict, reason := policy.Resolve(len(failed), sc.Attendance, rules)
	return FinalResult{
		Verdict:    verdict,
		Failed:     failed,
		Rationale:  fmt.Sprintf("%s (%s)", reason, strings.Join(failed, ", ")),
		Components: results,
	}
}

// componentFailed: a missing average fails a mandatory component and is
// ignored for an optional one; an explicit value counts the same for both.
func componentFailed(avg Mark, optional bool, passing float64) bool {
	v, ok := avg.Float()
	if !ok {
		return !optional
	}
	return v < passing
}
