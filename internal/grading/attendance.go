package grading

import "fmt"

// AttendanceRule decides whether a student who passed every component is
// still held back by attendance.
type AttendanceRule interface {
	Apply(verdict Verdict, rationale string, attendance float64, rules ApprovalRules) (Verdict, string)
}

// AttendanceNotEnforced keeps the grade-based verdict.
type AttendanceNotEnforced struct{}

func (AttendanceNotEnforced) Apply(verdict Verdict, rationale string, _ float64, _ ApprovalRules) (Verdict, string) {
	return verdict, rationale
}

// MinimumAttendanceRule fails an approved student whose attendance is below
// ApprovalRules.MinAttendance.
type MinimumAttendanceRule struct{}

func (MinimumAttendanceRule) Apply(verdict Verdict, rationale string, attendance float64, rules ApprovalRules) (Verdict, string) {
	if verdict != VerdictApproved || attendance >= rules.MinAttendance {
		return verdict, rationale
	}
	return VerdictFailed, fmt.Sprintf("reprovado por frequência: %.1f%% abaixo do mínimo de %.1f%%", attendance, rules.MinAttendance)
}

const (
	AttendanceGateNone    = "none"
	AttendanceGateMinimum = "minimum"
)

// AttendanceRuleFor maps the configured gate name to a rule.
func AttendanceRuleFor(gate string) AttendanceRule {
	if gate == AttendanceGateMinimum {
		return MinimumAttendanceRule{}
	}
	return AttendanceNotEnforced{}
}
