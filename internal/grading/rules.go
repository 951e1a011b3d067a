package grading

import (
	"github.com/go-playground/validator/v10"
)

// ApprovalRules is the school/level configuration the engine evaluates against.
// It is loaded and validated by the caller and passed in per evaluation.
type ApprovalRules struct {
	// PassingGrade is the minimum component average to pass (default 5.0).
	PassingGrade float64 `mapstructure:"passing_grade" json:"passingGrade" validate:"gt=0,lte=10"`
	// MinAttendance is a percentage in [0,100] (default 75).
	MinAttendance float64 `mapstructure:"min_attendance" json:"minAttendance" validate:"gte=0,lte=100"`
	// DependencyEnabled turns conditional promotion on.
	DependencyEnabled bool `mapstructure:"dependency_enabled" json:"dependencyEnabled"`
	// MaxDependencyComponents caps how many failed components still allow
	// conditional promotion.
	MaxDependencyComponents int `mapstructure:"max_dependency_components" json:"maxDependencyComponents" validate:"gte=0,lte=20"`
	// OnlyDependency means a student under conditional promotion only retakes
	// the failed components instead of moving on to the next grade.
	OnlyDependency bool `mapstructure:"only_dependency" json:"onlyDependency"`
}

const (
	DefaultMinAttendance           = 75.0
	DefaultMaxDependencyComponents = 2
)

func DefaultApprovalRules() ApprovalRules {
	return ApprovalRules{
		PassingGrade:            DefaultPassingGrade,
		MinAttendance:           DefaultMinAttendance,
		DependencyEnabled:       false,
		MaxDependencyComponents: DefaultMaxDependencyComponents,
	}
}

var validate = validator.New()

// Validate checks ranges. Callers run it once when the rules are loaded.
func (r ApprovalRules) Validate() error {
	return validate.Struct(r)
}

func (r ApprovalRules) passing() float64 {
	if r.PassingGrade <= 0 {
		return DefaultPassingGrade
	}
	return r.PassingGrade
}
