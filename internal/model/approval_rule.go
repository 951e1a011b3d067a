package model

import "school_records_backend/internal/grading"

// ApprovalRuleSet overrides the configured approval rules for one school and
// education level.
//
// swagger:model ApprovalRuleSet
type ApprovalRuleSet struct {
	BaseModel
	SchoolID                uint                   `gorm:"uniqueIndex:idx_rule_school_level;not null" json:"schoolId"`
	EducationLevel          grading.EducationLevel `gorm:"uniqueIndex:idx_rule_school_level;size:32;not null" json:"educationLevel"`
	PassingGrade            float64                `gorm:"type:decimal(4,2);not null" json:"passingGrade"`
	MinAttendance           float64                `gorm:"type:decimal(5,2);not null" json:"minAttendance"`
	DependencyEnabled       bool                   `gorm:"default:false" json:"dependencyEnabled"`
	MaxDependencyComponents int                    `gorm:"default:0" json:"maxDependencyComponents"`
	OnlyDependency          bool                   `gorm:"default:false" json:"onlyDependency"`
}

func (ApprovalRuleSet) TableName() string {
	return "approval_rule_sets"
}

func (r ApprovalRuleSet) Rules() grading.ApprovalRules {
	return grading.ApprovalRules{
		PassingGrade:            r.PassingGrade,
		MinAttendance:           r.MinAttendance,
		DependencyEnabled:       r.DependencyEnabled,
		MaxDependencyComponents: r.MaxDependencyComponents,
		OnlyDependency:          r.OnlyDependency,
	}
}
