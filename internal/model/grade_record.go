package model

import "school_records_backend/internal/grading"

// GradeRecord stores the marks of one enrollment in one component.
// NULL columns are marks that were never entered; 0 is a real zero.
//
// swagger:model GradeRecord
type GradeRecord struct {
	BaseModel
	EnrollmentID uint     `gorm:"uniqueIndex:idx_grade_enrollment_component;not null" json:"enrollmentId"`
	ComponentID  uint     `gorm:"uniqueIndex:idx_grade_enrollment_component;not null" json:"componentId"`
	B1           *float64 `gorm:"type:decimal(4,2)" json:"b1"`
	B2           *float64 `gorm:"type:decimal(4,2)" json:"b2"`
	B3           *float64 `gorm:"type:decimal(4,2)" json:"b3"`
	B4           *float64 `gorm:"type:decimal(4,2)" json:"b4"`
	RecS1        *float64 `gorm:"column:rec_s1;type:decimal(4,2)" json:"recS1"`
	RecS2        *float64 `gorm:"column:rec_s2;type:decimal(4,2)" json:"recS2"`
	Recovery     *float64 `gorm:"type:decimal(4,2)" json:"recovery"`
	Average      *float64 `gorm:"type:decimal(5,3)" json:"average"`
	Status       string   `gorm:"size:20;default:'cursando'" json:"status"`
	UpdatedBy    uint     `json:"updatedBy"`
}

func (GradeRecord) TableName() string {
	return "grade_records"
}

func (g GradeRecord) Quarters() grading.Quarters {
	return grading.Quarters{
		grading.MarkFromPtr(g.B1),
		grading.MarkFromPtr(g.B2),
		grading.MarkFromPtr(g.B3),
		grading.MarkFromPtr(g.B4),
	}
}

func (g GradeRecord) Recoveries() grading.Recovery {
	return grading.Recovery{
		Semester1: grading.MarkFromPtr(g.RecS1),
		Semester2: grading.MarkFromPtr(g.RecS2),
		Final:     grading.MarkFromPtr(g.Recovery),
	}
}

// ComponentGrade converts the record for the approval engine.
func (g GradeRecord) ComponentGrade(c CurriculumComponent) grading.ComponentGrade {
	return grading.ComponentGrade{
		Name:       c.Name,
		Optional:   c.Optional,
		Conceptual: c.Conceptual,
		Quarters:   g.Quarters(),
		Recovery:   g.Recoveries(),
	}
}
