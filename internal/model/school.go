package model

import "school_records_backend/internal/grading"

// swagger:model School
type School struct {
	BaseModel
	Name     string `gorm:"size:255;not null" json:"name"`
	INEPCode string `gorm:"size:8;uniqueIndex" json:"inepCode"`
}

func (School) TableName() string {
	return "schools"
}

// Class is a turma: one grade/stage of one education level in one academic year.
//
// swagger:model Class
type Class struct {
	BaseModel
	SchoolID       uint                   `gorm:"index;not null" json:"schoolId"`
	AcademicYear   int                    `gorm:"index;not null" json:"academicYear"`
	EducationLevel grading.EducationLevel `gorm:"size:32;not null" json:"educationLevel"`
	GradeLabel     string                 `gorm:"size:50;not null" json:"gradeLabel"` // e.g. "5º Ano", "4ª Etapa"
	Name           string                 `gorm:"size:100;not null" json:"name"`
	Shift          string                 `gorm:"size:20" json:"shift"`
}

func (Class) TableName() string {
	return "classes"
}

func (c Class) EarlyChildhood() bool {
	return c.EducationLevel == grading.LevelEarlyChildhood
}

// swagger:model Student
type Student struct {
	BaseModel
	Name         string `gorm:"size:255;not null" json:"name"`
	Registration string `gorm:"size:30;uniqueIndex" json:"registration"`
}

func (Student) TableName() string {
	return "students"
}

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	StudentID  uint                     `gorm:"index;not null" json:"studentId"`
	ClassID    uint                     `gorm:"index;not null" json:"classId"`
	Status     grading.EnrollmentStatus `gorm:"size:20;default:'cursando'" json:"status"`
	Attendance float64                  `gorm:"default:100" json:"attendance"` // percentage, maintained by the calendar service
	Student    Student                  `gorm:"foreignKey:StudentID" json:"student"`
	Class      Class                    `gorm:"foreignKey:ClassID" json:"-"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// CurriculumComponent is a componente curricular offered to a class.
//
// swagger:model CurriculumComponent
type CurriculumComponent struct {
	BaseModel
	ClassID    uint   `gorm:"index;not null" json:"classId"`
	Name       string `gorm:"size:100;not null" json:"name"`
	Optional   bool   `gorm:"default:false" json:"optional"`
	Conceptual bool   `gorm:"default:false" json:"conceptual"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (CurriculumComponent) TableName() string {
	return "curriculum_components"
}
