package model

import (
	"time"
)

type UserRole string

const (
	Teacher   UserRole = "teacher"
	Secretary UserRole = "secretary"
	Admin     UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('teacher','secretary','admin');default:'teacher'" json:"role"`
	SchoolID  *uint     `gorm:"index" json:"schoolId,omitempty"` // nil for network-wide admins
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
