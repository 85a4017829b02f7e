package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Assessment struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	AssessmentType string         `gorm:"type:varchar(16);not null;index"`
	TakenAt        *time.Time     `gorm:"type:timestamptz"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Assessment) TableName() string {
	return "employee_assessments"
}
