package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName        string         `gorm:"type:varchar(255);not null;index"`
	Email           string         `gorm:"type:varchar(255);uniqueIndex"`
	Location        string         `gorm:"type:varchar(255)"`
	CurrentPosition string         `gorm:"type:varchar(255)"`
	Department      string         `gorm:"type:varchar(128);index"`
	YearsExperience int            `gorm:"default:0"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
