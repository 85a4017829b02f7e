package model

import (
	"github.com/google/uuid"
)

type IDIScore struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssessmentId uuid.UUID `gorm:"type:uuid;not null;index"`
	Category     string    `gorm:"type:varchar(64);not null"`
	Dimension    string    `gorm:"type:varchar(64);not null;index"`
	Score        float64   `gorm:"not null"`
}

func (IDIScore) TableName() string {
	return "idi_scores"
}
