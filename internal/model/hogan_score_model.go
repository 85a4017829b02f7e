package model

import (
	"github.com/google/uuid"
)

type HoganScore struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssessmentId uuid.UUID `gorm:"type:uuid;not null;index"`
	Trait        string    `gorm:"type:varchar(64);not null;index"`
	Score        float64   `gorm:"not null"`
}

func (HoganScore) TableName() string {
	return "hogan_scores"
}
