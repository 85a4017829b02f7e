package entity

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	Id              uuid.UUID
	FullName        string
	Email           string
	Location        string
	CurrentPosition string
	Department      string
	YearsExperience int
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}

// FirstName returns the leading token of the full name, used for
// first-name lookups and ambiguity checks.
func (e *Employee) FirstName() string {
	for i := 0; i < len(e.FullName); i++ {
		if e.FullName[i] == ' ' {
			return e.FullName[:i]
		}
	}
	return e.FullName
}
