package entity

import (
	"time"

	"github.com/google/uuid"
)

// Assessment types mirror the instruments stored per employee.
const (
	AssessmentTypeHPI  = "HPI"  // Hogan Personality Inventory
	AssessmentTypeHDS  = "HDS"  // Hogan Development Survey
	AssessmentTypeMVPI = "MVPI" // Motives, Values, Preferences Inventory
	AssessmentTypeIDI  = "IDI"  // Individual Directions Inventory
)

type Assessment struct {
	Id             uuid.UUID
	EmployeeId     uuid.UUID
	AssessmentType string
	TakenAt        *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// HoganScore is a single trait score from an HPI, HDS or MVPI assessment.
type HoganScore struct {
	Id           uuid.UUID
	AssessmentId uuid.UUID
	Trait        string
	Score        float64
}

// IDIScore is scored per category and dimension rather than per trait.
type IDIScore struct {
	Id           uuid.UUID
	AssessmentId uuid.UUID
	Category     string
	Dimension    string
	Score        float64
}

// EmployeeTraitScore is a hydrated score row joined back to its owner,
// used by ranking and comparison queries.
type EmployeeTraitScore struct {
	EmployeeId   uuid.UUID
	EmployeeName string
	Trait        string
	Score        float64
}
