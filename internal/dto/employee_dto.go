package dto

import (
	"time"

	"github.com/google/uuid"
)

type EmployeeResponse struct {
	Id              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	Location        string    `json:"location"`
	CurrentPosition string    `json:"current_position"`
	Department      string    `json:"department"`
	YearsExperience int       `json:"years_experience"`
}

type GetAllEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int64              `json:"total"`
}

type TraitScoreResponse struct {
	EmployeeId   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Trait        string    `json:"trait"`
	Score        float64   `json:"score"`
}

type SearchEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

type IngestHoganScoreRequest struct {
	Trait string  `json:"trait" validate:"required"`
	Score float64 `json:"score" validate:"gte=0,lte=100"`
}

type IngestIDIScoreRequest struct {
	Category  string  `json:"category"`
	Dimension string  `json:"dimension" validate:"required"`
	Score     float64 `json:"score" validate:"gte=0,lte=100"`
}

type IngestAssessmentRequest struct {
	AssessmentType string                    `json:"assessment_type" validate:"required,oneof=HPI HDS MVPI IDI"`
	TakenAt        *time.Time                `json:"taken_at,omitempty"`
	HoganScores    []IngestHoganScoreRequest `json:"hogan_scores,omitempty" validate:"dive"`
	IDIScores      []IngestIDIScoreRequest   `json:"idi_scores,omitempty" validate:"dive"`
}

type IngestDocumentRequest struct {
	Text       string                 `json:"text" validate:"required"`
	SourceType string                 `json:"source_type" validate:"required"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// IngestEmployeeRequest carries one employee's profile, assessments and
// source documents. Re-ingesting the same email replaces all prior
// assessment and chunk data for that employee.
type IngestEmployeeRequest struct {
	FullName        string                    `json:"full_name" validate:"required"`
	Email           string                    `json:"email" validate:"required,email"`
	Location        string                    `json:"location"`
	CurrentPosition string                    `json:"current_position"`
	Department      string                    `json:"department"`
	YearsExperience int                       `json:"years_experience" validate:"gte=0"`
	Assessments     []IngestAssessmentRequest `json:"assessments,omitempty" validate:"dive"`
	Documents       []IngestDocumentRequest   `json:"documents,omitempty" validate:"dive"`
}

type IngestEmployeeResponse struct {
	EmployeeId          uuid.UUID `json:"employee_id"`
	Created             bool      `json:"created"`
	Assessments         int       `json:"assessments"`
	Chunks              int       `json:"chunks"`
	ReplacedAssessments int       `json:"replaced_assessments"`
	ReplacedChunks      int64     `json:"replaced_chunks"`
}
