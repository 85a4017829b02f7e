package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is one embedded slice of an employee's source material
// (assessment narratives, reviews, interview notes).
type DocumentChunk struct {
	Id             uuid.UUID
	EmployeeId     uuid.UUID
	Document       string
	EmbeddingValue []float32
	ChunkIndex     int
	SourceType     string
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
