package contract

import (
	"context"

	"knowthee-be/internal/entity"
	"knowthee-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentChunk wraps DocumentChunk with its similarity score
type ScoredDocumentChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByEmployeeId(ctx context.Context, employeeId uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore runs a cosine search over all chunks,
	// returning similarity scores and dropping rows below the threshold.
	// When employeeIds is non-empty the search stays inside that set.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, employeeIds []uuid.UUID, threshold float64) ([]*ScoredDocumentChunk, error)
	// FindTopByEmployee returns up to perEmployee chunks for each listed
	// employee, lowest chunk index first.
	FindTopByEmployee(ctx context.Context, employeeIds []uuid.UUID, perEmployee int) (map[uuid.UUID][]*entity.DocumentChunk, error)
}
