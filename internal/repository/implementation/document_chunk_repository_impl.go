package implementation

import (
	"context"

	"knowthee-be/internal/entity"
	"knowthee-be/internal/mapper"
	"knowthee-be/internal/model"
	"knowthee-be/internal/repository/contract"
	"knowthee-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentChunkRepositoryImpl) DeleteByEmployeeId(ctx context.Context, employeeId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("employee_id = ?", employeeId).Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocumentChunk{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns chunks with similarity scores, filtered by threshold.
// Cosine distance in pgvector is 1 - cosine_similarity, so similarity is
// computed as 1 - (embedding_value <=> query_vector).
func (r *DocumentChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, employeeIds []uuid.UUID, threshold float64) ([]*contract.ScoredDocumentChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.DocumentChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("document_chunks").
		Select("document_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("document_chunks.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold)
	if len(employeeIds) > 0 {
		query = query.Where("employee_id IN ?", employeeIds)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredDocumentChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredDocumentChunk{
			Chunk:      r.mapper.ToEntity(&res.DocumentChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *DocumentChunkRepositoryImpl) FindTopByEmployee(ctx context.Context, employeeIds []uuid.UUID, perEmployee int) (map[uuid.UUID][]*entity.DocumentChunk, error) {
	if perEmployee <= 0 {
		perEmployee = 3
	}
	if len(employeeIds) == 0 {
		return map[uuid.UUID][]*entity.DocumentChunk{}, nil
	}

	// One query per employee. Context queries cap the roster well below
	// anything where batching this would matter.
	out := make(map[uuid.UUID][]*entity.DocumentChunk, len(employeeIds))
	for _, id := range employeeIds {
		var models []*model.DocumentChunk
		err := r.db.WithContext(ctx).
			Where("employee_id = ?", id).
			Order("chunk_index ASC").
			Limit(perEmployee).
			Find(&models).Error
		if err != nil {
			return nil, err
		}
		out[id] = r.mapper.ToEntities(models)
	}
	return out, nil
}
