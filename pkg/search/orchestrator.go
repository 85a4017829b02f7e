package search

import (
	"context"

	"knowthee-be/internal/entity"
	"knowthee-be/internal/pkg/logger"
	"knowthee-be/internal/repository/contract"
	"knowthee-be/internal/repository/specification"
	"knowthee-be/internal/repository/unitofwork"
	"knowthee-be/pkg/embedding"
	"knowthee-be/pkg/resolver"

	"github.com/google/uuid"
)

const defaultSimilarityThreshold = 0.3

// Orchestrator runs the semantic leg of hybrid retrieval: embed the
// query, then cosine search the chunk store, optionally fenced to a set
// of employees produced by structured filters.
type Orchestrator struct {
	embedder   embedding.EmbeddingProvider
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	topK       int
	threshold  float64
}

func NewOrchestrator(
	embedder embedding.EmbeddingProvider,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
	topK int,
) *Orchestrator {
	if topK <= 0 {
		topK = 10
	}
	return &Orchestrator{
		embedder:   embedder,
		uowFactory: uowFactory,
		logger:     log,
		topK:       topK,
		threshold:  defaultSimilarityThreshold,
	}
}

// Search embeds the query text and returns the nearest chunks. When
// employeeIds is non-empty the search stays inside that set.
func (o *Orchestrator) Search(ctx context.Context, query string, employeeIds []uuid.UUID, limit int) ([]*contract.ScoredDocumentChunk, error) {
	if limit <= 0 {
		limit = o.topK
	}

	vector, err := o.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	uow := o.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.DocumentChunkRepository().SearchSimilarWithScore(ctx, vector, limit, employeeIds, o.threshold)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("search", "semantic search complete", map[string]interface{}{
		"candidates": len(scored),
		"limit":      limit,
		"fenced":     len(employeeIds) > 0,
	})

	return scored, nil
}

// FilterEmployees resolves structured query filters (department,
// experience bounds) to a concrete employee set. Returns nil when the
// filters are empty, meaning no fence applies.
func (o *Orchestrator) FilterEmployees(ctx context.Context, filters resolver.Filters) ([]*entity.Employee, error) {
	if filters.IsZero() {
		return nil, nil
	}

	specs := make([]specification.Specification, 0, 3)
	if filters.Department != "" {
		specs = append(specs, specification.ByDepartment{Department: filters.Department})
	}
	if filters.MinExperience > 0 {
		specs = append(specs, specification.MinYearsExperience{Years: filters.MinExperience})
	}
	if filters.MaxExperience > 0 {
		specs = append(specs, specification.MaxYearsExperience{Years: filters.MaxExperience})
	}
	specs = append(specs, specification.OrderBy{Field: "full_name"})

	uow := o.uowFactory.NewUnitOfWork(ctx)
	return uow.EmployeeRepository().FindAll(ctx, specs...)
}
