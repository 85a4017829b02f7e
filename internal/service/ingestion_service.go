package service

import (
	"context"
	"fmt"
	"time"

	"knowthee-be/internal/dto"
	"knowthee-be/internal/entity"
	"knowthee-be/internal/pkg/logger"
	"knowthee-be/internal/repository/specification"
	"knowthee-be/internal/repository/unitofwork"
	"knowthee-be/pkg/embedding"
	"knowthee-be/pkg/events"

	"github.com/google/uuid"
)

type IIngestionService interface {
	// IngestEmployee upserts one employee by email and replaces all of
	// their assessment and chunk data in a single transaction.
	IngestEmployee(ctx context.Context, req *dto.IngestEmployeeRequest) (*dto.IngestEmployeeResponse, error)
}

type ingestionService struct {
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.EmbeddingProvider
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.EmbeddingProvider,
	publisher IPublisherService,
	log logger.ILogger,
) IIngestionService {
	return &ingestionService{
		uowFactory: uowFactory,
		embedder:   embedder,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *ingestionService) IngestEmployee(ctx context.Context, req *dto.IngestEmployeeRequest) (*dto.IngestEmployeeResponse, error) {
	for _, a := range req.Assessments {
		if a.AssessmentType == entity.AssessmentTypeIDI && len(a.HoganScores) > 0 {
			return nil, fmt.Errorf("IDI assessments carry idi_scores, not hogan_scores")
		}
		if a.AssessmentType != entity.AssessmentTypeIDI && len(a.IDIScores) > 0 {
			return nil, fmt.Errorf("%s assessments carry hogan_scores, not idi_scores", a.AssessmentType)
		}
	}

	// Embed outside the transaction so a slow provider never holds locks.
	vectors, err := s.embedDocuments(ctx, req.Documents)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	res, err := s.ingest(ctx, uow, req, vectors)
	if err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			s.logger.Error("ingestion", "rollback failed", map[string]interface{}{
				"error": rbErr.Error(),
			})
		}
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("ingestion", "employee ingested", map[string]interface{}{
		"employee_id": res.EmployeeId.String(),
		"created":     res.Created,
		"assessments": res.Assessments,
		"chunks":      res.Chunks,
	})

	if s.publisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeEmployeeIngested,
			Data: map[string]interface{}{
				"employee_id": res.EmployeeId.String(),
				"created":     res.Created,
				"assessments": res.Assessments,
				"chunks":      res.Chunks,
			},
			OccurredAt: time.Now(),
		}
		if pubErr := s.publisher.Publish(ctx, evt); pubErr != nil {
			s.logger.Warn("ingestion", "failed to publish ingest event", map[string]interface{}{
				"error": pubErr.Error(),
			})
		}
	}

	return res, nil
}

func (s *ingestionService) embedDocuments(ctx context.Context, docs []dto.IngestDocumentRequest) ([][]float32, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed documents: %w", err)
	}
	return vectors, nil
}

func (s *ingestionService) ingest(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.IngestEmployeeRequest, vectors [][]float32) (*dto.IngestEmployeeResponse, error) {
	empRepo := uow.EmployeeRepository()

	emp, err := empRepo.FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}

	created := emp == nil
	if created {
		emp = &entity.Employee{
			Id:              uuid.New(),
			FullName:        req.FullName,
			Email:           req.Email,
			Location:        req.Location,
			CurrentPosition: req.CurrentPosition,
			Department:      req.Department,
			YearsExperience: req.YearsExperience,
		}
		if err := empRepo.Create(ctx, emp); err != nil {
			return nil, err
		}
	} else {
		emp.FullName = req.FullName
		emp.Location = req.Location
		emp.CurrentPosition = req.CurrentPosition
		emp.Department = req.Department
		emp.YearsExperience = req.YearsExperience
		if err := empRepo.Update(ctx, emp); err != nil {
			return nil, err
		}
	}

	assessRepo := uow.AssessmentRepository()
	chunkRepo := uow.DocumentChunkRepository()

	prior, err := assessRepo.FindAll(ctx, specification.ByEmployeeID{EmployeeID: emp.Id})
	if err != nil {
		return nil, err
	}
	replacedChunks, err := chunkRepo.Count(ctx, specification.ByEmployeeID{EmployeeID: emp.Id})
	if err != nil {
		return nil, err
	}

	if err := assessRepo.DeleteByEmployeeId(ctx, emp.Id); err != nil {
		return nil, err
	}
	if err := chunkRepo.DeleteByEmployeeId(ctx, emp.Id); err != nil {
		return nil, err
	}

	for _, in := range req.Assessments {
		assessment := &entity.Assessment{
			Id:             uuid.New(),
			EmployeeId:     emp.Id,
			AssessmentType: in.AssessmentType,
			TakenAt:        in.TakenAt,
		}
		if err := assessRepo.Create(ctx, assessment); err != nil {
			return nil, err
		}

		if in.AssessmentType == entity.AssessmentTypeIDI {
			scores := make([]*entity.IDIScore, len(in.IDIScores))
			for i, sc := range in.IDIScores {
				scores[i] = &entity.IDIScore{
					Id:           uuid.New(),
					AssessmentId: assessment.Id,
					Category:     sc.Category,
					Dimension:    sc.Dimension,
					Score:        sc.Score,
				}
			}
			if err := assessRepo.CreateIDIScores(ctx, scores); err != nil {
				return nil, err
			}
		} else {
			scores := make([]*entity.HoganScore, len(in.HoganScores))
			for i, sc := range in.HoganScores {
				scores[i] = &entity.HoganScore{
					Id:           uuid.New(),
					AssessmentId: assessment.Id,
					Trait:        sc.Trait,
					Score:        sc.Score,
				}
			}
			if err := assessRepo.CreateHoganScores(ctx, scores); err != nil {
				return nil, err
			}
		}
	}

	chunks := make([]*entity.DocumentChunk, len(req.Documents))
	for i, doc := range req.Documents {
		chunks[i] = &entity.DocumentChunk{
			Id:             uuid.New(),
			EmployeeId:     emp.Id,
			Document:       doc.Text,
			EmbeddingValue: vectors[i],
			ChunkIndex:     i,
			SourceType:     doc.SourceType,
			Metadata:       doc.Metadata,
		}
	}
	if err := chunkRepo.CreateBulk(ctx, chunks); err != nil {
		return nil, err
	}

	return &dto.IngestEmployeeResponse{
		EmployeeId:          emp.Id,
		Created:             created,
		Assessments:         len(req.Assessments),
		Chunks:              len(chunks),
		ReplacedAssessments: len(prior),
		ReplacedChunks:      replacedChunks,
	}, nil
}
