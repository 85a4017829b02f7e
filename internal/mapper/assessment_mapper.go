package mapper

import (
	"time"

	"knowthee-be/internal/entity"
	"knowthee-be/internal/model"

	"gorm.io/gorm"
)

type AssessmentMapper struct{}

func NewAssessmentMapper() *AssessmentMapper {
	return &AssessmentMapper{}
}

func (m *AssessmentMapper) ToEntity(a *model.Assessment) *entity.Assessment {
	if a == nil {
		return nil
	}

	var deletedAt *time.Time
	if a.DeletedAt.Valid {
		t := a.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.Assessment{
		Id:             a.Id,
		EmployeeId:     a.EmployeeId,
		AssessmentType: a.AssessmentType,
		TakenAt:        a.TakenAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      a.DeletedAt.Valid,
	}
}

func (m *AssessmentMapper) ToModel(a *entity.Assessment) *model.Assessment {
	if a == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if a.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *a.DeletedAt, Valid: true}
	} else if a.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	return &model.Assessment{
		Id:             a.Id,
		EmployeeId:     a.EmployeeId,
		AssessmentType: a.AssessmentType,
		TakenAt:        a.TakenAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *AssessmentMapper) ToEntities(assessments []*model.Assessment) []*entity.Assessment {
	entities := make([]*entity.Assessment, len(assessments))
	for i, a := range assessments {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

func (m *AssessmentMapper) HoganToEntity(s *model.HoganScore) *entity.HoganScore {
	if s == nil {
		return nil
	}
	return &entity.HoganScore{
		Id:           s.Id,
		AssessmentId: s.AssessmentId,
		Trait:        s.Trait,
		Score:        s.Score,
	}
}

func (m *AssessmentMapper) HoganToEntities(scores []*model.HoganScore) []*entity.HoganScore {
	entities := make([]*entity.HoganScore, len(scores))
	for i, s := range scores {
		entities[i] = m.HoganToEntity(s)
	}
	return entities
}

func (m *AssessmentMapper) IDIToEntity(s *model.IDIScore) *entity.IDIScore {
	if s == nil {
		return nil
	}
	return &entity.IDIScore{
		Id:           s.Id,
		AssessmentId: s.AssessmentId,
		Category:     s.Category,
		Dimension:    s.Dimension,
		Score:        s.Score,
	}
}

func (m *AssessmentMapper) IDIToEntities(scores []*model.IDIScore) []*entity.IDIScore {
	entities := make([]*entity.IDIScore, len(scores))
	for i, s := range scores {
		entities[i] = m.IDIToEntity(s)
	}
	return entities
}
