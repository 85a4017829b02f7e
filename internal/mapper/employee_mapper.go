package mapper

import (
	"time"

	"knowthee-be/internal/entity"
	"knowthee-be/internal/model"

	"gorm.io/gorm"
)

type EmployeeMapper struct{}

func NewEmployeeMapper() *EmployeeMapper {
	return &EmployeeMapper{}
}

func (m *EmployeeMapper) ToEntity(e *model.Employee) *entity.Employee {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Employee{
		Id:              e.Id,
		FullName:        e.FullName,
		Email:           e.Email,
		Location:        e.Location,
		CurrentPosition: e.CurrentPosition,
		Department:      e.Department,
		YearsExperience: e.YearsExperience,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       e.DeletedAt.Valid,
	}
}

func (m *EmployeeMapper) ToModel(e *entity.Employee) *model.Employee {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Employee{
		Id:              e.Id,
		FullName:        e.FullName,
		Email:           e.Email,
		Location:        e.Location,
		CurrentPosition: e.CurrentPosition,
		Department:      e.Department,
		YearsExperience: e.YearsExperience,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *EmployeeMapper) ToEntities(employees []*model.Employee) []*entity.Employee {
	entities := make([]*entity.Employee, len(employees))
	for i, e := range employees {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *EmployeeMapper) ToModels(employees []*entity.Employee) []*model.Employee {
	models := make([]*model.Employee, len(employees))
	for i, e := range employees {
		models[i] = m.ToModel(e)
	}
	return models
}
