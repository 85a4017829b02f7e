package contract

import (
	"context"

	"knowthee-be/internal/entity"
	"knowthee-be/internal/repository/specification"

	"github.com/google/uuid"
)

// CriteriaOp is a comparison operator for numerical score filters.
type CriteriaOp string

const (
	CriteriaGreaterThan CriteriaOp = ">"
	CriteriaLessThan    CriteriaOp = "<"
)

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *entity.Assessment) error
	CreateHoganScores(ctx context.Context, scores []*entity.HoganScore) error
	CreateIDIScores(ctx context.Context, scores []*entity.IDIScore) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Assessment, error)
	DeleteByEmployeeId(ctx context.Context, employeeId uuid.UUID) error

	// GetTraitScore returns one employee's score for a single Hogan trait
	// or IDI dimension. A non-empty assessmentType (HPI, HDS, MVPI, IDI)
	// narrows the lookup to that instrument; otherwise Hogan instruments
	// are tried first, then IDI. Returns nil when no such score exists.
	GetTraitScore(ctx context.Context, employeeId uuid.UUID, trait, assessmentType string) (*entity.EmployeeTraitScore, error)
	// GetAllScores returns every trait score an employee holds, Hogan
	// traits first then IDI dimensions, each ordered alphabetically.
	GetAllScores(ctx context.Context, employeeId uuid.UUID) ([]*entity.EmployeeTraitScore, error)
	// RankByTrait orders employees by their score on one trait, optionally
	// narrowed by assessmentType. Ties are broken by employee id ascending
	// so rankings are deterministic.
	RankByTrait(ctx context.Context, trait, assessmentType string, limit int, desc bool) ([]*entity.EmployeeTraitScore, error)
	// FindByCriteria returns employees whose trait score clears the
	// threshold, ordered by score descending then employee id.
	FindByCriteria(ctx context.Context, trait, assessmentType string, op CriteriaOp, value float64, limit int) ([]*entity.EmployeeTraitScore, error)
}
