package contract

import (
	"context"

	"knowthee-be/internal/entity"
	"knowthee-be/internal/repository/specification"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	Update(ctx context.Context, employee *entity.Employee) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Employee, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Employee, error)
	// SearchByName matches full names containing the fragment, ordered by
	// name so results are stable across calls.
	SearchByName(ctx context.Context, fragment string, limit int) ([]*entity.Employee, error)
}
