package unitofwork

import (
	"context"

	"knowthee-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	EmployeeRepository() contract.EmployeeRepository
	AssessmentRepository() contract.AssessmentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
}
