package service

import (
	"context"
	"time"

	"knowthee-be/internal/dto"
	"knowthee-be/internal/pkg/logger"
	"knowthee-be/internal/repository/specification"
	"knowthee-be/internal/repository/unitofwork"
	"knowthee-be/pkg/events"
	"knowthee-be/pkg/resolver"
)

type IEmployeeService interface {
	GetAll(ctx context.Context) (*dto.GetAllEmployeesResponse, error)
	SearchByName(ctx context.Context, fragment string, limit int) (*dto.SearchEmployeesResponse, error)
	// RefreshRoster reloads the resolver's name cache from the database.
	RefreshRoster(ctx context.Context) (int, error)
}

type employeeService struct {
	uowFactory unitofwork.RepositoryFactory
	resolver   *resolver.Resolver
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewEmployeeService(
	uowFactory unitofwork.RepositoryFactory,
	res *resolver.Resolver,
	publisher IPublisherService,
	log logger.ILogger,
) IEmployeeService {
	return &employeeService{
		uowFactory: uowFactory,
		resolver:   res,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *employeeService) GetAll(ctx context.Context) (*dto.GetAllEmployeesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.EmployeeRepository()

	employees, err := repo.FindAll(ctx, specification.OrderBy{Field: "full_name"})
	if err != nil {
		return nil, err
	}

	res := &dto.GetAllEmployeesResponse{
		Employees: make([]dto.EmployeeResponse, 0, len(employees)),
		Total:     int64(len(employees)),
	}
	for _, emp := range employees {
		res.Employees = append(res.Employees, dto.EmployeeResponse{
			Id:              emp.Id,
			FullName:        emp.FullName,
			Email:           emp.Email,
			Location:        emp.Location,
			CurrentPosition: emp.CurrentPosition,
			Department:      emp.Department,
			YearsExperience: emp.YearsExperience,
		})
	}
	return res, nil
}

func (s *employeeService) SearchByName(ctx context.Context, fragment string, limit int) (*dto.SearchEmployeesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	employees, err := uow.EmployeeRepository().SearchByName(ctx, fragment, limit)
	if err != nil {
		return nil, err
	}

	res := &dto.SearchEmployeesResponse{
		Employees: make([]dto.EmployeeResponse, 0, len(employees)),
	}
	for _, emp := range employees {
		res.Employees = append(res.Employees, dto.EmployeeResponse{
			Id:              emp.Id,
			FullName:        emp.FullName,
			Email:           emp.Email,
			Location:        emp.Location,
			CurrentPosition: emp.CurrentPosition,
			Department:      emp.Department,
			YearsExperience: emp.YearsExperience,
		})
	}
	return res, nil
}

func (s *employeeService) RefreshRoster(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	employees, err := uow.EmployeeRepository().FindAll(ctx, specification.OrderBy{Field: "full_name"})
	if err != nil {
		return 0, err
	}

	s.resolver.SetRoster(employees)
	s.logger.Info("employee", "roster refreshed", map[string]interface{}{
		"count": len(employees),
	})

	if s.publisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeRosterRefreshed,
			Data: map[string]interface{}{
				"count": len(employees),
			},
			OccurredAt: time.Now(),
		}
		// Auxiliary; a failed event never fails the refresh.
		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("employee", "failed to publish roster event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return len(employees), nil
}
