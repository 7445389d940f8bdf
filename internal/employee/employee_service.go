package employee

import (
	"context"
	"errors"

	"go-erp/internal/shared/apperror"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	e, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, apperror.ErrNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                     e.ID.String(),
		CompanyID:              e.CompanyID.String(),
		FileNumber:             e.FileNumber,
		FirstName:              e.FirstName,
		LastName:               e.LastName,
		Status:                 e.Status,
		BasicSalary:            e.BasicSalary.StringFixed(2),
		ContractDaysPerMonth:   e.ContractDaysPerMonth,
		ContractHoursPerDay:    e.ContractHoursPerDay,
		OvertimeRateMultiplier: e.OvertimeRateMultiplier.StringFixed(2),
		OvertimeFixedRate:      e.OvertimeFixedRate.StringFixed(2),
		FoodAllowance:          e.FoodAllowance.StringFixed(2),
		HousingAllowance:       e.HousingAllowance.StringFixed(2),
		TransportAllowance:     e.TransportAllowance.StringFixed(2),
	}
}
