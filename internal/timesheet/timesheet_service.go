package timesheet

import (
	"context"

	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/period"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	BulkSubmit(ctx context.Context, companyID string, req BulkSubmitRequest) (BulkSubmitResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) BulkSubmit(ctx context.Context, companyID string, req BulkSubmitRequest) (BulkSubmitResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return BulkSubmitResponse{}, apperror.New(apperror.CodeInvalidInput, "invalid company id", 400)
	}

	rows := make([]Timesheet, 0, len(req.Entries))
	for _, entry := range req.Entries {
		employeeUUID, err := uuid.Parse(entry.EmployeeID)
		if err != nil {
			return BulkSubmitResponse{}, apperror.New(apperror.CodeInvalidInput, "invalid employee id", 400)
		}
		date, err := period.ParseDate(entry.Date)
		if err != nil {
			return BulkSubmitResponse{}, apperror.New(apperror.CodeInvalidInput, err.Error(), 400)
		}

		status := entry.Status
		if status == "" {
			status = StatusPending
		}

		rows = append(rows, Timesheet{
			ID:            uuid.New(),
			CompanyID:     companyUUID,
			EmployeeID:    employeeUUID,
			Date:          date,
			HoursWorked:   decimal.NewFromFloat(entry.HoursWorked),
			OvertimeHours: decimal.NewFromFloat(entry.OvertimeHours),
			Status:        status,
		})
	}

	if err := s.repo.UpsertBatch(ctx, rows); err != nil {
		s.logger.Error("bulk submit persist failed",
			zap.String("company_id", companyID),
			zap.Int("entries", len(rows)),
			zap.Error(err),
		)
		return BulkSubmitResponse{}, err
	}

	s.logger.Info("bulk submit success",
		zap.String("company_id", companyID),
		zap.Int("entries", len(rows)),
	)
	return BulkSubmitResponse{Submitted: len(rows)}, nil
}
