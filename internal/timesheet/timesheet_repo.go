package timesheet

import (
	"context"
	"time"

	"go-erp/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Timesheet, error)
	FindApprovedByEmployee(ctx context.Context, companyID, employeeID string) ([]Timesheet, error)
	UpsertBatch(ctx context.Context, rows []Timesheet) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("date >= ? AND date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindApprovedByEmployee(ctx context.Context, companyID, employeeID string) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", ApprovedStatuses).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpsertBatch(ctx context.Context, rows []Timesheet) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"},
				{Name: "employee_id"},
				{Name: "date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"hours_worked", "overtime_hours", "status", "updated_at"}),
		}).
		Create(&rows).Error
}
