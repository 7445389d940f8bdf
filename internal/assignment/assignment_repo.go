package assignment

import (
	"context"
	"errors"
	"time"

	"go-erp/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateRentalHistory(ctx context.Context, row *RentalHistory) error
	CreateProjectEquipment(ctx context.Context, row *ProjectEquipment) error
	CreateEmployeeAssignment(ctx context.Context, row *EmployeeAssignment) error

	// Supersession: close every active record for the entity across all of
	// its representations. Returns the number of closed records.
	CompleteActiveByEquipment(ctx context.Context, companyID string, equipmentID uuid.UUID, endDate time.Time) (int64, error)
	CompleteActiveByEmployee(ctx context.Context, companyID string, employeeID uuid.UUID, endDate time.Time) (int64, error)

	// Point completion. The equipment variant tries all three equipment
	// tables because the id alone does not identify the table.
	CompleteEquipmentAssignmentByID(ctx context.Context, companyID string, id uuid.UUID, endDate time.Time) (int64, error)
	CompleteEmployeeAssignmentByID(ctx context.Context, companyID string, id uuid.UUID, endDate time.Time) (int64, error)
	FindEquipmentIDByAssignment(ctx context.Context, companyID string, id uuid.UUID) (uuid.UUID, bool, error)

	// Vacation and exit close everything not yet completed.
	CompleteNonCompletedByEmployee(ctx context.Context, companyID string, employeeID uuid.UUID, endDate time.Time) (int64, error)
	// Restore reactivates only records completed exactly at endDate.
	RestoreEmployeeAssignments(ctx context.Context, companyID string, employeeID uuid.UUID, endDate time.Time) (int64, error)

	ListByEquipment(ctx context.Context, companyID string, equipmentID uuid.UUID) ([]RentalHistory, []ProjectEquipment, []RentalItem, error)
	ListByEmployee(ctx context.Context, companyID string, employeeID uuid.UUID) ([]EmployeeAssignment, error)

	HasActiveForEquipment(ctx context.Context, companyID string, equipmentID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateRentalHistory(ctx context.Context, row *RentalHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) CreateProjectEquipment(ctx context.Context, row *ProjectEquipment) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) CreateEmployeeAssignment(ctx context.Context, row *EmployeeAssignment) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) CompleteActiveByEquipment(ctx context.Context, companyID string, equipmentID uuid.UUID, endDate time.Time) (int64, error) {
	var total int64

	res := r.db.WithContext(ctx).
		Model(&RentalHistory{}).
		Scopes(tenant.Scope(companyID)).
		Where("equipment_id = ? AND status = ?", equipmentID, StatusActive).
		Updates(map[string]any{"status": StatusCompleted, "end_date": endDate})
	if res.Error != nil {
		return total, res.Error
	}
	total += res.RowsAffected

	res = r.db.WithContext(ctx).
		Model(&ProjectEquipment{}).
		Scopes(tenant.Scope(companyID)).
		Where("equipment_id = ? AND status = ?", equipmentID, StatusActive).
		Updates(map[string]any{"status": StatusCompleted, "end_date": endDate})
	if res.Error != nil {
		return total, res.Error
	}
	total += res.RowsAffected

	res = r.db.WithContext(ctx).
		Model(&RentalItem{}).
		Scopes(tenant.Scope(companyID)).
		Where("equipment_id = ? AND status = ?", equipmentID, StatusActive).
		Updates(map[string]any{"status": StatusCompleted, "completed_date": endDate})
	if res.Error != nil {
		return total, res.Error
	}
	total += res.RowsAffected

	return total, nil
}

func (r *repository) CompleteActiveByEmployee(ctx context.Context, companyID string, employeeID uuid.UUID, endDate time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&EmployeeAssignment{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND status = ?", employeeID, StatusActive).
		Updates(map[string]any{"status": StatusCompleted, "end_date": endDate})
	return res.RowsAffected, res.Error
}

func (r *repository) CompleteEquipmentAssignmentByID(ctx context.Context, companyID string, id uuid.UUID, endDate time.Time) (int64, error) {
	var total int64

	res := r.db.WithContext(ctx).
		Model(&RentalHistory{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(map[string]any{"status": StatusCompleted, "end_date": endDate})
	if res.Error != nil {
		return total, res.Error
	}
	total += res.RowsAffected

	res = r.db.WithContext(ctx).
		Model(&ProjectEquipment{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(map[string]any{"status": StatusCompleted, "end_date": endDate})
	if res.Error != nil {
		return total, res.Error
	}
	total += res.RowsAffected

	res = r.db.WithContext(ctx).
		Model(&RentalItem{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(map[string]any{"status": StatusCompleted, "completed_date": endDate})
	if res.Error != nil {
		return total, res.Error
	}
	total += res.RowsAffected

	return total, nil
}

func (r *repository) CompleteEmployeeAssignmentByID(ctx context.Context, companyID string, id uuid.UUID, endDate time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&EmployeeAssignment{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(map[string]any{"status": StatusCompleted, "end_date": endDate})
	return res.RowsAffected, res.Error
}

func (r *repository) FindEquipmentIDByAssignment(ctx context.Context, companyID string, id uuid.UUID) (uuid.UUID, bool, error) {
	var row struct {
		EquipmentID uuid.UUID
	}

	for _, model := range []any{&RentalHistory{}, &ProjectEquipment{}, &RentalItem{}} {
		err := r.db.WithContext(ctx).
			Model(model).
			Select("equipment_id").
			Scopes(tenant.Scope(companyID)).
			Where("id = ?", id).
			Take(&row).Error
		if err == nil {
			return row.EquipmentID, true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, err
		}
	}
	return uuid.Nil, false, nil
}

func (r *repository) CompleteNonCompletedByEmployee(ctx context.Context, companyID string, employeeID uuid.UUID, endDate time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&EmployeeAssignment{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND status <> ?", employeeID, StatusCompleted).
		Updates(map[string]any{"status": StatusCompleted, "end_date": endDate})
	return res.RowsAffected, res.Error
}

func (r *repository) RestoreEmployeeAssignments(ctx context.Context, companyID string, employeeID uuid.UUID, endDate time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&EmployeeAssignment{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND status = ? AND end_date = ?", employeeID, StatusCompleted, endDate).
		Updates(map[string]any{"status": StatusActive, "end_date": nil})
	return res.RowsAffected, res.Error
}

func (r *repository) ListByEquipment(ctx context.Context, companyID string, equipmentID uuid.UUID) ([]RentalHistory, []ProjectEquipment, []RentalItem, error) {
	var (
		history  []RentalHistory
		projects []ProjectEquipment
		items    []RentalItem
	)

	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("equipment_id = ?", equipmentID).
		Order("start_date DESC").
		Find(&history).Error
	if err != nil {
		return nil, nil, nil, err
	}

	err = r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("equipment_id = ?", equipmentID).
		Order("start_date DESC").
		Find(&projects).Error
	if err != nil {
		return nil, nil, nil, err
	}

	err = r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("equipment_id = ?", equipmentID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, nil, nil, err
	}

	return history, projects, items, nil
}

func (r *repository) ListByEmployee(ctx context.Context, companyID string, employeeID uuid.UUID) ([]EmployeeAssignment, error) {
	var rows []EmployeeAssignment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) HasActiveForEquipment(ctx context.Context, companyID string, equipmentID uuid.UUID) (bool, error) {
	for _, model := range []any{&RentalHistory{}, &ProjectEquipment{}, &RentalItem{}} {
		var count int64
		err := r.db.WithContext(ctx).
			Model(model).
			Scopes(tenant.Scope(companyID)).
			Where("equipment_id = ? AND status = ?", equipmentID, StatusActive).
			Count(&count).Error
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
