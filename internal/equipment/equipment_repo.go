package equipment

import (
	"context"

	"go-erp/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=equipment_repo.go -destination=mock/equipment_repo_mock.go -package=mock
type Repository interface {
	UpdateStatus(ctx context.Context, companyID string, id uuid.UUID, status string) error
	FindByIDAndCompany(ctx context.Context, companyID string, id uuid.UUID) (*Equipment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UpdateStatus(ctx context.Context, companyID string, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&Equipment{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id uuid.UUID) (*Equipment, error) {
	var row Equipment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
