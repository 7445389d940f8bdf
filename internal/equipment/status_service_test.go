package equipment_test

import (
	"context"
	"testing"

	"go-erp/internal/equipment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEquipmentRepository struct {
	current  *equipment.Equipment
	statuses []string
}

func (f *fakeEquipmentRepository) UpdateStatus(ctx context.Context, companyID string, id uuid.UUID, status string) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeEquipmentRepository) FindByIDAndCompany(ctx context.Context, companyID string, id uuid.UUID) (*equipment.Equipment, error) {
	return f.current, nil
}

type fakeActiveChecker struct {
	hasActive bool
}

func (f *fakeActiveChecker) HasActiveForEquipment(ctx context.Context, companyID string, equipmentID uuid.UUID) (bool, error) {
	return f.hasActive, nil
}

func TestStatusService_Recompute(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	equipmentID := uuid.New()

	cases := []struct {
		name       string
		current    string
		hasActive  bool
		wantUpdate []string
	}{
		{"available with active assignment becomes assigned", equipment.StatusAvailable, true, []string{equipment.StatusAssigned}},
		{"assigned without active assignment becomes available", equipment.StatusAssigned, false, []string{equipment.StatusAvailable}},
		{"already correct status is left alone", equipment.StatusAssigned, true, nil},
		{"maintenance is never overwritten", equipment.StatusMaintenance, false, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeEquipmentRepository{current: &equipment.Equipment{ID: equipmentID, Status: tc.current}}
			svc := equipment.NewStatusService(repo, &fakeActiveChecker{hasActive: tc.hasActive})

			err := svc.Recompute(ctx, companyID, equipmentID)

			assert.NoError(t, err)
			assert.Equal(t, tc.wantUpdate, repo.statuses)
		})
	}
}
