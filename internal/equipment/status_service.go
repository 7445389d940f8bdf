package equipment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActiveAssignmentChecker reports whether any assignment representation
// still holds an active record for the equipment.
type ActiveAssignmentChecker interface {
	HasActiveForEquipment(ctx context.Context, companyID string, equipmentID uuid.UUID) (bool, error)
}

// StatusService re-derives an equipment's status from its assignments:
// assigned while any active assignment exists, available otherwise.
// Maintenance status is owned by the maintenance workflow and never
// overwritten here.
type StatusService struct {
	repo        Repository
	assignments ActiveAssignmentChecker
	logger      *zap.Logger
}

func NewStatusService(repo Repository, assignments ActiveAssignmentChecker) *StatusService {
	return &StatusService{
		repo:        repo,
		assignments: assignments,
		logger:      zap.L().Named("equipment.status"),
	}
}

func (s *StatusService) Recompute(ctx context.Context, companyID string, equipmentID uuid.UUID) error {
	current, err := s.repo.FindByIDAndCompany(ctx, companyID, equipmentID)
	if err != nil {
		return err
	}
	if current.Status == StatusMaintenance {
		return nil
	}

	hasActive, err := s.assignments.HasActiveForEquipment(ctx, companyID, equipmentID)
	if err != nil {
		return err
	}

	want := StatusAvailable
	if hasActive {
		want = StatusAssigned
	}
	if current.Status == want {
		return nil
	}

	s.logger.Info("equipment status changed",
		zap.String("equipment_id", equipmentID.String()),
		zap.String("from", current.Status),
		zap.String("to", want),
	)
	return s.repo.UpdateStatus(ctx, companyID, equipmentID, want)
}
