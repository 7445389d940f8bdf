package assignment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	assignmenterrors "go-erp/internal/assignment/errors"
	"go-erp/internal/events"
	"go-erp/internal/messaging/kafka"
	"go-erp/internal/shared/contextutil"
	"go-erp/internal/shared/period"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// nullDecimal treats a zero amount as unset.
func nullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: !d.IsZero()}
}

// EquipmentStatusRecomputer re-derives an equipment's status after its
// assignments change. Failures are secondary: logged, never returned to the
// caller of the primary operation.
type EquipmentStatusRecomputer interface {
	Recompute(ctx context.Context, companyID string, equipmentID uuid.UUID) error
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateAssignmentRequest) (*AssignmentResponse, error)
	Complete(ctx context.Context, companyID, entityType, assignmentID string, req CompleteAssignmentRequest) error
	CompleteForVacation(ctx context.Context, companyID string, req VacationRequest) error
	CompleteForExit(ctx context.Context, companyID string, req ExitRequest) error
	RestoreAfterVacationDeletion(ctx context.Context, companyID string, req VacationRequest) error
	RestoreAfterExitDeletion(ctx context.Context, companyID string, req ExitRequest) error
	GetEntityAssignments(ctx context.Context, companyID, entityType, entityID string) (*EntityAssignmentsResponse, error)
}

type service struct {
	db              *gorm.DB
	repo            Repository
	outbox          kafka.OutboxRepository
	equipmentStatus EquipmentStatusRecomputer
	logger          *zap.Logger
	now             func() time.Time
}

func NewService(db *gorm.DB, repo Repository) Service {
	return NewServiceWithDeps(db, repo, nil, nil)
}

func NewServiceWithDeps(
	db *gorm.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	equipmentStatus EquipmentStatusRecomputer,
) Service {
	return &service{
		db:              db,
		repo:            repo,
		outbox:          outbox,
		equipmentStatus: equipmentStatus,
		logger:          zap.L().Named("assignment.service"),
		now:             time.Now,
	}
}

type createInput struct {
	companyID  uuid.UUID
	entityID   uuid.UUID
	startDate  time.Time
	endDate    *time.Time
	status     string
	rentalID   *uuid.UUID
	projectID  *uuid.UUID
	operatorID *uuid.UUID
}

func (s *service) parseCreate(companyID string, req CreateAssignmentRequest) (*createInput, error) {
	in := &createInput{status: req.Status}

	var err error
	if in.companyID, err = uuid.Parse(companyID); err != nil {
		return nil, assignmenterrors.ErrInvalidCompanyID
	}
	if req.EntityType != EntityTypeEquipment && req.EntityType != EntityTypeEmployee {
		return nil, assignmenterrors.ErrInvalidEntityType
	}
	if in.entityID, err = uuid.Parse(req.EntityID); err != nil {
		return nil, assignmenterrors.ErrInvalidEntityID
	}
	switch req.Kind {
	case KindRental, KindProject, KindManual:
	default:
		return nil, assignmenterrors.ErrInvalidKind
	}

	if in.startDate, err = period.ParseDate(req.StartDate); err != nil {
		return nil, assignmenterrors.ErrInvalidStartDate
	}
	if req.EndDate != "" {
		endDate, err := period.ParseDate(req.EndDate)
		if err != nil {
			return nil, assignmenterrors.ErrInvalidEndDate
		}
		in.endDate = &endDate
	}
	if in.status == "" {
		in.status = StatusActive
	}

	parseRef := func(raw string, target **uuid.UUID) error {
		if raw == "" {
			return nil
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return assignmenterrors.ErrInvalidEntityID
		}
		*target = &id
		return nil
	}
	if err := parseRef(req.RentalID, &in.rentalID); err != nil {
		return nil, err
	}
	if err := parseRef(req.ProjectID, &in.projectID); err != nil {
		return nil, err
	}
	if err := parseRef(req.OperatorID, &in.operatorID); err != nil {
		return nil, err
	}

	if req.Kind == KindRental && in.rentalID == nil {
		return nil, assignmenterrors.ErrRentalIDRequired
	}
	if req.Kind == KindProject && in.projectID == nil {
		return nil, assignmenterrors.ErrProjectIDRequired
	}
	if req.EntityType == EntityTypeEquipment && req.Kind == KindProject && !req.HourlyRate.IsPositive() {
		return nil, assignmenterrors.ErrHourlyRateRequired
	}

	return in, nil
}

// Create closes every active assignment for the entity and inserts the new
// record in one transaction, so the single-active-assignment invariant holds
// under concurrent creations too.
func (s *service) Create(ctx context.Context, companyID string, req CreateAssignmentRequest) (*AssignmentResponse, error) {
	in, err := s.parseCreate(companyID, req)
	if err != nil {
		return nil, err
	}

	priorEndDate := period.DayBefore(in.startDate)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var superseded int64
	if req.EntityType == EntityTypeEquipment {
		superseded, err = qtx.CompleteActiveByEquipment(ctx, companyID, in.entityID, priorEndDate)
	} else {
		superseded, err = qtx.CompleteActiveByEmployee(ctx, companyID, in.entityID, priorEndDate)
	}
	if err != nil {
		return nil, fmt.Errorf("complete previous assignments: %w", err)
	}

	var resp *AssignmentResponse
	if req.EntityType == EntityTypeEquipment {
		resp, err = s.insertEquipmentAssignment(ctx, qtx, in, req)
	} else {
		resp, err = s.insertEmployeeAssignment(ctx, qtx, in, req)
	}
	if err != nil {
		return nil, err
	}

	if s.outbox != nil {
		if err := s.enqueueCreatedEvent(ctx, tx, companyID, req, resp); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("assignment created",
		zap.String("entity_type", req.EntityType),
		zap.String("entity_id", req.EntityID),
		zap.String("kind", req.Kind),
		zap.Int64("superseded", superseded),
	)
	return resp, nil
}

func (s *service) insertEquipmentAssignment(ctx context.Context, qtx Repository, in *createInput, req CreateAssignmentRequest) (*AssignmentResponse, error) {
	if req.Kind == KindProject {
		row := &ProjectEquipment{
			ID:          uuid.New(),
			CompanyID:   in.companyID,
			ProjectID:   *in.projectID,
			EquipmentID: in.entityID,
			OperatorID:  in.operatorID,
			StartDate:   in.startDate,
			EndDate:     in.endDate,
			HourlyRate:  req.HourlyRate,
			Status:      in.status,
			Notes:       req.Notes,
			AssignedBy:  in.operatorID,
		}
		if err := qtx.CreateProjectEquipment(ctx, row); err != nil {
			return nil, err
		}
		return &AssignmentResponse{
			ID:             row.ID.String(),
			Representation: RepresentationProjectEquipment,
			EntityType:     EntityTypeEquipment,
			EntityID:       in.entityID.String(),
			Kind:           KindProject,
			StartDate:      row.StartDate.Format(period.DateLayout),
			EndDate:        formatDatePtr(row.EndDate),
			Status:         row.Status,
			Notes:          row.Notes,
		}, nil
	}

	// Rental and manual assignments both live in the rental history table.
	row := &RentalHistory{
		ID:          uuid.New(),
		CompanyID:   in.companyID,
		EquipmentID: in.entityID,
		RentalID:    in.rentalID,
		ProjectID:   in.projectID,
		Kind:        req.Kind,
		StartDate:   in.startDate,
		EndDate:     in.endDate,
		Status:      in.status,
		Notes:       req.Notes,
		DailyRate:   nullDecimal(req.UnitPrice),
		TotalAmount: nullDecimal(req.TotalPrice),
	}
	if req.Kind == KindManual {
		row.EmployeeID = in.operatorID
	}
	if err := qtx.CreateRentalHistory(ctx, row); err != nil {
		return nil, err
	}
	return &AssignmentResponse{
		ID:             row.ID.String(),
		Representation: RepresentationRentalHistory,
		EntityType:     EntityTypeEquipment,
		EntityID:       in.entityID.String(),
		Kind:           row.Kind,
		StartDate:      row.StartDate.Format(period.DateLayout),
		EndDate:        formatDatePtr(row.EndDate),
		Status:         row.Status,
		Notes:          row.Notes,
	}, nil
}

func (s *service) insertEmployeeAssignment(ctx context.Context, qtx Repository, in *createInput, req CreateAssignmentRequest) (*AssignmentResponse, error) {
	name, location := deriveDisplayFields(req)

	row := &EmployeeAssignment{
		ID:         uuid.New(),
		CompanyID:  in.companyID,
		EmployeeID: in.entityID,
		ProjectID:  in.projectID,
		RentalID:   in.rentalID,
		Name:       name,
		Kind:       req.Kind,
		Location:   location,
		StartDate:  in.startDate,
		EndDate:    in.endDate,
		Status:     in.status,
		Notes:      req.Notes,
	}
	if err := qtx.CreateEmployeeAssignment(ctx, row); err != nil {
		return nil, err
	}
	return &AssignmentResponse{
		ID:             row.ID.String(),
		Representation: RepresentationEmployeeAssignment,
		EntityType:     EntityTypeEmployee,
		EntityID:       in.entityID.String(),
		Kind:           row.Kind,
		Name:           row.Name,
		Location:       row.Location,
		StartDate:      row.StartDate.Format(period.DateLayout),
		EndDate:        formatDatePtr(row.EndDate),
		Status:         row.Status,
		Notes:          row.Notes,
	}, nil
}

// deriveDisplayFields fills the employee assignment's name and location when
// the caller did not supply them.
func deriveDisplayFields(req CreateAssignmentRequest) (string, string) {
	if req.Name != "" {
		return req.Name, req.Location
	}
	switch req.Kind {
	case KindRental:
		equipmentName := req.EquipmentName
		if equipmentName == "" {
			equipmentName = "Equipment"
		}
		return "Rental Operator - " + equipmentName, "Rental Site"
	case KindProject:
		projectName := req.EquipmentName
		if projectName == "" {
			projectName = "Project"
		}
		return "Project Assignment - " + projectName, "Project Site"
	default:
		if req.Notes != "" {
			return req.Notes, req.Location
		}
		return "Manual Assignment - " + req.Kind, req.Location
	}
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *gorm.DB, companyID string, req CreateAssignmentRequest, resp *AssignmentResponse) error {
	sqlTx, ok := tx.Statement.ConnPool.(*sql.Tx)
	if !ok {
		return errors.New("transaction does not expose a sql.Tx")
	}

	event := events.AssignmentCreatedEvent{
		EventType:    "assignment.created",
		AssignmentID: resp.ID,
		CompanyID:    companyID,
		EntityType:   req.EntityType,
		EntityID:     req.EntityID,
		Kind:         req.Kind,
		StartDate:    resp.StartDate,
		OccurredAt:   s.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(sqlTx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "assignment",
		AggregateID:   resp.ID,
		EventType:     event.EventType,
		Topic:         events.AssignmentCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Complete(ctx context.Context, companyID, entityType, assignmentID string, req CompleteAssignmentRequest) error {
	if _, err := uuid.Parse(companyID); err != nil {
		return assignmenterrors.ErrInvalidCompanyID
	}
	if entityType != EntityTypeEquipment && entityType != EntityTypeEmployee {
		return assignmenterrors.ErrInvalidEntityType
	}
	id, err := uuid.Parse(assignmentID)
	if err != nil {
		return assignmenterrors.ErrAssignmentNotFound
	}

	endDate := period.Truncate(s.now().UTC())
	if req.EndDate != "" {
		if endDate, err = period.ParseDate(req.EndDate); err != nil {
			return assignmenterrors.ErrInvalidEndDate
		}
	}

	if entityType == EntityTypeEmployee {
		affected, err := s.repo.CompleteEmployeeAssignmentByID(ctx, companyID, id, endDate)
		if err != nil {
			return err
		}
		if affected == 0 {
			return assignmenterrors.ErrAssignmentNotFound
		}
		return nil
	}

	// Resolve the owning equipment before the update so the status recompute
	// still works when the row is already completed.
	equipmentID, found, err := s.repo.FindEquipmentIDByAssignment(ctx, companyID, id)
	if err != nil {
		return err
	}

	affected, err := s.repo.CompleteEquipmentAssignmentByID(ctx, companyID, id, endDate)
	if err != nil {
		return err
	}
	if affected == 0 {
		return assignmenterrors.ErrAssignmentNotFound
	}

	if found {
		s.recomputeEquipmentStatus(ctx, companyID, equipmentID)
	}
	return nil
}

// recomputeEquipmentStatus is a secondary side effect: failure is logged and
// swallowed so it cannot fail the completed primary operation.
func (s *service) recomputeEquipmentStatus(ctx context.Context, companyID string, equipmentID uuid.UUID) {
	if s.equipmentStatus == nil {
		return
	}
	if err := s.equipmentStatus.Recompute(ctx, companyID, equipmentID); err != nil {
		s.logger.Warn("equipment status recompute failed",
			zap.String("equipment_id", equipmentID.String()),
			zap.Error(err),
		)
	}
}

func (s *service) CompleteForVacation(ctx context.Context, companyID string, req VacationRequest) error {
	employeeID, vacationStart, err := parseEmployeeDate(companyID, req.EmployeeID, req.VacationStartDate)
	if err != nil {
		return err
	}

	// Assignments end the day before the vacation starts.
	endDate := period.DayBefore(vacationStart)
	affected, err := s.repo.CompleteNonCompletedByEmployee(ctx, companyID, employeeID, endDate)
	if err != nil {
		return err
	}

	s.logger.Info("assignments completed for vacation",
		zap.String("employee_id", req.EmployeeID),
		zap.String("end_date", endDate.Format(period.DateLayout)),
		zap.Int64("completed", affected),
	)
	return nil
}

func (s *service) CompleteForExit(ctx context.Context, companyID string, req ExitRequest) error {
	employeeID, lastWorkingDate, err := parseEmployeeDate(companyID, req.EmployeeID, req.LastWorkingDate)
	if err != nil {
		return err
	}

	// Unlike vacation, exit assignments end on the last working day itself.
	affected, err := s.repo.CompleteNonCompletedByEmployee(ctx, companyID, employeeID, lastWorkingDate)
	if err != nil {
		return err
	}

	s.logger.Info("assignments completed for exit",
		zap.String("employee_id", req.EmployeeID),
		zap.String("end_date", lastWorkingDate.Format(period.DateLayout)),
		zap.Int64("completed", affected),
	)
	return nil
}

func (s *service) RestoreAfterVacationDeletion(ctx context.Context, companyID string, req VacationRequest) error {
	employeeID, vacationStart, err := parseEmployeeDate(companyID, req.EmployeeID, req.VacationStartDate)
	if err != nil {
		return err
	}

	// Only rows completed exactly at the vacation boundary are restored.
	boundary := period.DayBefore(vacationStart)
	affected, err := s.repo.RestoreEmployeeAssignments(ctx, companyID, employeeID, boundary)
	if err != nil {
		return err
	}

	s.logger.Info("assignments restored after vacation deletion",
		zap.String("employee_id", req.EmployeeID),
		zap.Int64("restored", affected),
	)
	return nil
}

func (s *service) RestoreAfterExitDeletion(ctx context.Context, companyID string, req ExitRequest) error {
	employeeID, lastWorkingDate, err := parseEmployeeDate(companyID, req.EmployeeID, req.LastWorkingDate)
	if err != nil {
		return err
	}

	affected, err := s.repo.RestoreEmployeeAssignments(ctx, companyID, employeeID, lastWorkingDate)
	if err != nil {
		return err
	}

	s.logger.Info("assignments restored after exit deletion",
		zap.String("employee_id", req.EmployeeID),
		zap.Int64("restored", affected),
	)
	return nil
}

func (s *service) GetEntityAssignments(ctx context.Context, companyID, entityType, entityID string) (*EntityAssignmentsResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, assignmenterrors.ErrInvalidCompanyID
	}
	id, err := uuid.Parse(entityID)
	if err != nil {
		return nil, assignmenterrors.ErrInvalidEntityID
	}

	resp := &EntityAssignmentsResponse{
		EntityType:  entityType,
		EntityID:    entityID,
		Assignments: []AssignmentResponse{},
	}

	switch entityType {
	case EntityTypeEmployee:
		rows, err := s.repo.ListByEmployee(ctx, companyID, id)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			resp.Assignments = append(resp.Assignments, mapEmployeeAssignment(&rows[i]))
		}
	case EntityTypeEquipment:
		history, projects, items, err := s.repo.ListByEquipment(ctx, companyID, id)
		if err != nil {
			return nil, err
		}
		for i := range history {
			resp.Assignments = append(resp.Assignments, mapRentalHistory(&history[i]))
		}
		for i := range projects {
			resp.Assignments = append(resp.Assignments, mapProjectEquipment(&projects[i]))
		}
		for i := range items {
			resp.Assignments = append(resp.Assignments, mapRentalItem(&items[i]))
		}
	default:
		return nil, assignmenterrors.ErrInvalidEntityType
	}

	return resp, nil
}

func parseEmployeeDate(companyID, employeeID, date string) (uuid.UUID, time.Time, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return uuid.Nil, time.Time{}, assignmenterrors.ErrInvalidCompanyID
	}
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, time.Time{}, assignmenterrors.ErrInvalidEntityID
	}
	parsed, err := period.ParseDate(date)
	if err != nil {
		return uuid.Nil, time.Time{}, assignmenterrors.ErrInvalidStartDate
	}
	return id, parsed, nil
}

func mapRentalHistory(row *RentalHistory) AssignmentResponse {
	return AssignmentResponse{
		ID:             row.ID.String(),
		Representation: RepresentationRentalHistory,
		EntityType:     EntityTypeEquipment,
		EntityID:       row.EquipmentID.String(),
		Kind:           row.Kind,
		StartDate:      row.StartDate.Format(period.DateLayout),
		EndDate:        formatDatePtr(row.EndDate),
		Status:         row.Status,
		Notes:          row.Notes,
	}
}

func mapProjectEquipment(row *ProjectEquipment) AssignmentResponse {
	return AssignmentResponse{
		ID:             row.ID.String(),
		Representation: RepresentationProjectEquipment,
		EntityType:     EntityTypeEquipment,
		EntityID:       row.EquipmentID.String(),
		Kind:           KindProject,
		StartDate:      row.StartDate.Format(period.DateLayout),
		EndDate:        formatDatePtr(row.EndDate),
		Status:         row.Status,
		Notes:          row.Notes,
	}
}

func mapRentalItem(row *RentalItem) AssignmentResponse {
	return AssignmentResponse{
		ID:             row.ID.String(),
		Representation: RepresentationRentalItem,
		EntityType:     EntityTypeEquipment,
		EntityID:       row.EquipmentID.String(),
		Kind:           KindRental,
		EndDate:        formatDatePtr(row.CompletedDate),
		Status:         row.Status,
		Notes:          row.Notes,
	}
}

func mapEmployeeAssignment(row *EmployeeAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:             row.ID.String(),
		Representation: RepresentationEmployeeAssignment,
		EntityType:     EntityTypeEmployee,
		EntityID:       row.EmployeeID.String(),
		Kind:           row.Kind,
		Name:           row.Name,
		Location:       row.Location,
		StartDate:      row.StartDate.Format(period.DateLayout),
		EndDate:        formatDatePtr(row.EndDate),
		Status:         row.Status,
		Notes:          row.Notes,
	}
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(period.DateLayout)
}
