package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-erp/internal/employee"
	"go-erp/internal/events"
	"go-erp/internal/messaging/kafka"
	payrollerrors "go-erp/internal/payroll/errors"
	"go-erp/internal/shared/contextutil"
	"go-erp/internal/shared/period"
	"go-erp/internal/timesheet"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxErrorsInMessage = 5

type Service interface {
	GenerateMonthly(ctx context.Context, companyID string, req GenerateMonthlyRequest) (*GenerationResult, error)
	GenerateFromApproved(ctx context.Context, companyID string) (*GenerationResult, error)
	GetAll(ctx context.Context, companyID string) ([]PayrollResponse, error)
	GetByID(ctx context.Context, companyID, id string) (*PayrollResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	employees  employee.Repository
	timesheets timesheet.Repository
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	timesheets timesheet.Repository,
) Service {
	return NewServiceWithOutbox(db, repo, employees, timesheets, nil)
}

// NewServiceWithOutbox wires the transactional outbox so every finished run
// also emits a PayrollRunCompleted event. A nil outbox disables publishing.
func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	timesheets timesheet.Repository,
	outbox kafka.OutboxRepository,
) Service {
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		timesheets: timesheets,
		outbox:     outbox,
		logger:     zap.L().Named("payroll.service"),
		now:        time.Now,
	}
}

func (s *service) GenerateMonthly(ctx context.Context, companyID string, req GenerateMonthlyRequest) (*GenerationResult, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, payrollerrors.ErrInvalidCompanyID
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, payrollerrors.ErrInvalidMonth
	}
	if req.Year < period.MinYear || req.Year > period.MaxYear {
		return nil, payrollerrors.ErrInvalidYear
	}

	var (
		emps []employee.Employee
		err  error
	)
	if len(req.EmployeeIDs) > 0 {
		emps, err = s.employees.FindActiveByIDs(ctx, companyID, req.EmployeeIDs)
	} else {
		emps, err = s.employees.FindActiveByCompany(ctx, companyID)
	}
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	s.logger.Info("starting monthly payroll generation",
		zap.String("company_id", companyID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("employees", len(emps)),
	)

	month := time.Month(req.Month)
	from := period.MonthStart(req.Year, month)
	to := period.MonthEnd(req.Year, month)
	notes := fmt.Sprintf("Generated for %d/%d", req.Month, req.Year)

	res := &GenerationResult{
		Month:              req.Month,
		Year:               req.Year,
		ProcessedEmployees: []string{},
		Errors:             []string{},
	}
	for _, emp := range emps {
		records, err := s.timesheets.FindByEmployeeAndPeriod(ctx, companyID, emp.ID.String(), from, to)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", emp.FullName(), err))
			continue
		}
		outcome, err := s.generateForPeriod(ctx, emp, req.Month, req.Year, records, notes)
		if err != nil {
			s.logger.Warn("payroll generation failed for employee",
				zap.String("employee_id", emp.ID.String()),
				zap.Error(err),
			)
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", emp.FullName(), err))
			continue
		}
		if outcome.skipped {
			res.TotalSkipped++
			continue
		}
		res.TotalGenerated++
		res.ProcessedEmployees = append(res.ProcessedEmployees, emp.FullName())
	}
	res.TotalErrors = len(res.Errors)

	batchID := fmt.Sprintf("BATCH_MONTHLY_%d_%d_%d", req.Month, req.Year, s.now().Unix())
	runNotes := fmt.Sprintf("Monthly payroll generation for %d/%d - Generated: %d", req.Month, req.Year, res.TotalGenerated)
	if err := s.recordRun(ctx, companyID, batchID, runNotes, res); err != nil {
		return nil, fmt.Errorf("record payroll run: %w", err)
	}

	res.Message = composeMessage(
		fmt.Sprintf("Monthly payroll generation completed for %d/%d.", req.Month, req.Year),
		res,
	)

	s.logger.Info("monthly payroll generation finished",
		zap.String("company_id", companyID),
		zap.String("batch_id", batchID),
		zap.Int("generated", res.TotalGenerated),
		zap.Int("skipped", res.TotalSkipped),
		zap.Int("errors", res.TotalErrors),
	)
	return res, nil
}

func (s *service) GenerateFromApproved(ctx context.Context, companyID string) (*GenerationResult, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, payrollerrors.ErrInvalidCompanyID
	}

	emps, err := s.employees.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	s.logger.Info("starting payroll generation from approved timesheets",
		zap.String("company_id", companyID),
		zap.Int("employees", len(emps)),
	)

	res := &GenerationResult{
		ProcessedEmployees: []string{},
		Errors:             []string{},
	}
	for _, emp := range emps {
		records, err := s.timesheets.FindApprovedByEmployee(ctx, companyID, emp.ID.String())
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", emp.FullName(), err))
			continue
		}
		if len(records) == 0 {
			continue
		}

		for _, key := range bucketKeys(records) {
			month, year := int(key.Month), key.Year
			bucket := recordsForKey(records, key)
			notes := fmt.Sprintf("Generated from approved timesheets for %d/%d", month, year)
			outcome, err := s.generateForPeriod(ctx, emp, month, year, bucket, notes)
			if err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("%s (%d/%d): %v", emp.FullName(), month, year, err))
				continue
			}
			if outcome.skipped {
				res.TotalSkipped++
				continue
			}
			res.TotalGenerated++
			res.ProcessedEmployees = append(res.ProcessedEmployees, fmt.Sprintf("%s (%d/%d)", emp.FullName(), month, year))
		}
	}
	res.TotalErrors = len(res.Errors)

	batchID := fmt.Sprintf("BATCH_APPROVED_%d", s.now().Unix())
	runNotes := fmt.Sprintf("Payroll generation for employees with approved timesheets - Generated: %d", res.TotalGenerated)
	if err := s.recordRun(ctx, companyID, batchID, runNotes, res); err != nil {
		return nil, fmt.Errorf("record payroll run: %w", err)
	}

	res.Message = composeMessage("Payroll generation completed successfully.", res)
	return res, nil
}

type periodOutcome struct {
	skipped bool
}

// generateForPeriod runs the per-employee-period core inside one
// transaction: skip when a payroll already exists, classify attendance,
// calculate the breakdown, insert the payroll row plus its items. The unique
// period index backs the existence check against concurrent runs; a unique
// violation maps to a skip, not an error.
func (s *service) generateForPeriod(
	ctx context.Context,
	emp employee.Employee,
	month, year int,
	records []timesheet.Timesheet,
	notes string,
) (periodOutcome, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return periodOutcome{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsForPeriod(ctx, emp.CompanyID.String(), emp.ID.String(), month, year)
	if err != nil {
		return periodOutcome{}, err
	}
	if exists {
		return periodOutcome{skipped: true}, nil
	}

	dayRecords := make([]DayRecord, 0, len(records))
	for _, rec := range records {
		dayRecords = append(dayRecords, DayRecord{
			Date:          rec.Date,
			HoursWorked:   rec.HoursWorked,
			OvertimeHours: rec.OvertimeHours,
		})
	}
	att := ClassifyAttendance(year, time.Month(month), dayRecords)

	breakdown, err := Calculate(contractOf(emp), att, period.DaysInMonth(year, time.Month(month)))
	if err != nil {
		return periodOutcome{}, err
	}

	p := &Payroll{
		ID:               uuid.New(),
		CompanyID:        emp.CompanyID,
		EmployeeID:       emp.ID,
		Month:            month,
		Year:             year,
		BaseSalary:       emp.BasicSalary,
		OvertimeAmount:   breakdown.OvertimeAmount,
		BonusAmount:      breakdown.BonusAmount,
		DeductionAmount:  breakdown.DeductionAmount,
		FinalAmount:      breakdown.FinalAmount,
		TotalWorkedHours: att.TotalWorkedHours,
		OvertimeHours:    att.TotalOvertimeHours,
		Status:           StatusPending,
		Currency:         DefaultCurrency,
		Notes:            notes,
	}
	if err := qtx.Create(ctx, p); err != nil {
		if IsDuplicatePeriod(err) {
			return periodOutcome{skipped: true}, nil
		}
		return periodOutcome{}, err
	}

	items := []PayrollItem{{
		ID:          uuid.New(),
		PayrollID:   p.ID,
		Type:        ItemTypeEarnings,
		Description: "Basic Salary",
		Amount:      emp.BasicSalary,
		Order:       1,
	}}
	if att.TotalOvertimeHours.IsPositive() && breakdown.OvertimeAmount.IsPositive() {
		items = append(items, PayrollItem{
			ID:          uuid.New(),
			PayrollID:   p.ID,
			Type:        ItemTypeOvertime,
			Description: overtimeDescription(breakdown, emp),
			Amount:      breakdown.OvertimeAmount,
			Order:       2,
		})
	}
	if err := qtx.CreateItems(ctx, items); err != nil {
		return periodOutcome{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return periodOutcome{}, err
	}
	return periodOutcome{}, nil
}

// recordRun persists the run summary and, when an outbox is wired, the
// completion event in the same transaction.
func (s *service) recordRun(ctx context.Context, companyID, batchID, notes string, res *GenerationResult) error {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return payrollerrors.ErrInvalidCompanyID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	run := &PayrollRun{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		BatchID:        batchID,
		RunDate:        s.now().UTC(),
		Status:         StatusPending,
		TotalEmployees: res.TotalGenerated,
		Notes:          notes,
	}
	if err := s.repo.WithTx(tx).CreateRun(ctx, run); err != nil {
		return err
	}

	if s.outbox != nil {
		sqlTx, ok := tx.Statement.ConnPool.(*sql.Tx)
		if !ok {
			return errors.New("transaction does not expose a sql.Tx")
		}
		event := events.PayrollRunCompletedEvent{
			EventType:      "payroll.run.completed",
			PayrollRunID:   run.ID.String(),
			CompanyID:      companyID,
			BatchID:        batchID,
			TotalGenerated: res.TotalGenerated,
			TotalSkipped:   res.TotalSkipped,
			TotalErrors:    res.TotalErrors,
			OccurredAt:     s.now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		outboxEvent := kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "payroll_run",
			AggregateID:   run.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollRunCompletedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}
		if err := s.outbox.WithTx(sqlTx).Create(ctx, outboxEvent); err != nil {
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}
	res.PayrollRunID = run.ID.String()
	return nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]PayrollResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, payrollerrors.ErrInvalidCompanyID
	}
	payrolls, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	responses := make([]PayrollResponse, 0, len(payrolls))
	for i := range payrolls {
		responses = append(responses, mapToResponse(&payrolls[i]))
	}
	return responses, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (*PayrollResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, payrollerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrPayrollNotFound
	}
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		return nil, err
	}
	resp := mapToResponse(p)
	return &resp, nil
}

func contractOf(emp employee.Employee) Contract {
	return Contract{
		BasicSalary:            emp.BasicSalary,
		ContractDaysPerMonth:   emp.ContractDaysPerMonth,
		ContractHoursPerDay:    emp.ContractHoursPerDay,
		OvertimeRateMultiplier: emp.OvertimeRateMultiplier,
		OvertimeFixedRate:      emp.OvertimeFixedRate,
		FoodAllowance:          emp.FoodAllowance,
		HousingAllowance:       emp.HousingAllowance,
		TransportAllowance:     emp.TransportAllowance,
	}
}

func overtimeDescription(b Breakdown, emp employee.Employee) string {
	if b.UsedFixedRate {
		return fmt.Sprintf("Overtime Pay (Fixed Rate: %s %s/hr)", emp.OvertimeFixedRate.StringFixed(2), DefaultCurrency)
	}
	return fmt.Sprintf("Overtime Pay (%sx Rate)", b.OvertimeMultiplier.String())
}

// bucketKeys returns the distinct periods covered by the records in
// chronological order, so generation output stays deterministic.
func bucketKeys(records []timesheet.Timesheet) []period.Key {
	seen := make(map[period.Key]struct{}, 4)
	keys := make([]period.Key, 0, 4)
	for _, rec := range records {
		key := period.KeyOf(rec.Date)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].Month < keys[j].Month
	})
	return keys
}

func recordsForKey(records []timesheet.Timesheet, key period.Key) []timesheet.Timesheet {
	bucket := make([]timesheet.Timesheet, 0, len(records))
	for _, rec := range records {
		if period.KeyOf(rec.Date) == key {
			bucket = append(bucket, rec)
		}
	}
	return bucket
}

func composeMessage(header string, res *GenerationResult) string {
	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "\nGenerated: %d payrolls\nProcessed employees: %d\nSkipped: %d\nErrors: %d",
		res.TotalGenerated, len(res.ProcessedEmployees), res.TotalSkipped, res.TotalErrors)
	if len(res.ProcessedEmployees) > 0 {
		b.WriteString("\n\nProcessed: ")
		b.WriteString(strings.Join(res.ProcessedEmployees, ", "))
	}
	if len(res.Errors) > 0 {
		shown := res.Errors
		if len(shown) > maxErrorsInMessage {
			shown = shown[:maxErrorsInMessage]
		}
		b.WriteString("\n\nErrors: ")
		b.WriteString(strings.Join(shown, "; "))
		if len(res.Errors) > maxErrorsInMessage {
			fmt.Fprintf(&b, " and %d more...", len(res.Errors)-maxErrorsInMessage)
		}
	}
	return b.String()
}

func mapToResponse(p *Payroll) PayrollResponse {
	items := make([]PayrollItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, PayrollItemResponse{
			ID:          item.ID.String(),
			Type:        item.Type,
			Description: item.Description,
			Amount:      item.Amount.StringFixed(2),
			Order:       item.Order,
		})
	}
	return PayrollResponse{
		ID:               p.ID.String(),
		CompanyID:        p.CompanyID.String(),
		EmployeeID:       p.EmployeeID.String(),
		Month:            p.Month,
		Year:             p.Year,
		BaseSalary:       p.BaseSalary.StringFixed(2),
		OvertimeAmount:   p.OvertimeAmount.StringFixed(2),
		BonusAmount:      p.BonusAmount.StringFixed(2),
		DeductionAmount:  p.DeductionAmount.StringFixed(2),
		AdvanceDeduction: p.AdvanceDeduction.StringFixed(2),
		FinalAmount:      p.FinalAmount.StringFixed(2),
		TotalWorkedHours: p.TotalWorkedHours.StringFixed(2),
		OvertimeHours:    p.OvertimeHours.StringFixed(2),
		Status:           p.Status,
		Currency:         p.Currency,
		Notes:            p.Notes,
		Items:            items,
	}
}
