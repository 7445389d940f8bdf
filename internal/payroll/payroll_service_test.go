package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-erp/internal/employee"
	"go-erp/internal/events"
	"go-erp/internal/messaging/kafka"
	"go-erp/internal/payroll"
	payrollerrors "go-erp/internal/payroll/errors"
	"go-erp/internal/timesheet"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	createFn             func(ctx context.Context, p *payroll.Payroll) error
	createItemsFn        func(ctx context.Context, items []payroll.PayrollItem) error
	createRunFn          func(ctx context.Context, run *payroll.PayrollRun) error
	existsForPeriodFn    func(ctx context.Context, companyID, employeeID string, month, year int) (bool, error)
	findAllByCompanyFn   func(ctx context.Context, companyID string) ([]payroll.Payroll, error)
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*payroll.Payroll, error)
}

func (f *fakePayrollRepository) WithTx(tx *gorm.DB) payroll.Repository {
	return f
}

func (f *fakePayrollRepository) Create(ctx context.Context, p *payroll.Payroll) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) CreateItems(ctx context.Context, items []payroll.PayrollItem) error {
	if f.createItemsFn != nil {
		return f.createItemsFn(ctx, items)
	}
	return nil
}

func (f *fakePayrollRepository) CreateRun(ctx context.Context, run *payroll.PayrollRun) error {
	if f.createRunFn != nil {
		return f.createRunFn(ctx, run)
	}
	return nil
}

func (f *fakePayrollRepository) ExistsForPeriod(ctx context.Context, companyID, employeeID string, month, year int) (bool, error) {
	if f.existsForPeriodFn != nil {
		return f.existsForPeriodFn(ctx, companyID, employeeID, month, year)
	}
	return false, nil
}

func (f *fakePayrollRepository) FindAllByCompany(ctx context.Context, companyID string) ([]payroll.Payroll, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*payroll.Payroll, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEmployeeRepository struct {
	findActiveByCompanyFn func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findActiveByIDsFn     func(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error)
	calls                 int
}

func (f *fakeEmployeeRepository) FindActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	f.calls++
	if f.findActiveByCompanyFn != nil {
		return f.findActiveByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindActiveByIDs(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error) {
	f.calls++
	if f.findActiveByIDsFn != nil {
		return f.findActiveByIDsFn(ctx, companyID, ids)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

type fakeTimesheetRepository struct {
	findByEmployeeAndPeriodFn func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]timesheet.Timesheet, error)
	findApprovedByEmployeeFn  func(ctx context.Context, companyID, employeeID string) ([]timesheet.Timesheet, error)
}

func (f *fakeTimesheetRepository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]timesheet.Timesheet, error) {
	if f.findByEmployeeAndPeriodFn != nil {
		return f.findByEmployeeAndPeriodFn(ctx, companyID, employeeID, from, to)
	}
	return nil, nil
}

func (f *fakeTimesheetRepository) FindApprovedByEmployee(ctx context.Context, companyID, employeeID string) ([]timesheet.Timesheet, error) {
	if f.findApprovedByEmployeeFn != nil {
		return f.findApprovedByEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

func (f *fakeTimesheetRepository) UpsertBatch(ctx context.Context, rows []timesheet.Timesheet) error {
	return nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type payrollServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    payroll.Service
	repo       *fakePayrollRepository
	employees  *fakeEmployeeRepository
	timesheets *fakeTimesheetRepository
	outbox     *fakeOutboxRepository
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakePayrollRepository{}
	emps := &fakeEmployeeRepository{}
	ts := &fakeTimesheetRepository{}
	outbox := &fakeOutboxRepository{}
	svc := payroll.NewServiceWithOutbox(gormDB, repo, emps, ts, outbox)

	return &payrollServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    svc,
		repo:       repo,
		employees:  emps,
		timesheets: ts,
		outbox:     outbox,
	}
}

func testEmployee(companyID uuid.UUID, firstName string) employee.Employee {
	return employee.Employee{
		ID:                  uuid.New(),
		CompanyID:           companyID,
		FirstName:           firstName,
		LastName:            "Tester",
		Status:              employee.StatusActive,
		BasicSalary:         decimal.NewFromInt(3000),
		ContractHoursPerDay: 8,
		FoodAllowance:       decimal.NewFromInt(300),
	}
}

// workedMonth fabricates approved eight-hour records for every non-rest day.
func workedMonth(emp employee.Employee, year int, month time.Month) []timesheet.Timesheet {
	var rows []timesheet.Timesheet
	for day := 1; ; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if date.Month() != month {
			break
		}
		if date.Weekday() == payroll.RestDay {
			continue
		}
		rows = append(rows, timesheet.Timesheet{
			ID:          uuid.New(),
			CompanyID:   emp.CompanyID,
			EmployeeID:  emp.ID,
			Date:        date,
			HoursWorked: decimal.NewFromInt(8),
			Status:      timesheet.StatusApproved,
		})
	}
	return rows
}

func TestPayrollService_GenerateMonthly(t *testing.T) {
	ctx := context.Background()
	companyUUID := uuid.New()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	skipped := testEmployee(companyUUID, "Amira")
	generated := testEmployee(companyUUID, "Basma")
	deps.employees.findActiveByCompanyFn = func(ctx context.Context, companyID string) ([]employee.Employee, error) {
		return []employee.Employee{skipped, generated}, nil
	}
	deps.repo.existsForPeriodFn = func(ctx context.Context, companyID, employeeID string, month, year int) (bool, error) {
		return employeeID == skipped.ID.String(), nil
	}
	deps.timesheets.findByEmployeeAndPeriodFn = func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]timesheet.Timesheet, error) {
		return workedMonth(generated, 2025, time.July), nil
	}

	var created *payroll.Payroll
	var createdItems []payroll.PayrollItem
	deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
		created = p
		return nil
	}
	deps.repo.createItemsFn = func(ctx context.Context, items []payroll.PayrollItem) error {
		createdItems = items
		return nil
	}
	var run *payroll.PayrollRun
	deps.repo.createRunFn = func(ctx context.Context, r *payroll.PayrollRun) error {
		run = r
		return nil
	}

	// skipped employee rolls back, generated employee and the run commit
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	res, err := deps.service.GenerateMonthly(ctx, companyUUID.String(), payroll.GenerateMonthlyRequest{Month: 7, Year: 2025})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalGenerated)
	assert.Equal(t, 1, res.TotalSkipped)
	assert.Equal(t, 0, res.TotalErrors)
	assert.Equal(t, []string{"Basma Tester"}, res.ProcessedEmployees)
	assert.NotEmpty(t, res.PayrollRunID)

	if assert.NotNil(t, created) {
		assert.Equal(t, generated.ID, created.EmployeeID)
		assert.Equal(t, 7, created.Month)
		assert.Equal(t, 2025, created.Year)
		assert.Equal(t, payroll.StatusPending, created.Status)
		// full attendance: basic 3000 + 300 food allowance, no deductions
		assert.True(t, created.FinalAmount.Equal(decimal.NewFromInt(3300)), created.FinalAmount.String())
	}
	if assert.Len(t, createdItems, 1) {
		assert.Equal(t, payroll.ItemTypeEarnings, createdItems[0].Type)
		assert.Equal(t, "Basic Salary", createdItems[0].Description)
	}
	if assert.NotNil(t, run) {
		assert.Contains(t, run.BatchID, "BATCH_MONTHLY_7_2025_")
		assert.Equal(t, 1, run.TotalEmployees)
	}

	if assert.Len(t, deps.outbox.created, 1) {
		outboxEvent := deps.outbox.created[0]
		assert.Equal(t, events.PayrollRunCompletedTopic, outboxEvent.Topic)
		assert.Equal(t, kafka.OutboxStatusPending, outboxEvent.Status)

		var event events.PayrollRunCompletedEvent
		assert.NoError(t, json.Unmarshal(outboxEvent.Payload, &event))
		assert.Equal(t, res.PayrollRunID, event.PayrollRunID)
		assert.Equal(t, 1, event.TotalGenerated)
		assert.Equal(t, 1, event.TotalSkipped)
	}

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_GenerateMonthly_InvalidPeriod(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GenerateMonthly(ctx, companyID, payroll.GenerateMonthlyRequest{Month: 13, Year: 2025})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)

	_, err = deps.service.GenerateMonthly(ctx, companyID, payroll.GenerateMonthlyRequest{Month: 6, Year: 2019})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidYear)

	// no employee lookups, no transactions, no run rows
	assert.Equal(t, 0, deps.employees.calls)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_GenerateMonthly_PartialFailure(t *testing.T) {
	ctx := context.Background()
	companyUUID := uuid.New()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	failing := testEmployee(companyUUID, "Chafik")
	healthy := testEmployee(companyUUID, "Dalia")
	deps.employees.findActiveByCompanyFn = func(ctx context.Context, companyID string) ([]employee.Employee, error) {
		return []employee.Employee{failing, healthy}, nil
	}
	deps.timesheets.findByEmployeeAndPeriodFn = func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]timesheet.Timesheet, error) {
		if employeeID == failing.ID.String() {
			return nil, errors.New("store unavailable")
		}
		return workedMonth(healthy, 2025, time.July), nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	res, err := deps.service.GenerateMonthly(ctx, companyUUID.String(), payroll.GenerateMonthlyRequest{Month: 7, Year: 2025})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalGenerated)
	assert.Equal(t, 1, res.TotalErrors)
	if assert.Len(t, res.Errors, 1) {
		assert.Contains(t, res.Errors[0], "Chafik Tester")
		assert.Contains(t, res.Errors[0], "store unavailable")
	}
	assert.Contains(t, res.Message, "Errors: Chafik Tester")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_GenerateMonthly_DuplicateInsertCountsAsSkip(t *testing.T) {
	ctx := context.Background()
	companyUUID := uuid.New()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	emp := testEmployee(companyUUID, "Esraa")
	deps.employees.findActiveByIDsFn = func(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error) {
		return []employee.Employee{emp}, nil
	}
	deps.timesheets.findByEmployeeAndPeriodFn = func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]timesheet.Timesheet, error) {
		return workedMonth(emp, 2025, time.July), nil
	}
	// a concurrent run won the insert race
	deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_payroll_period"}
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	res, err := deps.service.GenerateMonthly(ctx, companyUUID.String(), payroll.GenerateMonthlyRequest{
		Month:       7,
		Year:        2025,
		EmployeeIDs: []string{emp.ID.String()},
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, res.TotalGenerated)
	assert.Equal(t, 1, res.TotalSkipped)
	assert.Equal(t, 0, res.TotalErrors)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_GenerateFromApproved_BucketsByMonth(t *testing.T) {
	ctx := context.Background()
	companyUUID := uuid.New()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	emp := testEmployee(companyUUID, "Farah")
	deps.employees.findActiveByCompanyFn = func(ctx context.Context, companyID string) ([]employee.Employee, error) {
		return []employee.Employee{emp}, nil
	}
	deps.timesheets.findApprovedByEmployeeFn = func(ctx context.Context, companyID, employeeID string) ([]timesheet.Timesheet, error) {
		// August first so bucket ordering has something to sort
		rows := workedMonth(emp, 2025, time.August)
		return append(rows, workedMonth(emp, 2025, time.July)...), nil
	}

	var createdPeriods []string
	deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
		createdPeriods = append(createdPeriods, p.Notes)
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	res, err := deps.service.GenerateFromApproved(ctx, companyUUID.String())

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalGenerated)
	assert.Equal(t, []string{
		"Farah Tester (7/2025)",
		"Farah Tester (8/2025)",
	}, res.ProcessedEmployees)
	assert.Equal(t, []string{
		"Generated from approved timesheets for 7/2025",
		"Generated from approved timesheets for 8/2025",
	}, createdPeriods)
	assert.Contains(t, res.Message, "Payroll generation completed successfully.")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*payroll.Payroll, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := deps.service.GetByID(ctx, uuid.New().String(), uuid.New().String())

	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
}
