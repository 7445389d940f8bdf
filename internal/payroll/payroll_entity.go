package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusPaid     = "paid"

	ItemTypeEarnings = "earnings"
	ItemTypeOvertime = "overtime"

	DefaultCurrency = "SAR"
)

type Payroll struct {
	ID         uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID    `gorm:"column:company_id;type:uuid;not null;index:idx_payroll_period,unique"`
	EmployeeID uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;index:idx_payroll_period,unique"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	// Period key: at most one payroll per (company, employee, month, year).
	Month int `gorm:"column:month;not null;index:idx_payroll_period,unique"`
	Year  int `gorm:"column:year;not null;index:idx_payroll_period,unique"`

	BaseSalary       decimal.Decimal `gorm:"column:base_salary;type:numeric(12,2);not null;default:0"`
	OvertimeAmount   decimal.Decimal `gorm:"column:overtime_amount;type:numeric(12,2);not null;default:0"`
	BonusAmount      decimal.Decimal `gorm:"column:bonus_amount;type:numeric(12,2);not null;default:0"`
	DeductionAmount  decimal.Decimal `gorm:"column:deduction_amount;type:numeric(12,2);not null;default:0"`
	AdvanceDeduction decimal.Decimal `gorm:"column:advance_deduction;type:numeric(12,2);not null;default:0"`
	FinalAmount      decimal.Decimal `gorm:"column:final_amount;type:numeric(12,2);not null;default:0"`
	TotalWorkedHours decimal.Decimal `gorm:"column:total_worked_hours;type:numeric(7,2);not null;default:0"`
	OvertimeHours    decimal.Decimal `gorm:"column:overtime_hours;type:numeric(7,2);not null;default:0"`

	Status   string `gorm:"column:status;type:varchar(20);not null;default:pending;index"`
	Currency string `gorm:"column:currency;type:varchar(3);not null;default:SAR"`
	Notes    string `gorm:"column:notes;type:text"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Items []PayrollItem `gorm:"foreignKey:PayrollID"`
}

func (Payroll) TableName() string {
	return "payrolls"
}

type PayrollItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollID   uuid.UUID       `gorm:"column:payroll_id;type:uuid;not null;index"`
	Type        string          `gorm:"column:type;type:varchar(20);not null"`
	Description string          `gorm:"column:description;type:varchar(200);not null"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null;default:0"`
	Order       int             `gorm:"column:item_order;not null;default:1"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (PayrollItem) TableName() string {
	return "payroll_items"
}

type PayrollRun struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	BatchID        string    `gorm:"column:batch_id;type:varchar(100);not null;uniqueIndex"`
	RunDate        time.Time `gorm:"column:run_date;not null"`
	Status         string    `gorm:"column:status;type:varchar(20);not null;default:pending"`
	TotalEmployees int       `gorm:"column:total_employees;not null;default:0"`
	Notes          string    `gorm:"column:notes;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

type EmployeeRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
