package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusActive   = "active"
	StatusOnLeave  = "on_leave"
	StatusInactive = "inactive"
	StatusExited   = "exited"
)

type Employee struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	FileNumber string   `gorm:"column:file_number;type:varchar(30)"`
	FirstName  string   `gorm:"column:first_name;type:varchar(100);not null"`
	LastName   string   `gorm:"column:last_name;type:varchar(100);not null"`
	Status     string   `gorm:"column:status;type:varchar(20);not null;default:active;index"`

	// Contract snapshot consumed by payroll generation.
	BasicSalary            decimal.Decimal `gorm:"column:basic_salary;type:numeric(12,2);not null;default:0"`
	ContractDaysPerMonth   int             `gorm:"column:contract_days_per_month;not null;default:30"`
	ContractHoursPerDay    int             `gorm:"column:contract_hours_per_day;not null;default:8"`
	OvertimeRateMultiplier decimal.Decimal `gorm:"column:overtime_rate_multiplier;type:numeric(5,2);not null;default:0"`
	OvertimeFixedRate      decimal.Decimal `gorm:"column:overtime_fixed_rate;type:numeric(10,2);not null;default:0"`
	FoodAllowance          decimal.Decimal `gorm:"column:food_allowance;type:numeric(10,2);not null;default:0"`
	HousingAllowance       decimal.Decimal `gorm:"column:housing_allowance;type:numeric(10,2);not null;default:0"`
	TransportAllowance     decimal.Decimal `gorm:"column:transport_allowance;type:numeric(10,2);not null;default:0"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
