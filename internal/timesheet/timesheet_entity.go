package timesheet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPending         = "pending"
	StatusApproved        = "approved"
	StatusManagerApproved = "manager_approved"
	StatusRejected        = "rejected"
)

// ApprovedStatuses are the states payroll generation accepts as a signed-off
// daily record.
var ApprovedStatuses = []string{StatusApproved, StatusManagerApproved}

type Timesheet struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index:idx_employee_date,unique"`
	EmployeeID    uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;index:idx_employee_date,unique"`
	Date          time.Time       `gorm:"column:date;type:date;not null;index:idx_employee_date,unique"`
	HoursWorked   decimal.Decimal `gorm:"column:hours_worked;type:numeric(5,2);not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"column:overtime_hours;type:numeric(5,2);not null;default:0"`
	Status        string          `gorm:"column:status;type:varchar(30);not null;default:pending;index"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"column:deleted_at;index"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}
