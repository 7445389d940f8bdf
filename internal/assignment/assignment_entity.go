package assignment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EntityTypeEquipment = "equipment"
	EntityTypeEmployee  = "employee"

	KindRental  = "rental"
	KindProject = "project"
	KindManual  = "manual"

	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// The same logical assignment lives in one of four tables depending on its
// kind and entity type. RentalHistory carries both rental and manual
// equipment assignments; the kind column tells them apart.

type RentalHistory struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID           `gorm:"column:company_id;type:uuid;not null;index"`
	EquipmentID uuid.UUID           `gorm:"column:equipment_id;type:uuid;not null;index"`
	RentalID    *uuid.UUID          `gorm:"column:rental_id;type:uuid"`
	ProjectID   *uuid.UUID          `gorm:"column:project_id;type:uuid"`
	EmployeeID  *uuid.UUID          `gorm:"column:employee_id;type:uuid"`
	Kind        string              `gorm:"column:assignment_type;type:varchar(20);not null"`
	StartDate   time.Time           `gorm:"column:start_date;type:date;not null"`
	EndDate     *time.Time          `gorm:"column:end_date;type:date"`
	Status      string              `gorm:"column:status;type:varchar(20);not null;default:active;index"`
	Notes       string              `gorm:"column:notes;type:text"`
	DailyRate   decimal.NullDecimal `gorm:"column:daily_rate;type:numeric(10,2)"`
	TotalAmount decimal.NullDecimal `gorm:"column:total_amount;type:numeric(12,2)"`
	CreatedAt   time.Time           `gorm:"column:created_at"`
	UpdatedAt   time.Time           `gorm:"column:updated_at"`
}

func (RentalHistory) TableName() string {
	return "equipment_rental_history"
}

type ProjectEquipment struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	ProjectID   uuid.UUID       `gorm:"column:project_id;type:uuid;not null;index"`
	EquipmentID uuid.UUID       `gorm:"column:equipment_id;type:uuid;not null;index"`
	OperatorID  *uuid.UUID      `gorm:"column:operator_id;type:uuid"`
	StartDate   time.Time       `gorm:"column:start_date;type:date;not null"`
	EndDate     *time.Time      `gorm:"column:end_date;type:date"`
	HourlyRate  decimal.Decimal `gorm:"column:hourly_rate;type:numeric(10,2);not null;default:0"`
	Status      string          `gorm:"column:status;type:varchar(20);not null;default:active;index"`
	Notes       string          `gorm:"column:notes;type:text"`
	AssignedBy  *uuid.UUID      `gorm:"column:assigned_by;type:uuid"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (ProjectEquipment) TableName() string {
	return "project_equipment"
}

// RentalItem is the rental line-item representation. Completion is recorded
// in completed_date, not end_date.
type RentalItem struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID           `gorm:"column:company_id;type:uuid;not null;index"`
	RentalID      uuid.UUID           `gorm:"column:rental_id;type:uuid;not null;index"`
	EquipmentID   uuid.UUID           `gorm:"column:equipment_id;type:uuid;not null;index"`
	UnitPrice     decimal.NullDecimal `gorm:"column:unit_price;type:numeric(10,2)"`
	TotalPrice    decimal.NullDecimal `gorm:"column:total_price;type:numeric(12,2)"`
	Status        string              `gorm:"column:status;type:varchar(20);not null;default:active;index"`
	CompletedDate *time.Time          `gorm:"column:completed_date;type:date"`
	Notes         string              `gorm:"column:notes;type:text"`
	CreatedAt     time.Time           `gorm:"column:created_at"`
	UpdatedAt     time.Time           `gorm:"column:updated_at"`
}

func (RentalItem) TableName() string {
	return "rental_items"
}

type EmployeeAssignment struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index"`
	ProjectID  *uuid.UUID `gorm:"column:project_id;type:uuid"`
	RentalID   *uuid.UUID `gorm:"column:rental_id;type:uuid"`
	Name       string     `gorm:"column:name;type:varchar(200);not null"`
	Kind       string     `gorm:"column:type;type:varchar(20);not null"`
	Location   string     `gorm:"column:location;type:varchar(200)"`
	StartDate  time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate    *time.Time `gorm:"column:end_date;type:date"`
	Status     string     `gorm:"column:status;type:varchar(20);not null;default:active;index"`
	Notes      string     `gorm:"column:notes;type:text"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (EmployeeAssignment) TableName() string {
	return "employee_assignments"
}
