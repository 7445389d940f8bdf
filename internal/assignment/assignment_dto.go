package assignment

import "github.com/shopspring/decimal"

type CreateAssignmentRequest struct {
	EntityType string `json:"entity_type" binding:"required,oneof=equipment employee"`
	EntityID   string `json:"entity_id" binding:"required,uuid"`
	Kind       string `json:"kind" binding:"required,oneof=rental project manual"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"omitempty"`
	Status     string `json:"status" binding:"omitempty,oneof=active completed pending"`
	Notes      string `json:"notes" binding:"omitempty,max=2000"`

	// Display fields for employee assignments; derived from the kind when
	// not supplied.
	Name     string `json:"name" binding:"omitempty,max=200"`
	Location string `json:"location" binding:"omitempty,max=200"`

	// Kind-specific context.
	RentalID      string          `json:"rental_id" binding:"omitempty,uuid"`
	ProjectID     string          `json:"project_id" binding:"omitempty,uuid"`
	OperatorID    string          `json:"operator_id" binding:"omitempty,uuid"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	EquipmentName string          `json:"equipment_name" binding:"omitempty,max=200"`
}

type CompleteAssignmentRequest struct {
	EndDate string `json:"end_date" binding:"omitempty"`
}

type VacationRequest struct {
	EmployeeID        string `json:"employee_id" binding:"required,uuid"`
	VacationStartDate string `json:"vacation_start_date" binding:"required"`
}

type ExitRequest struct {
	EmployeeID      string `json:"employee_id" binding:"required,uuid"`
	LastWorkingDate string `json:"last_working_date" binding:"required"`
}

// AssignmentResponse is the representation-neutral view returned by the
// engine; Representation names the physical table backing this record.
type AssignmentResponse struct {
	ID             string `json:"id"`
	Representation string `json:"representation"`
	EntityType     string `json:"entity_type"`
	EntityID       string `json:"entity_id"`
	Kind           string `json:"kind"`
	Name           string `json:"name,omitempty"`
	Location       string `json:"location,omitempty"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date,omitempty"`
	Status         string `json:"status"`
	Notes          string `json:"notes,omitempty"`
}

type EntityAssignmentsResponse struct {
	EntityType  string               `json:"entity_type"`
	EntityID    string               `json:"entity_id"`
	Assignments []AssignmentResponse `json:"assignments"`
}

const (
	RepresentationRentalHistory      = "rental_history"
	RepresentationProjectEquipment   = "project_equipment"
	RepresentationRentalItem         = "rental_item"
	RepresentationEmployeeAssignment = "employee_assignment"
)
