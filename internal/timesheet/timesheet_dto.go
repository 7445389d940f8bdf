package timesheet

type BulkEntry struct {
	EmployeeID    string  `json:"employee_id" binding:"required,uuid"`
	Date          string  `json:"date" binding:"required"`
	HoursWorked   float64 `json:"hours_worked" binding:"min=0"`
	OvertimeHours float64 `json:"overtime_hours" binding:"min=0"`
	Status        string  `json:"status" binding:"omitempty,oneof=pending approved manager_approved rejected"`
}

type BulkSubmitRequest struct {
	Entries []BulkEntry `json:"entries" binding:"required,min=1,dive"`
}

type BulkSubmitResponse struct {
	Submitted int `json:"submitted"`
}
