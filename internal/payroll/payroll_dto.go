package payroll

type GenerateMonthlyRequest struct {
	Month       int      `json:"month" binding:"required"`
	Year        int      `json:"year" binding:"required"`
	EmployeeIDs []string `json:"employee_ids" binding:"omitempty,dive,uuid"`
}

// GenerationResult summarizes one generation invocation. The run is created
// even when some employees failed; Errors carries the per-employee messages.
type GenerationResult struct {
	Month              int      `json:"month,omitempty"`
	Year               int      `json:"year,omitempty"`
	TotalGenerated     int      `json:"total_generated"`
	ProcessedEmployees []string `json:"processed_employees"`
	TotalSkipped       int      `json:"total_skipped_employees"`
	TotalErrors        int      `json:"total_errors"`
	Errors             []string `json:"errors"`
	Message            string   `json:"message"`
	PayrollRunID       string   `json:"payroll_run_id"`
}

type PayrollItemResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Order       int    `json:"order"`
}

type PayrollResponse struct {
	ID               string                `json:"id"`
	CompanyID        string                `json:"company_id"`
	EmployeeID       string                `json:"employee_id"`
	Month            int                   `json:"month"`
	Year             int                   `json:"year"`
	BaseSalary       string                `json:"base_salary"`
	OvertimeAmount   string                `json:"overtime_amount"`
	BonusAmount      string                `json:"bonus_amount"`
	DeductionAmount  string                `json:"deduction_amount"`
	AdvanceDeduction string                `json:"advance_deduction"`
	FinalAmount      string                `json:"final_amount"`
	TotalWorkedHours string                `json:"total_worked_hours"`
	OvertimeHours    string                `json:"overtime_hours"`
	Status           string                `json:"status"`
	Currency         string                `json:"currency"`
	Notes            string                `json:"notes,omitempty"`
	Items            []PayrollItemResponse `json:"items,omitempty"`
}
