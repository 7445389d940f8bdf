package employee

type EmployeeResponse struct {
	ID                     string `json:"id"`
	CompanyID              string `json:"company_id"`
	FileNumber             string `json:"file_number,omitempty"`
	FirstName              string `json:"first_name"`
	LastName               string `json:"last_name"`
	Status                 string `json:"status"`
	BasicSalary            string `json:"basic_salary"`
	ContractDaysPerMonth   int    `json:"contract_days_per_month"`
	ContractHoursPerDay    int    `json:"contract_hours_per_day"`
	OvertimeRateMultiplier string `json:"overtime_rate_multiplier"`
	OvertimeFixedRate      string `json:"overtime_fixed_rate"`
	FoodAllowance          string `json:"food_allowance"`
	HousingAllowance       string `json:"housing_allowance"`
	TransportAllowance     string `json:"transport_allowance"`
}
