package payroll

type BreakdownResponse struct {
	EmployeeID      string  `json:"employee_id"`
	Name            string  `json:"name,omitempty"`
	Position        string  `json:"position,omitempty"`
	HoursWorked     float64 `json:"hours_worked"`
	LeaveDeductions int     `json:"leave_deductions"`
	FinalSalary     float64 `json:"final_salary"`
	HourlyRate      float64 `json:"hourly_rate"`
	LeaveHours      float64 `json:"leave_hours"`
	LeaveDeduction  float64 `json:"leave_deduction"`
	NetPay          float64 `json:"net_pay"`
}

type PayslipRequestedResponse struct {
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status"`
}
