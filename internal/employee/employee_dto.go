package employee

// Create/update requests use validate tags checked in the service so every
// violation is reported at once, not just the first bind failure.

type CreateEmployeeRequest struct {
	Name              string  `json:"name" validate:"required"`
	Position          string  `json:"position" validate:"required"`
	Department        string  `json:"department" validate:"required"`
	Salary            float64 `json:"salary" validate:"required,gt=0"`
	EmploymentHistory string  `json:"employment_history"`
	Contact           string  `json:"contact" validate:"required,email"`
}

type UpdateEmployeeRequest struct {
	Name              string  `json:"name" validate:"required"`
	Position          string  `json:"position" validate:"required"`
	Department        string  `json:"department" validate:"required"`
	Salary            float64 `json:"salary" validate:"required,gt=0"`
	EmploymentHistory string  `json:"employment_history"`
	Contact           string  `json:"contact" validate:"required,email"`
}

type EmployeeResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Position          string  `json:"position"`
	Department        string  `json:"department"`
	Salary            float64 `json:"salary"`
	EmploymentHistory string  `json:"employment_history,omitempty"`
	Contact           string  `json:"contact"`
}

type EmployeeOptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PayrollRecordResponse struct {
	HoursWorked     float64 `json:"hours_worked"`
	LeaveDeductions int     `json:"leave_deductions"`
	FinalSalary     float64 `json:"final_salary"`
}

type AttendanceEntryResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

type LeaveEntryResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
	Status string `json:"status"`
}

type ReviewEntryResponse struct {
	ID         string `json:"id"`
	ReviewText string `json:"review_text"`
	CreatedAt  string `json:"created_at"`
}

type EmployeeDetailResponse struct {
	Employee   EmployeeResponse          `json:"employee"`
	Payroll    *PayrollRecordResponse    `json:"payroll,omitempty"`
	Attendance []AttendanceEntryResponse `json:"attendance"`
	Leave      []LeaveEntryResponse      `json:"leave"`
	Reviews    []ReviewEntryResponse     `json:"reviews"`
}
