package attendance

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Status     string `json:"status" validate:"required,oneof=Present Absent"`
}

type AttendanceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name,omitempty"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}
