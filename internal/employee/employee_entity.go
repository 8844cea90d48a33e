package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string
	Position          string
	Department        string
	Salary            float64 `gorm:"type:numeric(12,2)"`
	EmploymentHistory string  `gorm:"type:text"`
	Contact           string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Employee) TableName() string {
	return "employees"
}

// PayrollRecord is the paired row: created with its employee, final_salary
// re-synced on every salary edit, deleted with its employee.
type PayrollRecord struct {
	EmployeeID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	HoursWorked     float64   `gorm:"type:numeric(6,2)"`
	LeaveDeductions int
	FinalSalary     float64 `gorm:"type:numeric(12,2)"`
	UpdatedAt       time.Time
}

func (PayrollRecord) TableName() string {
	return "payroll"
}

const (
	DefaultHoursWorked     = 160
	DefaultLeaveDeductions = 0
)

// Read models for the detail view; they map onto tables owned by other
// modules and are never written through.

type AttendanceEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date   time.Time `gorm:"type:date"`
	Status string
}

func (AttendanceEntry) TableName() string {
	return "attendance"
}

type LeaveEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date   time.Time `gorm:"type:date"`
	Reason string
	Status string
}

func (LeaveEntry) TableName() string {
	return "leave_requests"
}

type ReviewEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReviewText string
	CreatedAt  time.Time
}

func (ReviewEntry) TableName() string {
	return "employee_reviews"
}
