package payroll

import (
	"time"

	"github.com/google/uuid"
)

type Payroll struct {
	EmployeeID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	HoursWorked     float64   `gorm:"type:numeric(6,2)"`
	LeaveDeductions int
	FinalSalary     float64 `gorm:"type:numeric(12,2)"`
	UpdatedAt       time.Time
}

func (Payroll) TableName() string {
	return "payroll"
}

// PayrollRow is the register listing row, payroll joined with the
// employee's name and position.
type PayrollRow struct {
	EmployeeID      uuid.UUID
	Name            string
	Position        string
	HoursWorked     float64
	LeaveDeductions int
	FinalSalary     float64
}

type Payslip struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid"`
	PDF         []byte    `gorm:"column:pdf;type:bytea"`
	GeneratedAt time.Time
}

func (Payslip) TableName() string {
	return "payslips"
}
