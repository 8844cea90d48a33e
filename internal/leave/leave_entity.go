package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusDenied   = "Denied"
)

const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid"`
	Date       time.Time `gorm:"type:date"`
	Reason     string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveRow is a request joined with the employee's name for listings.
type LeaveRow struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	Name       string
	Date       time.Time
	Reason     string
	Status     string
	CreatedAt  time.Time
}
