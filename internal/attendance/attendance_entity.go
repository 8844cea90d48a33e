package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

type Attendance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid"`
	Date       time.Time `gorm:"type:date"`
	Status     string
	CreatedAt  time.Time
}

func (Attendance) TableName() string {
	return "attendance"
}

// AttendanceRow joins the record with the employee's name for listings.
type AttendanceRow struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	Name       string
	Date       time.Time
	Status     string
}
