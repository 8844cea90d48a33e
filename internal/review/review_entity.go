package review

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid"`
	ReviewText string    `gorm:"type:text"`
	CreatedAt  time.Time
}

func (Review) TableName() string {
	return "employee_reviews"
}
