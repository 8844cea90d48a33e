package attendance

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, record *Attendance) error
	ListRecent(ctx context.Context, limit int) ([]AttendanceRow, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]AttendanceRow, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, record *Attendance) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]AttendanceRow, error) {
	query := `
SELECT
	a.id,
	a.employee_id,
	e.name,
	a.date,
	a.status
FROM attendance a
JOIN employees e ON e.id = a.employee_id
ORDER BY a.date DESC, e.name ASC
LIMIT ?
`
	var rows []AttendanceRow
	err := r.db.WithContext(ctx).Raw(query, limit).Scan(&rows).Error
	return rows, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]AttendanceRow, error) {
	query := `
SELECT
	a.id,
	a.employee_id,
	e.name,
	a.date,
	a.status
FROM attendance a
JOIN employees e ON e.id = a.employee_id
WHERE a.employee_id = ?
ORDER BY a.date DESC
`
	var rows []AttendanceRow
	err := r.db.WithContext(ctx).Raw(query, employeeID).Scan(&rows).Error
	return rows, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
