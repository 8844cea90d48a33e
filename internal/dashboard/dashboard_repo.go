package dashboard

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ActivityRow struct {
	Kind   string
	Name   string
	Date   time.Time
	Status string
}

type Repository interface {
	EmployeeCount(ctx context.Context) (int64, error)
	PendingLeaveCount(ctx context.Context) (int64, error)
	AbsentCountOn(ctx context.Context, day time.Time) (int64, error)
	RecentActivity(ctx context.Context, limit int) ([]ActivityRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) EmployeeCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("employees").Count(&count).Error
	return count, err
}

func (r *repository) PendingLeaveCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Where("status = ?", "Pending").
		Count(&count).Error
	return count, err
}

func (r *repository) AbsentCountOn(ctx context.Context, day time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("attendance").
		Where("date = ? AND status = ?", day.Format("2006-01-02"), "Absent").
		Count(&count).Error
	return count, err
}

func (r *repository) RecentActivity(ctx context.Context, limit int) ([]ActivityRow, error) {
	query := `
SELECT kind, name, date, status FROM (
	SELECT 'leave' AS kind, e.name, l.date, l.status, l.created_at
	FROM leave_requests l
	JOIN employees e ON e.id = l.employee_id
	UNION ALL
	SELECT 'attendance' AS kind, e.name, a.date, a.status, a.created_at
	FROM attendance a
	JOIN employees e ON e.id = a.employee_id
) activity
ORDER BY created_at DESC
LIMIT ?
`
	var rows []ActivityRow
	err := r.db.WithContext(ctx).Raw(query, limit).Scan(&rows).Error
	return rows, err
}
