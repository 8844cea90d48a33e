package leave

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, req *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindRows(ctx context.Context, employeeID string) ([]LeaveRow, error)
	ExistsForEmployeeDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) error
	AttendanceExists(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error)
	InsertAttendance(ctx context.Context, employeeID uuid.UUID, date time.Time, status string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindRows(ctx context.Context, employeeID string) ([]LeaveRow, error) {
	query := `
SELECT
	l.id,
	l.employee_id,
	e.name,
	l.date,
	l.reason,
	l.status,
	l.created_at
FROM leave_requests l
JOIN employees e ON e.id = l.employee_id
`
	args := []interface{}{}
	if employeeID != "" {
		query += "WHERE l.employee_id = ?\n"
		args = append(args, employeeID)
	}
	query += "ORDER BY l.created_at DESC"

	var rows []LeaveRow
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	return rows, err
}

func (r *repository) ExistsForEmployeeDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ? AND date = ?", employeeID, date).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": gorm.Expr("now()")}).Error
}

func (r *repository) AttendanceExists(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("attendance").
		Where("employee_id = ? AND date = ?", employeeID, date).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) InsertAttendance(ctx context.Context, employeeID uuid.UUID, date time.Time, status string) error {
	query := `
        INSERT INTO attendance (id, employee_id, date, status)
        VALUES (?, ?, ?, ?)
    `
	return r.db.WithContext(ctx).Exec(query, uuid.New(), employeeID, date, status).Error
}
