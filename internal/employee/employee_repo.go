package employee

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	CreatePayroll(ctx context.Context, record *PayrollRecord) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	SyncPayrollSalary(ctx context.Context, employeeID string, salary float64) error
	Delete(ctx context.Context, id string) error
	DeletePayroll(ctx context.Context, employeeID string) error
	PayrollFor(ctx context.Context, employeeID string) (*PayrollRecord, error)
	RecentAttendance(ctx context.Context, employeeID string, limit int) ([]AttendanceEntry, error)
	RecentLeave(ctx context.Context, employeeID string, limit int) ([]LeaveEntry, error)
	ReviewsFor(ctx context.Context, employeeID string) ([]ReviewEntry, error)
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) CreatePayroll(ctx context.Context, record *PayrollRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) SyncPayrollSalary(ctx context.Context, employeeID string, salary float64) error {
	return r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Where("employee_id = ?", employeeID).
		Update("final_salary", salary).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) DeletePayroll(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).Delete(&PayrollRecord{}, "employee_id = ?", employeeID).Error
}

func (r *repository) PayrollFor(ctx context.Context, employeeID string) (*PayrollRecord, error) {
	var record PayrollRecord
	err := r.db.WithContext(ctx).First(&record, "employee_id = ?", employeeID).Error
	return &record, err
}

func (r *repository) RecentAttendance(ctx context.Context, employeeID string, limit int) ([]AttendanceEntry, error) {
	var entries []AttendanceEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *repository) RecentLeave(ctx context.Context, employeeID string, limit int) ([]LeaveEntry, error) {
	var entries []LeaveEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *repository) ReviewsFor(ctx context.Context, employeeID string) ([]ReviewEntry, error) {
	var entries []ReviewEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
