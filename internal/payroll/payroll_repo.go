package payroll

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListRows(ctx context.Context) ([]PayrollRow, error)
	RowFor(ctx context.Context, employeeID string) (*PayrollRow, error)
	StorePayslip(ctx context.Context, slip *Payslip) error
	LatestPayslip(ctx context.Context, employeeID string) (*Payslip, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRows(ctx context.Context) ([]PayrollRow, error) {
	query := `
SELECT
	p.employee_id,
	e.name,
	e.position,
	p.hours_worked,
	p.leave_deductions,
	p.final_salary
FROM payroll p
JOIN employees e ON e.id = p.employee_id
ORDER BY e.name ASC
`
	var rows []PayrollRow
	err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error
	return rows, err
}

func (r *repository) RowFor(ctx context.Context, employeeID string) (*PayrollRow, error) {
	query := `
SELECT
	p.employee_id,
	e.name,
	e.position,
	p.hours_worked,
	p.leave_deductions,
	p.final_salary
FROM payroll p
JOIN employees e ON e.id = p.employee_id
WHERE p.employee_id = ?
`
	var row PayrollRow
	res := r.db.WithContext(ctx).Raw(query, employeeID).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *repository) StorePayslip(ctx context.Context, slip *Payslip) error {
	return r.db.WithContext(ctx).Create(slip).Error
}

func (r *repository) LatestPayslip(ctx context.Context, employeeID string) (*Payslip, error) {
	var slip Payslip
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("generated_at DESC").
		First(&slip).Error
	return &slip, err
}
