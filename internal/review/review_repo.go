package review

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, rec *Review) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Review, error)
	Delete(ctx context.Context, id string) (int64, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rec *Review) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Review{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
