package security

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateViolation(ctx context.Context, v *SecurityViolation) error
	ListViolationsByFile(ctx context.Context, fileID string) ([]*SecurityViolation, error)
	CreateAttempt(ctx context.Context, a *AccessAttempt) error
	ListAttemptsByFile(ctx context.Context, fileID string) ([]*AccessAttempt, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateViolation(ctx context.Context, v *SecurityViolation) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// ListViolationsByFile aggregates across every share issued for the
// file, joining through file_access.
func (r *repository) ListViolationsByFile(ctx context.Context, fileID string) ([]*SecurityViolation, error) {
	var violations []*SecurityViolation
	err := r.db.WithContext(ctx).
		Joins("JOIN file_access ON file_access.id = security_violations.file_access_id").
		Where("file_access.file_id = ?", fileID).
		Order("security_violations.occurred_at DESC").
		Find(&violations).Error
	return violations, err
}

func (r *repository) CreateAttempt(ctx context.Context, a *AccessAttempt) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) ListAttemptsByFile(ctx context.Context, fileID string) ([]*AccessAttempt, error) {
	var attempts []*AccessAttempt
	err := r.db.WithContext(ctx).
		Joins("JOIN file_access ON file_access.id = access_attempts.file_access_id").
		Where("file_access.file_id = ?", fileID).
		Order("access_attempts.attempted_at DESC").
		Find(&attempts).Error
	return attempts, err
}
