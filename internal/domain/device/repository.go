package device

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

type Repository interface {
	InsertIfAbsent(ctx context.Context, b *DeviceBinding) (bool, error)
	GetByAccessID(ctx context.Context, fileAccessID string) (*DeviceBinding, error)
	TouchLastAccess(ctx context.Context, fileAccessID string, now time.Time) error
	ListByAccessID(ctx context.Context, fileAccessID string) ([]*DeviceBinding, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// InsertIfAbsent writes the binding only when no binding exists for
// the share yet. The uniqueness invariant lives in the store (unique
// index on file_access_id), so two concurrent first redemptions
// cannot both win. Returns whether this call created the binding.
func (r *repository) InsertIfAbsent(ctx context.Context, b *DeviceBinding) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "file_access_id"}},
			DoNothing: true,
		}).
		Create(b)
	if res.Error != nil {
		// Postgres may still surface the race as a unique violation.
		var pgErr *pgconn.PgError
		if errors.As(res.Error, &pgErr) && pgErr.Code == pgUniqueViolation {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) GetByAccessID(ctx context.Context, fileAccessID string) (*DeviceBinding, error) {
	var b DeviceBinding
	err := r.db.WithContext(ctx).Where("file_access_id = ?", fileAccessID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBindingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) TouchLastAccess(ctx context.Context, fileAccessID string, now time.Time) error {
	return r.db.WithContext(ctx).Model(&DeviceBinding{}).
		Where("file_access_id = ?", fileAccessID).
		UpdateColumn("last_accessed_at", now).Error
}

func (r *repository) ListByAccessID(ctx context.Context, fileAccessID string) ([]*DeviceBinding, error) {
	var bindings []*DeviceBinding
	err := r.db.WithContext(ctx).
		Where("file_access_id = ?", fileAccessID).
		Order("first_access_at ASC").
		Find(&bindings).Error
	return bindings, err
}
