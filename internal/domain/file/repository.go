package file

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, f *File) error
	GetByID(ctx context.Context, id string) (*File, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*File, error)
	SoftDelete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
	ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]*File, error)
	ListAll(ctx context.Context) ([]*File, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*File, error) {
	var f File
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID string) ([]*File, error) {
	var files []*File
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&File{}).Error
}

func (r *repository) HardDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&File{}).Error
}

// ListDeletedBefore returns tombstoned rows older than cutoff, for the
// reconcile job.
func (r *repository) ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]*File, error) {
	var files []*File
	err := r.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Find(&files).Error
	return files, err
}

func (r *repository) ListAll(ctx context.Context) ([]*File, error) {
	var files []*File
	err := r.db.WithContext(ctx).Find(&files).Error
	return files, err
}
