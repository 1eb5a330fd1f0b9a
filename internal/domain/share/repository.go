package share

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, s *ShareAccess) error
	GetByID(ctx context.Context, id string) (*ShareAccess, error)
	GetByToken(ctx context.Context, token string) (*ShareAccess, error)
	ListByFile(ctx context.Context, fileID string) ([]*ShareAccess, error)
	Revoke(ctx context.Context, id string, now time.Time) error
	RevokeAllForFile(ctx context.Context, fileID string, now time.Time) error
	ConsumeDownload(ctx context.Context, id string) (bool, error)
	RecordView(ctx context.Context, fileAccessID, sessionID string, now time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *ShareAccess) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*ShareAccess, error) {
	var s ShareAccess
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShareNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) GetByToken(ctx context.Context, token string) (*ShareAccess, error) {
	var s ShareAccess
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShareNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListByFile(ctx context.Context, fileID string) ([]*ShareAccess, error) {
	var shares []*ShareAccess
	err := r.db.WithContext(ctx).
		Where("file_id = ?", fileID).
		Order("created_at DESC").
		Find(&shares).Error
	return shares, err
}

// Revoke is idempotent: a share that is already revoked is left
// untouched, keeping the original revocation time.
func (r *repository) Revoke(ctx context.Context, id string, now time.Time) error {
	return r.db.WithContext(ctx).Model(&ShareAccess{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now).Error
}

func (r *repository) RevokeAllForFile(ctx context.Context, fileID string, now time.Time) error {
	return r.db.WithContext(ctx).Model(&ShareAccess{}).
		Where("file_id = ? AND revoked_at IS NULL", fileID).
		Update("revoked_at", now).Error
}

// ConsumeDownload performs the quota check and the increment as one
// conditional UPDATE, so concurrent downloads can never both pass a
// read-then-write check. Returns false when the quota is exhausted.
func (r *repository) ConsumeDownload(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&ShareAccess{}).
		Where("id = ? AND revoked_at IS NULL AND (download_limit = 0 OR downloads_used < download_limit)", id).
		UpdateColumn("downloads_used", gorm.Expr("downloads_used + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// RecordView inserts the (share, session) idempotency row and bumps
// view_count only when this session has not been counted before.
// Returns whether the view was counted.
func (r *repository) RecordView(ctx context.Context, fileAccessID, sessionID string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&FileView{
			FileAccessID: fileAccessID,
			SessionID:    sessionID,
			ViewedAt:     now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	err := r.db.WithContext(ctx).Model(&ShareAccess{}).
		Where("id = ?", fileAccessID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	return true, err
}
