package security

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"secureshare/internal/domain/file"
)

type Service struct {
	repo  Repository
	files file.Repository
}

func NewService(repo Repository, files file.Repository) *Service {
	return &Service{repo: repo, files: files}
}

// RecordViolation persists a client-reported protection event. The
// write is best-effort: a failing audit sink must never break the
// viewer, so errors are logged and swallowed.
func (s *Service) RecordViolation(ctx context.Context, v *SecurityViolation) {
	v.ID = uuid.NewString()
	if v.OccurredAt.IsZero() {
		v.OccurredAt = time.Now()
	}
	if err := s.repo.CreateViolation(ctx, v); err != nil {
		log.Printf("level=error component=security event=violation_write_failed file_access_id=%s err=%v",
			v.FileAccessID, err)
	}
}

// RecordAttempt persists one redemption record, best-effort like
// RecordViolation.
func (s *Service) RecordAttempt(ctx context.Context, fileAccessID, fingerprint, ip, userAgent string) {
	s.RecordReportedAttempt(ctx, &AccessAttempt{
		FileAccessID: fileAccessID,
		Fingerprint:  fingerprint,
		IPAddress:    ip,
		UserAgent:    userAgent,
	})
}

// RecordReportedAttempt takes a full attempt record, including any
// geolocation the client supplied.
func (s *Service) RecordReportedAttempt(ctx context.Context, a *AccessAttempt) {
	a.ID = uuid.NewString()
	if a.AttemptedAt.IsZero() {
		a.AttemptedAt = time.Now()
	}
	if err := s.repo.CreateAttempt(ctx, a); err != nil {
		log.Printf("level=error component=security event=attempt_write_failed file_access_id=%s err=%v",
			a.FileAccessID, err)
	}
}

func (s *Service) ListViolations(ctx context.Context, ownerID, fileID string) ([]*SecurityViolation, error) {
	if err := s.checkOwner(ctx, ownerID, fileID); err != nil {
		return nil, err
	}
	return s.repo.ListViolationsByFile(ctx, fileID)
}

func (s *Service) ListAttempts(ctx context.Context, ownerID, fileID string) ([]*AccessAttempt, error) {
	if err := s.checkOwner(ctx, ownerID, fileID); err != nil {
		return nil, err
	}
	return s.repo.ListAttemptsByFile(ctx, fileID)
}

func (s *Service) checkOwner(ctx context.Context, ownerID, fileID string) error {
	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	if f.OwnerID != ownerID {
		return file.ErrNotOwner
	}
	return nil
}
