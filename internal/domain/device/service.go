package device

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type BindStatus string

const (
	// StatusBound means this call created the binding.
	StatusBound BindStatus = "bound"
	// StatusVerified means the binding already existed and matched.
	StatusVerified BindStatus = "verified"
)

type BindOutcome struct {
	Status  BindStatus     `json:"status"`
	Binding *DeviceBinding `json:"binding"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// BindOrVerify claims the share for the given device, or checks the
// device against the existing claim. The first device to call wins;
// every later call either verifies or fails with ErrDeviceMismatch.
func (s *Service) BindOrVerify(ctx context.Context, fileAccessID, fingerprint string) (*BindOutcome, error) {
	now := time.Now()
	binding := &DeviceBinding{
		ID:             uuid.NewString(),
		FileAccessID:   fileAccessID,
		Fingerprint:    fingerprint,
		FirstAccessAt:  now,
		LastAccessedAt: now,
	}

	inserted, err := s.repo.InsertIfAbsent(ctx, binding)
	if err != nil {
		return nil, err
	}
	if inserted {
		return &BindOutcome{Status: StatusBound, Binding: binding}, nil
	}

	existing, err := s.repo.GetByAccessID(ctx, fileAccessID)
	if err != nil {
		return nil, err
	}
	if existing.Fingerprint != fingerprint {
		return nil, ErrDeviceMismatch
	}
	if err := s.repo.TouchLastAccess(ctx, fileAccessID, now); err != nil {
		return nil, err
	}
	existing.LastAccessedAt = now
	return &BindOutcome{Status: StatusVerified, Binding: existing}, nil
}

// Check reports whether the device matches the binding without ever
// creating one. An unbound share matches any device.
func (s *Service) Check(ctx context.Context, fileAccessID, fingerprint string) (bool, error) {
	existing, err := s.repo.GetByAccessID(ctx, fileAccessID)
	if err == ErrBindingNotFound {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return existing.Fingerprint == fingerprint, nil
}

func (s *Service) History(ctx context.Context, fileAccessID string) ([]*DeviceBinding, error) {
	return s.repo.ListByAccessID(ctx, fileAccessID)
}
