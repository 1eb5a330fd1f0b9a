package share

import (
	"context"
	"errors"
	"time"

	"secureshare/internal/domain/device"
	"secureshare/internal/domain/file"
)

// deviceLedger is the slice of the device service the gate needs.
type deviceLedger interface {
	BindOrVerify(ctx context.Context, fileAccessID, fingerprint string) (*device.BindOutcome, error)
}

// urlSigner mints short-lived retrieval URLs for granted blobs.
type urlSigner interface {
	SignedURL(path string, ttl time.Duration) string
}

// Access is a share that passed validation together with its file.
type Access struct {
	Share *ShareAccess `json:"share"`
	File  *file.File   `json:"file"`
}

// Grant is a fully authorized view or download: the visitor holds a
// valid share, the device check passed, and for downloads a quota
// slot has been consumed.
type Grant struct {
	Access
	SignedURL   string `json:"signed_url"`
	ViewCounted bool   `json:"view_counted"`
}

// Gate validates share tokens presented by anonymous visitors and
// turns them into grants. Checks always run in the same order:
// existence, revocation, expiry, then role and quota for downloads,
// then the device binding. The first failure wins, so a link that is
// both revoked and expired always reports revoked.
type Gate struct {
	shares  Repository
	files   file.Repository
	devices deviceLedger
	signer  urlSigner
	urlTTL  time.Duration
}

func NewGate(shares Repository, files file.Repository, devices deviceLedger, signer urlSigner, urlTTL time.Duration) *Gate {
	return &Gate{shares: shares, files: files, devices: devices, signer: signer, urlTTL: urlTTL}
}

// Resolve validates the token and binds (or verifies) the device
// without counting a view or consuming quota. This backs the initial
// load of the shared page.
func (g *Gate) Resolve(ctx context.Context, tok, fingerprint string) (*Access, error) {
	return g.admit(ctx, tok, fingerprint, false)
}

// GrantView authorizes viewing the file and counts the view at most
// once per (share, session) pair. Reloads with the same session id
// return ViewCounted = false.
func (g *Gate) GrantView(ctx context.Context, tok, fingerprint, sessionID string) (*Grant, error) {
	access, err := g.admit(ctx, tok, fingerprint, false)
	if err != nil {
		return nil, err
	}

	counted, err := g.shares.RecordView(ctx, access.Share.ID, sessionID, time.Now())
	if err != nil {
		return nil, err
	}
	if counted {
		access.Share.ViewCount++
	}

	return &Grant{
		Access:      *access,
		SignedURL:   g.signer.SignedURL(access.File.StoragePath, g.urlTTL),
		ViewCounted: counted,
	}, nil
}

// GrantDownload authorizes a download, consuming one quota slot. The
// check and the increment are a single conditional write in the
// store, so a limit of N yields at most N successful grants no matter
// how many requests race.
func (g *Gate) GrantDownload(ctx context.Context, tok, fingerprint string) (*Grant, error) {
	access, err := g.admit(ctx, tok, fingerprint, true)
	if err != nil {
		return nil, err
	}

	consumed, err := g.shares.ConsumeDownload(ctx, access.Share.ID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, ErrQuotaExceeded
	}
	access.Share.DownloadsUsed++

	return &Grant{
		Access:    *access,
		SignedURL: g.signer.SignedURL(access.File.StoragePath, g.urlTTL),
	}, nil
}

func (g *Gate) admit(ctx context.Context, tok, fingerprint string, download bool) (*Access, error) {
	if fingerprint == "" {
		return nil, ErrFingerprintRequired
	}

	s, err := g.shares.GetByToken(ctx, tok)
	if err != nil {
		return nil, err
	}
	if err := evaluate(s, time.Now(), download); err != nil {
		return nil, err
	}

	f, err := g.files.GetByID(ctx, s.FileID)
	if errors.Is(err, file.ErrFileNotFound) {
		// The file was deleted out from under the share. A visitor
		// cannot tell this apart from a link that never existed.
		return nil, ErrShareNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := g.devices.BindOrVerify(ctx, s.ID, fingerprint); err != nil {
		if errors.Is(err, device.ErrDeviceMismatch) {
			return nil, ErrDeviceMismatch
		}
		return nil, err
	}

	return &Access{Share: s, File: f}, nil
}

func evaluate(s *ShareAccess, now time.Time, download bool) error {
	if s.RevokedAt != nil {
		return ErrRevoked
	}
	if s.ExpiresAt != nil && s.ExpiresAt.Before(now) {
		return ErrExpired
	}
	if download {
		if s.Role != RoleEditor {
			return ErrDownloadNotAllowed
		}
		if s.DownloadLimit > 0 && s.DownloadsUsed >= s.DownloadLimit {
			return ErrQuotaExceeded
		}
	}
	return nil
}
