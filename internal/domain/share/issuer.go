package share

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"secureshare/internal/domain/file"
	"secureshare/internal/pkg/token"
)

// IssuerConfig carries the policy knobs for issuing share links.
type IssuerConfig struct {
	// PublicOrigin is prepended to the share path in returned URLs.
	PublicOrigin string
	// DownloadRequiresNoExpiry forces editor shares onto the all-time
	// expiration when enabled.
	DownloadRequiresNoExpiry bool
}

// Issuer mints and manages share links on behalf of file owners.
type Issuer struct {
	shares Repository
	files  file.Repository
	cfg    IssuerConfig
}

func NewIssuer(shares Repository, files file.Repository, cfg IssuerConfig) *Issuer {
	return &Issuer{shares: shares, files: files, cfg: cfg}
}

// Create issues a new share link for a file the caller owns. Each call
// produces an independent link with its own token, quota and device
// binding, even for the same file and recipient.
func (i *Issuer) Create(ctx context.Context, ownerID string, req CreateShareRequest) (*CreateShareResponse, error) {
	f, err := i.files.GetByID(ctx, req.FileID)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}

	role := Role(req.Role)
	if role != RoleViewer && role != RoleEditor {
		return nil, ErrInvalidRole
	}
	if req.DownloadLimit < 0 {
		return nil, ErrInvalidDownloadLimit
	}

	expiresAt, err := resolveExpiration(req.Expiration)
	if err != nil {
		return nil, err
	}
	if i.cfg.DownloadRequiresNoExpiry && role == RoleEditor && expiresAt != nil {
		return nil, ErrDownloadNeedsNoExpiry
	}

	tok, err := token.NewShareToken()
	if err != nil {
		return nil, err
	}

	s := &ShareAccess{
		ID:            uuid.NewString(),
		FileID:        f.ID,
		Token:         tok,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Role:          role,
		DownloadLimit: req.DownloadLimit,
		ExpiresAt:     expiresAt,
		CreatedAt:     time.Now(),
	}
	if err := i.shares.Create(ctx, s); err != nil {
		return nil, err
	}

	return &CreateShareResponse{
		Share:    s,
		ShareURL: i.cfg.PublicOrigin + "/shared/" + s.Token,
	}, nil
}

func resolveExpiration(expiration string) (*time.Time, error) {
	if expiration == ExpirationAllTime {
		return nil, nil
	}
	days, ok := expirationDays[expiration]
	if !ok {
		return nil, ErrInvalidExpiration
	}
	t := time.Now().AddDate(0, 0, days)
	return &t, nil
}

// ListForFile returns every share ever issued for the file, newest
// first, including revoked and expired ones.
func (i *Issuer) ListForFile(ctx context.Context, ownerID, fileID string) ([]*ShareAccess, error) {
	if err := i.checkFileOwner(ctx, ownerID, fileID); err != nil {
		return nil, err
	}
	return i.shares.ListByFile(ctx, fileID)
}

// GetByToken is the owner-side lookup used by the dashboard. Unlike
// the public gate it returns the share in any state.
func (i *Issuer) GetByToken(ctx context.Context, ownerID, tok string) (*ShareAccess, error) {
	s, err := i.shares.GetByToken(ctx, tok)
	if err != nil {
		return nil, err
	}
	if err := i.checkFileOwner(ctx, ownerID, s.FileID); err != nil {
		return nil, err
	}
	return s, nil
}

func (i *Issuer) Revoke(ctx context.Context, ownerID, shareID string) error {
	s, err := i.shares.GetByID(ctx, shareID)
	if err != nil {
		return err
	}
	if err := i.checkFileOwner(ctx, ownerID, s.FileID); err != nil {
		return err
	}
	return i.shares.Revoke(ctx, shareID, time.Now())
}

func (i *Issuer) RevokeAllForFile(ctx context.Context, ownerID, fileID string) error {
	if err := i.checkFileOwner(ctx, ownerID, fileID); err != nil {
		return err
	}
	return i.shares.RevokeAllForFile(ctx, fileID, time.Now())
}

// FileOwnerForAccess resolves the owner of the file behind a share,
// for callers that authorize against a file_access id.
func (i *Issuer) FileOwnerForAccess(ctx context.Context, fileAccessID string) (string, error) {
	s, err := i.shares.GetByID(ctx, fileAccessID)
	if err != nil {
		return "", err
	}
	f, err := i.files.GetByID(ctx, s.FileID)
	if err != nil {
		return "", err
	}
	return f.OwnerID, nil
}

func (i *Issuer) checkFileOwner(ctx context.Context, ownerID, fileID string) error {
	f, err := i.files.GetByID(ctx, fileID)
	if errors.Is(err, file.ErrFileNotFound) {
		return ErrShareNotFound
	}
	if err != nil {
		return err
	}
	if f.OwnerID != ownerID {
		return ErrUnauthorized
	}
	return nil
}
