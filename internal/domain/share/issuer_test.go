package share

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"secureshare/internal/domain/file"
)

func newTestIssuer(shares *MockShareRepository, files *MockFileRepository, cfg IssuerConfig) *Issuer {
	if cfg.PublicOrigin == "" {
		cfg.PublicOrigin = "https://app.example.com"
	}
	return NewIssuer(shares, files, cfg)
}

func TestIssuer_CreateViewerShare(t *testing.T) {
	files := new(MockFileRepository)
	files.On("GetByID", mock.Anything, "file-1").Return(testFile(), nil)
	shares := new(MockShareRepository)
	shares.On("Create", mock.Anything, mock.Anything).Return(nil)

	issuer := newTestIssuer(shares, files, IssuerConfig{})

	result, err := issuer.Create(context.Background(), "owner-1", CreateShareRequest{
		FileID:     "file-1",
		Email:      "  Friend@Example.COM ",
		Role:       "viewer",
		Expiration: "7",
	})
	require.NoError(t, err)

	assert.Equal(t, RoleViewer, result.Share.Role)
	assert.Equal(t, "friend@example.com", result.Share.Email)
	assert.Len(t, result.Share.Token, 43)
	assert.Equal(t, "https://app.example.com/shared/"+result.Share.Token, result.ShareURL)

	require.NotNil(t, result.Share.ExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), *result.Share.ExpiresAt, time.Minute)
}

func TestIssuer_CreateAllTimeShare(t *testing.T) {
	files := new(MockFileRepository)
	files.On("GetByID", mock.Anything, "file-1").Return(testFile(), nil)
	shares := new(MockShareRepository)
	shares.On("Create", mock.Anything, mock.Anything).Return(nil)

	issuer := newTestIssuer(shares, files, IssuerConfig{})

	result, err := issuer.Create(context.Background(), "owner-1", CreateShareRequest{
		FileID:     "file-1",
		Role:       "editor",
		Expiration: ExpirationAllTime,
	})
	require.NoError(t, err)

	assert.Nil(t, result.Share.ExpiresAt)
}

func TestIssuer_EachShareGetsOwnToken(t *testing.T) {
	files := new(MockFileRepository)
	files.On("GetByID", mock.Anything, "file-1").Return(testFile(), nil)
	shares := new(MockShareRepository)
	shares.On("Create", mock.Anything, mock.Anything).Return(nil)

	issuer := newTestIssuer(shares, files, IssuerConfig{})

	req := CreateShareRequest{FileID: "file-1", Role: "viewer", Expiration: "1"}
	first, err := issuer.Create(context.Background(), "owner-1", req)
	require.NoError(t, err)
	second, err := issuer.Create(context.Background(), "owner-1", req)
	require.NoError(t, err)

	assert.NotEqual(t, first.Share.Token, second.Share.Token)
	assert.NotEqual(t, first.Share.ID, second.Share.ID)
}

func TestIssuer_CreateRejectsNonOwner(t *testing.T) {
	files := new(MockFileRepository)
	files.On("GetByID", mock.Anything, "file-1").Return(testFile(), nil)

	issuer := newTestIssuer(new(MockShareRepository), files, IssuerConfig{})

	_, err := issuer.Create(context.Background(), "intruder", CreateShareRequest{
		FileID:     "file-1",
		Role:       "viewer",
		Expiration: "7",
	})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestIssuer_CreateValidation(t *testing.T) {
	files := new(MockFileRepository)
	files.On("GetByID", mock.Anything, "file-1").Return(testFile(), nil)

	issuer := newTestIssuer(new(MockShareRepository), files, IssuerConfig{})

	cases := []struct {
		name string
		req  CreateShareRequest
		want error
	}{
		{"bad role", CreateShareRequest{FileID: "file-1", Role: "admin", Expiration: "7"}, ErrInvalidRole},
		{"bad expiration", CreateShareRequest{FileID: "file-1", Role: "viewer", Expiration: "14"}, ErrInvalidExpiration},
		{"negative limit", CreateShareRequest{FileID: "file-1", Role: "viewer", Expiration: "7", DownloadLimit: -1}, ErrInvalidDownloadLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := issuer.Create(context.Background(), "owner-1", tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestIssuer_DownloadSharePolicyFlag(t *testing.T) {
	files := new(MockFileRepository)
	files.On("GetByID", mock.Anything, "file-1").Return(testFile(), nil)
	shares := new(MockShareRepository)
	shares.On("Create", mock.Anything, mock.Anything).Return(nil)

	issuer := newTestIssuer(shares, files, IssuerConfig{DownloadRequiresNoExpiry: true})

	_, err := issuer.Create(context.Background(), "owner-1", CreateShareRequest{
		FileID:     "file-1",
		Role:       "editor",
		Expiration: "7",
	})
	assert.ErrorIs(t, err, ErrDownloadNeedsNoExpiry)

	// all-time editor shares stay allowed
	_, err = issuer.Create(context.Background(), "owner-1", CreateShareRequest{
		FileID:     "file-1",
		Role:       "editor",
		Expiration: ExpirationAllTime,
	})
	assert.NoError(t, err)

	// viewer shares are unaffected by the flag
	_, err = issuer.Create(context.Background(), "owner-1", CreateShareRequest{
		FileID:     "file-1",
		Role:       "viewer",
		Expiration: "7",
	})
	assert.NoError(t, err)
}

func TestIssuer_RevokeRejectsNonOwner(t *testing.T) {
	shares := new(MockShareRepository)
	shares.On("GetByID", mock.Anything, "access-1").Return(validShare(), nil)
	files := new(MockFileRepository)
	files.On("GetByID", mock.Anything, "file-1").Return(testFile(), nil)

	issuer := newTestIssuer(shares, files, IssuerConfig{})

	err := issuer.Revoke(context.Background(), "intruder", "access-1")

	assert.ErrorIs(t, err, ErrUnauthorized)
	shares.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
}

func TestIssuer_ListForFileHidesForeignFiles(t *testing.T) {
	files := new(MockFileRepository)
	files.On("GetByID", mock.Anything, "file-1").Return(nil, file.ErrFileNotFound)

	issuer := newTestIssuer(new(MockShareRepository), files, IssuerConfig{})

	_, err := issuer.ListForFile(context.Background(), "owner-1", "file-1")

	assert.ErrorIs(t, err, ErrShareNotFound)
}
