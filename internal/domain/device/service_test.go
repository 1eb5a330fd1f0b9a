package device

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBindingRepository struct {
	mock.Mock
}

func (m *MockBindingRepository) InsertIfAbsent(ctx context.Context, b *DeviceBinding) (bool, error) {
	args := m.Called(ctx, b)
	return args.Bool(0), args.Error(1)
}

func (m *MockBindingRepository) GetByAccessID(ctx context.Context, fileAccessID string) (*DeviceBinding, error) {
	args := m.Called(ctx, fileAccessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DeviceBinding), args.Error(1)
}

func (m *MockBindingRepository) TouchLastAccess(ctx context.Context, fileAccessID string, now time.Time) error {
	args := m.Called(ctx, fileAccessID, now)
	return args.Error(0)
}

func (m *MockBindingRepository) ListByAccessID(ctx context.Context, fileAccessID string) ([]*DeviceBinding, error) {
	args := m.Called(ctx, fileAccessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*DeviceBinding), args.Error(1)
}

func TestBindOrVerify_FirstDeviceBinds(t *testing.T) {
	repo := new(MockBindingRepository)
	repo.On("InsertIfAbsent", mock.Anything, mock.Anything).Return(true, nil)

	outcome, err := NewService(repo).BindOrVerify(context.Background(), "access-1", "fp-1")
	require.NoError(t, err)

	assert.Equal(t, StatusBound, outcome.Status)
	assert.Equal(t, "fp-1", outcome.Binding.Fingerprint)
	assert.NotEmpty(t, outcome.Binding.ID)
}

func TestBindOrVerify_SameDeviceVerifies(t *testing.T) {
	repo := new(MockBindingRepository)
	repo.On("InsertIfAbsent", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("GetByAccessID", mock.Anything, "access-1").Return(&DeviceBinding{
		ID:           "b-1",
		FileAccessID: "access-1",
		Fingerprint:  "fp-1",
	}, nil)
	repo.On("TouchLastAccess", mock.Anything, "access-1", mock.Anything).Return(nil)

	outcome, err := NewService(repo).BindOrVerify(context.Background(), "access-1", "fp-1")
	require.NoError(t, err)

	assert.Equal(t, StatusVerified, outcome.Status)
	repo.AssertCalled(t, "TouchLastAccess", mock.Anything, "access-1", mock.Anything)
}

func TestBindOrVerify_OtherDeviceRejected(t *testing.T) {
	repo := new(MockBindingRepository)
	repo.On("InsertIfAbsent", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("GetByAccessID", mock.Anything, "access-1").Return(&DeviceBinding{
		ID:           "b-1",
		FileAccessID: "access-1",
		Fingerprint:  "fp-1",
	}, nil)

	_, err := NewService(repo).BindOrVerify(context.Background(), "access-1", "fp-other")

	assert.ErrorIs(t, err, ErrDeviceMismatch)
	repo.AssertNotCalled(t, "TouchLastAccess", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheck_UnboundMatchesAnyDevice(t *testing.T) {
	repo := new(MockBindingRepository)
	repo.On("GetByAccessID", mock.Anything, "access-1").Return(nil, ErrBindingNotFound)

	ok, err := NewService(repo).Check(context.Background(), "access-1", "fp-any")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheck_BoundComparesFingerprints(t *testing.T) {
	repo := new(MockBindingRepository)
	repo.On("GetByAccessID", mock.Anything, "access-1").Return(&DeviceBinding{
		Fingerprint: "fp-1",
	}, nil)

	svc := NewService(repo)

	ok, err := svc.Check(context.Background(), "access-1", "fp-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Check(context.Background(), "access-1", "fp-2")
	require.NoError(t, err)
	assert.False(t, ok)
}
