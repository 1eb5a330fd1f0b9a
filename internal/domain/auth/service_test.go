package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID, email string) (string, error) { return "stub-token", nil }

func TestRegister_Success(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, "owner@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(users, stubJWT{})

	result, err := service.Register(context.Background(), RegisterRequest{
		Email:    "Owner@Example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "owner@example.com", result.User.Email)
	assert.NotEmpty(t, result.User.ID)
	assert.Equal(t, "stub-token", result.AccessToken)
	assert.Empty(t, result.User.PasswordHash)
	users.AssertExpectations(t)
}

func TestRegister_PasswordTooShort(t *testing.T) {
	service := NewService(new(MockUserRepository), stubJWT{})

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "owner@example.com",
		Password: "short",
	})

	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, "owner@example.com").Return(true, nil)

	service := NewService(users, stubJWT{})

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "owner@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "owner@example.com").Return(&User{
		ID:           "user-1",
		Email:        "owner@example.com",
		PasswordHash: string(hash),
	}, nil)

	service := NewService(users, stubJWT{})

	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "user-1", result.User.ID)
	assert.Equal(t, "stub-token", result.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "owner@example.com").Return(&User{
		ID:           "user-1",
		Email:        "owner@example.com",
		PasswordHash: string(hash),
	}, nil)

	service := NewService(users, stubJWT{})

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrUserNotFound)

	service := NewService(users, stubJWT{})

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	// Unknown email collapses to the same error as a bad password.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
