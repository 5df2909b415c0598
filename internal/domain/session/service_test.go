package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockRepository) Validate(ctx context.Context, tokenHash string) (int, error) {
	args := m.Called(ctx, tokenHash)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	userID := 123

	mockRepo.On("Create", mock.Anything, userID, mock.MatchedBy(func(hash string) bool {
		return hash != ""
	}), mock.MatchedBy(func(expiresAt time.Time) bool {
		return expiresAt.After(time.Now())
	})).Return(nil)

	token, err := service.Create(context.Background(), userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	// base64 encoding of 32 random bytes is 44 characters with padding
	assert.Len(t, token, 44)

	mockRepo.AssertExpectations(t)
}

func TestService_Create_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Create", mock.Anything, 123, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(errors.New("database error"))

	_, err := service.Create(context.Background(), 123)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
}

func TestService_Validate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	userID := 123
	token := "test_token_123"

	mockRepo.On("Validate", mock.Anything, hashToken(token)).Return(userID, nil)

	validatedUserID, err := service.Validate(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, userID, validatedUserID)

	mockRepo.AssertExpectations(t)
}

func TestService_Validate_InvalidToken(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Validate", mock.Anything, mock.AnythingOfType("string")).
		Return(0, errors.New("invalid session"))

	_, err := service.Validate(context.Background(), "invalid_token")
	assert.Error(t, err)

	mockRepo.AssertExpectations(t)
}

func TestService_Destroy(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	token := "test_token_123"

	mockRepo.On("Delete", mock.Anything, hashToken(token)).Return(nil)

	err := service.Destroy(context.Background(), token)
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestService_Destroy_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Delete", mock.Anything, mock.AnythingOfType("string")).
		Return(errors.New("database error"))

	err := service.Destroy(context.Background(), "token")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
}

// Tokens from consecutive Create calls must differ.
func TestService_Create_UniqueTokens(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Create", mock.Anything, 123, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(nil)

	first, err := service.Create(context.Background(), 123)
	assert.NoError(t, err)
	second, err := service.Create(context.Background(), 123)
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}
