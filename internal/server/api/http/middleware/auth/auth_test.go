package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, userID int) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Validate(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}

func (m *MockSessionService) Destroy(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type whoamiOutput struct {
	Body struct {
		UserID int `json:"user_id"`
	}
}

// newTestAPI registers a single protected operation that echoes the user id
// the middleware bound into the request context.
func newTestAPI(sessions *MockSessionService) http.Handler {
	mux := chi.NewMux()
	api := humachi.New(mux, huma.DefaultConfig("test", "1.0.0"))

	a := New(sessions, slog.Default())
	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/whoami",
		Middlewares: huma.Middlewares{a.Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*whoamiOutput, error) {
		out := &whoamiOutput{}
		out.Body.UserID, _ = GetUserID(ctx)
		return out, nil
	})

	return mux
}

func TestMiddleware_NoCredentials(t *testing.T) {
	sessions := new(MockSessionService)
	handler := newTestAPI(sessions)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	sessions.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
}

func TestMiddleware_SessionCookie(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Validate", mock.Anything, "cookie-token").Return(7, nil)

	handler := newTestAPI(sessions)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":7`)
	sessions.AssertExpectations(t)
}

func TestMiddleware_BearerHeader(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Validate", mock.Anything, "bearer-token").Return(9, nil)

	handler := newTestAPI(sessions)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bearer-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":9`)
	sessions.AssertExpectations(t)
}

func TestMiddleware_CookieWinsOverHeader(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Validate", mock.Anything, "cookie-token").Return(7, nil)

	handler := newTestAPI(sessions)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer other-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	sessions.AssertExpectations(t)
	sessions.AssertNotCalled(t, "Validate", mock.Anything, "other-token")
}

func TestMiddleware_InvalidSession(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Validate", mock.Anything, "stale-token").Return(0, assert.AnError)

	handler := newTestAPI(sessions)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestGetUserID_Roundtrip(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)

	id, ok := GetUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, 42, id)

	_, ok = GetUserID(context.Background())
	assert.False(t, ok)
}
