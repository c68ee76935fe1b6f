package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub-api/internal/api/shared"
	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/service/auth"
)

// mockJWTService lets each test script the outcome of token validation.
type mockJWTService struct {
	validateFn func(ctx context.Context, token string) (*auth.Claims, error)
}

var _ auth.JWTService = (*mockJWTService)(nil)

func (m *mockJWTService) GenerateToken(ctx context.Context, user *domain.User) (string, error) {
	return "mock-token", nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, token)
	}
	return nil, auth.ErrInvalidToken
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		authHeader string
		validateFn func(ctx context.Context, token string) (*auth.Claims, error)
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header without scheme",
			authHeader: "token-without-scheme",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			validateFn: func(ctx context.Context, token string) (*auth.Claims, error) {
				return &auth.Claims{UserID: userID}, nil
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "expired token",
			authHeader: "Bearer expired-token",
			validateFn: func(ctx context.Context, token string) (*auth.Claims, error) {
				return nil, auth.ErrExpiredToken
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			validateFn: func(ctx context.Context, token string) (*auth.Claims, error) {
				return nil, auth.ErrInvalidToken
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unexpected validation failure",
			authHeader: "Bearer some-token",
			validateFn: func(ctx context.Context, token string) (*auth.Claims, error) {
				return nil, errors.New("keystore unavailable")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mw := NewAuthMiddleware(&mockJWTService{validateFn: tc.validateFn})

			nextCalled := false
			var ctxUserID uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				ctxUserID, _ = r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/task", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			require.Equal(t, tc.wantNext, nextCalled)
			if tc.wantNext {
				assert.Equal(t, userID, ctxUserID, "user ID from claims must reach the handler")
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserID(req)
	assert.False(t, ok, "bare request must not yield a user ID")

	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	got, ok := GetUserID(req.WithContext(ctx))
	require.True(t, ok)
	assert.Equal(t, userID, got)
}
