package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/service/auth"
	"github.com/taskhub/taskhub-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// mockUserStore is a hand-written store.UserStore for handler tests.
type mockUserStore struct {
	createFn        func(ctx context.Context, user *domain.User) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
}

var _ store.UserStore = (*mockUserStore)(nil)

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, store.ErrUserNotFound
}

func newAuthTestHandler(t *testing.T, userStore store.UserStore) *AuthHandler {
	t.Helper()
	jwtService := auth.NewTestJWTService(
		"test-secret-that-is-long-enough-for-testing", 24*time.Hour, nil)
	return NewAuthHandler(userStore, jwtService, auth.NewBcryptVerifier(), nil)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	t.Parallel()

	validBody := RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret1",
	}

	t.Run("registers and returns a token", func(t *testing.T) {
		t.Parallel()

		var createdUser *domain.User
		userStore := &mockUserStore{
			createFn: func(ctx context.Context, user *domain.User) error {
				createdUser = user
				return nil
			},
		}
		handler := newAuthTestHandler(t, userStore)

		rec := postJSON(t, handler.Register, "/api/account/register", validBody)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NotNil(t, createdUser)
		assert.Equal(t, "alice", createdUser.Username)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, "alice@example.com", resp.Email)
		assert.NotEmpty(t, resp.Token, "registration must log the user in")
	})

	t.Run("rejects invalid payload with field details", func(t *testing.T) {
		t.Parallel()

		handler := newAuthTestHandler(t, &mockUserStore{})

		rec := postJSON(t, handler.Register, "/api/account/register", RegisterRequest{
			Username: "al", // too short
			Email:    "not-an-email",
			Password: "short",
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ValidationErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "Username")
		assert.Contains(t, resp.Fields, "Email")
		assert.Contains(t, resp.Fields, "Password")
	})

	t.Run("duplicate username yields conflict", func(t *testing.T) {
		t.Parallel()

		userStore := &mockUserStore{
			createFn: func(ctx context.Context, user *domain.User) error {
				return store.ErrUsernameExists
			},
		}
		handler := newAuthTestHandler(t, userStore)

		rec := postJSON(t, handler.Register, "/api/account/register", validBody)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("duplicate email yields conflict", func(t *testing.T) {
		t.Parallel()

		userStore := &mockUserStore{
			createFn: func(ctx context.Context, user *domain.User) error {
				return store.ErrEmailExists
			},
		}
		handler := newAuthTestHandler(t, userStore)

		rec := postJSON(t, handler.Register, "/api/account/register", validBody)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("store failure yields internal error", func(t *testing.T) {
		t.Parallel()

		userStore := &mockUserStore{
			createFn: func(ctx context.Context, user *domain.User) error {
				return errors.New("connection reset")
			},
		}
		handler := newAuthTestHandler(t, userStore)

		rec := postJSON(t, handler.Register, "/api/account/register", validBody)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset",
			"internal detail must not leak to the client")
	})

	t.Run("malformed JSON yields bad request", func(t *testing.T) {
		t.Parallel()

		handler := newAuthTestHandler(t, &mockUserStore{})

		req := httptest.NewRequest(
			http.MethodPost, "/api/account/register", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	password := "supersecret1"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	registered := &domain.User{
		ID:             uuid.New(),
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: string(hash),
	}

	userStore := &mockUserStore{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			if username == registered.Username {
				return registered, nil
			}
			return nil, store.ErrUserNotFound
		},
	}

	t.Run("valid credentials yield a token", func(t *testing.T) {
		t.Parallel()

		handler := newAuthTestHandler(t, userStore)

		rec := postJSON(t, handler.Login, "/api/account/login", LoginRequest{
			Username: "alice",
			Password: password,
		})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp.Username)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("unknown username and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()

		handler := newAuthTestHandler(t, userStore)

		unknownRec := postJSON(t, handler.Login, "/api/account/login", LoginRequest{
			Username: "nobody",
			Password: password,
		})
		wrongRec := postJSON(t, handler.Login, "/api/account/login", LoginRequest{
			Username: "alice",
			Password: "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, unknownRec.Code)
		assert.Equal(t, http.StatusUnauthorized, wrongRec.Code)
		assert.JSONEq(t, unknownRec.Body.String(), wrongRec.Body.String(),
			"responses must not reveal whether the account exists")
	})

	t.Run("missing fields yield bad request", func(t *testing.T) {
		t.Parallel()

		handler := newAuthTestHandler(t, userStore)

		rec := postJSON(t, handler.Login, "/api/account/login", LoginRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure yields internal error", func(t *testing.T) {
		t.Parallel()

		failingStore := &mockUserStore{
			getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
				return nil, errors.New("connection reset")
			},
		}
		handler := newAuthTestHandler(t, failingStore)

		rec := postJSON(t, handler.Login, "/api/account/login", LoginRequest{
			Username: "alice",
			Password: password,
		})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
