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

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/taskhub-api/internal/api/shared"
	"github.com/taskhub/taskhub-api/internal/service/task"
	"github.com/taskhub/taskhub-api/internal/store"
)

// newTaskTestRouter mounts the task handler the same way the server router
// does, with a stub in place of the auth middleware that injects userID into
// the request context. A nil userID simulates a request that somehow bypassed
// authentication.
func newTaskTestRouter(svc task.Service, userID uuid.UUID) http.Handler {
	handler := NewTaskHandler(svc, nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	r.Get("/api/task", handler.List)
	r.Post("/api/task", handler.Create)
	r.Get("/api/task/{id}", handler.Get)
	r.Put("/api/task/{id}", handler.Update)
	r.Delete("/api/task/{id}", handler.Delete)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sampleTaskData(id int64, ownerID uuid.UUID) task.TaskData {
	return task.TaskData{
		ID:          id,
		Title:       "Write report",
		Description: "Quarterly numbers",
		IsCompleted: false,
		DueDate:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		OwnerID:     ownerID.String(),
	}
}

func TestTaskList(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("passes query parameters through to the service", func(t *testing.T) {
		t.Parallel()

		var seenQuery store.TaskQuery
		var seenOwner uuid.UUID
		svc := &task.MockService{
			ListFn: func(ctx context.Context, query store.TaskQuery, owner uuid.UUID) ([]task.TaskData, error) {
				seenQuery = query
				seenOwner = owner
				return []task.TaskData{sampleTaskData(1, ownerID)}, nil
			},
		}
		router := newTaskTestRouter(svc, ownerID)

		rec := doJSON(t, router, http.MethodGet,
			"/api/task?title=report&sortBy=title&isDescending=true&pageNumber=2&pageSize=5", nil)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, ownerID, seenOwner)
		assert.Equal(t, "report", seenQuery.Title)
		assert.Equal(t, store.TaskSortByTitle, seenQuery.SortBy)
		assert.True(t, seenQuery.SortDescending)
		assert.Equal(t, 2, seenQuery.PageNumber)
		assert.Equal(t, 5, seenQuery.PageSize)

		var resp []task.TaskData
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, int64(1), resp[0].ID)
	})

	t.Run("malformed paging parameters are clamped, not rejected", func(t *testing.T) {
		t.Parallel()

		var seenQuery store.TaskQuery
		svc := &task.MockService{
			ListFn: func(ctx context.Context, query store.TaskQuery, owner uuid.UUID) ([]task.TaskData, error) {
				seenQuery = query
				return []task.TaskData{}, nil
			},
		}
		router := newTaskTestRouter(svc, ownerID)

		rec := doJSON(t, router, http.MethodGet, "/api/task?pageNumber=abc&pageSize=-5", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, seenQuery.PageNumber)
		assert.Equal(t, store.DefaultPageSize, seenQuery.PageSize)
	})

	t.Run("empty result is a JSON array, not null", func(t *testing.T) {
		t.Parallel()

		svc := &task.MockService{
			ListFn: func(ctx context.Context, query store.TaskQuery, owner uuid.UUID) ([]task.TaskData, error) {
				return []task.TaskData{}, nil
			},
		}
		router := newTaskTestRouter(svc, ownerID)

		rec := doJSON(t, router, http.MethodGet, "/api/task", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("missing identity yields unauthorized", func(t *testing.T) {
		t.Parallel()

		router := newTaskTestRouter(&task.MockService{}, uuid.Nil)

		rec := doJSON(t, router, http.MethodGet, "/api/task", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestTaskGet(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("returns the task", func(t *testing.T) {
		t.Parallel()

		svc := &task.MockService{
			GetFn: func(ctx context.Context, id int64, owner uuid.UUID) (*task.TaskData, error) {
				data := sampleTaskData(id, owner)
				return &data, nil
			},
		}
		router := newTaskTestRouter(svc, ownerID)

		rec := doJSON(t, router, http.MethodGet, "/api/task/42", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp task.TaskData
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, ownerID.String(), resp.OwnerID)
	})

	t.Run("absent or foreign task yields not found", func(t *testing.T) {
		t.Parallel()

		router := newTaskTestRouter(&task.MockService{}, ownerID)

		rec := doJSON(t, router, http.MethodGet, "/api/task/42", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id yields bad request", func(t *testing.T) {
		t.Parallel()

		router := newTaskTestRouter(&task.MockService{}, ownerID)

		rec := doJSON(t, router, http.MethodGet, "/api/task/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-positive id yields bad request", func(t *testing.T) {
		t.Parallel()

		router := newTaskTestRouter(&task.MockService{}, ownerID)

		rec := doJSON(t, router, http.MethodGet, "/api/task/0", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskCreate(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	dueDate := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	validBody := CreateTaskRequest{
		Title:       "Write report",
		Description: "Quarterly numbers",
		DueDate:     dueDate,
	}

	t.Run("creates and returns the task with a Location header", func(t *testing.T) {
		t.Parallel()

		svc := &task.MockService{
			CreateFn: func(ctx context.Context, input task.TaskInput, owner uuid.UUID) (*task.TaskData, error) {
				data := sampleTaskData(7, owner)
				data.Title = input.Title
				return &data, nil
			},
		}
		router := newTaskTestRouter(svc, ownerID)

		rec := doJSON(t, router, http.MethodPost, "/api/task", validBody)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "/api/task/7", rec.Header().Get("Location"))

		var resp task.TaskData
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, ownerID.String(), resp.OwnerID)
	})

	t.Run("rejects short title", func(t *testing.T) {
		t.Parallel()

		router := newTaskTestRouter(&task.MockService{}, ownerID)

		body := validBody
		body.Title = "ab"
		rec := doJSON(t, router, http.MethodPost, "/api/task", body)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ValidationErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "Title")
	})

	t.Run("rejects missing due date", func(t *testing.T) {
		t.Parallel()

		router := newTaskTestRouter(&task.MockService{}, ownerID)

		body := validBody
		body.DueDate = time.Time{}
		rec := doJSON(t, router, http.MethodPost, "/api/task", body)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service failure yields internal error", func(t *testing.T) {
		t.Parallel()

		svc := &task.MockService{
			CreateFn: func(ctx context.Context, input task.TaskInput, owner uuid.UUID) (*task.TaskData, error) {
				return nil, errors.New("connection reset")
			},
		}
		router := newTaskTestRouter(svc, ownerID)

		rec := doJSON(t, router, http.MethodPost, "/api/task", validBody)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})
}

func TestTaskUpdate(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	dueDate := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	validBody := UpdateTaskRequest{
		Title:       "Updated title",
		IsCompleted: true,
		DueDate:     dueDate,
	}

	t.Run("updates and returns the task", func(t *testing.T) {
		t.Parallel()

		var seenID int64
		var seenInput task.TaskInput
		svc := &task.MockService{
			UpdateFn: func(ctx context.Context, id int64, input task.TaskInput, owner uuid.UUID) (*task.TaskData, error) {
				seenID = id
				seenInput = input
				data := sampleTaskData(id, owner)
				data.Title = input.Title
				data.IsCompleted = input.IsCompleted
				return &data, nil
			},
		}
		router := newTaskTestRouter(svc, ownerID)

		rec := doJSON(t, router, http.MethodPut, "/api/task/42", validBody)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, int64(42), seenID)
		assert.Equal(t, "Updated title", seenInput.Title)
		assert.True(t, seenInput.IsCompleted)
	})

	t.Run("absent or foreign task yields not found", func(t *testing.T) {
		t.Parallel()

		router := newTaskTestRouter(&task.MockService{}, ownerID)

		rec := doJSON(t, router, http.MethodPut, "/api/task/42", validBody)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects invalid payload", func(t *testing.T) {
		t.Parallel()

		router := newTaskTestRouter(&task.MockService{}, ownerID)

		body := validBody
		body.Title = ""
		rec := doJSON(t, router, http.MethodPut, "/api/task/42", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskDelete(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("deletes and returns no content", func(t *testing.T) {
		t.Parallel()

		var seenID int64
		svc := &task.MockService{
			DeleteFn: func(ctx context.Context, id int64, owner uuid.UUID) error {
				seenID = id
				return nil
			},
		}
		router := newTaskTestRouter(svc, ownerID)

		rec := doJSON(t, router, http.MethodDelete, "/api/task/42", nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, int64(42), seenID)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("absent or foreign task yields not found", func(t *testing.T) {
		t.Parallel()

		router := newTaskTestRouter(&task.MockService{}, ownerID)

		rec := doJSON(t, router, http.MethodDelete, "/api/task/42", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id yields bad request", func(t *testing.T) {
		t.Parallel()

		router := newTaskTestRouter(&task.MockService{}, ownerID)

		rec := doJSON(t, router, http.MethodDelete, "/api/task/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
