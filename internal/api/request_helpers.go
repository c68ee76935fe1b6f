package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskhub/taskhub-api/internal/api/shared"
	"github.com/taskhub/taskhub-api/internal/store"
)

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context. The user ID is placed there by the auth middleware; a
// missing or nil value means the middleware never ran or rejected the token.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// getPathTaskID extracts and parses the numeric task ID from the URL path.
func getPathTaskID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}

// parseTaskQuery builds a TaskQuery from URL query parameters.
// The ownerId parameter is accepted in the URL for compatibility but
// deliberately not read: the service overwrites the owner filter with the
// authenticated caller's ID, so parsing it would be misleading.
// Malformed numeric parameters fall back to zero and are clamped by
// Normalize rather than rejected.
func parseTaskQuery(r *http.Request) store.TaskQuery {
	params := r.URL.Query()

	query := store.TaskQuery{
		Title:  params.Get("title"),
		SortBy: params.Get("sortBy"),
	}

	if v, err := strconv.ParseBool(params.Get("isDescending")); err == nil {
		query.SortDescending = v
	}
	if v, err := strconv.Atoi(params.Get("pageNumber")); err == nil {
		query.PageNumber = v
	}
	if v, err := strconv.Atoi(params.Get("pageSize")); err == nil {
		query.PageSize = v
	}

	query.Normalize()
	return query
}
