package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"ggreviews/db"
	"ggreviews/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFeedback(t *testing.T) {
	r := newTestApp(t)
	_, token := createUser(t, "Bob", "bob@example.com", models.RoleUser)

	w := doJSON(r, http.MethodPost, "/api/feedbacks", map[string]any{
		"message": "Love the site",
		"rating":  4,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Love the site", body["message"])
	author, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Bob", author["name"])
}

func TestCreateFeedbackValidation(t *testing.T) {
	r := newTestApp(t)
	_, token := createUser(t, "Bob", "bob@example.com", models.RoleUser)

	// Missing message
	w := doJSON(r, http.MethodPost, "/api/feedbacks", map[string]any{"rating": 3}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Rating outside 1..5
	for _, rating := range []int{0, 6} {
		w = doJSON(r, http.MethodPost, "/api/feedbacks", map[string]any{
			"message": "x",
			"rating":  rating,
		}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d should be rejected", rating)
	}

	// Unauthenticated
	w = doJSON(r, http.MethodPost, "/api/feedbacks", map[string]any{"message": "x", "rating": 3}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFeedbackListIsPublic(t *testing.T) {
	r := newTestApp(t)
	_, token := createUser(t, "Bob", "bob@example.com", models.RoleUser)

	doJSON(r, http.MethodPost, "/api/feedbacks", map[string]any{"message": "first", "rating": 5}, token)
	doJSON(r, http.MethodPost, "/api/feedbacks", map[string]any{"message": "second", "rating": 2}, token)

	w := doJSON(r, http.MethodGet, "/api/feedbacks", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var feedbacks []models.Feedback
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feedbacks))
	require.Len(t, feedbacks, 2)
	assert.Equal(t, "Bob", feedbacks[0].User.Name)
}

func TestDeleteFeedbackOwnership(t *testing.T) {
	r := newTestApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	_, ownerToken := createUser(t, "Owner", "owner@example.com", models.RoleUser)
	_, otherToken := createUser(t, "Other", "other@example.com", models.RoleUser)

	w := doJSON(r, http.MethodPost, "/api/feedbacks", map[string]any{"message": "mine", "rating": 3}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeBody(t, w)["id"].(float64))
	path := fmt.Sprintf("/api/feedbacks/%d", id)

	// A stranger may not delete it, and it survives
	w = doJSON(r, http.MethodDelete, path, nil, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.DB.Model(&models.Feedback{}).Where("id = ?", id).Count(&count)
	assert.Equal(t, int64(1), count)

	// An admin may
	w = doJSON(r, http.MethodDelete, path, nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, path, nil, ownerToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
