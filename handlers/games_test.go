package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"ggreviews/db"
	"ggreviews/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameLifecycle(t *testing.T) {
	r := newTestApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	_, userToken := createUser(t, "Bob", "bob@example.com", models.RoleUser)

	// Create as admin
	w := doForm(r, http.MethodPost, "/api/games", map[string]string{
		"title":       "X",
		"description": "Y",
		"genre":       "RPG",
		"platform":    "PC",
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	id := uint(created["id"].(float64))
	assert.Equal(t, "X", created["title"])

	// Fetch it back
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/games/%d", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)
	assert.Equal(t, "X", got["title"])
	assert.Equal(t, "PC", got["platform"])
	genre, ok := got["genre"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "RPG", genre["name"])

	// Delete as non-admin is forbidden
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/games/%d", id), nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Delete as admin works
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/games/%d", id), nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// Gone afterwards
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/games/%d", id), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateGameRejectsBadInput(t *testing.T) {
	r := newTestApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)

	// Missing required fields
	w := doForm(r, http.MethodPost, "/api/games", map[string]string{
		"title": "X",
	}, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Platform outside the enum
	w = doForm(r, http.MethodPost, "/api/games", map[string]string{
		"title":       "X",
		"description": "Y",
		"genre":       "RPG",
		"platform":    "Dreamcast",
	}, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGameRequiresAdmin(t *testing.T) {
	r := newTestApp(t)
	_, userToken := createUser(t, "Bob", "bob@example.com", models.RoleUser)

	w := doForm(r, http.MethodPost, "/api/games", map[string]string{
		"title":       "X",
		"description": "Y",
		"genre":       "RPG",
		"platform":    "PC",
	}, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doForm(r, http.MethodPost, "/api/games", map[string]string{
		"title":       "X",
		"description": "Y",
		"genre":       "RPG",
		"platform":    "PC",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGamesListNewestFirst(t *testing.T) {
	r := newTestApp(t)

	genre := models.Genre{Name: "RPG"}
	require.NoError(t, db.DB.Create(&genre).Error)

	now := time.Now()
	for i, title := range []string{"Oldest", "Middle", "Newest"} {
		game := models.Game{
			Title:       title,
			Description: "d",
			GenreID:     genre.ID,
			Platform:    models.PlatformPC,
			CreatedAt:   now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.DB.Create(&game).Error)
	}

	w := doJSON(r, http.MethodGet, "/api/games", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var games []models.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &games))
	require.Len(t, games, 3)
	assert.Equal(t, "Newest", games[0].Title)
	assert.Equal(t, "Middle", games[1].Title)
	assert.Equal(t, "Oldest", games[2].Title)
	assert.Equal(t, "RPG", games[0].Genre.Name)
}

func TestUpdateGamePartialReplace(t *testing.T) {
	r := newTestApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	id := createGame(t, r, adminToken, "Original")

	w := doForm(r, http.MethodPut, fmt.Sprintf("/api/games/%d", id), map[string]string{
		"title": "Renamed",
	}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Renamed", body["title"])
	// Untouched fields survive
	assert.Equal(t, "A test game", body["description"])
	assert.Equal(t, "PC", body["platform"])
}

func TestToggleLikeIsIdempotentPerUser(t *testing.T) {
	r := newTestApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	_, userToken := createUser(t, "Bob", "bob@example.com", models.RoleUser)
	id := createGame(t, r, adminToken, "Likeable")

	path := fmt.Sprintf("/api/games/%d/like", id)

	// First toggle likes
	w := doJSON(r, http.MethodPost, path, nil, userToken)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["likesCount"])

	// Second toggle returns to the original state
	w = doJSON(r, http.MethodPost, path, nil, userToken)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(0), body["likesCount"])

	// No stray rows left behind
	var count int64
	db.DB.Model(&models.GameLike{}).Where("game_id = ?", id).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLikesFromTwoUsersAccumulate(t *testing.T) {
	r := newTestApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	_, bobToken := createUser(t, "Bob", "bob@example.com", models.RoleUser)
	_, carolToken := createUser(t, "Carol", "carol@example.com", models.RoleUser)
	id := createGame(t, r, adminToken, "Popular")

	path := fmt.Sprintf("/api/games/%d/like", id)

	doJSON(r, http.MethodPost, path, nil, bobToken)
	w := doJSON(r, http.MethodPost, path, nil, carolToken)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["likesCount"])

	// Bob backing out does not affect Carol
	w = doJSON(r, http.MethodPost, path, nil, bobToken)
	body = decodeBody(t, w)
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(1), body["likesCount"])
}

func TestToggleLikeRequiresAuth(t *testing.T) {
	r := newTestApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	id := createGame(t, r, adminToken, "Likeable")

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/api/games/%d/like", id), nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
