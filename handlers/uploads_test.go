package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ggreviews/db"
	"ggreviews/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doFormFile posts a multipart form carrying an image file.
func doFormFile(t *testing.T, r *gin.Engine, method, path string, fields map[string]string, filename string, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	fw.Write([]byte("fake image bytes"))
	mw.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Stored image paths are relative; responses carry absolute URLs built
// from the request host.
func TestImagePathsRewrittenAtHTTPBoundary(t *testing.T) {
	r := newTestApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)

	w := doFormFile(t, r, http.MethodPost, "/api/games", map[string]string{
		"title":       "With image",
		"description": "d",
		"genre":       "RPG",
		"platform":    "PC",
	}, "cover.png", adminToken)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	image, ok := body["image"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(image, "http://example.com/uploads/"), "got %q", image)
	assert.True(t, strings.HasSuffix(image, "-cover.png"), "got %q", image)

	// The row itself keeps the relative path
	var game models.Game
	id := uint(body["id"].(float64))
	require.NoError(t, db.DB.First(&game, id).Error)
	assert.True(t, strings.HasPrefix(game.Image, "/uploads/"), "stored %q", game.Image)
}

// Updating without a new file keeps the old image.
func TestUpdateKeepsImageUnlessReplaced(t *testing.T) {
	r := newTestApp(t)
	_, adminToken := createUser(t, "Admin", "admin@example.com", models.RoleAdmin)

	w := doFormFile(t, r, http.MethodPost, "/api/games", map[string]string{
		"title":       "With image",
		"description": "d",
		"genre":       "RPG",
		"platform":    "PC",
	}, "cover.png", adminToken)
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeBody(t, w)["id"].(float64))

	var before models.Game
	require.NoError(t, db.DB.First(&before, id).Error)

	w = doForm(r, http.MethodPut, fmt.Sprintf("/api/games/%d", id), map[string]string{
		"title": "Renamed",
	}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var after models.Game
	require.NoError(t, db.DB.First(&after, id).Error)
	assert.Equal(t, before.Image, after.Image)
}
