package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/models"
)

func postJSON(t *testing.T, app testApp, path, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func putJSON(t *testing.T, app testApp, path, token string, payload any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestCreateComment_EndToEnd(t *testing.T) {
	_, app, db := newTestServer(t)

	author := createUser(t, db, "author")
	commenter := createUser(t, db, "commenter")
	post := createPost(t, db, author.ID, "first")
	token := mintToken(t, commenter.ID)

	resp, body := postJSON(t, app, "/api/posts/1/comments", token, map[string]string{"text": "great stuff"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "great stuff", body["text"])

	var got models.Post
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, 1, got.CommentsCount)

	// Author got a COMMENT notification pointing at the comment.
	var n models.Notification
	require.NoError(t, db.Where("recipient_id = ?", author.ID).First(&n).Error)
	assert.Equal(t, models.NotificationComment, n.Type)
	require.NotNil(t, n.CommentID)
}

func TestCreateComment_Validation(t *testing.T) {
	_, app, db := newTestServer(t)

	author := createUser(t, db, "author")
	createPost(t, db, author.ID, "first")
	token := mintToken(t, author.ID)

	resp, _ := postJSON(t, app, "/api/posts/1/comments", token, map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got models.Post
	require.NoError(t, db.First(&got, 1).Error)
	assert.Zero(t, got.CommentsCount, "rejected comments must not move the counter")
}

func TestGetComments_PaginatedNewestFirst(t *testing.T) {
	_, app, db := newTestServer(t)

	author := createUser(t, db, "author")
	commenter := createUser(t, db, "commenter")
	createPost(t, db, author.ID, "first")
	token := mintToken(t, commenter.ID)

	for _, text := range []string{"one", "two", "three"} {
		resp, _ := postJSON(t, app, "/api/posts/1/comments", token, map[string]string{"text": text})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/posts/1/comments?page=1&limit=2", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["total_count"])

	comments := body["comments"].([]any)
	require.Len(t, comments, 2)
	assert.Equal(t, "three", comments[0].(map[string]any)["text"])
	assert.Equal(t, "two", comments[1].(map[string]any)["text"])
}

func TestGetComments_MissingPost(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/posts/999/comments", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteComment_EndToEnd(t *testing.T) {
	_, app, db := newTestServer(t)

	author := createUser(t, db, "author")
	commenter := createUser(t, db, "commenter")
	stranger := createUser(t, db, "stranger")
	post := createPost(t, db, author.ID, "first")

	resp, body := postJSON(t, app, "/api/posts/1/comments", mintToken(t, commenter.ID), map[string]string{"text": "hi"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	commentID := itoa(uint(body["id"].(float64)))

	// A third party may not delete it.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/comments/"+commentID, mintToken(t, stranger.ID))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The comment author may.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/comments/"+commentID, mintToken(t, commenter.ID))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var got models.Post
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Zero(t, got.CommentsCount)
}
