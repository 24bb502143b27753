package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/models"
)

func TestGetPosts_TotalIndependentOfPage(t *testing.T) {
	_, app, db := newTestServer(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	for i := 0; i < 5; i++ {
		createPost(t, db, alice.ID, "alice post")
	}
	createPost(t, db, bob.ID, "bob post")

	resp, body := doJSON(t, app, http.MethodGet,
		"/api/posts/?author_id="+itoa(alice.ID)+"&page=1&limit=1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["posts"].([]any), 1)
	assert.Equal(t, float64(5), body["total_count"], "total covers the filtered set, not the page")
}

func TestGetPosts_DefaultsOnGarbageParams(t *testing.T) {
	_, app, db := newTestServer(t)

	author := createUser(t, db, "author")
	createPost(t, db, author.ID, "only")

	resp, body := doJSON(t, app, http.MethodGet, "/api/posts/?page=abc&limit=-1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(10), body["limit"])
}

func TestCreateUpdateDeletePost_EndToEnd(t *testing.T) {
	_, app, db := newTestServer(t)

	author := createUser(t, db, "author")
	other := createUser(t, db, "other")
	authorToken := mintToken(t, author.ID)

	resp, body := postJSON(t, app, "/api/posts/", authorToken,
		map[string]string{"title": "  hello  ", "content": "body"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "hello", body["title"], "title is stored trimmed")
	postID := itoa(uint(body["id"].(float64)))

	// Someone else cannot edit it.
	req := putJSON(t, app, "/api/posts/"+postID, mintToken(t, other.ID),
		map[string]string{"title": "hijacked", "content": ""})
	assert.Equal(t, http.StatusForbidden, req.StatusCode)

	// The author can.
	req = putJSON(t, app, "/api/posts/"+postID, authorToken,
		map[string]string{"title": "renamed", "content": "new body"})
	assert.Equal(t, http.StatusOK, req.StatusCode)

	// Deleting takes the interactions with it.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/posts/"+postID+"/like", mintToken(t, other.ID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/posts/"+postID, authorToken)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var likes int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	assert.Zero(t, likes)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/posts/"+postID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreatePost_RequiresTitle(t *testing.T) {
	_, app, db := newTestServer(t)
	author := createUser(t, db, "author")

	resp, _ := postJSON(t, app, "/api/posts/", mintToken(t, author.ID),
		map[string]string{"title": "", "content": "body"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
