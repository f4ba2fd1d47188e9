package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBlog(t *testing.T, ts *testServer, title string, published bool, tags ...string) string {
	t.Helper()

	if len(tags) == 0 {
		tags = []string{"general"}
	}
	status, _, body := ts.post(t, "/api/blogs", map[string]any{
		"title":       title,
		"content":     "content of " + title,
		"tags":        tags,
		"isPublished": published,
	})
	require.Equal(t, http.StatusCreated, status, body.JSON())

	return data(t, body)["id"].(string)
}

func TestHealthCheckHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, headers, body := ts.get(t, "/api/health")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", body["status"])
	assert.Equal(t, map[string]any{"environment": "development", "version": "1.0.0"}, body["system_info"])
	assert.NotEmpty(t, headers.Get(requestIDHeader))
}

func TestCreateBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
		wantError  string
	}{
		{
			name:       "Valid Draft",
			payload:    map[string]any{"title": "Hi", "content": "one two three", "tags": []string{"a"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Missing Fields",
			payload:    map[string]any{"title": "Hi"},
			wantStatus: http.StatusBadRequest,
			wantError:  "content: must be provided; tags: must contain at least one tag",
		},
		{
			name:       "Unknown Field",
			payload:    map[string]any{"title": "Hi", "content": "c", "tags": []string{"a"}, "likes": 10},
			wantStatus: http.StatusBadRequest,
			wantError:  `request body contains unknown field "likes"`,
		},
		{
			name:       "Wrong Type",
			payload:    map[string]any{"title": 5, "content": "c", "tags": []string{"a"}},
			wantStatus: http.StatusBadRequest,
			wantError:  `request body contains an invalid value for the "title" field`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/api/blogs", tc.payload)

			assert.Equal(t, tc.wantStatus, status)
			if tc.wantError != "" {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tc.wantError, body["error"])
				return
			}

			assert.Equal(t, true, body["success"])
			blog := data(t, body)
			assert.NotEmpty(t, blog["id"])
			assert.Equal(t, "one two three", blog["excerpt"])
			assert.Equal(t, float64(1), blog["readTime"])
			assert.Equal(t, false, blog["isPublished"])
			assert.Equal(t, "Admin", blog["author"])
			assert.Equal(t, "1970-01-01T00:00:00Z", blog["publishedAt"])
			assert.Equal(t, float64(0), blog["likes"])
		})
	}

	t.Run("Empty Body", func(t *testing.T) {
		res, err := ts.Client().Post(ts.URL+"/api/blogs", "application/json", strings.NewReader(""))
		require.NoError(t, err)

		status, _, body := readResponse(t, res)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "request body must not be empty", body["error"])
	})

	t.Run("Validation Fields", func(t *testing.T) {
		status, _, body := ts.post(t, "/api/blogs", map[string]any{})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, map[string]any{
			"title":   "must be provided",
			"content": "must be provided",
			"tags":    "must contain at least one tag",
		}, body["fields"])
	})
}

func TestGetBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	id := createBlog(t, ts, "readable", false)

	status, _, body := ts.get(t, "/api/blogs/"+id)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "readable", data(t, body)["title"])

	status, _, body = ts.get(t, "/api/blogs/does-not-exist")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Blog not found", body["error"])
}

func TestListBlogsHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	for i := 0; i < 12; i++ {
		createBlog(t, ts, fmt.Sprintf("post %d", i), true, "go")
	}
	createBlog(t, ts, "tagged", true, "rust")
	createBlog(t, ts, "draft", false, "go")

	testCases := []struct {
		name      string
		query     string
		wantCount int
		wantTotal float64
		wantPage  float64
		wantLimit float64
	}{
		{name: "Defaults", query: "", wantCount: 10, wantTotal: 13, wantPage: 1, wantLimit: 10},
		{name: "Second Page", query: "?page=2&limit=10", wantCount: 3, wantTotal: 13, wantPage: 2, wantLimit: 10},
		{name: "Non Numeric", query: "?page=abc&limit=xyz", wantCount: 10, wantTotal: 13, wantPage: 1, wantLimit: 10},
		{name: "Beyond End", query: "?page=5&limit=5", wantCount: 0, wantTotal: 13, wantPage: 5, wantLimit: 5},
		{name: "Huge Page", query: "?page=1844674407370955162&limit=10", wantCount: 0, wantTotal: 13, wantPage: 1844674407370955162, wantLimit: 10},
		{name: "Tag Filter", query: "?tag=rust", wantCount: 1, wantTotal: 1, wantPage: 1, wantLimit: 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.get(t, "/api/blogs"+tc.query)
			require.Equal(t, http.StatusOK, status)

			page := data(t, body)
			assert.Len(t, page["blogs"], tc.wantCount)
			assert.Equal(t, tc.wantTotal, page["total"])
			assert.Equal(t, tc.wantPage, page["page"])
			assert.Equal(t, tc.wantLimit, page["limit"])
		})
	}
}

func TestUpdateBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	id := createBlog(t, ts, "draft", false)

	status, _, body := ts.put(t, "/api/blogs/"+id, map[string]any{"title": "renamed"})
	require.Equal(t, http.StatusOK, status)
	blog := data(t, body)
	assert.Equal(t, "renamed", blog["title"])
	assert.Equal(t, "content of draft", blog["content"])

	status, _, body = ts.put(t, "/api/blogs/"+id, map[string]any{"isPublished": true})
	require.Equal(t, http.StatusOK, status)
	publishedAt := data(t, body)["publishedAt"]
	assert.NotEqual(t, "1970-01-01T00:00:00Z", publishedAt)

	status, _, body = ts.put(t, "/api/blogs/"+id, map[string]any{"isPublished": true})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, publishedAt, data(t, body)["publishedAt"])

	status, _, body = ts.put(t, "/api/blogs/missing", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Blog not found", body["error"])
}

func TestDeleteBlogHandler(t *testing.T) {
	app, store := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	id := createBlog(t, ts, "doomed", true)

	for i := 0; i < 3; i++ {
		status, _, _ := ts.post(t, "/api/comments", map[string]any{"blogId": id, "author": "ann", "content": "hi"})
		require.Equal(t, http.StatusCreated, status)
	}

	status, _, body := ts.delete(t, "/api/blogs/"+id)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Blog deleted successfully", body["message"])

	status, _, body = ts.get(t, "/api/comments/"+id)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["data"])

	comments, err := store.ListComments(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, comments)

	status, _, _ = ts.delete(t, "/api/blogs/"+id)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLikeBlogHandler(t *testing.T) {
	app, store := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	id := createBlog(t, ts, "liked", true)

	for i := 0; i < 3; i++ {
		status, _, body := ts.post(t, "/api/blogs/"+id+"/like", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Blog liked successfully", body["message"])
	}

	blog, err := store.GetBlog(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), blog.Likes)

	status, _, body := ts.post(t, "/api/blogs/missing/like", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Blog not found", body["error"])
}

func TestCommentHandlers(t *testing.T) {
	app, store := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	blogID := createBlog(t, ts, "discussed", true)

	status, _, body := ts.post(t, "/api/comments", map[string]any{"blogId": blogID, "author": "ann", "content": "first"})
	require.Equal(t, http.StatusCreated, status)
	commentID := data(t, body)["id"].(string)
	createdAt := data(t, body)["createdAt"]

	t.Run("Create Missing Blog", func(t *testing.T) {
		status, _, body := ts.post(t, "/api/comments", map[string]any{"blogId": "missing", "author": "ann", "content": "x"})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Blog not found", body["error"])

		comments, err := store.ListComments(context.Background(), "missing")
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("Create Missing Fields", func(t *testing.T) {
		status, _, body := ts.post(t, "/api/comments", map[string]any{"blogId": blogID})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "author: must be provided; content: must be provided", body["error"])
	})

	t.Run("List", func(t *testing.T) {
		status, _, _ := ts.post(t, "/api/comments", map[string]any{"blogId": blogID, "author": "bob", "content": "second"})
		require.Equal(t, http.StatusCreated, status)

		status, _, body := ts.get(t, "/api/comments/"+blogID)
		require.Equal(t, http.StatusOK, status)

		comments := body["data"].([]any)
		require.Len(t, comments, 2)
		assert.Equal(t, "second", comments[0].(map[string]any)["content"])
	})

	t.Run("Update", func(t *testing.T) {
		status, _, body := ts.put(t, "/api/comments/"+commentID, map[string]any{"content": "edited"})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "edited", data(t, body)["content"])
		assert.Equal(t, createdAt, data(t, body)["createdAt"])

		status, _, body = ts.put(t, "/api/comments/"+commentID, map[string]any{"content": ""})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "content: must be provided", body["error"])

		status, _, body = ts.put(t, "/api/comments/missing", map[string]any{"content": "x"})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Comment not found", body["error"])
	})

	t.Run("Like", func(t *testing.T) {
		status, _, body := ts.post(t, "/api/comments/"+commentID+"/like", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Comment liked successfully", body["message"])

		status, _, _ = ts.post(t, "/api/comments/missing/like", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Delete", func(t *testing.T) {
		status, _, body := ts.delete(t, "/api/comments/"+commentID)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Comment deleted successfully", body["message"])

		status, _, body = ts.delete(t, "/api/comments/"+commentID)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Comment not found", body["error"])
	})
}

func TestRoutingErrors(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "resource not found", body["error"])

	status, _, body = ts.do(t, http.MethodPatch, "/api/blogs", map[string]any{})
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.Equal(t, "method not allowed", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	createBlog(t, ts, "counted", true)

	res, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(raw), `quillpad_http_requests_total{method="POST",path="/api/blogs",status="201"}`)
	assert.Contains(t, string(raw), "quillpad_blogs_created_total")
}
