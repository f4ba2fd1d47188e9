package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sushihentaime/quillpad/internal/blogservice"
	"github.com/sushihentaime/quillpad/internal/commentservice"
	"github.com/sushihentaime/quillpad/internal/common"
	"github.com/sushihentaime/quillpad/internal/storage/memory"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatalf("could not decode %q: %v", responseBody, err)
	}

	return res.StatusCode, res.Header, envelope
}

// newTestApplication wires the services to a fresh memory store with events disabled.
func newTestApplication(t *testing.T) (*application, *memory.MemoryStorage) {
	store := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.RateLimitEnabled = false

	cache := common.NewCache(time.Minute, 2*time.Minute)
	app := &application{
		config:         cfg,
		logger:         logger,
		blogService:    blogservice.NewBlogService(store, store, cache, nil, logger, cfg.BlogAuthor),
		commentService: commentservice.NewCommentService(store, store, nil, logger),
	}

	t.Cleanup(func() { store.Close() })

	return app, store
}

func (ts *testServer) do(t *testing.T, method, path string, payload any) (int, http.Header, envelope) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, payload)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, nil)
}

func (ts *testServer) put(t *testing.T, path string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPut, path, payload)
}

func (ts *testServer) delete(t *testing.T, path string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, nil)
}

// data returns the "data" member of a success envelope as a map.
func data(t *testing.T, env envelope) map[string]any {
	t.Helper()

	d, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("envelope has no object data: %s", env.JSON())
	}
	return d
}
