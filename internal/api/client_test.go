package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL})
}

func TestSearchLowercasesWithoutTrimming(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"query":"cats "}`, string(raw))

		_, _ = w.Write([]byte(`[{"id":1,"title":"Cat Facts","url":"https://x","description":"...","tags":["animals"]}]`))
	})

	res, err := c.Search(context.Background(), "Cats ")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, int64(1), res[0].ID)
	assert.Equal(t, "Cat Facts", res[0].Title)
	assert.Equal(t, []string{"animals"}, res[0].Tags)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSearchPreservesOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":3,"title":"c"},{"id":1,"title":"a"},{"id":2,"title":"b"}]`))
	})

	res, err := c.Search(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "c", res[0].Title)
	assert.Equal(t, "a", res[1].Title)
	assert.Equal(t, "b", res[2].Title)
}

func TestSearchNon2xxIsGeneric(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"error","message":"C++ process is not running"}`))
	})

	_, err := c.Search(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSearchFailed))
	assert.Equal(t, "search request failed", err.Error())

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.StatusCode)
	assert.Equal(t, "C++ process is not running", serr.Detail)
	assert.Equal(t, "search", serr.Op)
}

func TestSearchMalformedPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	_, err := c.Search(context.Background(), "x")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSearchFailed))
	assert.Contains(t, err.Error(), "decode search response")
}

func TestSearchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url})
	_, err := c.Search(context.Background(), "x")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSearchFailed))
}

func TestSearchHonoursContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Search(ctx, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUploadMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Len(t, r.MultipartForm.File, 1)

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "data.csv", hdr.Filename)
		raw, _ := io.ReadAll(f)
		assert.Equal(t, "title,text\na,b\n", string(raw))

		_ = json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "File uploaded successfully"})
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("title,text\na,b\n"), 0o644))

	resp, err := c.UploadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "File uploaded successfully", resp.Message)
	assert.Equal(t, "success", resp.Status)
}

func TestUploadNon2xxIsGeneric(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"error","message":"No file selected for uploading"}`))
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	_, err := c.UploadFile(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Equal(t, "upload failed", err.Error())
}

func TestUploadFileMissing(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := c.UploadFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{})
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c = NewClient(Config{BaseURL: "http://example.test/"})
	assert.Equal(t, "http://example.test", c.BaseURL())
}
