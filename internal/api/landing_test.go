package api

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sakura/internal/blob"
)

type uploadResp struct {
	URLs []string `json:"urls"`
}

func listUploads(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestLandingUpload_TwoFiles(t *testing.T) {
	e := newTestEnv(t, testSchema)

	body, ctype := multipartBody(t, uploadField,
		upload{name: "banner.PNG", content: "png-bytes"},
		upload{name: "promo.gif", content: "gif-bytes"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/landing/upload/", body)
	req.Header.Set("Content-Type", ctype)

	w := e.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[uploadResp](t, w)
	require.Len(t, resp.URLs, 2)
	assert.NotEqual(t, resp.URLs[0], resp.URLs[1])
	assert.Regexp(t, `^/uploads/[0-9a-f]{32}\.png$`, resp.URLs[0])
	assert.Regexp(t, `^/uploads/[0-9a-f]{32}\.gif$`, resp.URLs[1])

	// порядок ответа = порядок файлов
	b, err := os.ReadFile(filepath.Join(e.uploadDir, path.Base(resp.URLs[0])))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))
	b, err = os.ReadFile(filepath.Join(e.uploadDir, path.Base(resp.URLs[1])))
	require.NoError(t, err)
	assert.Equal(t, "gif-bytes", string(b))

	// и отдаются статикой
	got := e.get(resp.URLs[1])
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, "gif-bytes", got.Body.String())
}

func TestLandingUpload_DefaultExtension(t *testing.T) {
	e := newTestEnv(t, testSchema)

	body, ctype := multipartBody(t, uploadField, upload{name: "noext", content: "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/landing/upload/", body)
	req.Header.Set("Content-Type", ctype)

	w := e.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[uploadResp](t, w)
	require.Len(t, resp.URLs, 1)
	assert.True(t, strings.HasSuffix(resp.URLs[0], ".jpg"))
}

func TestLandingUpload_NoFiles(t *testing.T) {
	e := newTestEnv(t, testSchema)

	// multipart без файлов
	body, ctype := multipartBody(t, uploadField)
	req := httptest.NewRequest(http.MethodPost, "/api/landing/upload/", body)
	req.Header.Set("Content-Type", ctype)

	w := e.do(req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No files provided"}`, w.Body.String())
	assert.Empty(t, listUploads(t, e.uploadDir))
}

func TestLandingUpload_WrongFieldName(t *testing.T) {
	e := newTestEnv(t, testSchema)

	body, ctype := multipartBody(t, "file", upload{name: "a.png", content: "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/landing/upload/", body)
	req.Header.Set("Content-Type", ctype)

	w := e.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, listUploads(t, e.uploadDir))
}

func TestLandingUpload_NotMultipart(t *testing.T) {
	e := newTestEnv(t, testSchema)

	req := httptest.NewRequest(http.MethodPost, "/api/landing/upload/", strings.NewReader(`{"files":[]}`))
	req.Header.Set("Content-Type", "application/json")

	w := e.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No files provided"}`, w.Body.String())
}

func TestLandingUpload_StoreError(t *testing.T) {
	e := newTestEnv(t, testSchema)
	// папку загрузок подменяем файлом — запись упадёт
	require.NoError(t, os.RemoveAll(e.uploadDir))
	require.NoError(t, os.WriteFile(e.uploadDir, []byte("not a dir"), 0o644))

	body, ctype := multipartBody(t, uploadField, upload{name: "a.png", content: "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/landing/upload/", body)
	req.Header.Set("Content-Type", ctype)

	w := e.do(req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "store error")
}

// failingStore пишет первые ok файлов в настоящий LocalStore, дальше — ошибка.
type failingStore struct {
	*blob.LocalStore
	ok    int
	calls int
}

func (s *failingStore) Put(name string, r io.Reader) (blob.Object, error) {
	s.calls++
	if s.calls > s.ok {
		return blob.Object{}, &blob.StoreError{Op: "write", Name: name, Err: errors.New("disk full")}
	}
	return s.LocalStore.Put(name, r)
}

func TestLandingUpload_PartialBatchKeepsStored(t *testing.T) {
	e := newTestEnv(t, testSchema)
	e.server.Blob = &failingStore{LocalStore: blob.NewLocalStore(e.uploadDir), ok: 1}

	body, ctype := multipartBody(t, uploadField,
		upload{name: "first.png", content: "first"},
		upload{name: "second.png", content: "second"},
		upload{name: "third.png", content: "third"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/landing/upload/", body)
	req.Header.Set("Content-Type", ctype)

	w := e.do(req)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[map[string]string](t, w)
	assert.Equal(t, "store error", resp["error"])
	assert.Contains(t, resp["details"], "disk full")

	// без отката: первый файл остался, третий даже не пробовали
	names := listUploads(t, e.uploadDir)
	require.Len(t, names, 1)
	assert.Regexp(t, `^[0-9a-f]{32}\.png$`, names[0])
	b, err := os.ReadFile(filepath.Join(e.uploadDir, names[0]))
	require.NoError(t, err)
	assert.Equal(t, "first", string(b))
	assert.Equal(t, 2, e.server.Blob.(*failingStore).calls)
}

func TestLandingUpload_TooLarge(t *testing.T) {
	e := newTestEnv(t, testSchema)
	e.server.Uploads.MaxBytes = 1 << 10

	body, ctype := multipartBody(t, uploadField, upload{name: "big.png", content: strings.Repeat("x", 4<<10)})
	req := httptest.NewRequest(http.MethodPost, "/api/landing/upload/", body)
	req.Header.Set("Content-Type", ctype)

	w := e.do(req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"Upload too large"}`, w.Body.String())
	assert.Empty(t, listUploads(t, e.uploadDir))
}
