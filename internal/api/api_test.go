package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sakura/internal/blob"
	"sakura/internal/schema"
)

const testSchema = `
enum Sample {
  YA
  TIDAK
}

enum Kerah {
  SANGHAI // kerah shanghai
  KEMEJA
  KPC_2_WARNA
}

enum NotMapped {
  X
}
`

type testEnv struct {
	router     *gin.Engine
	server     *Server
	schemaPath string
	uploadDir  string
}

func newTestEnv(t *testing.T, schemaText string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.prisma")
	require.NoError(t, os.WriteFile(schemaPath, []byte(schemaText), 0o644))
	uploadDir := filepath.Join(dir, "uploads")

	s := NewServer(
		schema.NewSource(schemaPath, zap.NewNop()),
		blob.NewLocalStore(uploadDir),
		UploadOptions{URLPrefix: "/uploads", DefaultExt: ".jpg", MaxBytes: 1 << 20},
		zap.NewNop(),
	)
	r := NewRouter(s, []string{"*"})
	sts := MountComponents(context.Background(), r, s.Log,
		UploadsComponent(s, uploadDir),
		LandingComponent(s),
	)
	for _, st := range sts {
		require.True(t, st.Mounted, "component %s: %v", st.Name, st.Err)
	}
	return &testEnv{router: r, server: s, schemaPath: schemaPath, uploadDir: uploadDir}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type upload struct {
	name    string
	content string
}

func multipartBody(t *testing.T, field string, files ...upload) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile(field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("note", "landing"))
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
