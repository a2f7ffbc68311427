package uploads

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/sparknest-app/sparknest-backend/internal/blob"
	"github.com/sparknest-app/sparknest-backend/internal/identity"
)

// memStorage is an in-memory blob.Storage for handler tests.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string, onProgress blob.ProgressFunc) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = data
	return "https://storage.example/" + path, nil
}

func (m *memStorage) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, path)
	return nil
}

func (m *memStorage) List(ctx context.Context, prefix string) ([]blob.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []blob.ObjectInfo
	for path, data := range m.objects {
		if strings.HasPrefix(path, prefix) {
			out = append(out, blob.ObjectInfo{Path: path, Size: int64(len(data))})
		}
	}
	return out, nil
}

func newUploadsRouter(storage blob.Storage, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/api/v1")
	grp.Use(func(c *gin.Context) { identity.SetUserID(c, userID) })
	Register(grp, storage)
	return r
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestUploadStoresUnderUserPrefix(t *testing.T) {
	storage := newMemStorage()
	r := newUploadsRouter(storage, "u1")

	body, contentType := multipartBody(t, "Photo.PNG", []byte("png-bytes"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, storage.objects, 1)
	for path := range storage.objects {
		require.True(t, strings.HasPrefix(path, "uploads/u1/"), "path %s", path)
		require.True(t, strings.HasSuffix(path, ".png"), "path %s", path)
	}
}

func TestUploadRequiresFile(t *testing.T) {
	r := newUploadsRouter(newMemStorage(), "u1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOnlySeesOwnFiles(t *testing.T) {
	storage := newMemStorage()
	storage.objects["uploads/u1/a.png"] = []byte("a")
	storage.objects["uploads/u2/b.png"] = []byte("b")

	r := newUploadsRouter(storage, "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/uploads", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "uploads/u1/a.png")
	require.NotContains(t, w.Body.String(), "uploads/u2/b.png")
}

func TestDeleteForeignPathForbidden(t *testing.T) {
	storage := newMemStorage()
	storage.objects["uploads/u2/b.png"] = []byte("b")

	r := newUploadsRouter(storage, "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/uploads/uploads/u2/b.png", nil))
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, storage.objects, "uploads/u2/b.png")
}

func TestDeleteOwnPath(t *testing.T) {
	storage := newMemStorage()
	storage.objects["uploads/u1/a.png"] = []byte("a")

	r := newUploadsRouter(storage, "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/uploads/uploads/u1/a.png", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, storage.objects, "uploads/u1/a.png")
}
