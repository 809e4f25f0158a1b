package fs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	s, err := New(root, "http://localhost:8080/assets")
	require.NoError(t, err)
	return s, root
}

func TestStore_UploadCreateOnly(t *testing.T) {
	s, root := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "u1/pet_images/a.png", []byte("png"), "image/png"))
	b, err := os.ReadFile(filepath.Join(root, "u1", "pet_images", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(b))

	err = s.Upload(ctx, "u1/pet_images/a.png", []byte("again"), "image/png")
	assert.ErrorIs(t, err, ErrExists)
}

func TestStore_RejectsEscapingPaths(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	for _, p := range []string{"", "../x.png", "/etc/x.png", "u1/../../x.png"} {
		assert.ErrorIs(t, s.Upload(ctx, p, []byte("x"), "image/png"), ErrInvalidPath, p)
		assert.ErrorIs(t, s.Remove(ctx, p), ErrInvalidPath, p)
	}
}

func TestStore_RemoveAndList(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Upload(ctx, "u1/pet_images/a.png", []byte("a"), "image/png"))
	require.NoError(t, s.Upload(ctx, "u2/pet_images/b.png", []byte("bb"), "image/png"))

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "u1/pet_images/a.png", all[0].Path)
	assert.Equal(t, int64(2), all[1].Size)
	assert.False(t, all[0].LastModified.IsZero())

	u2, err := s.List(ctx, "u2/")
	require.NoError(t, err)
	assert.Len(t, u2, 1)

	require.NoError(t, s.Remove(ctx, "u1/pet_images/a.png"))
	require.NoError(t, s.Remove(ctx, "u1/pet_images/a.png"))
	all, err = s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_URLAndServe(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Upload(context.Background(), "u1/pet_images/a.png", []byte("png"), "image/png"))

	u := s.PublicURL("u1/pet_images/a.png")
	p, err := s.PathFromURL(u)
	require.NoError(t, err)
	assert.Equal(t, "u1/pet_images/a.png", p)

	rec := httptest.NewRecorder()
	http.StripPrefix("/assets", s).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/u1/pet_images/a.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())
	assert.Equal(t, "max-age=3600", rec.Header().Get("Cache-Control"))
}

func TestStore_ServeRejectsDirectories(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Upload(context.Background(), "u1/pet_images/a.png", []byte("png"), "image/png"))
	h := http.StripPrefix("/assets", s)

	for _, p := range []string{"/assets/", "/assets/u1/", "/assets/u1/pet_images/", "/assets/u1/pet_images", "/assets/u1/pet_images/missing.png"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, p)
		assert.NotContains(t, rec.Body.String(), "a.png", p)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/assets/u1/pet_images/a.png", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
