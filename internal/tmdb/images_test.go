package tmdb

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/lepinkainen/marquee/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDownloadAndResizeImage(t *testing.T) {
	data := pngBytes(t, 400, 600)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	env := testutil.NewTestEnv(t)
	dest := env.Path("out", "poster.jpg")

	client := NewClient("k")
	require.NoError(t, client.DownloadAndResizeImage(context.Background(), srv.URL, dest, 200))

	img, err := imaging.Open(dest)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestDownloadAndResizeImage_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	env := testutil.NewTestEnv(t)
	err := NewClient("k").DownloadAndResizeImage(context.Background(), srv.URL, env.Path("x.jpg"), 100)
	require.Error(t, err)
}

func TestDownloadPoster(t *testing.T) {
	data := pngBytes(t, 50, 75)
	imgSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/matrix.jpg", r.URL.Path)
		_, _ = w.Write(data)
	}))
	defer imgSrv.Close()

	client, server := newTestClient(t)
	client.imageBaseURL = imgSrv.URL
	server.Handle(http.MethodGet, "/movie/603", http.StatusOK, map[string]any{"id": 603, "poster_path": "/matrix.jpg"})

	dir := t.TempDir()
	path, err := client.DownloadPoster(context.Background(), 603, MediaMovie, dir, 500)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "movie-603.jpg"), path)
	assert.FileExists(t, path)
}

func TestDownloadPoster_NoPoster(t *testing.T) {
	client, server := newTestClient(t)
	server.Handle(http.MethodGet, "/tv/5", http.StatusOK, map[string]any{"id": 5})

	_, err := client.DownloadPoster(context.Background(), 5, MediaTV, t.TempDir(), 500)
	require.ErrorIs(t, err, ErrNoPoster)
}
