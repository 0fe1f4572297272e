package art

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func solidImage(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestImageToAnsi(t *testing.T) {
	out := ImageToAnsi(solidImage(color.RGBA{255, 0, 0, 255}), 4, 3)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, strings.Repeat("▀", 4), StripAnsi(line))
	}
	assert.Contains(t, out, "\x1b[38;2;255;0;0m")
	assert.Contains(t, out, "\x1b[48;2;255;0;0m")
}

func TestStripAnsi(t *testing.T) {
	assert.Equal(t, "Vader", StripAnsi("\x1b[1;36mVader\x1b[0m"))
	assert.Equal(t, "plain", StripAnsi("plain"))
}

func TestRender_DownloadsAndCaches(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(color.RGBA{0, 0, 255, 255})))

	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	defer server.Close()

	r := NewRenderer(t.TempDir(), zaptest.NewLogger(t))
	r.Client = server.Client()
	r.Width, r.Height = 6, 4

	first, err := r.Render(context.Background(), server.URL+"/SOR_010.png")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSuffix(first, "\n"), "\n"), 4)

	second, err := r.Render(context.Background(), server.URL+"/SOR_010.png")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestRender_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	r := NewRenderer(t.TempDir(), nil)
	r.Client = server.Client()

	_, err := r.Render(context.Background(), "")
	assert.Error(t, err)

	_, err = r.Render(context.Background(), server.URL+"/missing.png")
	assert.Error(t, err)
}
