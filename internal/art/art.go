// Package art turns card images into truecolor ANSI art for the terminal.
package art

import (
	"context"
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"go.uber.org/zap"
)

const (
	// DefaultWidth and DefaultHeight are the art size in character cells
	DefaultWidth  = 40
	DefaultHeight = 28
)

// Renderer downloads card images and converts them to ANSI art, caching both.
type Renderer struct {
	Client   *http.Client
	CacheDir string
	Width    int
	Height   int
	Logger   *zap.Logger
}

// NewRenderer creates a Renderer that caches under cacheDir.
func NewRenderer(cacheDir string, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		Client:   &http.Client{Timeout: 30 * time.Second},
		CacheDir: cacheDir,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Logger:   logger,
	}
}

// Render returns the ANSI art for the image at imageURL.
func (r *Renderer) Render(ctx context.Context, imageURL string) (string, error) {
	if imageURL == "" {
		return "", fmt.Errorf("card has no art")
	}

	name := fmt.Sprintf("%x", md5.Sum([]byte(imageURL)))

	ansiDir := filepath.Join(r.CacheDir, "ansi_cache")
	imageDir := filepath.Join(r.CacheDir, "images")
	for _, dir := range []string{ansiDir, imageDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	// Check if we already have a cached version
	ansiPath := filepath.Join(ansiDir, name+".ansi")
	if data, err := os.ReadFile(ansiPath); err == nil {
		r.Logger.Debug("ansi cache hit", zap.String("url", imageURL))
		return string(data), nil
	}

	imagePath := filepath.Join(imageDir, name)
	if _, err := os.Stat(imagePath); os.IsNotExist(err) {
		if err := r.fetch(ctx, imageURL, imagePath); err != nil {
			return "", err
		}
	}

	ansiArt, err := r.generate(imagePath)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(ansiPath, []byte(ansiArt), 0644); err != nil {
		return "", fmt.Errorf("failed to write ANSI art to file: %w", err)
	}
	return ansiArt, nil
}

// fetch downloads an image to path
func (r *Renderer) fetch(ctx context.Context, imageURL, path string) error {
	r.Logger.Debug("downloading card art", zap.String("url", imageURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("invalid art URL: %w", err)
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download art: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download art: %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "art-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to cache art: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to cache art: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to cache art: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// generate converts an image file to ANSI art
func (r *Renderer) generate(imagePath string) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	width, height := r.Width, r.Height
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	return ImageToAnsi(img, width, height), nil
}

// ImageToAnsi draws img as width x height cells of upper half blocks, the
// top pixel pair as foreground and the bottom pair as background.
func ImageToAnsi(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			top := averageColor(colorAt(resized, x, y), colorAt(resized, x+1, y))
			bottom := averageColor(colorAt(resized, x, y+1), colorAt(resized, x+1, y+1))
			buffer.WriteString(ansiCell('▀', top, bottom))
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

// colorAt returns the colour at a coordinate, black when out of bounds
func colorAt(img image.Image, x, y int) colorful.Color {
	bounds := img.Bounds()
	var c color.Color = color.RGBA{0, 0, 0, 255}
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		c = img.At(x, y)
	}
	col, _ := colorful.MakeColor(c)
	return col
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// ansiCell formats a character with truecolor foreground and background
func ansiCell(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.Clamped().RGB255()
	r2, g2, b2 := bg.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		r1, g1, b1, r2, g2, b2, char)
}

// StripAnsi removes ANSI escape sequences from a string
func StripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
