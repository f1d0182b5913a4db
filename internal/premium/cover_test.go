package premium

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func rgbaAt(t *testing.T, img interface {
	At(x, y int) color.Color
}, x, y int) color.RGBA {
	t.Helper()
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestRenderCoverDimensions(t *testing.T) {
	img := RenderCover(CoverSpec{Title: "Test", Author: "Author", Genre: "thriller"})
	b := img.Bounds()
	if b.Dx() != coverWidth || b.Dy() != coverHeight {
		t.Errorf("expected %dx%d, got %dx%d", coverWidth, coverHeight, b.Dx(), b.Dy())
	}
}

func TestRenderCoverGenreScheme(t *testing.T) {
	img := RenderCover(CoverSpec{Title: "Test", Author: "Author", Genre: "thriller"})

	// Thriller scheme: black background, red accent bar across the middle.
	if got := rgbaAt(t, img, 10, 10); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("expected black background, got %v", got)
	}
	if got := rgbaAt(t, img, 10, coverHeight/2); got.R != 255 || got.G != 0 || got.B != 0 {
		t.Errorf("expected red accent bar, got %v", got)
	}
}

func TestRenderCoverUnknownGenreUsesDefaultScheme(t *testing.T) {
	img := RenderCover(CoverSpec{Title: "Test", Author: "Author", Genre: "western"})

	// Default scheme background is #1A365D.
	got := rgbaAt(t, img, 10, 10)
	if got.R != 0x1A || got.G != 0x36 || got.B != 0x5D {
		t.Errorf("expected default background, got %v", got)
	}
}

func TestWriteCoverPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	spec := CoverSpec{Title: "The Long Night", Subtitle: "A Novel", Author: "J. Writer", Genre: "fantasy"}
	if err := WriteCoverPNG(spec, path); err != nil {
		t.Fatalf("WriteCoverPNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open cover: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode cover: %v", err)
	}
	if b := img.Bounds(); b.Dx() != coverWidth || b.Dy() != coverHeight {
		t.Errorf("expected %dx%d, got %dx%d", coverWidth, coverHeight, b.Dx(), b.Dy())
	}
}
