package service

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/mwhitfield/quill/internal/core/domain"
)

func encodePNG(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return &buf
}

func TestPictureSaveShrinksLargeImages(t *testing.T) {
	dir := t.TempDir()
	svc := NewPictureService(dir)

	name, err := svc.Save(encodePNG(t, 2000, 1000), "vacation.png")
	if err != nil {
		t.Fatalf("failed to save picture: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("expected a .png filename, got %s", name)
	}
	if name == "vacation.png" {
		t.Error("stored name must not reuse the client-supplied filename")
	}

	saved, err := imaging.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to reopen saved picture: %v", err)
	}

	bounds := saved.Bounds()
	if bounds.Dx() > ThumbnailBound || bounds.Dy() > ThumbnailBound {
		t.Errorf("thumbnail exceeds bound: %dx%d", bounds.Dx(), bounds.Dy())
	}
	// 2:1 aspect ratio preserved
	if bounds.Dx() != 125 || bounds.Dy() != 62 {
		t.Errorf("expected 125x62, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPictureSaveNeverUpscales(t *testing.T) {
	dir := t.TempDir()
	svc := NewPictureService(dir)

	name, err := svc.Save(encodePNG(t, 50, 50), "tiny.png")
	if err != nil {
		t.Fatalf("failed to save picture: %v", err)
	}

	saved, err := imaging.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to reopen saved picture: %v", err)
	}

	bounds := saved.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("small image should pass through unscaled, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPictureSaveRejectsGarbage(t *testing.T) {
	svc := NewPictureService(t.TempDir())

	_, err := svc.Save(strings.NewReader("this is not an image"), "evil.jpg")
	if !errors.Is(err, ErrBadImage) {
		t.Errorf("expected ErrBadImage, got %v", err)
	}
}

func TestPictureSaveRandomizesNames(t *testing.T) {
	dir := t.TempDir()
	svc := NewPictureService(dir)

	a, err := svc.Save(encodePNG(t, 10, 10), "same.png")
	if err != nil {
		t.Fatalf("failed to save picture: %v", err)
	}
	b, err := svc.Save(encodePNG(t, 10, 10), "same.png")
	if err != nil {
		t.Fatalf("failed to save picture: %v", err)
	}
	if a == b {
		t.Error("two uploads of the same file must not collide")
	}
}

func TestPictureRemoveKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	svc := NewPictureService(dir)

	defaultPath := filepath.Join(dir, domain.DefaultImageFile)
	if err := os.WriteFile(defaultPath, []byte("sentinel"), 0o644); err != nil {
		t.Fatalf("failed to write default picture: %v", err)
	}

	svc.Remove(domain.DefaultImageFile)
	if _, err := os.Stat(defaultPath); err != nil {
		t.Errorf("default picture must never be removed: %v", err)
	}

	name, err := svc.Save(encodePNG(t, 10, 10), "old.png")
	if err != nil {
		t.Fatalf("failed to save picture: %v", err)
	}
	svc.Remove(name)
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Errorf("expected picture to be removed, stat err: %v", err)
	}
}

func TestEnsureDefaultWritesOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pics")
	svc := NewPictureService(dir)

	if err := svc.EnsureDefault(); err != nil {
		t.Fatalf("failed to create default avatar: %v", err)
	}
	path := filepath.Join(dir, domain.DefaultImageFile)
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("default avatar is not a decodable image: %v", err)
	}
	if img.Bounds().Dx() != ThumbnailBound || img.Bounds().Dy() != ThumbnailBound {
		t.Errorf("unexpected avatar size: %v", img.Bounds())
	}

	// Second call must leave an existing file alone.
	if err := os.WriteFile(path, []byte("custom"), 0o644); err != nil {
		t.Fatalf("failed to overwrite avatar: %v", err)
	}
	if err := svc.EnsureDefault(); err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read avatar: %v", err)
	}
	if string(content) != "custom" {
		t.Error("an existing avatar must not be overwritten")
	}
}
