package service

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/mwhitfield/quill/internal/core/domain"
)

// ThumbnailBound is the maximum width/height of a stored profile picture.
const ThumbnailBound = 125

// PictureService turns uploaded images into bounded thumbnails stored
// under randomized filenames. The client-supplied filename is only
// consulted for its extension, never reused for storage.
type PictureService struct {
	dir string
}

func NewPictureService(dir string) *PictureService {
	return &PictureService{dir: dir}
}

// Save decodes the upload, shrinks it so neither dimension exceeds
// ThumbnailBound (never upscaling), writes it under a random hex name
// and returns that name. A non-decodable upload yields ErrBadImage.
func (s *PictureService) Save(r io.Reader, originalName string) (string, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadImage, err)
	}

	// Fit only shrinks; images already inside the bound pass through.
	thumb := imaging.Fit(img, ThumbnailBound, ThumbnailBound, imaging.Lanczos)

	name := randomHex() + normalizeExt(originalName)
	path := filepath.Join(s.dir, name)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create picture dir: %w", err)
	}
	if err := imaging.Save(thumb, path); err != nil {
		return "", fmt.Errorf("failed to save picture: %w", err)
	}

	return name, nil
}

// EnsureDefault writes the default avatar into the picture dir if it is
// not there yet, so fresh installs serve a valid image for new accounts.
func (s *PictureService) EnsureDefault() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create picture dir: %w", err)
	}
	path := filepath.Join(s.dir, domain.DefaultImageFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	avatar := imaging.New(ThumbnailBound, ThumbnailBound, color.NRGBA{R: 0x6c, G: 0x75, B: 0x7d, A: 0xff})
	if err := imaging.Save(avatar, path); err != nil {
		return fmt.Errorf("failed to write default avatar: %w", err)
	}
	return nil
}

// Remove deletes a previously stored picture. The default sentinel is
// never removed, and a missing file is not an error.
func (s *PictureService) Remove(name string) {
	if name == "" || name == domain.DefaultImageFile {
		return
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove stale picture %s: %v", name, err)
	}
}

func randomHex() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func normalizeExt(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".tif", ".tiff", ".bmp":
		return ext
	default:
		return ".jpg"
	}
}
