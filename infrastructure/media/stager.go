package media

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"pinpilot/domain/entities"
	"pinpilot/domain/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

const (
	// Pinterest rejects pins with images narrower than this, so undersized
	// downloads are upscaled to exactly this width.
	minPinWidth = 1000

	jpegQuality     = 90
	downloadTimeout = 60 * time.Second
)

type stager struct {
	client   *http.Client
	tempDir  string
	minWidth int
	logger   *logrus.Logger
}

// NewStager - creates a media stager writing temp files to the OS temp dir
func NewStager(logger *logrus.Logger) interfaces.MediaStager {
	return &stager{
		client:   &http.Client{Timeout: downloadTimeout},
		tempDir:  os.TempDir(),
		minWidth: minPinWidth,
		logger:   logger,
	}
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Stage - resolves an image reference into a local file ready for upload.
// Local paths are returned unchanged; remote URLs are downloaded and, when
// narrower than the minimum width, replaced with a resized copy. A nil
// result with a nil error means the pin publishes without an image.
func (s *stager) Stage(ctx context.Context, imageRef string) (*entities.StagedMedia, error) {
	if imageRef == "" {
		return nil, nil
	}

	if !isRemote(imageRef) {
		info, err := os.Stat(imageRef)
		if err != nil || !info.Mode().IsRegular() {
			s.logger.WithField("path", imageRef).Warn("Local image not found, continuing without image")
			return nil, nil
		}
		return &entities.StagedMedia{Path: imageRef}, nil
	}

	tmpPath, err := s.download(ctx, imageRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrMediaStaging, err)
	}

	staged, err := s.fitToMinWidth(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("%w: %v", entities.ErrMediaStaging, err)
	}
	return staged, nil
}

// Release - deletes the temp file behind staged media. Idempotent; local
// caller-owned files are left alone.
func (s *stager) Release(media *entities.StagedMedia) error {
	if media == nil || !media.Temp || media.Path == "" {
		return nil
	}
	if err := os.Remove(media.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete temp image: %w", err)
	}
	return nil
}

func (s *stager) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image download failed: %s", resp.Status)
	}

	tmpPath := filepath.Join(s.tempDir, fmt.Sprintf("temp_pin_%s.img", uuid.NewString()))
	f, err := os.Create(tmpPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write downloaded image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	s.logger.WithFields(logrus.Fields{"url": url, "path": tmpPath}).Info("Image downloaded")
	return tmpPath, nil
}

// fitToMinWidth inspects the downloaded image and, if it is narrower than
// the minimum width, replaces it with an upscaled JPEG copy. The raw
// download is removed once the resized copy exists.
func (s *stager) fitToMinWidth(path string) (*entities.StagedMedia, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("unreadable image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w >= s.minWidth {
		return &entities.StagedMedia{Path: path, Width: w, Height: h, Temp: true}, nil
	}

	s.logger.WithFields(logrus.Fields{"width": w, "min": s.minWidth}).Info("Image below minimum width, resizing")

	newH := h * s.minWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, s.minWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	resizedPath := filepath.Join(filepath.Dir(path), "resized_"+filepath.Base(path)+".jpg")
	out, err := os.Create(resizedPath)
	if err != nil {
		return nil, err
	}
	if err := jpeg.Encode(out, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		out.Close()
		os.Remove(resizedPath)
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(resizedPath)
		return nil, err
	}

	if err := os.Remove(path); err != nil {
		s.logger.WithError(err).Warn("Failed to delete raw download after resize")
	}

	return &entities.StagedMedia{Path: resizedPath, Width: s.minWidth, Height: newH, Temp: true}, nil
}
