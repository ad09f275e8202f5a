package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/store"
	"github.com/disintegration/imaging"
)

// Thumbnail geometry: the preview fits inside a 300x300 box while keeping
// the aspect ratio, and images already smaller than the box are left at
// their original size.
const (
	thumbnailMaxWidth  = 300
	thumbnailMaxHeight = 300
	thumbnailQuality   = 80
)

// thumbnailDeriver is the concrete implementation of ThumbnailDeriver.
// Thumbnails are always encoded as JPEG regardless of the source format and
// stored next to the original as "thumb_<stored-name-without-ext>.jpg".
type thumbnailDeriver struct {
	files  store.FileStorage
	logger *logger.Logger
}

// NewThumbnailDeriver constructs a ThumbnailDeriver writing through the
// given file storage.
func NewThumbnailDeriver(files store.FileStorage, logger *logger.Logger) ThumbnailDeriver {
	return &thumbnailDeriver{
		files:  files,
		logger: logger,
	}
}

// Derive reads the stored image at storedPath, scales it down to fit the
// thumbnail box, and persists the JPEG preview in the same user/project
// directory. Returns the absolute path of the thumbnail file.
func (d *thumbnailDeriver) Derive(ctx context.Context, userID, projectID, storedPath string) (string, error) {
	log := logger.FromContext(ctx)

	src, err := d.files.Open(storedPath)
	if err != nil {
		log.Err(err).Str("path", storedPath).Msg("failed to open source image")
		return "", fmt.Errorf("failed to open source image: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		log.Err(err).Str("path", storedPath).Msg("failed to decode source image")
		return "", fmt.Errorf("failed to decode source image: %w", err)
	}

	// Fit never upscales: small originals pass through at their own size
	thumb := imaging.Fit(img, thumbnailMaxWidth, thumbnailMaxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err = imaging.Encode(buf, thumb, imaging.JPEG, imaging.JPEGQuality(thumbnailQuality)); err != nil {
		log.Err(err).Str("path", storedPath).Msg("failed to encode thumbnail")
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	thumbPath, _, err := d.files.Save(userID, projectID, ThumbnailName(storedPath), buf)
	if err != nil {
		log.Err(err).Str("path", storedPath).Msg("failed to store thumbnail")
		return "", fmt.Errorf("failed to store thumbnail: %w", err)
	}

	return thumbPath, nil
}

// ThumbnailName derives the thumbnail filename from a stored file path:
// the extension is replaced with ".jpg" and the base name is prefixed with
// "thumb_".
func ThumbnailName(storedPath string) string {
	base := filepath.Base(storedPath)
	return "thumb_" + strings.TrimSuffix(base, filepath.Ext(base)) + ".jpg"
}
