package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/ayakimov/fielddoc/internal/config"
	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/store"
	"github.com/ayakimov/fielddoc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFilesConfig = config.Files{
	UploadDir:         "./uploads",
	MaxFileSize:       10 << 20,
	AllowedImageTypes: []string{"image/jpeg", "image/png", "image/webp"},
	AllowedVideoTypes: []string{"video/mp4", "video/webm"},
}

func newTestMediaService(media *mockMediaRepository, projects *mockProjectRepository, files *mockFileStorage, thumbs *mockThumbnailDeriver) MediaService {
	return NewMediaService(media, projects, files, thumbs, testFilesConfig, logger.Nop())
}

func validUploadRequest() UploadRequest {
	return UploadRequest{
		UserID:       "user-1",
		ProjectID:    "project-1",
		OriginalName: "shot.jpg",
		MimeType:     "image/jpeg",
		Size:         7,
		Content:      strings.NewReader("payload"),
	}
}

// ─────────────────────────────────────────────
// Upload
// ─────────────────────────────────────────────

func TestUpload_Success_Photo(t *testing.T) {
	files := &mockFileStorage{}
	media := &mockMediaRepository{
		createMediaFn: func(ctx context.Context, m models.Media) (models.Media, error) {
			m.MediaID = "media-1"
			m.UploadedAt = time.Now()
			return m, nil
		},
	}
	svc := newTestMediaService(media, &mockProjectRepository{}, files, &mockThumbnailDeriver{})

	created, err := svc.Upload(context.Background(), validUploadRequest())
	require.NoError(t, err)

	assert.Equal(t, "media-1", created.MediaID)
	assert.Equal(t, models.FileTypePhoto, created.FileType)
	assert.Equal(t, int64(7), created.FileSize, "recorded size must be the bytes actually written")
	require.NotNil(t, created.ThumbnailPath)
	assert.Contains(t, *created.ThumbnailPath, ".thumb.jpg")
	require.Len(t, files.savedPaths, 1)
	assert.Contains(t, files.savedPaths[0], "-shot.jpg", "stored name keeps the original filename after the timestamp prefix")
}

func TestUpload_Success_VideoSkipsThumbnail(t *testing.T) {
	derived := false
	thumbs := &mockThumbnailDeriver{
		deriveFn: func(ctx context.Context, userID, projectID, storedPath string) (string, error) {
			derived = true
			return "", nil
		},
	}
	svc := newTestMediaService(&mockMediaRepository{}, &mockProjectRepository{}, &mockFileStorage{}, thumbs)

	req := validUploadRequest()
	req.OriginalName = "walkthrough.mp4"
	req.MimeType = "video/mp4"

	created, err := svc.Upload(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.FileTypeVideo, created.FileType)
	assert.Nil(t, created.ThumbnailPath)
	assert.False(t, derived, "videos must not go through the thumbnail deriver")
}

func TestUpload_ForeignProjectWritesNothing(t *testing.T) {
	files := &mockFileStorage{}
	projects := &mockProjectRepository{
		getProjectFn: func(ctx context.Context, projectID, userID string) (models.Project, error) {
			return models.Project{}, store.ErrProjectNotFound
		},
	}
	svc := newTestMediaService(&mockMediaRepository{}, projects, files, &mockThumbnailDeriver{})

	_, err := svc.Upload(context.Background(), validUploadRequest())
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
	assert.Empty(t, files.savedPaths, "nothing may reach the disk before ownership is confirmed")
}

func TestUpload_DisallowedMIMEWritesNothing(t *testing.T) {
	files := &mockFileStorage{}
	svc := newTestMediaService(&mockMediaRepository{}, &mockProjectRepository{}, files, &mockThumbnailDeriver{})

	req := validUploadRequest()
	req.MimeType = "application/pdf"

	_, err := svc.Upload(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Empty(t, files.savedPaths)
}

func TestUpload_TooLarge(t *testing.T) {
	files := &mockFileStorage{}
	svc := newTestMediaService(&mockMediaRepository{}, &mockProjectRepository{}, files, &mockThumbnailDeriver{})

	req := validUploadRequest()
	req.Size = testFilesConfig.MaxFileSize + 1

	_, err := svc.Upload(context.Background(), req)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Empty(t, files.savedPaths)
}

func TestUpload_HalfCoordinatePair(t *testing.T) {
	svc := newTestMediaService(&mockMediaRepository{}, &mockProjectRepository{}, &mockFileStorage{}, &mockThumbnailDeriver{})

	lat := 52.1
	req := validUploadRequest()
	req.Latitude = &lat

	_, err := svc.Upload(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestUpload_NonFiniteCoordinatesWriteNothing(t *testing.T) {
	files := &mockFileStorage{}
	svc := newTestMediaService(&mockMediaRepository{}, &mockProjectRepository{}, files, &mockThumbnailDeriver{})

	for name, value := range map[string]float64{
		"nan":          math.NaN(),
		"positive inf": math.Inf(1),
		"negative inf": math.Inf(-1),
	} {
		t.Run(name, func(t *testing.T) {
			v := value
			req := validUploadRequest()
			req.Latitude = &v
			req.Longitude = &v

			_, err := svc.Upload(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidCoordinates)
			assert.Empty(t, files.savedPaths, "a rejected upload must leave no file behind")
		})
	}
}

func TestUpload_ResponseCarriesProject(t *testing.T) {
	projects := &mockProjectRepository{
		getProjectFn: func(ctx context.Context, projectID, userID string) (models.Project, error) {
			return models.Project{ProjectID: projectID, UserID: userID, Name: "North Pit"}, nil
		},
	}
	svc := newTestMediaService(&mockMediaRepository{}, projects, &mockFileStorage{}, &mockThumbnailDeriver{})

	created, err := svc.Upload(context.Background(), validUploadRequest())
	require.NoError(t, err)

	require.NotNil(t, created.Project, "clients group uploads by the embedded project")
	assert.Equal(t, "project-1", created.Project.ProjectID)
	assert.Equal(t, "North Pit", created.Project.Name)
}

func TestUpload_ThumbnailFailureTolerated(t *testing.T) {
	thumbs := &mockThumbnailDeriver{
		deriveFn: func(ctx context.Context, userID, projectID, storedPath string) (string, error) {
			return "", errors.New("corrupt image data")
		},
	}
	svc := newTestMediaService(&mockMediaRepository{}, &mockProjectRepository{}, &mockFileStorage{}, thumbs)

	created, err := svc.Upload(context.Background(), validUploadRequest())
	require.NoError(t, err, "a failed thumbnail must not fail the upload")
	assert.Nil(t, created.ThumbnailPath)
}

func TestUpload_RecordFailureRollsBackStagedFiles(t *testing.T) {
	files := &mockFileStorage{}
	media := &mockMediaRepository{
		createMediaFn: func(ctx context.Context, m models.Media) (models.Media, error) {
			return models.Media{}, errors.New("insert failed")
		},
	}
	svc := newTestMediaService(media, &mockProjectRepository{}, files, &mockThumbnailDeriver{})

	_, err := svc.Upload(context.Background(), validUploadRequest())
	require.Error(t, err)

	require.Len(t, files.savedPaths, 1)
	require.Len(t, files.deletedPaths, 2, "both the original and the thumbnail must be cleaned up")
	assert.Equal(t, files.savedPaths[0], files.deletedPaths[0])
}

func TestUpload_CapturedAtDefaultsToNow(t *testing.T) {
	var recorded models.Media
	media := &mockMediaRepository{
		createMediaFn: func(ctx context.Context, m models.Media) (models.Media, error) {
			recorded = m
			return m, nil
		},
	}
	svc := newTestMediaService(media, &mockProjectRepository{}, &mockFileStorage{}, &mockThumbnailDeriver{})

	before := time.Now()
	_, err := svc.Upload(context.Background(), validUploadRequest())
	require.NoError(t, err)

	assert.False(t, recorded.CapturedAt.Before(before))
	assert.False(t, recorded.CapturedAt.After(time.Now()))
}

func TestUpload_CapturedAtHonoured(t *testing.T) {
	var recorded models.Media
	media := &mockMediaRepository{
		createMediaFn: func(ctx context.Context, m models.Media) (models.Media, error) {
			recorded = m
			return m, nil
		},
	}
	svc := newTestMediaService(media, &mockProjectRepository{}, &mockFileStorage{}, &mockThumbnailDeriver{})

	capturedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	req := validUploadRequest()
	req.CapturedAt = &capturedAt

	_, err := svc.Upload(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, recorded.CapturedAt.Equal(capturedAt))
}

// ─────────────────────────────────────────────
// OpenThumbnail
// ─────────────────────────────────────────────

type nopReadSeekCloser struct {
	*strings.Reader
}

func (nopReadSeekCloser) Close() error { return nil }

func TestOpenThumbnail_ServesThumbnailWhenPresent(t *testing.T) {
	thumb := "/uploads/user-1/project-1/thumb_1-a.jpg"
	media := &mockMediaRepository{
		getMediaFn: func(ctx context.Context, mediaID, userID string) (models.Media, error) {
			return models.Media{MediaID: mediaID, FilePath: "/uploads/user-1/project-1/1-a.jpg", ThumbnailPath: &thumb}, nil
		},
	}
	var opened string
	files := &mockFileStorage{
		existsFn: func(path string) bool { return true },
		openFn: func(path string) (io.ReadSeekCloser, error) {
			opened = path
			return nopReadSeekCloser{strings.NewReader("thumb")}, nil
		},
	}
	svc := newTestMediaService(media, &mockProjectRepository{}, files, &mockThumbnailDeriver{})

	f, _, err := svc.OpenThumbnail(context.Background(), "media-1", "user-1")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, thumb, opened)
}

func TestOpenThumbnail_FallsBackToOriginal(t *testing.T) {
	thumb := "/uploads/user-1/project-1/thumb_1-a.jpg"
	original := "/uploads/user-1/project-1/1-a.jpg"
	media := &mockMediaRepository{
		getMediaFn: func(ctx context.Context, mediaID, userID string) (models.Media, error) {
			return models.Media{MediaID: mediaID, FilePath: original, ThumbnailPath: &thumb}, nil
		},
	}
	var opened string
	files := &mockFileStorage{
		existsFn: func(path string) bool { return false }, // thumbnail file vanished
		openFn: func(path string) (io.ReadSeekCloser, error) {
			opened = path
			return nopReadSeekCloser{strings.NewReader("original")}, nil
		},
	}
	svc := newTestMediaService(media, &mockProjectRepository{}, files, &mockThumbnailDeriver{})

	f, served, err := svc.OpenThumbnail(context.Background(), "media-1", "user-1")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, original, opened)
	assert.Nil(t, served.ThumbnailPath, "served record must reflect the fallback")
}

func TestOpenFile_MissingFileReportsNotFound(t *testing.T) {
	media := &mockMediaRepository{
		getMediaFn: func(ctx context.Context, mediaID, userID string) (models.Media, error) {
			return models.Media{MediaID: mediaID, FilePath: "/uploads/user-1/project-1/1-gone.jpg"}, nil
		},
	}
	files := &mockFileStorage{
		openFn: func(path string) (io.ReadSeekCloser, error) {
			return nil, fmt.Errorf("error opening file: %w", fs.ErrNotExist)
		},
	}
	svc := newTestMediaService(media, &mockProjectRepository{}, files, &mockThumbnailDeriver{})

	_, _, err := svc.OpenFile(context.Background(), "media-1", "user-1")
	assert.ErrorIs(t, err, store.ErrMediaNotFound)
}

// ─────────────────────────────────────────────
// DeleteMedia
// ─────────────────────────────────────────────

func TestDeleteMedia_FilesFirstThenRecord(t *testing.T) {
	thumb := "/uploads/user-1/project-1/thumb_1-a.jpg"
	original := "/uploads/user-1/project-1/1-a.jpg"
	media := &mockMediaRepository{
		getMediaFn: func(ctx context.Context, mediaID, userID string) (models.Media, error) {
			return models.Media{MediaID: mediaID, FilePath: original, ThumbnailPath: &thumb}, nil
		},
	}
	files := &mockFileStorage{}
	svc := newTestMediaService(media, &mockProjectRepository{}, files, &mockThumbnailDeriver{})

	err := svc.DeleteMedia(context.Background(), "media-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{original, thumb}, files.deletedPaths)
}

func TestDeleteMedia_FileRemovalFailureDoesNotBlockRecord(t *testing.T) {
	recordDeleted := false
	media := &mockMediaRepository{
		getMediaFn: func(ctx context.Context, mediaID, userID string) (models.Media, error) {
			return models.Media{MediaID: mediaID, FilePath: "/uploads/a.jpg"}, nil
		},
		deleteMediaFn: func(ctx context.Context, mediaID, userID string) error {
			recordDeleted = true
			return nil
		},
	}
	files := &mockFileStorage{
		deleteFn: func(path string) error { return errors.New("permission denied") },
	}
	svc := newTestMediaService(media, &mockProjectRepository{}, files, &mockThumbnailDeriver{})

	err := svc.DeleteMedia(context.Background(), "media-1", "user-1")
	require.NoError(t, err)
	assert.True(t, recordDeleted)
}

func TestDeleteMedia_SecondDeleteNotFound(t *testing.T) {
	media := &mockMediaRepository{
		getMediaFn: func(ctx context.Context, mediaID, userID string) (models.Media, error) {
			return models.Media{}, store.ErrMediaNotFound
		},
	}
	svc := newTestMediaService(media, &mockProjectRepository{}, &mockFileStorage{}, &mockThumbnailDeriver{})

	err := svc.DeleteMedia(context.Background(), "media-1", "user-1")
	assert.ErrorIs(t, err, store.ErrMediaNotFound)
}
