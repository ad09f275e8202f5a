// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Anton Yakimov

package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ayakimov/fielddoc/internal/config"
	"github.com/ayakimov/fielddoc/internal/logger"
)

// fileStorage is the local-filesystem implementation of [FileStorage].
//
// Layout: <upload root>/<user id>/<project id>/<filename> for media files,
// and <upload root>/<filename> for the flat legacy photo layout. Directories
// are created lazily on first write.
type fileStorage struct {
	root   string
	logger *logger.Logger
}

// NewFileStorage constructs a [FileStorage] rooted at cfg.UploadDir. The
// root directory is created immediately so that startup fails fast when the
// configured location is not writable.
func NewFileStorage(cfg config.Files, log *logger.Logger) (FileStorage, error) {
	root, err := filepath.Abs(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("error resolving upload root: %w", err)
	}

	if err = os.MkdirAll(root, 0o755); err != nil {
		log.Err(err).Str("func", "NewFileStorage").Msg("error creating upload root")
		return nil, fmt.Errorf("error creating upload root: %w", err)
	}
	log.Debug().Str("func", "NewFileStorage").Str("root", root).Msg("file storage ready")

	return &fileStorage{
		root:   root,
		logger: log,
	}, nil
}

// Root returns the absolute upload root directory.
func (s *fileStorage) Root() string {
	return s.root
}

// Resolve returns the absolute directory for the given user and project,
// creating it if necessary.
func (s *fileStorage) Resolve(userID, projectID string) (string, error) {
	dir := filepath.Join(s.root, filepath.Base(userID), filepath.Base(projectID))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Err(err).Str("func", "fileStorage.Resolve").Str("dir", dir).Msg("error creating storage directory")
		return "", fmt.Errorf("error creating storage directory: %w", err)
	}

	return dir, nil
}

// Save writes src into the per-user, per-project directory under the given
// filename. An existing file with the same name is overwritten.
func (s *fileStorage) Save(userID, projectID, filename string, src io.Reader) (string, int64, error) {
	dir, err := s.Resolve(userID, projectID)
	if err != nil {
		return "", 0, err
	}

	return s.write(filepath.Join(dir, filepath.Base(filename)), src)
}

// SaveRoot writes src directly under the upload root. Used by the legacy
// photo subsystem, which keeps all files in a single flat directory.
func (s *fileStorage) SaveRoot(filename string, src io.Reader) (string, int64, error) {
	return s.write(filepath.Join(s.root, filepath.Base(filename)), src)
}

func (s *fileStorage) write(path string, src io.Reader) (string, int64, error) {
	dst, err := os.Create(path)
	if err != nil {
		s.logger.Err(err).Str("func", "fileStorage.write").Str("path", path).Msg("error creating file")
		return "", 0, fmt.Errorf("error creating file: %w", err)
	}

	written, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		os.Remove(path)
		s.logger.Err(err).Str("func", "fileStorage.write").Str("path", path).Msg("error writing file")
		return "", 0, fmt.Errorf("error writing file: %w", err)
	}

	if err = dst.Close(); err != nil {
		return "", 0, fmt.Errorf("error closing file: %w", err)
	}

	return path, written, nil
}

// Open opens a previously stored file for reading.
func (s *fileStorage) Open(path string) (io.ReadSeekCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	return f, nil
}

// Exists reports whether a file is present at path.
func (s *fileStorage) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Delete removes a stored file. A missing file is not an error: deletes are
// best-effort and may race with earlier cleanup.
func (s *fileStorage) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Err(err).Str("func", "fileStorage.Delete").Str("path", path).Msg("error removing file")
		return fmt.Errorf("error removing file: %w", err)
	}

	return nil
}
