package service

import (
	"context"
	"io"

	"github.com/ayakimov/fielddoc/models"
)

// Hand-rolled function-field mocks for the store interfaces. Each method
// delegates to its function field when set and falls back to a zero-value
// success otherwise, so tests only wire the calls they care about.

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn      func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmailFn func(ctx context.Context, email string) (models.User, error)
	findUserByIDFn    func(ctx context.Context, userID string) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

// ─────────────────────────────────────────────
// Mock: store.ProjectRepository
// ─────────────────────────────────────────────

type mockProjectRepository struct {
	createProjectFn func(ctx context.Context, project models.Project) (models.Project, error)
	getProjectsFn   func(ctx context.Context, userID string) ([]models.Project, error)
	getProjectFn    func(ctx context.Context, projectID, userID string) (models.Project, error)
	updateProjectFn func(ctx context.Context, projectID, userID string, update models.ProjectUpdate) (models.Project, error)
	deleteProjectFn func(ctx context.Context, projectID, userID string) error
}

func (m *mockProjectRepository) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	if m.createProjectFn != nil {
		return m.createProjectFn(ctx, project)
	}
	return project, nil
}

func (m *mockProjectRepository) GetProjects(ctx context.Context, userID string) ([]models.Project, error) {
	if m.getProjectsFn != nil {
		return m.getProjectsFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProjectRepository) GetProject(ctx context.Context, projectID, userID string) (models.Project, error) {
	if m.getProjectFn != nil {
		return m.getProjectFn(ctx, projectID, userID)
	}
	return models.Project{ProjectID: projectID, UserID: userID}, nil
}

func (m *mockProjectRepository) UpdateProject(ctx context.Context, projectID, userID string, update models.ProjectUpdate) (models.Project, error) {
	if m.updateProjectFn != nil {
		return m.updateProjectFn(ctx, projectID, userID, update)
	}
	return models.Project{ProjectID: projectID, UserID: userID}, nil
}

func (m *mockProjectRepository) DeleteProject(ctx context.Context, projectID, userID string) error {
	if m.deleteProjectFn != nil {
		return m.deleteProjectFn(ctx, projectID, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.MediaRepository
// ─────────────────────────────────────────────

type mockMediaRepository struct {
	createMediaFn func(ctx context.Context, media models.Media) (models.Media, error)
	getMediaFn    func(ctx context.Context, mediaID, userID string) (models.Media, error)
	listMediaFn   func(ctx context.Context, filter models.MediaFilter) ([]models.Media, error)
	deleteMediaFn func(ctx context.Context, mediaID, userID string) error
}

func (m *mockMediaRepository) CreateMedia(ctx context.Context, media models.Media) (models.Media, error) {
	if m.createMediaFn != nil {
		return m.createMediaFn(ctx, media)
	}
	media.MediaID = "media-mock"
	return media, nil
}

func (m *mockMediaRepository) GetMedia(ctx context.Context, mediaID, userID string) (models.Media, error) {
	if m.getMediaFn != nil {
		return m.getMediaFn(ctx, mediaID, userID)
	}
	return models.Media{MediaID: mediaID, UserID: userID}, nil
}

func (m *mockMediaRepository) ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.Media, error) {
	if m.listMediaFn != nil {
		return m.listMediaFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockMediaRepository) DeleteMedia(ctx context.Context, mediaID, userID string) error {
	if m.deleteMediaFn != nil {
		return m.deleteMediaFn(ctx, mediaID, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.NoteRepository
// ─────────────────────────────────────────────

type mockNoteRepository struct {
	createNoteFn func(ctx context.Context, note models.Note) (models.Note, error)
	getNotesFn   func(ctx context.Context, projectID string) ([]models.Note, error)
	deleteNoteFn func(ctx context.Context, noteID, projectID string) error
}

func (m *mockNoteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	if m.createNoteFn != nil {
		return m.createNoteFn(ctx, note)
	}
	note.NoteID = "note-mock"
	return note, nil
}

func (m *mockNoteRepository) GetNotes(ctx context.Context, projectID string) ([]models.Note, error) {
	if m.getNotesFn != nil {
		return m.getNotesFn(ctx, projectID)
	}
	return nil, nil
}

func (m *mockNoteRepository) DeleteNote(ctx context.Context, noteID, projectID string) error {
	if m.deleteNoteFn != nil {
		return m.deleteNoteFn(ctx, noteID, projectID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.PhotoRepository
// ─────────────────────────────────────────────

type mockPhotoRepository struct {
	createPhotoFn func(ctx context.Context, photo models.Photo) (models.Photo, error)
	getPhotosFn   func(ctx context.Context, projectID string) ([]models.Photo, error)
	getPhotoFn    func(ctx context.Context, photoID int64, projectID string) (models.Photo, error)
	deletePhotoFn func(ctx context.Context, photoID int64, projectID string) error
}

func (m *mockPhotoRepository) CreatePhoto(ctx context.Context, photo models.Photo) (models.Photo, error) {
	if m.createPhotoFn != nil {
		return m.createPhotoFn(ctx, photo)
	}
	photo.PhotoID = 1
	return photo, nil
}

func (m *mockPhotoRepository) GetPhotos(ctx context.Context, projectID string) ([]models.Photo, error) {
	if m.getPhotosFn != nil {
		return m.getPhotosFn(ctx, projectID)
	}
	return nil, nil
}

func (m *mockPhotoRepository) GetPhoto(ctx context.Context, photoID int64, projectID string) (models.Photo, error) {
	if m.getPhotoFn != nil {
		return m.getPhotoFn(ctx, photoID, projectID)
	}
	return models.Photo{PhotoID: photoID, ProjectID: projectID}, nil
}

func (m *mockPhotoRepository) DeletePhoto(ctx context.Context, photoID int64, projectID string) error {
	if m.deletePhotoFn != nil {
		return m.deletePhotoFn(ctx, photoID, projectID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.FileStorage
// ─────────────────────────────────────────────

type mockFileStorage struct {
	rootFn     func() string
	resolveFn  func(userID, projectID string) (string, error)
	saveFn     func(userID, projectID, filename string, src io.Reader) (string, int64, error)
	saveRootFn func(filename string, src io.Reader) (string, int64, error)
	openFn     func(path string) (io.ReadSeekCloser, error)
	existsFn   func(path string) bool
	deleteFn   func(path string) error

	savedPaths   []string
	deletedPaths []string
}

func (m *mockFileStorage) Root() string {
	if m.rootFn != nil {
		return m.rootFn()
	}
	return "/uploads"
}

func (m *mockFileStorage) Resolve(userID, projectID string) (string, error) {
	if m.resolveFn != nil {
		return m.resolveFn(userID, projectID)
	}
	return "/uploads/" + userID + "/" + projectID, nil
}

func (m *mockFileStorage) Save(userID, projectID, filename string, src io.Reader) (string, int64, error) {
	if m.saveFn != nil {
		return m.saveFn(userID, projectID, filename, src)
	}
	written, _ := io.Copy(io.Discard, src)
	path := "/uploads/" + userID + "/" + projectID + "/" + filename
	m.savedPaths = append(m.savedPaths, path)
	return path, written, nil
}

func (m *mockFileStorage) SaveRoot(filename string, src io.Reader) (string, int64, error) {
	if m.saveRootFn != nil {
		return m.saveRootFn(filename, src)
	}
	written, _ := io.Copy(io.Discard, src)
	path := "/uploads/" + filename
	m.savedPaths = append(m.savedPaths, path)
	return path, written, nil
}

func (m *mockFileStorage) Open(path string) (io.ReadSeekCloser, error) {
	if m.openFn != nil {
		return m.openFn(path)
	}
	return nil, io.ErrUnexpectedEOF
}

func (m *mockFileStorage) Exists(path string) bool {
	if m.existsFn != nil {
		return m.existsFn(path)
	}
	return false
}

func (m *mockFileStorage) Delete(path string) error {
	m.deletedPaths = append(m.deletedPaths, path)
	if m.deleteFn != nil {
		return m.deleteFn(path)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: ThumbnailDeriver
// ─────────────────────────────────────────────

type mockThumbnailDeriver struct {
	deriveFn func(ctx context.Context, userID, projectID, storedPath string) (string, error)
}

func (m *mockThumbnailDeriver) Derive(ctx context.Context, userID, projectID, storedPath string) (string, error) {
	if m.deriveFn != nil {
		return m.deriveFn(ctx, userID, projectID, storedPath)
	}
	return storedPath + ".thumb.jpg", nil
}
