package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ayakimov/fielddoc/internal/config"
	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/service"
	"github.com/ayakimov/fielddoc/internal/utils"
	"github.com/ayakimov/fielddoc/models"
)

// Function-field mocks for the service layer. Each method panics unless its
// function field is set, which keeps tests explicit about the calls they
// expect.

type mockAuthService struct {
	registerUserFn       func(ctx context.Context, email, password string, name *string) (models.User, error)
	loginFn              func(ctx context.Context, email, password string) (models.User, error)
	createTokensFn       func(ctx context.Context, user models.User) (models.TokenPair, error)
	refreshAccessTokenFn func(ctx context.Context, refreshToken string) (models.Token, error)
	parseAccessTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, email, password string, name *string) (models.User, error) {
	return m.registerUserFn(ctx, email, password, name)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) CreateTokens(ctx context.Context, user models.User) (models.TokenPair, error) {
	return m.createTokensFn(ctx, user)
}

func (m *mockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (models.Token, error) {
	return m.refreshAccessTokenFn(ctx, refreshToken)
}

func (m *mockAuthService) ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseAccessTokenFn(ctx, tokenString)
}

type mockProjectService struct {
	createProjectFn func(ctx context.Context, project models.Project) (models.Project, error)
	getProjectsFn   func(ctx context.Context, userID string) ([]models.Project, error)
	getProjectFn    func(ctx context.Context, projectID, userID string) (models.Project, error)
	updateProjectFn func(ctx context.Context, projectID, userID string, update models.ProjectUpdate) (models.Project, error)
	deleteProjectFn func(ctx context.Context, projectID, userID string) error
}

func (m *mockProjectService) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	return m.createProjectFn(ctx, project)
}

func (m *mockProjectService) GetProjects(ctx context.Context, userID string) ([]models.Project, error) {
	return m.getProjectsFn(ctx, userID)
}

func (m *mockProjectService) GetProject(ctx context.Context, projectID, userID string) (models.Project, error) {
	return m.getProjectFn(ctx, projectID, userID)
}

func (m *mockProjectService) UpdateProject(ctx context.Context, projectID, userID string, update models.ProjectUpdate) (models.Project, error) {
	return m.updateProjectFn(ctx, projectID, userID, update)
}

func (m *mockProjectService) DeleteProject(ctx context.Context, projectID, userID string) error {
	return m.deleteProjectFn(ctx, projectID, userID)
}

type mockMediaService struct {
	uploadFn        func(ctx context.Context, req service.UploadRequest) (models.Media, error)
	listMediaFn     func(ctx context.Context, filter models.MediaFilter) ([]models.Media, error)
	getMediaFn      func(ctx context.Context, mediaID, userID string) (models.Media, error)
	openFileFn      func(ctx context.Context, mediaID, userID string) (io.ReadSeekCloser, models.Media, error)
	openThumbnailFn func(ctx context.Context, mediaID, userID string) (io.ReadSeekCloser, models.Media, error)
	deleteMediaFn   func(ctx context.Context, mediaID, userID string) error
}

func (m *mockMediaService) Upload(ctx context.Context, req service.UploadRequest) (models.Media, error) {
	return m.uploadFn(ctx, req)
}

func (m *mockMediaService) ListMedia(ctx context.Context, filter models.MediaFilter) ([]models.Media, error) {
	return m.listMediaFn(ctx, filter)
}

func (m *mockMediaService) GetMedia(ctx context.Context, mediaID, userID string) (models.Media, error) {
	return m.getMediaFn(ctx, mediaID, userID)
}

func (m *mockMediaService) OpenFile(ctx context.Context, mediaID, userID string) (io.ReadSeekCloser, models.Media, error) {
	return m.openFileFn(ctx, mediaID, userID)
}

func (m *mockMediaService) OpenThumbnail(ctx context.Context, mediaID, userID string) (io.ReadSeekCloser, models.Media, error) {
	return m.openThumbnailFn(ctx, mediaID, userID)
}

func (m *mockMediaService) DeleteMedia(ctx context.Context, mediaID, userID string) error {
	return m.deleteMediaFn(ctx, mediaID, userID)
}

type mockNoteService struct {
	createNoteFn func(ctx context.Context, userID string, note models.Note) (models.Note, error)
	getNotesFn   func(ctx context.Context, userID, projectID string) ([]models.Note, error)
	deleteNoteFn func(ctx context.Context, userID, noteID, projectID string) error
}

func (m *mockNoteService) CreateNote(ctx context.Context, userID string, note models.Note) (models.Note, error) {
	return m.createNoteFn(ctx, userID, note)
}

func (m *mockNoteService) GetNotes(ctx context.Context, userID, projectID string) ([]models.Note, error) {
	return m.getNotesFn(ctx, userID, projectID)
}

func (m *mockNoteService) DeleteNote(ctx context.Context, userID, noteID, projectID string) error {
	return m.deleteNoteFn(ctx, userID, noteID, projectID)
}

type mockPhotoService struct {
	uploadPhotoFn func(ctx context.Context, userID string, req service.PhotoUploadRequest) (models.Photo, error)
	getPhotosFn   func(ctx context.Context, userID, projectID string) ([]models.Photo, error)
	openPhotoFn   func(ctx context.Context, userID, projectID string, photoID int64) (io.ReadSeekCloser, models.Photo, error)
	deletePhotoFn func(ctx context.Context, userID, projectID string, photoID int64) error
}

func (m *mockPhotoService) UploadPhoto(ctx context.Context, userID string, req service.PhotoUploadRequest) (models.Photo, error) {
	return m.uploadPhotoFn(ctx, userID, req)
}

func (m *mockPhotoService) GetPhotos(ctx context.Context, userID, projectID string) ([]models.Photo, error) {
	return m.getPhotosFn(ctx, userID, projectID)
}

func (m *mockPhotoService) OpenPhoto(ctx context.Context, userID, projectID string, photoID int64) (io.ReadSeekCloser, models.Photo, error) {
	return m.openPhotoFn(ctx, userID, projectID, photoID)
}

func (m *mockPhotoService) DeletePhoto(ctx context.Context, userID, projectID string, photoID int64) error {
	return m.deletePhotoFn(ctx, userID, projectID, photoID)
}

// authedRequest builds a request that looks like it already passed the auth
// middleware and chi's router: the user ID sits in the context and the given
// URL parameters are resolvable via chi.URLParam.
func authedRequest(t *testing.T, method, target, userID string, params map[string]string, body io.Reader) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, target, body)

	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, userID)

	rctx := chi.NewRouteContext()
	for name, value := range params {
		rctx.URLParams.Add(name, value)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)

	return req.WithContext(ctx)
}

// newTestHandler builds a Handler around the given service mocks with
// test-sized upload limits.
func newTestHandler(t *testing.T, services *service.Services) *Handler {
	t.Helper()
	return NewHandler(services, config.Files{
		UploadDir:         t.TempDir(),
		MaxFileSize:       10 << 20,
		AllowedImageTypes: []string{"image/jpeg", "image/png", "image/webp"},
		AllowedVideoTypes: []string{"video/mp4", "video/webm"},
	}, logger.Nop())
}
