package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/models"
)

func newTestProjectRepo(t *testing.T) (*projectRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &projectRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

var projectColumns = []string{
	"project_id", "user_id", "name", "description", "address",
	"latitude", "longitude", "created_at", "updated_at",
}

func TestCreateProject_Success(t *testing.T) {
	repo, mock, db := newTestProjectRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	project := models.Project{
		UserID: "user-1",
		Name:   "North field",
	}

	rows := sqlmock.NewRows(projectColumns).
		AddRow("project-1", project.UserID, project.Name, nil, nil, nil, nil, now, now)

	mock.ExpectQuery("INSERT INTO projects").
		WithArgs(project.UserID, project.Name, nil, nil, nil, nil).
		WillReturnRows(rows)

	created, err := repo.CreateProject(ctx, project)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ProjectID != "project-1" {
		t.Errorf("expected ProjectID 'project-1', got %q", created.ProjectID)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected server-assigned CreatedAt")
	}
}

func TestGetProjects_Success(t *testing.T) {
	repo, mock, db := newTestProjectRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	columns := append(append([]string{}, projectColumns...), "media_count")

	rows := sqlmock.NewRows(columns).
		AddRow("project-2", "user-1", "South field", nil, nil, nil, nil, now, now, 3).
		AddRow("project-1", "user-1", "North field", "drainage survey", nil, 52.1, 5.3, now.Add(-time.Hour), now, 0)

	mock.ExpectQuery("SELECT (.+) FROM projects").
		WithArgs("user-1").
		WillReturnRows(rows)

	projects, err := repo.GetProjects(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].MediaCount != 3 {
		t.Errorf("expected media count 3, got %d", projects[0].MediaCount)
	}
	if projects[1].Latitude == nil || *projects[1].Latitude != 52.1 {
		t.Errorf("expected latitude 52.1, got %v", projects[1].Latitude)
	}
}

func TestGetProject_NotFound(t *testing.T) {
	repo, mock, db := newTestProjectRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM projects").
		WithArgs("missing", "user-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetProject(ctx, "missing", "user-1")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestUpdateProject_Success(t *testing.T) {
	repo, mock, db := newTestProjectRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	newName := "Renamed field"

	rows := sqlmock.NewRows(projectColumns).
		AddRow("project-1", "user-1", newName, nil, nil, nil, nil, now.Add(-time.Hour), now)

	mock.ExpectQuery("UPDATE projects").
		WithArgs(newName, "project-1", "user-1").
		WillReturnRows(rows)

	updated, err := repo.UpdateProject(ctx, "project-1", "user-1", models.ProjectUpdate{Name: &newName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != newName {
		t.Errorf("expected name %q, got %q", newName, updated.Name)
	}
}

func TestUpdateProject_NotFound(t *testing.T) {
	repo, mock, db := newTestProjectRepo(t)
	defer db.Close()

	ctx := context.Background()
	newName := "Renamed field"

	mock.ExpectQuery("UPDATE projects").
		WithArgs(newName, "missing", "user-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateProject(ctx, "missing", "user-1", models.ProjectUpdate{Name: &newName})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestDeleteProject_Success(t *testing.T) {
	repo, mock, db := newTestProjectRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM projects").
		WithArgs("project-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteProject(ctx, "project-1", "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteProject_NotFound(t *testing.T) {
	repo, mock, db := newTestProjectRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM projects").
		WithArgs("missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteProject(ctx, "missing", "user-1")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// buildUpdateProjectQuery
// ─────────────────────────────────────────────────────────────────────────────

func TestBuildUpdateProjectQuery_AllFields(t *testing.T) {
	repo := &projectRepository{}
	name, desc, addr := "a", "b", "c"

	query, args := repo.buildUpdateProjectQuery("project-1", "user-1", models.ProjectUpdate{
		Name:        &name,
		Description: &desc,
		Address:     &addr,
	})

	if !strings.Contains(query, "name = $1") ||
		!strings.Contains(query, "description = $2") ||
		!strings.Contains(query, "address = $3") {
		t.Errorf("expected all three SET clauses, got: %s", query)
	}
	if !strings.Contains(query, "project_id = $4 AND user_id = $5") {
		t.Errorf("expected WHERE clause with shifted placeholders, got: %s", query)
	}
	if len(args) != 5 {
		t.Errorf("expected 5 args, got %d", len(args))
	}
}

func TestBuildUpdateProjectQuery_NoFields(t *testing.T) {
	repo := &projectRepository{}

	query, args := repo.buildUpdateProjectQuery("project-1", "user-1", models.ProjectUpdate{})

	// only updated_at is touched, WHERE placeholders start at $1
	if !strings.Contains(query, "SET updated_at = NOW()") {
		t.Errorf("expected base SET clause, got: %s", query)
	}
	if !strings.Contains(query, "project_id = $1 AND user_id = $2") {
		t.Errorf("expected WHERE clause, got: %s", query)
	}
	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}
