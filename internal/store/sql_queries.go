package store

import (
	"fmt"
	"strings"

	"github.com/ayakimov/fielddoc/models"
)

const (
	createUser = `INSERT INTO users (email, password_hash, name)
    VALUES ($1, $2, $3)
    RETURNING user_id, email, password_hash, name, created_at;`

	findUserByEmail = `SELECT user_id, email, password_hash, name, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, email, password_hash, name, created_at
    FROM users
    WHERE user_id = $1;`

	createProject = `INSERT INTO projects (user_id, name, description, address, latitude, longitude)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING project_id, user_id, name, description, address, latitude, longitude, created_at, updated_at;`

	getProjects = `SELECT p.project_id, p.user_id, p.name, p.description, p.address, p.latitude, p.longitude, p.created_at, p.updated_at, COUNT(m.media_id) AS media_count
		FROM projects p
		LEFT JOIN media m ON m.project_id = p.project_id
		WHERE p.user_id = $1
		GROUP BY p.project_id
		ORDER BY p.created_at DESC;`

	getProject = `SELECT p.project_id, p.user_id, p.name, p.description, p.address, p.latitude, p.longitude, p.created_at, p.updated_at, COUNT(m.media_id) AS media_count
		FROM projects p
		LEFT JOIN media m ON m.project_id = p.project_id
		WHERE p.project_id = $1 AND p.user_id = $2
		GROUP BY p.project_id;`

	deleteProject = `DELETE FROM projects
		WHERE project_id = $1 AND user_id = $2;`

	updateProjectBase = `
		UPDATE projects
		SET updated_at = NOW()`
	updateProjectReturning = `
		RETURNING project_id, user_id, name, description, address, latitude, longitude, created_at, updated_at`

	createMedia = `INSERT INTO media (project_id, user_id, file_type, file_path, thumbnail_path, file_size, mime_type, latitude, longitude, captured_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    RETURNING media_id, project_id, user_id, file_type, file_path, thumbnail_path, file_size, mime_type, latitude, longitude, captured_at, uploaded_at;`

	getMedia = `SELECT m.media_id, m.project_id, m.user_id, m.file_type, m.file_path, m.thumbnail_path, m.file_size, m.mime_type, m.latitude, m.longitude, m.captured_at, m.uploaded_at, p.project_id, p.name
		FROM media m
		JOIN projects p ON p.project_id = m.project_id
		WHERE m.media_id = $1 AND m.user_id = $2;`

	deleteMedia = `DELETE FROM media
		WHERE media_id = $1 AND user_id = $2;`

	createNote = `INSERT INTO notes (project_id, body)
    VALUES ($1, $2)
    RETURNING note_id, project_id, body, created_at;`

	getNotes = `SELECT note_id, project_id, body, created_at
    FROM notes
    WHERE project_id = $1
    ORDER BY created_at DESC;`

	deleteNote = `DELETE FROM notes
		WHERE note_id = $1 AND project_id = $2;`
)

// SQLite statements for the legacy photo subsystem. Placeholders use the
// "?" form required by the sqlite3 driver.
const (
	createPhotosTable = `CREATE TABLE IF NOT EXISTS photos (
		photo_id      INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id    TEXT    NOT NULL,
		filename      TEXT    NOT NULL,
		original_name TEXT    NOT NULL,
		mime_type     TEXT    NOT NULL,
		size          INTEGER NOT NULL,
		uploaded_at   TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_photos_project_id ON photos (project_id);`

	createPhoto = `INSERT INTO photos (project_id, filename, original_name, mime_type, size, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?);`

	getPhotos = `SELECT photo_id, project_id, filename, original_name, mime_type, size, uploaded_at
		FROM photos
		WHERE project_id = ?
		ORDER BY uploaded_at DESC;`

	getPhoto = `SELECT photo_id, project_id, filename, original_name, mime_type, size, uploaded_at
		FROM photos
		WHERE photo_id = ? AND project_id = ?;`

	deletePhoto = `DELETE FROM photos
		WHERE photo_id = ? AND project_id = ?;`
)

// buildUpdateProjectQuery dynamically builds UPDATE query
func (r *projectRepository) buildUpdateProjectQuery(projectID, userID string, update models.ProjectUpdate) (string, []any) {
	queryBuilder := new(strings.Builder)
	queryBuilder.WriteString(updateProjectBase)

	args := make([]any, 0, 5)
	setClauses := make([]string, 0, 3)
	argIndex := 1

	if update.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *update.Name)
		argIndex++
	}

	if update.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argIndex))
		args = append(args, *update.Description)
		argIndex++
	}

	if update.Address != nil {
		setClauses = append(setClauses, fmt.Sprintf("address = $%d", argIndex))
		args = append(args, *update.Address)
		argIndex++
	}

	if len(setClauses) > 0 {
		queryBuilder.WriteString(", ")
		queryBuilder.WriteString(strings.Join(setClauses, ", "))
	}

	queryBuilder.WriteString(fmt.Sprintf("\n\t\tWHERE project_id = $%d AND user_id = $%d", argIndex, argIndex+1))
	args = append(args, projectID, userID)

	queryBuilder.WriteString(updateProjectReturning)

	return queryBuilder.String(), args
}
