package models

import "time"

// Project represents a documentation site owned by exactly one user.
// Ownership is immutable after creation; every child entity (media, notes,
// photos) is authorized through its project.
type Project struct {
	// ProjectID is the unique identifier of the project (UUID).
	ProjectID string `json:"id"`

	// UserID is the identifier of the owning user. Never changes after
	// creation.
	UserID string `json:"userId"`

	// Name is the required, trimmed, non-empty project name.
	Name string `json:"name"`

	// Description is an optional free-text description.
	Description *string `json:"description"`

	// Address is an optional postal address of the documented site.
	Address *string `json:"address"`

	// Latitude and Longitude optionally locate the site on a map.
	// Either both are set or both are nil.
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// MediaCount is the number of media items attached to the project.
	// Populated only by the project list query.
	MediaCount int64 `json:"mediaCount"`

	// Media holds the project's media items ordered by upload time
	// (newest first). Populated only by the single-project query.
	Media []Media `json:"media,omitempty"`
}

// ProjectRef is the minimal projection of a project embedded into media
// responses.
type ProjectRef struct {
	ProjectID string `json:"id"`
	Name      string `json:"name"`
}

// ProjectUpdate describes a partial update of a project. Nil fields are
// left untouched.
type ProjectUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
}

// TableName returns the name of the database table
// associated with the Project model.
func (p Project) TableName() string {
	return "projects"
}
