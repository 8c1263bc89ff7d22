package content

import (
	"time"

	"github.com/google/uuid"
)

// Type is the content family a saved record was generated for.
type Type string

const (
	TypeListing    Type = "listing"
	TypeEmail      Type = "email"
	TypeSocialPost Type = "social-post"
)

// SavedContent is a persisted copy of one generated variation.
// ProjectID = nil means the content is not attached to a project.
type SavedContent struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"user_id"`
	ProjectID   *uuid.UUID     `json:"project_id,omitempty"`
	ContentType Type           `json:"content_type"`
	Content     string         `json:"content"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
}

type ListFilters struct {
	UserID      uuid.UUID
	ProjectID   *uuid.UUID
	ContentType *Type
	Limit       int
}

func New(userID uuid.UUID, projectID *uuid.UUID, contentType Type, text string, metadata map[string]any) SavedContent {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return SavedContent{
		ID:          uuid.New(),
		UserID:      userID,
		ProjectID:   projectID,
		ContentType: contentType,
		Content:     text,
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC(),
	}
}
