package content

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domaincontent "github.com/alanyang/listingcraft/internal/domain/content"
)

var ErrNotFound = errors.New("content not found")

// Repository is the storage abstraction for saved content.
// Reads and deletes are scoped by owner: a record owned by another user is reported
// as not found.
type Repository interface {
	Save(ctx context.Context, c domaincontent.SavedContent) (domaincontent.SavedContent, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domaincontent.SavedContent, error)
	List(ctx context.Context, filters domaincontent.ListFilters) ([]domaincontent.SavedContent, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
