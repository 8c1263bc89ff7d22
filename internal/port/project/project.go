package project

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domainproject "github.com/alanyang/listingcraft/internal/domain/project"
)

// ErrNotFound is returned when no project matches, including one owned by another user.
var ErrNotFound = errors.New("project not found")

// Repository manages project persistence.
// [DIP] service/project and service/generation depend on this interface, not on a concrete storage.
type Repository interface {
	Create(ctx context.Context, p domainproject.Project) (domainproject.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (domainproject.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domainproject.Project, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
