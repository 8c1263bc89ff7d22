package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domainuser "github.com/alanyang/listingcraft/internal/domain/user"
)

var ErrNotFound = errors.New("user not found")

// Repository reads account rows. Accounts are written by the sign-up flow, not here.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domainuser.User, error)
}
