package session

import (
	"context"
	"errors"

	domainuser "github.com/alanyang/listingcraft/internal/domain/user"
)

// ErrNoSession is returned when the token is empty, invalid, expired, or names a
// user that no longer exists.
var ErrNoSession = errors.New("session: no authenticated user")

// Resolver turns a session token (cookie value or bearer token) into the acting user.
type Resolver interface {
	CurrentUser(ctx context.Context, token string) (domainuser.User, error)
}
