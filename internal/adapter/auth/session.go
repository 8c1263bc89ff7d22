// Package auth resolves session tokens issued by the sign-up/login flow.
// Tokens are HS256 JWTs whose "uid" claim names the account.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainuser "github.com/alanyang/listingcraft/internal/domain/user"
	portsession "github.com/alanyang/listingcraft/internal/port/session"
	portuser "github.com/alanyang/listingcraft/internal/port/user"
)

var _ portsession.Resolver = (*JWTResolver)(nil)

// Claims is the session token payload.
type Claims struct {
	UserID string `json:"uid"`
	jwtlib.RegisteredClaims
}

// JWTResolver validates the token signature and expiry, then loads the account so a
// deleted user cannot keep acting with a still-valid token.
type JWTResolver struct {
	secret []byte
	users  portuser.Repository
}

func NewJWTResolver(secret string, users portuser.Repository) *JWTResolver {
	return &JWTResolver{secret: []byte(secret), users: users}
}

// Sign issues a token for userID that expires after ttl.
func (r *JWTResolver) Sign(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(r.secret)
}

func (r *JWTResolver) CurrentUser(ctx context.Context, token string) (domainuser.User, error) {
	if token == "" {
		return domainuser.User{}, portsession.ErrNoSession
	}

	claims := &Claims{}
	parsed, err := jwtlib.ParseWithClaims(token, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domainuser.User{}, fmt.Errorf("%w: %v", portsession.ErrNoSession, err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domainuser.User{}, fmt.Errorf("%w: bad uid claim", portsession.ErrNoSession)
	}

	u, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, portuser.ErrNotFound) {
			return domainuser.User{}, fmt.Errorf("%w: user %s no longer exists", portsession.ErrNoSession, userID)
		}
		return domainuser.User{}, fmt.Errorf("load session user: %w", err)
	}
	return u, nil
}
