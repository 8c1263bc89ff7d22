package authn

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainuser "github.com/alanyang/listingcraft/internal/domain/user"
	portsession "github.com/alanyang/listingcraft/internal/port/session"
)

const userKey = "listingcraft.user"

// Token returns the session token carried by the request: the session cookie
// if present, otherwise an "Authorization: Bearer" header. Empty when neither is set.
func Token(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	h := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// RequireSession rejects requests without a valid session with 401 and stores
// the acting user on the context for downstream handlers.
func RequireSession(resolver portsession.Resolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := resolver.CurrentUser(c.Request.Context(), Token(c, cookieName))
		if err != nil {
			if !errors.Is(err, portsession.ErrNoSession) {
				slog.ErrorContext(c.Request.Context(), "resolve session", "error", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		SetUser(c, u)
		c.Next()
	}
}

func SetUser(c *gin.Context, u domainuser.User) { c.Set(userKey, u) }

// User returns the user stored by RequireSession.
func User(c *gin.Context) (domainuser.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return domainuser.User{}, false
	}
	u, ok := v.(domainuser.User)
	return u, ok
}
