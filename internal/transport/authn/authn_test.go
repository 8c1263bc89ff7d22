package authn_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	domainuser "github.com/alanyang/listingcraft/internal/domain/user"
	"github.com/alanyang/listingcraft/internal/mocks"
	portsession "github.com/alanyang/listingcraft/internal/port/session"
	"github.com/alanyang/listingcraft/internal/transport/authn"
)

func init() { gin.SetMode(gin.TestMode) }

const cookieName = "lc_session"

func newRouter(resolver portsession.Resolver) *gin.Engine {
	r := gin.New()
	r.GET("/me", authn.RequireSession(resolver, cookieName), func(c *gin.Context) {
		u, ok := authn.User(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, u)
	})
	return r
}

func TestToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{name: "cookie", cookie: "c-token", want: "c-token"},
		{name: "bearer", header: "Bearer b-token", want: "b-token"},
		{name: "cookie wins", cookie: "c-token", header: "Bearer b-token", want: "c-token"},
		{name: "other scheme", header: "Basic abc", want: ""},
		{name: "none", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			c.Request = req

			assert.Equal(t, tt.want, authn.Token(c, cookieName))
		})
	}
}

func TestRequireSession(t *testing.T) {
	user := domainuser.User{ID: uuid.New(), Email: "agent@example.com"}

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "valid", wantCode: http.StatusOK},
		{name: "no session", err: portsession.ErrNoSession, wantCode: http.StatusUnauthorized},
		{name: "store failure", err: errors.New("db down"), wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			resolver := mocks.NewMockSessionResolver(ctrl)
			resolver.EXPECT().CurrentUser(gomock.Any(), "tok").Return(user, tt.err)

			w := httptest.NewRecorder()
			req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer tok")
			newRouter(resolver).ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Contains(t, w.Body.String(), user.ID.String())
			}
		})
	}
}
