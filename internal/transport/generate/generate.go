package generate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/listingcraft/internal/domain/generation"
	gensvc "github.com/alanyang/listingcraft/internal/service/generation"
	"github.com/alanyang/listingcraft/internal/transport/authn"
)

// Register mounts the three generation endpoints. None of them require a
// session; the session token is only consulted when persisting results.
func Register(rg *gin.RouterGroup, svc *gensvc.Service, cookieName string) {
	rg.POST("/generate-listing", handle(generation.KindListing, svc.GenerateListing, svc.SaveListing, cookieName))
	rg.POST("/generate-email", handle(generation.KindEmail, svc.GenerateEmail, svc.SaveEmail, cookieName))
	rg.POST("/generate-social-post", handle(generation.KindSocialPost, svc.GenerateSocialPost, svc.SaveSocialPost, cookieName))
}

func handle[R any](
	kind generation.Kind,
	gen func(ctx context.Context, req R) ([]generation.Variation, error),
	save func(ctx context.Context, token string, req R, vs []generation.Variation),
	cookieName string,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req R
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		vs, err := gen(c.Request.Context(), req)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "generation failed", "kind", kind, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate " + kind.Label()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"variations": generation.Texts(vs)})

		// Runs after the response is written and never changes it.
		save(c.Request.Context(), authn.Token(c, cookieName), req, vs)
	}
}
