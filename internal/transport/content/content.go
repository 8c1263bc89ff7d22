package content

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domaincontent "github.com/alanyang/listingcraft/internal/domain/content"
	portcontent "github.com/alanyang/listingcraft/internal/port/content"
	contentsvc "github.com/alanyang/listingcraft/internal/service/content"
	"github.com/alanyang/listingcraft/internal/transport/authn"
)

// Register mounts saved-content routes. The group must run authn.RequireSession.
func Register(rg *gin.RouterGroup, svc *contentsvc.Service) {
	rg.GET("", listContents(svc))
	rg.GET("/:id", getContent(svc))
	rg.GET("/:id/export", exportContent(svc))
	rg.DELETE("/:id", deleteContent(svc))
}

var validTypes = map[domaincontent.Type]bool{
	domaincontent.TypeListing:    true,
	domaincontent.TypeEmail:      true,
	domaincontent.TypeSocialPost: true,
}

func listContents(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := authn.User(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		filters := domaincontent.ListFilters{UserID: u.ID}
		if v := c.Query("project_id"); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
				return
			}
			filters.ProjectID = &id
		}
		if v := c.Query("content_type"); v != "" {
			t := domaincontent.Type(v)
			if !validTypes[t] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content_type"})
				return
			}
			filters.ContentType = &t
		}
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			filters.Limit = n
		}

		cs, err := svc.List(c.Request.Context(), filters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cs)
	}
}

func getContent(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, id, ok := userAndID(c)
		if !ok {
			return
		}

		sc, err := svc.GetByID(c.Request.Context(), u, id)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sc)
	}
}

func exportContent(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, id, ok := userAndID(c)
		if !ok {
			return
		}

		body, mime, err := svc.Export(c.Request.Context(), u, id, c.Query("format"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, mime, body)
	}
}

func deleteContent(svc *contentsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, id, ok := userAndID(c)
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), u, id); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// userAndID writes the error response itself and reports false when either is missing.
func userAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	u, ok := authn.User(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, uuid.Nil, false
	}
	return u.ID, id, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, portcontent.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, contentsvc.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
