package project

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portproject "github.com/alanyang/listingcraft/internal/port/project"
	projectsvc "github.com/alanyang/listingcraft/internal/service/project"
	"github.com/alanyang/listingcraft/internal/transport/authn"
)

// Register mounts project routes. The group must run authn.RequireSession.
func Register(rg *gin.RouterGroup, svc *projectsvc.Service) {
	rg.POST("", createProject(svc))
	rg.GET("", listProjects(svc))
	rg.GET("/:id", getProject(svc))
	rg.DELETE("/:id", deleteProject(svc))
}

type createProjectReq struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	PropertyType string `json:"propertyType"`
	Bedrooms     string `json:"bedrooms"`
	Bathrooms    string `json:"bathrooms"`
	SquareFeet   string `json:"squareFeet"`
	Price        string `json:"price"`
	Description  string `json:"description"`
}

func createProject(svc *projectsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := authn.User(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req createProjectReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		p, err := svc.Create(c.Request.Context(), u.ID, projectsvc.Draft(req))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func listProjects(svc *projectsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := authn.User(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ps, err := svc.List(c.Request.Context(), u.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, ps)
	}
}

func getProject(svc *projectsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := authn.User(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		p, err := svc.GetByID(c.Request.Context(), u.ID, id)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deleteProject(svc *projectsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := authn.User(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		if err := svc.Delete(c.Request.Context(), u.ID, id); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func statusFor(err error) int {
	if errors.Is(err, portproject.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
