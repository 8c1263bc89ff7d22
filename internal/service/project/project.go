package project

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alanyang/listingcraft/internal/domain/event"
	domainproject "github.com/alanyang/listingcraft/internal/domain/project"
	portbus "github.com/alanyang/listingcraft/internal/port/eventbus"
	portproject "github.com/alanyang/listingcraft/internal/port/project"
)

// Draft holds the editable fields of a project.
type Draft struct {
	Name         string
	Address      string
	PropertyType string
	Bedrooms     string
	Bathrooms    string
	SquareFeet   string
	Price        string
	Description  string
}

// Service manages a user's property projects. Every read is owner-scoped.
type Service struct {
	repo portproject.Repository
	bus  portbus.EventBus
}

func NewService(repo portproject.Repository, bus portbus.EventBus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, d Draft) (domainproject.Project, error) {
	p := domainproject.Project{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         d.Name,
		Address:      d.Address,
		PropertyType: d.PropertyType,
		Bedrooms:     d.Bedrooms,
		Bathrooms:    d.Bathrooms,
		SquareFeet:   d.SquareFeet,
		Price:        d.Price,
		Description:  d.Description,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return domainproject.Project{}, fmt.Errorf("create project: %w", err)
	}

	if err := s.bus.Publish(ctx, event.New(event.TypeProjectCreated, created.ID, userID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish ProjectCreated event", "project_id", created.ID, "error", err)
	}
	return created, nil
}

// GetByID returns the project if it belongs to userID; otherwise ErrNotFound.
func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID) (domainproject.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domainproject.Project{}, fmt.Errorf("get project: %w", err)
	}
	if p.UserID != userID {
		return domainproject.Project{}, fmt.Errorf("get project: %w", portproject.ErrNotFound)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domainproject.Project, error) {
	ps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return ps, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.bus.Publish(ctx, event.New(event.TypeProjectDeleted, id, userID)) //nolint:errcheck
	return nil
}
