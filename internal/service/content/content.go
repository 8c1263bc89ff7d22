package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	domaincontent "github.com/alanyang/listingcraft/internal/domain/content"
	"github.com/alanyang/listingcraft/internal/domain/event"
	portcontent "github.com/alanyang/listingcraft/internal/port/content"
	portbus "github.com/alanyang/listingcraft/internal/port/eventbus"
)

// ErrUnsupportedFormat is returned by Export for an unknown format name.
var ErrUnsupportedFormat = errors.New("unsupported export format")

const (
	FormatHTML = "html"
	FormatText = "text"
)

const (
	// defaultListLimit applies when the caller gives no limit.
	defaultListLimit = 50
	// MaxListLimit caps any requested limit.
	MaxListLimit = 200
)

// Generated copy is treated as markdown; raw HTML in it stays escaped.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
	),
)

// Service serves the saved-content dashboard.
type Service struct {
	repo portcontent.Repository
	bus  portbus.EventBus
}

func NewService(repo portcontent.Repository, bus portbus.EventBus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (s *Service) List(ctx context.Context, filters domaincontent.ListFilters) ([]domaincontent.SavedContent, error) {
	switch {
	case filters.Limit <= 0:
		filters.Limit = defaultListLimit
	case filters.Limit > MaxListLimit:
		filters.Limit = MaxListLimit
	}
	cs, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	return cs, nil
}

func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID) (domaincontent.SavedContent, error) {
	c, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return domaincontent.SavedContent{}, fmt.Errorf("get content: %w", err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if err := s.bus.Publish(ctx, event.New(event.TypeContentDeleted, id, userID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish ContentDeleted event", "content_id", id, "error", err)
	}
	return nil
}

// Export renders a saved content body in the requested format and returns it with
// its MIME type.
func (s *Service) Export(ctx context.Context, userID, id uuid.UUID, format string) ([]byte, string, error) {
	c, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}

	switch strings.ToLower(format) {
	case "", FormatText:
		return []byte(strings.TrimSpace(c.Content) + "\n"), "text/plain; charset=utf-8", nil
	case FormatHTML:
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(c.Content), &buf); err != nil {
			return nil, "", fmt.Errorf("render content: %w", err)
		}
		return buf.Bytes(), "text/html; charset=utf-8", nil
	default:
		return nil, "", fmt.Errorf("export content: %w: %q", ErrUnsupportedFormat, format)
	}
}
