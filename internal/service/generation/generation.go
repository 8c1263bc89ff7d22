// Package generation builds prompts for each content kind, dispatches them to the
// completion API, and saves the results on a best-effort basis.
package generation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alanyang/listingcraft/internal/domain/content"
	"github.com/alanyang/listingcraft/internal/domain/event"
	"github.com/alanyang/listingcraft/internal/domain/generation"
	"github.com/alanyang/listingcraft/internal/metrics"
	portcompletion "github.com/alanyang/listingcraft/internal/port/completion"
	portcontent "github.com/alanyang/listingcraft/internal/port/content"
	portbus "github.com/alanyang/listingcraft/internal/port/eventbus"
	portproject "github.com/alanyang/listingcraft/internal/port/project"
	portsession "github.com/alanyang/listingcraft/internal/port/session"
	"github.com/alanyang/listingcraft/internal/service/prompt"
)

// persistTimeout bounds a detached persistence run.
const persistTimeout = 15 * time.Second

// Service generates copy and persists it after the response is written.
// [DIP] Depends on ports only; the completion backend is chosen in wire.
type Service struct {
	dispatcher *Dispatcher
	sessions   portsession.Resolver
	projects   portproject.Repository
	contents   portcontent.Repository
	bus        portbus.EventBus

	inflight sync.WaitGroup
}

func NewService(
	client portcompletion.Client,
	callTimeout time.Duration,
	sessions portsession.Resolver,
	projects portproject.Repository,
	contents portcontent.Repository,
	bus portbus.EventBus,
) *Service {
	return &Service{
		dispatcher: NewDispatcher(client, callTimeout),
		sessions:   sessions,
		projects:   projects,
		contents:   contents,
		bus:        bus,
	}
}

func (s *Service) GenerateListing(ctx context.Context, req generation.ListingRequest) ([]generation.Variation, error) {
	return s.generate(ctx, generation.KindListing, prompt.BuildListing(req))
}

func (s *Service) GenerateEmail(ctx context.Context, req generation.EmailRequest) ([]generation.Variation, error) {
	return s.generate(ctx, generation.KindEmail, prompt.BuildEmail(req))
}

func (s *Service) GenerateSocialPost(ctx context.Context, req generation.SocialPostRequest) ([]generation.Variation, error) {
	return s.generate(ctx, generation.KindSocialPost, prompt.BuildSocialPost(req))
}

func (s *Service) generate(ctx context.Context, kind generation.Kind, pair generation.PromptPair) ([]generation.Variation, error) {
	vs, err := s.dispatcher.Dispatch(ctx, kind, pair)
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(string(kind), "error").Inc()
		return nil, fmt.Errorf("generate %s: %w", kind.Label(), err)
	}
	metrics.GenerationTotal.WithLabelValues(string(kind), "success").Inc()
	return vs, nil
}

// saveJob describes one best-effort persistence run.
type saveJob struct {
	kind       generation.Kind
	token      string
	projectID  string
	always     bool // save even without a project
	metadata   map[string]any
	variations []generation.Variation
}

// SaveListing persists listing variations when the request names a project.
func (s *Service) SaveListing(ctx context.Context, token string, req generation.ListingRequest, vs []generation.Variation) {
	s.persistAsync(ctx, saveJob{
		kind:       generation.KindListing,
		token:      token,
		projectID:  req.ProjectID,
		metadata:   map[string]any{"property_type": req.PropertyType, "request": req},
		variations: vs,
	})
}

// SaveEmail persists email variations, with or without a project.
func (s *Service) SaveEmail(ctx context.Context, token string, req generation.EmailRequest, vs []generation.Variation) {
	// Plain strings, so the metadata matches what the JSONB column reads back.
	meta := map[string]any{"email_type": string(req.EmailType), "request": req}
	if req.EmailType == generation.EmailBroadcast && req.BroadcastPurpose != "" {
		meta["broadcast_purpose"] = string(req.BroadcastPurpose)
	}
	s.persistAsync(ctx, saveJob{
		kind:       generation.KindEmail,
		token:      token,
		projectID:  req.ProjectID,
		always:     true,
		metadata:   meta,
		variations: vs,
	})
}

// SaveSocialPost persists social post variations when the request names a project.
func (s *Service) SaveSocialPost(ctx context.Context, token string, req generation.SocialPostRequest, vs []generation.Variation) {
	meta := map[string]any{"platform": req.Platform, "request": req}
	if req.PostType != "" {
		meta["post_type"] = req.PostType
	}
	s.persistAsync(ctx, saveJob{
		kind:       generation.KindSocialPost,
		token:      token,
		projectID:  req.ProjectID,
		metadata:   meta,
		variations: vs,
	})
}

// Wait blocks until every background persistence run has finished.
func (s *Service) Wait() { s.inflight.Wait() }

func (s *Service) persistAsync(ctx context.Context, job saveJob) {
	if job.projectID == "" && !job.always {
		return
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		defer cancel()
		s.persist(ctx, job)
	}()
}

func (s *Service) persist(ctx context.Context, job saveJob) {
	kind := string(job.kind)

	var projectID *uuid.UUID
	if job.projectID != "" {
		id, err := uuid.Parse(job.projectID)
		if err != nil {
			slog.WarnContext(ctx, "skip persistence: invalid project id", "kind", kind, "project_id", job.projectID)
			metrics.PersistenceTotal.WithLabelValues(kind, "skipped").Inc()
			return
		}
		projectID = &id
	}

	u, err := s.sessions.CurrentUser(ctx, job.token)
	if err != nil {
		slog.WarnContext(ctx, "skip persistence: no session", "kind", kind, "error", err)
		metrics.PersistenceTotal.WithLabelValues(kind, "skipped").Inc()
		return
	}

	if projectID != nil {
		p, err := s.projects.GetByID(ctx, *projectID)
		if err != nil {
			slog.WarnContext(ctx, "skip persistence: project lookup failed", "kind", kind, "project_id", *projectID, "error", err)
			metrics.PersistenceTotal.WithLabelValues(kind, "skipped").Inc()
			return
		}
		if p.UserID != u.ID {
			slog.WarnContext(ctx, "skip persistence: project not owned by user", "kind", kind, "project_id", p.ID, "user_id", u.ID)
			metrics.PersistenceTotal.WithLabelValues(kind, "skipped").Inc()
			return
		}
	}

	for _, v := range job.variations {
		meta := make(map[string]any, len(job.metadata)+2)
		for k, val := range job.metadata {
			meta[k] = val
		}
		meta["variation"] = v.Index
		meta["temperature"] = v.Temperature

		saved, err := s.contents.Save(ctx, content.New(u.ID, projectID, content.Type(job.kind), v.Text, meta))
		if err != nil {
			slog.ErrorContext(ctx, "failed to save generated content", "kind", kind, "variation", v.Index, "user_id", u.ID, "error", err)
			metrics.PersistenceTotal.WithLabelValues(kind, "error").Inc()
			continue
		}
		metrics.PersistenceTotal.WithLabelValues(kind, "saved").Inc()

		if err := s.bus.Publish(ctx, event.New(event.TypeContentSaved, saved.ID, u.ID)); err != nil {
			slog.ErrorContext(ctx, "failed to publish ContentSaved event", "content_id", saved.ID, "error", err)
		}
	}
}
