package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domaincontent "github.com/alanyang/listingcraft/internal/domain/content"
	"github.com/alanyang/listingcraft/internal/domain/generation"
	domainproject "github.com/alanyang/listingcraft/internal/domain/project"
	domainuser "github.com/alanyang/listingcraft/internal/domain/user"
	"github.com/alanyang/listingcraft/internal/mocks"
	portcompletion "github.com/alanyang/listingcraft/internal/port/completion"
	gensvc "github.com/alanyang/listingcraft/internal/service/generation"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type toolsDeps struct {
	client   *mocks.MockCompletionClient
	sessions *mocks.MockSessionResolver
	projects *mocks.MockProjectRepository
	contents *mocks.MockContentRepository
	bus      *mocks.MockEventBus
}

func newToolsDeps(t *testing.T) (*gensvc.Service, toolsDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := toolsDeps{
		client:   mocks.NewMockCompletionClient(ctrl),
		sessions: mocks.NewMockSessionResolver(ctrl),
		projects: mocks.NewMockProjectRepository(ctrl),
		contents: mocks.NewMockContentRepository(ctrl),
		bus:      mocks.NewMockEventBus(ctrl),
	}
	d.client.EXPECT().Provider().Return("fake").AnyTimes()
	return gensvc.NewService(d.client, 0, d.sessions, d.projects, d.contents, d.bus), d
}

func makeReq(args map[string]any) mcpmcp.CallToolRequest {
	var req mcpmcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(r *mcpmcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	if tc, ok := r.Content[0].(mcpmcp.TextContent); ok {
		return tc.Text
	}
	return ""
}

func answer(_ context.Context, req portcompletion.Request) (portcompletion.Completion, error) {
	texts := map[float64]string{0.7: "one", 0.8: "two", 0.9: "three"}
	return portcompletion.Completion{Text: texts[req.Temperature]}, nil
}

// ── generate_listing ──────────────────────────────────────────────────────────

func TestGenerateListingTool(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]any
		setup     func(d toolsDeps)
		wantError bool
		wantText  string
	}{
		{
			name: "variations returned",
			args: map[string]any{"propertyType": "Townhouse", "tone": "warm"},
			setup: func(d toolsDeps) {
				d.client.EXPECT().Complete(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(answer)
			},
			wantText: `{"variations":["one","two","three"]}`,
		},
		{
			name:      "missing tone",
			args:      map[string]any{"propertyType": "Townhouse"},
			setup:     func(toolsDeps) {},
			wantError: true,
			wantText:  "error:",
		},
		{
			name: "completion failure",
			args: map[string]any{"propertyType": "Townhouse", "tone": "warm"},
			setup: func(d toolsDeps) {
				d.client.EXPECT().Complete(gomock.Any(), gomock.Any()).
					Return(portcompletion.Completion{}, errors.New("rate limited")).AnyTimes()
			},
			wantError: true,
			wantText:  "Failed to generate listing",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, d := newToolsDeps(t)
			tc.setup(d)
			h := generateHandler(generation.KindListing, svc.GenerateListing, svc.SaveListing)

			res, err := h(context.Background(), makeReq(tc.args))
			svc.Wait()
			require.NoError(t, err)
			assert.Equal(t, tc.wantError, res.IsError)
			if tc.wantError {
				assert.Contains(t, resultText(res), tc.wantText)
			} else {
				assert.JSONEq(t, tc.wantText, resultText(res))
			}
		})
	}
}

func TestGenerateListingTool_SavesWithBearerToken(t *testing.T) {
	svc, d := newToolsDeps(t)
	user := domainuser.User{ID: uuid.New()}
	projectID := uuid.New()

	d.client.EXPECT().Complete(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(answer)
	d.sessions.EXPECT().CurrentUser(gomock.Any(), "tok").Return(user, nil)
	d.projects.EXPECT().GetByID(gomock.Any(), projectID).Return(domainproject.Project{ID: projectID, UserID: user.ID}, nil)
	d.contents.EXPECT().Save(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(
		func(_ context.Context, c domaincontent.SavedContent) (domaincontent.SavedContent, error) {
			return c, nil
		})
	d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(3).Return(nil)

	r, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, "/mcp", nil)
	r.Header.Set("Authorization", "Bearer tok")
	ctx := withSessionToken(context.Background(), r)

	h := generateHandler(generation.KindListing, svc.GenerateListing, svc.SaveListing)
	res, err := h(ctx, makeReq(map[string]any{"propertyType": "Condo", "tone": "chic", "projectId": projectID.String()}))
	svc.Wait()

	require.NoError(t, err)
	assert.False(t, res.IsError)
}

// ── generate_email / generate_social_post ─────────────────────────────────────

func TestGenerateEmailTool_RejectsUnknownType(t *testing.T) {
	svc, _ := newToolsDeps(t)
	h := generateHandler(generation.KindEmail, svc.GenerateEmail, svc.SaveEmail)

	res, err := h(context.Background(), makeReq(map[string]any{"emailType": "cold-call", "tone": "warm"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGenerateSocialPostTool_BooleanArgs(t *testing.T) {
	svc, d := newToolsDeps(t)
	d.client.EXPECT().Complete(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(
		func(ctx context.Context, req portcompletion.Request) (portcompletion.Completion, error) {
			assert.Contains(t, req.UserPrompt, "5-10 relevant local and real estate hashtags")
			return answer(ctx, req)
		})
	h := generateHandler(generation.KindSocialPost, svc.GenerateSocialPost, svc.SaveSocialPost)

	res, err := h(context.Background(), makeReq(map[string]any{
		"platform": "instagram", "tone": "fun", "includeHashtags": true,
	}))
	svc.Wait()
	require.NoError(t, err)
	require.False(t, res.IsError)

	var body struct {
		Variations []string `json:"variations"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &body))
	assert.Len(t, body.Variations, 3)
}

// ── session token ─────────────────────────────────────────────────────────────

func TestWithSessionToken(t *testing.T) {
	r, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, "/mcp", nil)
	assert.Empty(t, sessionToken(withSessionToken(context.Background(), r)))

	r.Header.Set("Authorization", "Bearer abc ")
	assert.Equal(t, "abc", sessionToken(withSessionToken(context.Background(), r)))
}

func TestNew_BuildsHandler(t *testing.T) {
	svc, _ := newToolsDeps(t)
	assert.NotNil(t, New(svc, "test").Handler())
}
