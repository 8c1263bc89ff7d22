package content_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domaincontent "github.com/alanyang/listingcraft/internal/domain/content"
	domainuser "github.com/alanyang/listingcraft/internal/domain/user"
	"github.com/alanyang/listingcraft/internal/mocks"
	portcontent "github.com/alanyang/listingcraft/internal/port/content"
	contentsvc "github.com/alanyang/listingcraft/internal/service/content"
	"github.com/alanyang/listingcraft/internal/transport/authn"
	transportcontent "github.com/alanyang/listingcraft/internal/transport/content"
)

func init() { gin.SetMode(gin.TestMode) }

var caller = domainuser.User{ID: uuid.New()}

func newRouter(svc *contentsvc.Service) *gin.Engine {
	r := gin.New()
	transportcontent.Register(r.Group("/contents", func(c *gin.Context) { authn.SetUser(c, caller) }), svc)
	return r
}

func newContentSvc(t *testing.T) (*contentsvc.Service, *mocks.MockContentRepository, *mocks.MockEventBus) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockContentRepository(ctrl)
	bus := mocks.NewMockEventBus(ctrl)
	return contentsvc.NewService(repo, bus), repo, bus
}

func get(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

// ── GET / (listContents) ──────────────────────────────────────────────────────

func TestListContents_Filters(t *testing.T) {
	svc, repo, _ := newContentSvc(t)
	projectID := uuid.New()

	repo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f domaincontent.ListFilters) ([]domaincontent.SavedContent, error) {
			assert.Equal(t, caller.ID, f.UserID)
			require.NotNil(t, f.ProjectID)
			assert.Equal(t, projectID, *f.ProjectID)
			require.NotNil(t, f.ContentType)
			assert.Equal(t, domaincontent.TypeEmail, *f.ContentType)
			assert.Equal(t, 10, f.Limit)
			return []domaincontent.SavedContent{{ID: uuid.New(), ContentType: domaincontent.TypeEmail}}, nil
		})

	w := get(newRouter(svc), http.MethodGet, "/contents?project_id="+projectID.String()+"&content_type=email&limit=10")
	assert.Equal(t, http.StatusOK, w.Code)

	var got []domaincontent.SavedContent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestListContents_HugeLimitIsClamped(t *testing.T) {
	svc, repo, _ := newContentSvc(t)
	repo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f domaincontent.ListFilters) ([]domaincontent.SavedContent, error) {
			assert.Equal(t, contentsvc.MaxListLimit, f.Limit)
			return []domaincontent.SavedContent{}, nil
		})

	w := get(newRouter(svc), http.MethodGet, "/contents?limit=100000000")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListContents_BadQuery(t *testing.T) {
	for _, q := range []string{"project_id=nope", "content_type=fax", "limit=-1", "limit=abc"} {
		t.Run(q, func(t *testing.T) {
			svc, _, _ := newContentSvc(t)
			w := get(newRouter(svc), http.MethodGet, "/contents?"+q)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// ── GET /:id (getContent) ─────────────────────────────────────────────────────

func TestGetContent(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, repo, _ := newContentSvc(t)
		id := uuid.New()
		repo.EXPECT().GetByID(gomock.Any(), caller.ID, id).Return(domaincontent.SavedContent{ID: id, Content: "Sunny loft"}, nil)

		w := get(newRouter(svc), http.MethodGet, "/contents/"+id.String())
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Sunny loft")
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, _ := newContentSvc(t)
		repo.EXPECT().GetByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(domaincontent.SavedContent{}, portcontent.ErrNotFound)

		w := get(newRouter(svc), http.MethodGet, "/contents/"+uuid.NewString())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		svc, _, _ := newContentSvc(t)
		w := get(newRouter(svc), http.MethodGet, "/contents/123")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// ── GET /:id/export (exportContent) ───────────────────────────────────────────

func TestExportContent(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode int
		wantType string
		wantBody string
	}{
		{name: "html", query: "?format=html", wantCode: http.StatusOK, wantType: "text/html; charset=utf-8", wantBody: "<em>bright</em>"},
		{name: "text", query: "", wantCode: http.StatusOK, wantType: "text/plain; charset=utf-8", wantBody: "*bright*"},
		{name: "unsupported", query: "?format=docx", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newContentSvc(t)
			id := uuid.New()
			repo.EXPECT().GetByID(gomock.Any(), caller.ID, id).Return(domaincontent.SavedContent{ID: id, Content: "A *bright* kitchen"}, nil)

			w := get(newRouter(svc), http.MethodGet, "/contents/"+id.String()+"/export"+tt.query)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantType, w.Header().Get("Content-Type"))
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

// ── DELETE /:id (deleteContent) ───────────────────────────────────────────────

func TestDeleteContent(t *testing.T) {
	svc, repo, bus := newContentSvc(t)
	id := uuid.New()
	repo.EXPECT().Delete(gomock.Any(), caller.ID, id).Return(nil)
	bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	w := get(newRouter(svc), http.MethodDelete, "/contents/"+id.String())
	assert.Equal(t, http.StatusNoContent, w.Code)
}
