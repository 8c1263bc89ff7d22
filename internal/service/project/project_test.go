package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alanyang/listingcraft/internal/domain/event"
	domainproject "github.com/alanyang/listingcraft/internal/domain/project"
	"github.com/alanyang/listingcraft/internal/mocks"
	portproject "github.com/alanyang/listingcraft/internal/port/project"
	projectsvc "github.com/alanyang/listingcraft/internal/service/project"
)

func newProjectSvc(t *testing.T) (*projectsvc.Service, *mocks.MockProjectRepository, *mocks.MockEventBus) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockProjectRepository(ctrl)
	bus := mocks.NewMockEventBus(ctrl)
	return projectsvc.NewService(repo, bus), repo, bus
}

func TestCreate_Success(t *testing.T) {
	svc, repo, bus := newProjectSvc(t)
	userID := uuid.New()

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p domainproject.Project) (domainproject.Project, error) {
			assert.Equal(t, userID, p.UserID)
			assert.NotEqual(t, uuid.Nil, p.ID)
			return p, nil
		})
	bus.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e event.Event) error {
			assert.Equal(t, event.TypeProjectCreated, e.Type)
			return nil
		})

	got, err := svc.Create(context.Background(), userID, projectsvc.Draft{Name: "12 Elm St", Bedrooms: "3"})
	require.NoError(t, err)
	assert.Equal(t, "12 Elm St", got.Name)
	assert.Equal(t, "3", got.Bedrooms)
}

func TestCreate_RepoError(t *testing.T) {
	svc, repo, _ := newProjectSvc(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domainproject.Project{}, errors.New("db error"))

	_, err := svc.Create(context.Background(), uuid.New(), projectsvc.Draft{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create project")
}

func TestCreate_PublishFailureIsIgnored(t *testing.T) {
	svc, repo, bus := newProjectSvc(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p domainproject.Project) (domainproject.Project, error) {
			return p, nil
		})
	bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("notify failed"))

	_, err := svc.Create(context.Background(), uuid.New(), projectsvc.Draft{Name: "x"})
	require.NoError(t, err)
}

func TestGetByID(t *testing.T) {
	owner := uuid.New()
	projectID := uuid.New()

	tests := []struct {
		name    string
		caller  uuid.UUID
		repoErr error
		wantErr error
	}{
		{name: "owner", caller: owner},
		{name: "other user", caller: uuid.New(), wantErr: portproject.ErrNotFound},
		{name: "missing", caller: owner, repoErr: portproject.ErrNotFound, wantErr: portproject.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newProjectSvc(t)
			repo.EXPECT().GetByID(gomock.Any(), projectID).
				Return(domainproject.Project{ID: projectID, UserID: owner}, tt.repoErr)

			got, err := svc.GetByID(context.Background(), tt.caller, projectID)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), "get project")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, projectID, got.ID)
		})
	}
}

func TestList_Success(t *testing.T) {
	svc, repo, _ := newProjectSvc(t)
	userID := uuid.New()
	repo.EXPECT().ListByUser(gomock.Any(), userID).Return([]domainproject.Project{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	got, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDelete(t *testing.T) {
	t.Run("publishes on success", func(t *testing.T) {
		svc, repo, bus := newProjectSvc(t)
		userID, id := uuid.New(), uuid.New()
		repo.EXPECT().Delete(gomock.Any(), userID, id).Return(nil)
		bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), userID, id))
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, _ := newProjectSvc(t)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any(), gomock.Any()).Return(portproject.ErrNotFound)

		err := svc.Delete(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, portproject.ErrNotFound)
	})
}
