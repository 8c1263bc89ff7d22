//go:build integration

package content_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgcontent "github.com/alanyang/listingcraft/internal/adapter/postgres/content"
	pgproject "github.com/alanyang/listingcraft/internal/adapter/postgres/project"
	domaincontent "github.com/alanyang/listingcraft/internal/domain/content"
	domainproject "github.com/alanyang/listingcraft/internal/domain/project"
	portcontent "github.com/alanyang/listingcraft/internal/port/content"
	"github.com/alanyang/listingcraft/internal/testutil"
)

func TestContentRepo_SaveAndGet(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgcontent.New(pool)
	owner := testutil.CreateUser(t, pool)

	c := domaincontent.New(owner.ID, nil, domaincontent.TypeEmail, "Subject: Hello", map[string]any{
		"variation":   1,
		"temperature": 0.8,
		"email_type":  "broadcast",
	})
	saved, err := repo.Save(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, c.ID, saved.ID)
	assert.Nil(t, saved.ProjectID)

	got, err := repo.GetByID(ctx, owner.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domaincontent.TypeEmail, got.ContentType)
	assert.Equal(t, "Subject: Hello", got.Content)
	assert.Equal(t, "broadcast", got.Metadata["email_type"])
	assert.EqualValues(t, 1, got.Metadata["variation"])

	t.Run("other user cannot read it", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New(), c.ID)
		assert.ErrorIs(t, err, portcontent.ErrNotFound)
	})
}

func TestContentRepo_ListFilters(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgcontent.New(pool)
	projects := pgproject.New(pool)
	owner := testutil.CreateUser(t, pool)

	proj, err := projects.Create(ctx, domainproject.Project{
		ID: uuid.New(), UserID: owner.ID, Name: "Elm", CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	for _, ct := range []domaincontent.Type{domaincontent.TypeListing, domaincontent.TypeSocialPost} {
		_, err := repo.Save(ctx, domaincontent.New(owner.ID, &proj.ID, ct, "text", nil))
		require.NoError(t, err)
	}
	_, err = repo.Save(ctx, domaincontent.New(owner.ID, nil, domaincontent.TypeEmail, "text", nil))
	require.NoError(t, err)

	all, err := repo.List(ctx, domaincontent.ListFilters{UserID: owner.ID})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byProject, err := repo.List(ctx, domaincontent.ListFilters{UserID: owner.ID, ProjectID: &proj.ID})
	require.NoError(t, err)
	assert.Len(t, byProject, 2)

	listing := domaincontent.TypeListing
	byType, err := repo.List(ctx, domaincontent.ListFilters{UserID: owner.ID, ProjectID: &proj.ID, ContentType: &listing, Limit: 10})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, domaincontent.TypeListing, byType[0].ContentType)
}

func TestContentRepo_Delete(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgcontent.New(pool)
	owner := testutil.CreateUser(t, pool)

	saved, err := repo.Save(ctx, domaincontent.New(owner.ID, nil, domaincontent.TypeEmail, "bye", nil))
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New(), saved.ID), portcontent.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, owner.ID, saved.ID))
	assert.ErrorIs(t, repo.Delete(ctx, owner.ID, saved.ID), portcontent.ErrNotFound)
}
