package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
)

func newMember(name string, order null.Int) *entities.TeamMember {
	return &entities.TeamMember{
		Name:         name,
		Role:         "Volunteer",
		Profession:   "Teacher",
		Intro:        "Long time volunteer of the association.",
		Image:        entities.ParseImageRef("team-images/" + name + ".png"),
		Socials:      []entities.SocialLink{{Platform: "LinkedIn", URL: "https://linkedin.com/in/" + name}},
		DisplayOrder: order,
	}
}

func TestTeamMemberRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	createTeamMemberTable(t, db)
	repo := NewTeamMemberRepository(db)
	ctx := context.Background()

	jane := newMember("Jane", null.IntFrom(1))
	require.NoError(t, repo.Create(ctx, jane))
	require.NotEmpty(t, jane.ID)
	require.False(t, jane.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, jane.ID)
	require.NoError(t, err)
	require.Equal(t, "Jane", got.Name)
	require.Equal(t, entities.ImageStoreObject, got.Image.Kind)
	require.Equal(t, "team-images/Jane.png", got.Image.String())
	require.Len(t, got.Socials, 1)
	require.Equal(t, "LinkedIn", got.Socials[0].Platform)
	require.True(t, got.DisplayOrder.Valid)
	require.Equal(t, 1, got.DisplayOrder.Int)

	got.Role = "President"
	got.Image = entities.ImageRef{}
	got.DisplayOrder = null.Int{}
	got.Socials = nil
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, jane.ID)
	require.NoError(t, err)
	require.Equal(t, "President", updated.Role)
	require.True(t, updated.Image.IsZero())
	require.False(t, updated.DisplayOrder.Valid)
	require.Empty(t, updated.Socials)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, repo.Delete(ctx, jane.ID))
	_, err = repo.GetByID(ctx, jane.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTeamMemberRepository_ListOrdersUnorderedLast(t *testing.T) {
	db := newTestDB(t)
	createTeamMemberTable(t, db)
	repo := NewTeamMemberRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newMember("B", null.IntFrom(2))))
	require.NoError(t, repo.Create(ctx, newMember("A", null.Int{})))
	require.NoError(t, repo.Create(ctx, newMember("C", null.IntFrom(1))))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "C", items[0].Name)
	require.Equal(t, "B", items[1].Name)
	require.Equal(t, "A", items[2].Name)
}

func TestTeamMemberRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	createTeamMemberTable(t, db)
	repo := NewTeamMemberRepository(db)
	ctx := context.Background()

	missing := newMember("Ghost", null.Int{})
	missing.ID = "0190c1d2-0000-7000-8000-000000000000"
	require.ErrorIs(t, repo.Update(ctx, missing), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, missing.ID), domainerrors.ErrNotFound)
}

func TestTeamMemberRepository_MalformedIDIsNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewTeamMemberRepository(db)
	ctx := context.Background()

	// no table: a malformed id must be rejected before any query runs
	for _, id := range []string{"abc", "", "team-images/jane.png", "0190c1d2-0000-7000-8000"} {
		_, err := repo.GetByID(ctx, id)
		require.ErrorIs(t, err, domainerrors.ErrNotFound, id)
		require.ErrorIs(t, repo.Delete(ctx, id), domainerrors.ErrNotFound, id)

		m := newMember("Ghost", null.Int{})
		m.ID = id
		require.ErrorIs(t, repo.Update(ctx, m), domainerrors.ErrNotFound, id)
	}
}

func TestTeamMemberRepository_DBErrors(t *testing.T) {
	db := newTestDB(t)
	repo := NewTeamMemberRepository(db)
	ctx := context.Background()

	var storeErr *domainerrors.StoreError

	err := repo.Create(ctx, newMember("X", null.Int{}))
	require.Error(t, err)
	require.True(t, errors.As(err, &storeErr))
	require.Equal(t, "create team member", storeErr.Op)

	_, err = repo.List(ctx)
	require.Error(t, err)

	_, err = repo.GetByID(ctx, "x")
	require.Error(t, err)
	require.False(t, errors.Is(err, domainerrors.ErrNotFound))

	require.Error(t, repo.Update(ctx, &entities.TeamMember{ID: "x"}))
	require.Error(t, repo.Delete(ctx, "x"))

	_, err = repo.Count(ctx)
	require.Error(t, err)
}
