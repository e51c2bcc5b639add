package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"veab-goa.backend/internal/domain/entities"
)

func TestUnitOfWork_DoCommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	createTeamMemberTable(t, db)
	repo := NewTeamMemberRepository(db)
	u := NewUnitOfWork(db)
	ctx := context.Background()

	err := u.Do(ctx, func(ctx context.Context) error {
		if err := repo.Create(ctx, &entities.TeamMember{Name: "Asha", Role: "Member", Profession: "Nurse", Intro: "Runs health camps."}); err != nil {
			return err
		}
		return repo.Create(ctx, &entities.TeamMember{Name: "Ravi", Role: "Member", Profession: "Farmer", Intro: "Grows saplings."})
	})
	require.NoError(t, err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	err = u.Do(ctx, func(ctx context.Context) error {
		if err := repo.Create(ctx, &entities.TeamMember{Name: "Mira", Role: "Member", Profession: "Artist", Intro: "Paints murals."}); err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	require.Error(t, err)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), n, "insert inside a failed unit must be rolled back")
}

func TestUnitOfWork_NestedJoinsOuter(t *testing.T) {
	db := newTestDB(t)
	createTeamMemberTable(t, db)
	repo := NewTeamMemberRepository(db)
	u := NewUnitOfWork(db)

	err := u.Do(context.Background(), func(ctx context.Context) error {
		outer := GetDB(ctx, db)
		return u.Do(ctx, func(inner context.Context) error {
			require.Same(t, outer, GetDB(inner, db))
			return repo.Create(inner, &entities.TeamMember{Name: "Nested", Role: "Member", Profession: "Clerk", Intro: "Keeps records."})
		})
	})
	require.NoError(t, err)
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}
