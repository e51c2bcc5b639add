package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"veab-goa.backend/internal/config"
	"veab-goa.backend/internal/domain/entities"
	domainRepos "veab-goa.backend/internal/domain/repositories"
	"veab-goa.backend/internal/infrastructure/datasources/postgres"
	"veab-goa.backend/internal/infrastructure/repositories"
	"veab-goa.backend/internal/usecases"
	plog "veab-goa.backend/pkg/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	return db
}

// failingRepo rejects the member named failOn after earlier creates succeeded.
type failingRepo struct {
	domainRepos.TeamMemberRepository
	failOn string
}

func (r *failingRepo) Create(ctx context.Context, m *entities.TeamMember) error {
	if m.Name == r.failOn {
		return errors.New("disk full")
	}
	return r.TeamMemberRepository.Create(ctx, m)
}

func TestSeedRoster_InsertsOnceInDisplayOrder(t *testing.T) {
	plog.Init("development")
	db := openSQLite(t)
	repo := repositories.NewTeamMemberRepository(db)
	uow := repositories.NewUnitOfWork(db)
	ctx := context.Background()

	added, err := seedRoster(ctx, repo, uow, defaultRoster)
	require.NoError(t, err)
	assert.Equal(t, len(defaultRoster), added)

	members, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, members, len(defaultRoster))
	assert.Equal(t, "Chandrakant Shinde", members[0].Name)
	assert.Equal(t, entities.ImageStoreObject, members[0].Image.Kind)
	assert.Equal(t, "team-images/chandrakant_shinde.png", members[0].Image.Value)
	assert.Equal(t, "Ramesh Zarmekar", members[3].Name)

	added, err = seedRoster(ctx, repo, uow, defaultRoster)
	require.NoError(t, err)
	assert.Zero(t, added)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(defaultRoster)), count)
}

func TestSeedRoster_RollsBackOnFailure(t *testing.T) {
	plog.Init("development")
	db := openSQLite(t)
	base := repositories.NewTeamMemberRepository(db)
	repo := &failingRepo{TeamMemberRepository: base, failOn: "Deepak Gawas"}

	_, err := seedRoster(context.Background(), repo, repositories.NewUnitOfWork(db), defaultRoster)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Deepak Gawas")

	count, err := base.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSeedRoster_InvalidRosterEntry(t *testing.T) {
	plog.Init("development")
	db := openSQLite(t)
	repo := repositories.NewTeamMemberRepository(db)

	roster := []usecases.TeamMemberForm{{Name: "X"}}
	_, err := seedRoster(context.Background(), repo, directUnit{}, roster)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid data")
}

func withSeedHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv, origLoadCfg, origInitLog := loadDotenv, loadCfg, initLog
	origOpenDB, origMigrateDB, origConnectMongo := openDB, migrateDB, connectMongo
	t.Cleanup(func() {
		loadDotenv, loadCfg, initLog = origLoadDotenv, origLoadCfg, origInitLog
		openDB, migrateDB, connectMongo = origOpenDB, origMigrateDB, origConnectMongo
	})
	loadDotenv = func(...string) error { return nil }
	initLog = plog.Init
}

func TestRun_Postgres(t *testing.T) {
	withSeedHooks(t)
	loadCfg = func() *config.Config {
		return &config.Config{DocumentStore: config.DocumentStoreConfig{Backend: config.BackendPostgres}}
	}
	openDB = func(config.DatabaseConfig, string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open("file:seed_run?mode=memory&cache=shared"), &gorm.Config{})
	}
	require.NoError(t, run())

	openDB = func(config.DatabaseConfig, string) (*gorm.DB, error) { return nil, errors.New("refused") }
	assert.ErrorContains(t, run(), "failed to connect to database")

	openDB = func(config.DatabaseConfig, string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open("file:seed_migrate?mode=memory&cache=shared"), &gorm.Config{})
	}
	migrateDB = func(*gorm.DB) error { return errors.New("locked") }
	assert.ErrorContains(t, run(), "failed to migrate database")
}

func TestRun_MongoConnectError(t *testing.T) {
	withSeedHooks(t)
	loadCfg = func() *config.Config {
		return &config.Config{DocumentStore: config.DocumentStoreConfig{Backend: config.BackendMongo}}
	}
	connectMongo = func(context.Context, string, time.Duration) (*mongo.Client, error) {
		return nil, errors.New("no mongo")
	}
	assert.ErrorContains(t, run(), "failed to connect to mongo")
}
