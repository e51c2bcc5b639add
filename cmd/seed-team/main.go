package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"veab-goa.backend/internal/config"
	domainRepos "veab-goa.backend/internal/domain/repositories"
	"veab-goa.backend/internal/infrastructure/datasources/postgres"
	"veab-goa.backend/internal/infrastructure/docstore"
	"veab-goa.backend/internal/infrastructure/repositories"
	"veab-goa.backend/internal/usecases"
	"veab-goa.backend/pkg/logger"
)

var (
	loadDotenv   = godotenv.Load
	loadCfg      = config.Load
	initLog      = logger.Init
	openDB       = postgres.NewConnection
	migrateDB    = postgres.Migrate
	connectMongo = docstore.Connect
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = loadDotenv()
	cfg := loadCfg()
	initLog(cfg.Server.Env, cfg.Server.LogLevel)
	ctx := context.Background()

	repo, uow, closeFn, err := openTeamStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	added, err := seedRoster(ctx, repo, uow, defaultRoster)
	if err != nil {
		return err
	}
	if added == 0 {
		logger.Info(ctx, "Team members already present, nothing seeded")
		return nil
	}
	logger.Info(ctx, "Seeded team members", zap.Int("added", added))
	return nil
}

// directUnit runs fn without a transaction, used for the Mongo backend.
type directUnit struct{}

func (directUnit) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func openTeamStore(ctx context.Context, cfg *config.Config) (domainRepos.TeamMemberRepository, domainRepos.UnitOfWork, func(), error) {
	if cfg.DocumentStore.Backend == config.BackendMongo {
		client, err := connectMongo(ctx, cfg.DocumentStore.MongoURI, cfg.DocumentStore.ConnectTimeout)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		db := client.Database(cfg.DocumentStore.MongoDatabase)
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return docstore.NewTeamMemberStore(db.Collection(docstore.TeamMembersCollection)), directUnit{}, closeFn, nil
	}

	db, err := openDB(cfg.Database, cfg.Server.Env)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := migrateDB(db); err != nil {
		closeFn()
		return nil, nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repositories.NewTeamMemberRepository(db), repositories.NewUnitOfWork(db), closeFn, nil
}

// seedRoster inserts roster when the collection is empty. Either every
// member is written or, on a transactional backend, none is.
func seedRoster(ctx context.Context, repo domainRepos.TeamMemberRepository, uow domainRepos.UnitOfWork, roster []usecases.TeamMemberForm) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count team members: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	added := 0
	err = uow.Do(ctx, func(ctx context.Context) error {
		members := usecases.NewTeamMemberUsecase(repo, nil, nil)
		for _, form := range roster {
			res := members.Save(ctx, form, "")
			if !res.Success {
				return fmt.Errorf("seed %q: %w", form.Name, errors.New(res.Error))
			}
			logger.Info(ctx, "Added team member", zap.String("name", form.Name))
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}
