// Package postgres opens the relational document store.
package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"veab-goa.backend/internal/config"
	"veab-goa.backend/internal/infrastructure/models"
	"veab-goa.backend/pkg/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

var (
	openGorm = func(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	}
	dbPing = func(db *sql.DB) error { return db.Ping() }
)

// NewConnection opens a pooled gorm connection and pings it. Queries are
// logged through zap at a level picked from env.
func NewConnection(cfg config.DatabaseConfig, env string) (*gorm.DB, error) {
	db, err := openGorm(cfg.URL(), &gorm.Config{
		Logger: logger.NewGormLogger(logger.GormLevel(env), slowQueryThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := dbPing(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the site tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.TeamMember{},
		&models.Article{},
		&models.Project{},
		&models.ContactMessage{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
