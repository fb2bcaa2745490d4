package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kontorhq/kontor-api/internal/config"
	"github.com/kontorhq/kontor-api/internal/domain/entity"
)

// NewSQLiteDB opens the SQLite database file and configures the connection.
// WAL mode keeps concurrent report reads from blocking the occasional write.
func NewSQLiteDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.Debug {
		logLevel = gormlogger.Info
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", cfg.Path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// SQLite serializes writes; a single connection avoids lock contention.
	sqlDB.SetMaxOpenConns(1)

	log.Info().Str("path", cfg.Path).Msg("connected to SQLite database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Ledger
		&entity.IncomeEntry{},
		&entity.ExpenseEntry{},
		&entity.Client{},

		// Fixed assets
		&entity.Asset{},
		&entity.DepreciationScheduleEntry{},

		// Filing + configuration
		&entity.ElsterSubmission{},
		&entity.Settings{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}
