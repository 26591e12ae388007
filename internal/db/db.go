package db

import (
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/Zandino/Deltapp/internal/config"
)

// New opens the database and applies migrations. Postgres DSNs go through
// the pgx driver; anything else is treated as a sqlite file for local runs.
func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	database, err := open(cfg.DB.DSN, log)
	if err != nil {
		return nil, err
	}

	if cfg.DB.MaxOpenConns > 0 || cfg.DB.MaxIdleConns > 0 {
		sqlDB, err := database.DB()
		if err != nil {
			return nil, err
		}
		if cfg.DB.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
		}
		if cfg.DB.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
		}
	}

	if err := runMigrations(database); err != nil {
		return nil, err
	}
	return database, nil
}

func open(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Info().Msg("connecting to postgres")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Info().Str("path", dsn).Msg("using sqlite database")
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}
