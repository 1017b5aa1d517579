package database

import (
	"strings"

	"porvenir-web/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the snapshot database. Postgres URLs go through the pgx driver
// with PreferSimpleProtocol so poolers (PgBouncer, Supabase) do not trip on
// cached prepared statements; anything else is treated as a SQLite path.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if isPostgres(dsn) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	}
	db, err := gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), cfg)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; in-memory databases also vanish per connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// AutoMigrate creates the listing snapshot table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.ListingSnapshot{})
}
