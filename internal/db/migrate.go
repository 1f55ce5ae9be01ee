package db

import (
	"embed"
	"strings"

	"github.com/diewo77/techfix/internal/config"
	"github.com/diewo77/techfix/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// Registers the postgres driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Tables must exist after Migrate.
var Tables = []string{"users", "admin_profiles", "products", "services"}

// Migrate applies the schema. With MIGRATIONS set on postgres the embedded
// SQL migrations run through golang-migrate; otherwise gorm AutoMigrate is
// used (development and SQLite).
func Migrate(conn *gorm.DB, cfg config.DatabaseConfig, log *zap.Logger) error {
	if cfg.Migrations && strings.ToLower(cfg.Driver) == DriverPostgres {
		log.Info("running sql migrations")
		if err := runSQLMigrations(ToURLDSN(NormalizeDSN(cfg.DSN))); err != nil {
			return errors.Wrap(err, "sql migrations")
		}
	} else {
		for _, m := range models.All() {
			if err := conn.AutoMigrate(m); err != nil {
				return errors.Wrapf(err, "automigrate %T", m)
			}
		}
	}
	return CheckTables(conn)
}

// CheckTables fails when a required table is missing.
func CheckTables(conn *gorm.DB) error {
	for _, table := range Tables {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

func runSQLMigrations(url string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
