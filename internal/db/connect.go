package db

import (
	"strings"
	"time"

	"github.com/diewo77/techfix/internal/config"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects with retries so the app can start before the database
// accepts connections, then checks connectivity with SELECT 1.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, dsn, err := dialect(cfg)
	if err != nil {
		return nil, err
	}
	level := logger.Silent
	if cfg.Debug {
		level = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(level), TranslateError: true}

	retries := cfg.Retries
	if retries < 1 {
		retries = 1
	}
	var conn *gorm.DB
	for i := 0; i < retries; i++ {
		conn, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		log.Warn("database not ready, retrying",
			zap.Int("attempt", i+1), zap.Int("of", retries), zap.Error(err))
		if i < retries-1 {
			time.Sleep(cfg.RetryDelay)
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "connect database after %d attempts", retries)
	}
	if err := conn.Exec("SELECT 1").Error; err != nil {
		return nil, errors.Wrap(err, "db ping")
	}
	log.Info("database connected", zap.String("driver", cfg.Driver), zap.String("dsn", MaskDSN(dsn)))
	return conn, nil
}

func dialect(cfg config.DatabaseConfig) (gorm.Dialector, string, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverPostgres, "":
		dsn := NormalizeDSN(cfg.DSN)
		if dsn == "" {
			return nil, "", errors.New("DATABASE_DSN is empty")
		}
		return postgres.Open(dsn), dsn, nil
	case DriverSQLite, "sqlite3":
		dsn := cfg.DSN
		if dsn == "" || strings.HasPrefix(strings.ToLower(dsn), "postgres") {
			dsn = "techfix.db"
		}
		return sqlite.Open(dsn), dsn, nil
	}
	return nil, "", errors.Errorf("unsupported DATABASE_DRIVER %q", cfg.Driver)
}
