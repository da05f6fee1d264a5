package migration

import (
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migrator interface {
	Up() error
	Version() (uint, bool, error)
	Close() (error, error)
}

var newMigrator = func(dbURL string) (migrator, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}

// EnsureMigrated applies every pending embedded migration. dbURL must use the
// pgx5:// scheme. An up-to-date schema is not an error.
func EnsureMigrated(dbURL, dbHost string, log *zap.Logger) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))
	log.Info("db migration starting")

	m, err := newMigrator(dbURL)
	if err != nil {
		log.Error("db migration failed", zap.Error(err))
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn("closing migrator", zap.NamedError("source_error", srcErr), zap.NamedError("db_error", dbErr))
		}
	}()

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Info("db migration skipped, schema up to date",
			zap.Int64("duration_ms", time.Since(start).Milliseconds()))
		return nil
	case err != nil:
		log.Error("db migration failed",
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info("db migration applied",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
