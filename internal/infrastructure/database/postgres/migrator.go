package postgres

import (
	"embed"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// driver
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// migrationSource returns the embedded migrations as a golang-migrate source.
func migrationSource() (source.Driver, error) {
	return iofs.New(migrationFiles, "migrations")
}

// ─────────────────────────────────────────────────────────────────────────────
// Migrator
// ─────────────────────────────────────────────────────────────────────────────

// Migrator applies the embedded schema migrations.
type Migrator struct {
	m      *migrate.Migrate
	logger logging.Logger
}

// NewMigrator prepares a migrator for the database at dsn, which must be a
// postgres:// or postgresql:// URL.
func NewMigrator(dsn string, log logging.Logger) (*Migrator, error) {
	if log == nil {
		log = logging.Default()
	}
	dbURL, err := migrateURL(dsn)
	if err != nil {
		return nil, err
	}
	src, err := migrationSource()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to load embedded migrations")
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create migrate instance")
	}
	return &Migrator{m: m, logger: log}, nil
}

// Up applies every pending migration.  An up-to-date schema is not an error.
func (g *Migrator) Up() error {
	if err := g.m.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		version, dirty, _ := g.m.Version()
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to run migrations").
			WithDetail(versionDetail(version, dirty))
	}
	version, dirty, err := g.Version()
	if err != nil {
		g.logger.Warn("Failed to read migration version", logging.Err(err))
		return nil
	}
	g.logger.Info("Database migrations completed",
		logging.Int64("version", int64(version)),
		logging.Bool("dirty", dirty),
	)
	return nil
}

// Version reports the applied version, 0 when nothing has been applied.
// A dirty schema needs manual repair before Up can run again.
func (g *Migrator) Version() (uint, bool, error) {
	version, dirty, err := g.m.Version()
	if stderrors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to get migration version")
	}
	return version, dirty, nil
}

// Close releases the source and database handles.
func (g *Migrator) Close() error {
	srcErr, dbErr := g.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

// migrateURL rewrites a postgres URL to the scheme of the pgx/v5 migrate
// driver.
func migrateURL(dsn string) (string, error) {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme), nil
		}
	}
	if strings.HasPrefix(dsn, "pgx5://") {
		return dsn, nil
	}
	return "", errors.InvalidParam("migrations need a postgres:// URL").WithDetail(redactDSN(dsn))
}

// redactDSN keeps the scheme and drops everything that may hold credentials.
func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "…"
	}
	return "(key/value connection string)"
}

func versionDetail(version uint, dirty bool) string {
	if dirty {
		return fmt.Sprintf("dirty at version %d", version)
	}
	return fmt.Sprintf("version %d", version)
}

//Personal.AI order the ending
