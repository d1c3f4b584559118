package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Runner applies the SQL migrations in a directory against postgres
type Runner struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// New builds a Runner over an open database connection
func New(db *sql.DB, dir string, log *zap.Logger) (*Runner, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migration source %s: %w", dir, err)
	}
	return &Runner{m: m, log: log}, nil
}

func (r *Runner) finish(op string, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		r.log.Info("Schema already up to date", zap.String("op", op))
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if version, dirty, verr := r.m.Version(); verr == nil {
		r.log.Info("Migrations applied",
			zap.String("op", op),
			zap.Uint("version", version),
			zap.Bool("dirty", dirty))
	}
	return nil
}

// Up applies every pending migration
func (r *Runner) Up() error {
	return r.finish("up", r.m.Up())
}

// Down rolls back every applied migration
func (r *Runner) Down() error {
	return r.finish("down", r.m.Down())
}

// Steps applies n migrations, negative n rolls back
func (r *Runner) Steps(n int) error {
	return r.finish(fmt.Sprintf("step %d", n), r.m.Steps(n))
}

// GoTo migrates up or down to the given version
func (r *Runner) GoTo(version uint) error {
	return r.finish(fmt.Sprintf("goto %d", version), r.m.Migrate(version))
}

// Version reports the current schema version and dirty flag. A fresh
// database reports version 0.
func (r *Runner) Version() (uint, bool, error) {
	version, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running migrations.
// Only for recovering a dirty schema.
func (r *Runner) Force(version int) error {
	r.log.Warn("Forcing schema version", zap.Int("version", version))
	if err := r.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the database
func (r *Runner) Drop() error {
	r.log.Warn("Dropping all database objects")
	if err := r.m.Drop(); err != nil {
		return fmt.Errorf("drop: %w", err)
	}
	return nil
}

// Close releases the migration source and database handles
func (r *Runner) Close() error {
	sourceErr, dbErr := r.m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	return dbErr
}
