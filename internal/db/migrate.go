package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"creator-ads/db/migrations"
)

// ErrDirtySchema is returned when a previous migration failed half way.
var ErrDirtySchema = errors.New("database is in dirty state")

// Migrate brings the schema to migrations.Version and reports the version
// it found before migrating.
func Migrate(addr string) (uint, error) {
	driver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return 0, fmt.Errorf("open embedded migrations: %w", err)
	}
	defer driver.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", driver, addr)
	if err != nil {
		return 0, fmt.Errorf("init migrate: %w", err)
	}
	defer mg.Close()

	from, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, err
	}
	if dirty {
		return from, fmt.Errorf("version %d: %w", from, ErrDirtySchema)
	}

	if err = mg.Migrate(migrations.Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return from, fmt.Errorf("migrate to %d: %w", migrations.Version, err)
	}
	return from, nil
}
