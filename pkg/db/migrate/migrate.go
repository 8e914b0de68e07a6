package migrate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/f1log/stint-analyzer-go/db"
)

// MigrateDB brings the database at dbURL up to the embedded schema version.
func MigrateDB(dbURL string) error {
	d, err := iofs.New(db.Migrations, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", d, PrepareURL(dbURL))
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// PrepareURL ensures sslmode=disable is part of the connection string.
func PrepareURL(url string) string {
	options := "sslmode=disable"
	if strings.Contains(url, options) {
		return url
	}
	if strings.Contains(url, "?") {
		return fmt.Sprintf("%s&%s", url, options)
	}
	return fmt.Sprintf("%s?%s", url, options)
}
