package migrate

import (
	"errors"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/f1log/stint-analyzer-go/log"
	"github.com/f1log/stint-analyzer-go/pkg/config"
	dbmigrate "github.com/f1log/stint-analyzer-go/pkg/db/migrate"
	"github.com/f1log/stint-analyzer-go/pkg/utils"
)

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "performs database migration for the optional database sink",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startMigration()
		},
	}

	cmd.Flags().StringVarP(&config.MigrationSource,
		"migrationSourceUrl",
		"m",
		"",
		"url to migration files (default: embedded migrations)")

	return cmd
}

func startMigration() error {
	if config.DB == "" {
		return errors.New("no database configured, use --db")
	}
	// wait for database
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if err = utils.WaitForTCP(postgresAddr, timeout); err != nil {
		log.Fatal("database  not ready", log.ErrorField(err))
	}

	if config.MigrationSource == "" {
		log.Info("Using embedded migrations")
		return dbmigrate.MigrateDB(config.DB)
	}

	log.Info("Using migrations files at",
		log.String("source", config.MigrationSource))
	m, err := migrate.New(config.MigrationSource, dbmigrate.PrepareURL(config.DB))
	if err != nil {
		log.Fatal("Could not create migration", log.ErrorField(err))
	}
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("No Migration required")
		return nil
	}
	return err
}
