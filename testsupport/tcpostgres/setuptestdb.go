//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/f1log/stint-analyzer-go/pkg/db/migrate"
	database "github.com/f1log/stint-analyzer-go/pkg/db/postgres"
)

// create a pg connection pool for the stint-analyzer testdatabase
func SetupTestDB() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	container, err := SetupPostgres(ctx,
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("stint-analyzer-test"),
	)
	if err != nil {
		log.Fatal(err)
	}
	containerPort, _ := container.MappedPort(ctx, port)
	host, _ := container.Host(ctx)
	dbURL := fmt.Sprintf("postgresql://postgres:password@%s:%s/postgres",
		host, containerPort.Port())

	return initPool(dbURL)
}

// SetupExternalTestDB connects to the database named by TESTDB_URL instead
// of starting a container.
func SetupExternalTestDB() *pgxpool.Pool {
	return initPool(os.Getenv("TESTDB_URL"))
}

func initPool(dbURL string) *pgxpool.Pool {
	if err := migrate.MigrateDB(dbURL); err != nil {
		log.Fatal(err)
	}
	pool, err := database.InitWithURL(dbURL)
	if err != nil {
		log.Fatal(err)
	}
	return pool
}

func ClearLapTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from lap")
}

func ClearResultTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from stint_summary")
	pool.Exec(context.Background(), "delete from compound_fit")
}

func ClearSessionTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from session")
}

func ClearAllTables(pool *pgxpool.Pool) {
	ClearResultTables(pool)
	ClearLapTable(pool)
	ClearSessionTable(pool)
}
