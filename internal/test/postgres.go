// Package test starts a throwaway Postgres for repository tests.
package test

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

//go:embed schema.sql
var schema string

var (
	ErrContainer = errors.New("failed to bring up test container")

	shared    *PostgresContainer //nolint:gochecknoglobals
	sharedErr error              //nolint:gochecknoglobals
)

// PostgresContainer is a running postgres with the schema applied
type PostgresContainer struct {
	testcontainers.Container
	Pool *pgxpool.Pool
	dsn  string
}

func NewPostgres(ctx context.Context) (*PostgresContainer, error) {
	const testInfo = "campaigns-test"
	username, password, dbName := testInfo, testInfo, testInfo

	cont, errContainer := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       dbName,
				"POSTGRES_USER":     username,
				"POSTGRES_PASSWORD": password,
			},
			WaitingFor: wait.
				ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if errContainer != nil {
		return nil, errors.Join(errContainer, ErrContainer)
	}

	host, err := cont.Host(ctx)
	if err != nil {
		_ = cont.Terminate(ctx)
		return nil, errors.Join(err, ErrContainer)
	}
	port, err := cont.MappedPort(ctx, "5432")
	if err != nil {
		_ = cont.Terminate(ctx)
		return nil, errors.Join(err, ErrContainer)
	}

	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable", username, password, host, port.Port(), dbName)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		_ = cont.Terminate(ctx)
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		_ = cont.Terminate(ctx)
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &PostgresContainer{Container: cont, Pool: pool, dsn: dsn}, nil
}

// Reset empties every table and restarts id sequences
func (c *PostgresContainer) Reset(ctx context.Context) error {
	_, err := c.Pool.Exec(ctx, `TRUNCATE characters, campaign_memberships, campaigns, players RESTART IDENTITY CASCADE`)
	return err
}

func (c *PostgresContainer) Close(ctx context.Context) error {
	c.Pool.Close()
	return c.Terminate(ctx)
}

// Main runs the package's tests with one shared container. Under -short, or when
// docker is unavailable, tests that call Pool are skipped.
func Main(m *testing.M) {
	flag.Parse()
	ctx := context.Background()

	if !testing.Short() {
		shared, sharedErr = NewPostgres(ctx)
	}

	code := m.Run()

	if shared != nil {
		_ = shared.Close(ctx)
	}
	os.Exit(code)
}

// Pool returns the shared pool with all tables emptied
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if shared == nil {
		if sharedErr == nil {
			t.Skip("postgres tests skipped in short mode")
		}
		t.Skipf("postgres unavailable: %v", sharedErr)
	}

	if err := shared.Reset(context.Background()); err != nil {
		t.Fatalf("failed to reset database: %v", err)
	}
	return shared.Pool
}

// InsertPlayer adds a bare player row and returns its id
func InsertPlayer(ctx context.Context, pool *pgxpool.Pool, telegramID int64) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `INSERT INTO players (telegram_id) VALUES ($1) RETURNING id`, telegramID).Scan(&id)
	return id, err
}
