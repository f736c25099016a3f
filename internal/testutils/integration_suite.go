package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/nsqio/go-nsq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"voxintel/backend/internal/config"
)

type IntegrationSuite struct {
	T   *testing.T
	DB  *sql.DB
	NSQ *nsq.Producer

	connStr string
	nsqAddr string

	// Containers
	pgContainer  *postgres.PostgresContainer
	nsqContainer testcontainers.Container
}

func NewIntegrationSuite(t *testing.T) *IntegrationSuite {
	return &IntegrationSuite{T: t}
}

func (s *IntegrationSuite) Setup() {
	ctx := context.Background()

	// 1. Postgres
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("voxintel_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(s.T, err)
	s.pgContainer = pgContainer

	s.connStr, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(s.T, err)

	s.DB, err = sql.Open("postgres", s.connStr)
	require.NoError(s.T, err)

	// Run Migrations
	m, err := migrate.New(MigrationPath(), s.connStr)
	require.NoError(s.T, err)
	require.NoError(s.T, m.Up())

	// 2. NSQ
	nsqReq := testcontainers.ContainerRequest{
		Image:        "nsqio/nsq:v1.3.0",
		ExposedPorts: []string{"4150/tcp", "4151/tcp"},
		Cmd:          []string{"/nsqd", "--broadcast-address=localhost"},
		WaitingFor:   wait.ForLog("TCP: listening on").WithStartupTimeout(60 * time.Second),
	}
	nsqC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: nsqReq,
		Started:          true,
	})
	require.NoError(s.T, err)
	s.nsqContainer = nsqC

	nsqHost, err := nsqC.Host(ctx)
	require.NoError(s.T, err)
	nsqPort, err := nsqC.MappedPort(ctx, "4150")
	require.NoError(s.T, err)
	s.nsqAddr = fmt.Sprintf("%s:%s", nsqHost, nsqPort.Port())

	s.NSQ, err = nsq.NewProducer(s.nsqAddr, nsq.NewConfig())
	require.NoError(s.T, err)
}

// GetAppConfig returns a Config wired to the suite's containers.
func (s *IntegrationSuite) GetAppConfig() *config.Config {
	ctx := context.Background()

	host, err := s.pgContainer.Host(ctx)
	require.NoError(s.T, err)
	mappedPort, err := s.pgContainer.MappedPort(ctx, "5432")
	require.NoError(s.T, err)
	port, err := strconv.Atoi(mappedPort.Port())
	require.NoError(s.T, err)

	nsqHost, nsqPort, err := net.SplitHostPort(s.nsqAddr)
	require.NoError(s.T, err)

	return &config.Config{
		DBHost:                     host,
		DBPort:                     port,
		DBUser:                     "test",
		DBPass:                     "test",
		DBName:                     "voxintel_test",
		NSQDHost:                   net.JoinHostPort(nsqHost, nsqPort),
		MigrationPath:              MigrationPath(),
		ChunkMaxChars:              1000,
		CacheTTLMinutes:            30,
		ScrapeTimeoutSeconds:       10,
		ScrapeConcurrency:          5,
		ServerPort:                 0,
		BootstrapRetryAttempts:     3,
		BootstrapRetryDelaySeconds: 1,
	}
}

// MigrationPath resolves the migrations directory relative to this file so
// tests work regardless of the package they run from.
func MigrationPath() string {
	_, b, _, _ := runtime.Caller(0)
	basepath := filepath.Dir(b)
	return fmt.Sprintf("file://%s/../../migrations", basepath)
}

func (s *IntegrationSuite) Teardown() {
	ctx := context.Background()
	if s.pgContainer != nil {
		s.pgContainer.Terminate(ctx)
	}
	if s.nsqContainer != nil {
		s.nsqContainer.Terminate(ctx)
	}
}
