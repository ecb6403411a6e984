package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dstone/movie-club-server/internal/api"
	"github.com/dstone/movie-club-server/internal/config"
	"github.com/dstone/movie-club-server/internal/repository"
	repoPostgres "github.com/dstone/movie-club-server/internal/repository/postgres"
	"github.com/dstone/movie-club-server/internal/service"
	"github.com/dstone/movie-club-server/internal/websocket"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_movie_club"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := repoPostgres.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"group_stats",
		"ratings",
		"movie_picks",
		"crew_members",
		"cast_members",
		"movies",
		"picking_seasons",
		"user_sessions",
		"users",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:                "0", // Random port
		Environment:         "test",
		JWTSecret:           "test-jwt-secret-key-for-testing-only",
		JWTExpirationHours:  1,
		PickerPoolSize:      3,
		TMDBBaseURL:         "http://localhost:0",
		CreditFetchInterval: time.Millisecond,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Hub      *websocket.Hub
	Catalog  *StubCatalog
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	repos := repoPostgres.NewRepositories(testDB.DB)
	hub := websocket.NewHub()
	go hub.Run()

	stub := NewStubCatalog()
	services := service.NewServices(repos, stub, cfg)
	router := api.NewRouter(services, hub)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Hub:      hub,
		Catalog:  stub,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
		hub.Stop()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}

// WebSocketURL returns the WebSocket URL with token
func (ts *TestServer) WebSocketURL(token string) string {
	wsURL := "ws" + ts.Server.URL[4:] // Replace "http" with "ws"
	return fmt.Sprintf("%s/api/v1/ws?token=%s", wsURL, token)
}
