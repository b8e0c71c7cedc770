package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"emploiplus/internal/config"
	"emploiplus/internal/database/migration"
	dbpostgres "emploiplus/internal/database/postgres"
	"emploiplus/migrations"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// connectTestDB opens a pool against the database named by the
// EMPLOIPLUS_TEST_DB_* variables and skips the test when they are unset.
func connectTestDB(t *testing.T, ctx context.Context) *dbpostgres.Pool {
	t.Helper()

	cfg := config.DatabaseConfig{
		DBHost:     os.Getenv("EMPLOIPLUS_TEST_DB_HOST"),
		DBPort:     stringsOrDefault(os.Getenv("EMPLOIPLUS_TEST_DB_PORT"), "5432"),
		DBName:     os.Getenv("EMPLOIPLUS_TEST_DB_NAME"),
		DBUser:     os.Getenv("EMPLOIPLUS_TEST_DB_USER"),
		DBPassword: os.Getenv("EMPLOIPLUS_TEST_DB_PASSWORD"),
		DBSSLMode:  stringsOrDefault(os.Getenv("EMPLOIPLUS_TEST_DB_SSL_MODE"), "disable"),
	}
	if !cfg.Enabled() || cfg.DBUser == "" {
		t.Skip("missing test DB env vars: set EMPLOIPLUS_TEST_DB_HOST/PORT/NAME/USER/PASSWORD")
	}

	pool, err := dbpostgres.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })
	return pool
}

func runMigrations(t *testing.T, ctx context.Context, pool *dbpostgres.Pool) {
	t.Helper()
	if err := (migration.Runner{FS: migrations.FS}).Run(ctx, pool.SQLDB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func mustExec(t *testing.T, ctx context.Context, pool *dbpostgres.Pool, query string, args ...any) {
	t.Helper()
	if _, err := pool.Exec(ctx, query, args...); err != nil {
		t.Fatalf("exec %q: %v", strings.Fields(query)[0], err)
	}
}

func doGet(t *testing.T, app *fiber.App, path string) (int, envelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var out envelope
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return resp.StatusCode, out
}

func stringsOrDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
