package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Supported drivers
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// DB holds the database connection. It stays nil when no database is configured.
var DB *sql.DB

// Driver is the driver name DB was opened with
var Driver string

const schema = `
CREATE TABLE IF NOT EXISTS listing_jobs (
	id            TEXT PRIMARY KEY,
	kind          TEXT NOT NULL,
	prefixes      TEXT NOT NULL DEFAULT '',
	rows_written  INTEGER NOT NULL DEFAULT 0,
	items_total   INTEGER NOT NULL DEFAULT 0,
	items_skipped INTEGER NOT NULL DEFAULT 0,
	status        TEXT NOT NULL,
	warnings      TEXT NOT NULL DEFAULT '[]',
	created_at    TEXT NOT NULL
)`

// InitDB opens the job history database. databaseURL (or the DB_* variables) selects
// Postgres; otherwise sqlitePath selects a local SQLite file.
func InitDB(ctx context.Context, databaseURL, sqlitePath string) error {
	driver, dsn, err := dataSource(databaseURL, sqlitePath)
	if err != nil {
		return err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	if driver == DriverSQLite {
		// a single writer avoids SQLITE_BUSY between concurrent requests
		conn.SetMaxOpenConns(1)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	DB = conn
	Driver = driver
	zap.S().Infof("✅ Database connection established (%s)", driver)
	return nil
}

func dataSource(databaseURL, sqlitePath string) (string, string, error) {
	if databaseURL != "" {
		return DriverPostgres, databaseURL, nil
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		user := os.Getenv("DB_USER")
		dbname := os.Getenv("DB_NAME")
		if user == "" || dbname == "" {
			return "", "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		return DriverPostgres, fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, os.Getenv("DB_PASSWORD"), dbname, sslmode), nil
	}
	if sqlitePath != "" {
		return DriverSQLite, sqlitePath, nil
	}
	return "", "", fmt.Errorf("no database configured")
}

// Rebind rewrites $n placeholders to ? for drivers that need it. Queries are written
// Postgres style.
func Rebind(query string) string {
	if Driver != DriverSQLite {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] != '$' {
			b.WriteByte(query[i])
			continue
		}
		j := i + 1
		for j < len(query) && query[j] >= '0' && query[j] <= '9' {
			j++
		}
		if j == i+1 {
			b.WriteByte('$')
			continue
		}
		b.WriteByte('?')
		i = j - 1
	}
	return b.String()
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		err := DB.Close()
		DB = nil
		return err
	}
	return nil
}
