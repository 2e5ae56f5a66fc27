package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"

	"taskdesk/internal/platform/config"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Database owns the process-wide connection pool for whichever backend
// DATABASE_URL selects. Exactly one of Pool and SQL is set.
type Database struct {
	Driver Driver
	Pool   *pgxpool.Pool
	SQL    *sql.DB
}

func Connect(ctx context.Context, cfg config.Config) (*Database, error) {
	driver, dsn := ParseURL(cfg.DatabaseURL)
	switch driver {
	case DriverPostgres:
		poolCfg, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, err
		}
		poolCfg.MaxConnLifetime = cfg.DBConnLifetime
		poolCfg.MaxConns = int32(cfg.DBMaxConns)
		poolCfg.MinConns = 1
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, err
		}
		return &Database{Driver: DriverPostgres, Pool: pool}, nil
	default:
		sqlDB, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		sqlDB.SetMaxOpenConns(cfg.DBMaxConns)
		sqlDB.SetConnMaxLifetime(cfg.DBConnLifetime)
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("ping sqlite: %w", err)
		}
		return &Database{Driver: DriverSQLite, SQL: sqlDB}, nil
	}
}

// ParseURL maps DATABASE_URL onto a driver and the DSN that driver expects.
// postgres:// and postgresql:// go to pgx; sqlite://path, file: URIs and bare
// paths go to SQLite with a busy timeout and WAL journaling.
func ParseURL(raw string) (Driver, string) {
	value := strings.TrimSpace(raw)
	lower := strings.ToLower(value)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DriverPostgres, value
	}

	path := value
	if strings.HasPrefix(lower, "sqlite://") {
		path = value[len("sqlite://"):]
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return DriverSQLite, path + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func (d *Database) Ping(ctx context.Context) error {
	if d.Driver == DriverPostgres {
		return d.Pool.Ping(ctx)
	}
	return d.SQL.PingContext(ctx)
}

func (d *Database) Close() {
	if d.Pool != nil {
		d.Pool.Close()
	}
	if d.SQL != nil {
		_ = d.SQL.Close()
	}
}
