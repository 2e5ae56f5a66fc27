package db

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handle is a connection checked out of the pool for the lifetime of one
// request. Release must be called exactly once.
type Handle interface {
	Release()
}

type Acquirer interface {
	Acquire(ctx context.Context) (Handle, error)
}

// SQLConn adapts *sql.Conn to Handle.
type SQLConn struct {
	*sql.Conn
}

func (c *SQLConn) Release() {
	_ = c.Conn.Close()
}

func (d *Database) Acquire(ctx context.Context) (Handle, error) {
	if d.Driver == DriverPostgres {
		conn, err := d.Pool.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	conn, err := d.SQL.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &SQLConn{Conn: conn}, nil
}

type ctxKey struct{}

func WithHandle(ctx context.Context, h Handle) context.Context {
	return context.WithValue(ctx, ctxKey{}, h)
}

func HandleFrom(ctx context.Context) Handle {
	h, _ := ctx.Value(ctxKey{}).(Handle)
	return h
}

// PGQuerier is the query surface shared by *pgxpool.Pool and *pgxpool.Conn.
type PGQuerier interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SQLQuerier is the query surface shared by *sql.DB and *sql.Conn.
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// PG returns the request's pgx connection when one is attached to ctx and the
// shared pool otherwise.
func PG(ctx context.Context, pool *pgxpool.Pool) PGQuerier {
	if conn, ok := HandleFrom(ctx).(*pgxpool.Conn); ok {
		return conn
	}
	return pool
}

// SQL returns the request's database/sql connection when one is attached to
// ctx and the shared *sql.DB otherwise.
func SQL(ctx context.Context, sqlDB *sql.DB) SQLQuerier {
	if conn, ok := HandleFrom(ctx).(*SQLConn); ok {
		return conn.Conn
	}
	return sqlDB
}
