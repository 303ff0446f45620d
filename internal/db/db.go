package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/SBelissa/Sistema-Reservas-Restaurante-Casa-Caribe-SRRCC/internal/config"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ErrConnection marks failures to reach the database or to obtain a
// connection from it.
var ErrConnection = errors.New("database connection failed")

// DB is the connection provider. It owns the sqlx handle and hands out one
// connection per store operation.
type DB struct {
	*sqlx.DB
}

// Open connects using the given settings and waits for the endpoint to
// answer a ping, retrying up to cfg.ConnectRetries times.
func Open(ctx context.Context, cfg config.Database) (*DB, error) {
	xdb, err := sqlx.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if cfg.Driver == "sqlite3" {
		// single writer
		xdb.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			xdb.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			xdb.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}
	if cfg.ConnMaxLifetime > 0 {
		xdb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := ping(ctx, xdb, cfg.ConnectRetries, cfg.ConnectInterval); err != nil {
		_ = xdb.Close()
		return nil, err
	}
	return &DB{DB: xdb}, nil
}

func ping(ctx context.Context, xdb *sqlx.DB, attempts int, interval time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = xdb.PingContext(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		log.Printf("db: ping failed (attempt %d/%d): %v", i+1, attempts, err)
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrConnection, ctx.Err())
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}

func (d *DB) Close() error { return d.DB.Close() }

// Acquire returns a dedicated connection. Callers must hand it back with
// Release on every path.
func (d *DB) Acquire(ctx context.Context) (*sqlx.Conn, error) {
	c, err := d.DB.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return c, nil
}

// Release closes c. It is safe on nil and on already closed connections;
// close failures are logged and dropped.
func (d *DB) Release(c *sqlx.Conn) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		log.Printf("db: release connection: %v", err)
	}
}

// Ping is used by the health endpoint.
func (d *DB) Ping(ctx context.Context) error { return d.DB.PingContext(ctx) }

// Dev-time schema (inline DDL)

// EnsureSchema creates the reservas table when it does not exist yet.
func (d *DB) EnsureSchema(ctx context.Context) error {
	ddl, ok := schema[d.DriverName()]
	if !ok {
		return fmt.Errorf("schema: no DDL for driver %q", d.DriverName())
	}
	if _, err := d.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

const postgresDDL = `CREATE TABLE IF NOT EXISTS reservas (
	id SERIAL PRIMARY KEY,
	fecha_reserva DATE NOT NULL,
	hora_reserva TIME NOT NULL,
	num_personas INT NOT NULL,
	nombre_cliente VARCHAR(255) NOT NULL,
	email_cliente VARCHAR(255) NOT NULL,
	estado VARCHAR(32) NOT NULL DEFAULT 'Pendiente'
)`

var schema = map[string]string{
	"mysql": `CREATE TABLE IF NOT EXISTS reservas (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		fecha_reserva DATE NOT NULL,
		hora_reserva TIME NOT NULL,
		num_personas INT NOT NULL,
		nombre_cliente VARCHAR(255) NOT NULL,
		email_cliente VARCHAR(255) NOT NULL,
		estado VARCHAR(32) NOT NULL DEFAULT 'Pendiente',
		INDEX (fecha_reserva, hora_reserva)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	"postgres": postgresDDL,
	"pgx":      postgresDDL,

	"sqlite3": `CREATE TABLE IF NOT EXISTS reservas (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		fecha_reserva DATE NOT NULL,
		hora_reserva TIME NOT NULL,
		num_personas INTEGER NOT NULL,
		nombre_cliente TEXT NOT NULL,
		email_cliente TEXT NOT NULL,
		estado TEXT NOT NULL DEFAULT 'Pendiente'
	)`,
}
