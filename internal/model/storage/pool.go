package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"

	// postgres driver
	_ "github.com/lib/pq"
	// sqlite driver
	_ "modernc.org/sqlite"
)

const pingTimeout = 5 * time.Second

type Pool struct {
	db *sql.DB
}

// NewPool opens and pings a pool for the dialect. For SQLite the dsn is the database file path.
func NewPool(dialect Dialect, dsn string, maxOpenConns int) (*Pool, error) {
	db, err := sql.Open(dialect.driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "cannot connect to database")
	}

	logger.Info("database pool ready", zap.String("dialect", dialect.name))
	return &Pool{db}, nil
}

func (p *Pool) Acquire(ctx context.Context) (*sql.Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "acquire connection")
	}
	return conn, nil
}

// Release returns the connection to the pool.
func (p *Pool) Release(conn *sql.Conn) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		logger.Error("error releasing connection", zap.Error(err))
	}
}

func (p *Pool) Close() {
	if err := p.db.Close(); err != nil {
		logger.Error("error closing database pool", zap.Error(err))
	}
}
