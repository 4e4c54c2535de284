package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"elibrary/internal/common"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

const (
	connectAttempts = 3
	connectBackoff  = 100 * time.Millisecond
	pingTimeout     = 2 * time.Second
)

// Postgres is an explicitly constructed store handle. It dials lazily on
// first use: a failed initial connection fails the in-flight request with
// ErrStoreNotReady and is retried on the next one, rather than aborting the
// process.
type Postgres struct {
	connStr string

	mu sync.Mutex
	db *sql.DB
}

func New(connStr string) *Postgres {
	return &Postgres{connStr: connStr}
}

// Handle returns the shared connection pool, establishing it if needed.
// Concurrent callers block until the pool is ready or the dial gives up.
func (p *Postgres) Handle(ctx context.Context) (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}

	db, err := sql.Open("pgx", p.connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %v: %w", err, common.ErrStoreNotReady)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	var lastErr error
	backoff := connectBackoff
	for attempt := 0; attempt < connectAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()
		if lastErr == nil {
			p.db = db
			return p.db, nil
		}
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}

	db.Close()
	return nil, fmt.Errorf("connect postgres: %v: %w", lastErr, common.ErrStoreNotReady)
}

func (p *Postgres) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db != nil {
		p.db.Close()
		p.db = nil
	}
}
