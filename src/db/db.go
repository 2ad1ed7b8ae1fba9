package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, letting the
// same query code run pooled or inside a request transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres implements Store on top of a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
	q    Querier
}

func Connect(url string) (*Postgres, error) {
	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return &Postgres{pool: pool, q: pool}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

// RunInTx begins a transaction and binds a store to it. Nested calls on an
// already transaction-bound store reuse the open transaction.
func (p *Postgres) RunInTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	if _, ok := p.q.(pgx.Tx); ok {
		return fn(ctx, p)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &Postgres{pool: p.pool, q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
