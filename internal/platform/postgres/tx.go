// Copyright (c) 2026 Vendora Commerce. All rights reserved.

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WithTx runs fn inside a single database transaction.
//
// Every multi-statement mutation in the system (a record plus its
// translations, bulk setting upserts, a delete plus its cascade) goes
// through this helper so a crash mid-sequence can never leave a
// half-applied write.
//
// The transaction is rolled back if fn returns an error or panics, and
// committed otherwise.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}

	defer func() {
		// No-op if the tx was already committed.
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit tx: %w", err)
	}

	return nil
}
