package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/compta/internal/usecase"
)

type pgxPool interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager opens the pgx transactions in which a booking and its side
// effects commit together. It implements usecase.TransactionManager.
type TxManager struct {
	pool pgxPool
}

// NewTxManager creates a TxManager on the application pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool pgxPool) *TxManager {
	return &TxManager{pool: pool}
}

// Begin opens a transaction on the pool.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &Tx{tx: tx}, nil
}

// Tx is the usecase.Transaction handed to repositories.
type Tx struct {
	tx pgx.Tx
}

// Commit makes the booking durable.
func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback discards the booking. After Commit it does nothing, so use cases
// defer it unconditionally.
func (t *Tx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}

	return err
}

// PgxTx exposes the pgx transaction to the generated queries.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}
