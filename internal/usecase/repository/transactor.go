package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/project/lms/pkg/logger"
	"go.uber.org/zap"
)

// TxBeginner starts transactions. pgxpool.Pool and pgxmock satisfy it.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

var _ Transactor = (*txManager)(nil)

// Read committed is enough: every read-modify-write either locks its row
// or is a single UPDATE statement.
var readCommitted = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

type txManager struct {
	logger *zap.Logger
	db     TxBeginner
}

func NewTransactor(logger *zap.Logger, db TxBeginner) *txManager {
	return &txManager{
		logger: logger,
		db:     db,
	}
}

// WithTx runs fn with a transaction bound to its context. When ctx already
// carries one, fn joins it and the outermost call decides the outcome.
func (m *txManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, readCommitted)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	settled := false
	defer func() {
		if settled {
			return
		}
		rollbackErr := tx.Rollback(ctx)
		logger.CheckError(rollbackErr, m.logger, "transaction rollback failed", zap.Error(rollbackErr))
	}()

	if err = fn(withTx(ctx, tx)); err != nil {
		return err
	}

	settled = true
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type txKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// conn picks the transaction bound to ctx, falling back to db.
func conn(ctx context.Context, db DataBase) DataBase {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return db
}
