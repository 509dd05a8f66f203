package repository

import (
	"context"
	"errors"

	"github.com/pashagolub/pgxmock/v4"
	"go.uber.org/zap"
)

var errInternal = errors.New("internal error")

// insertTxInMock binds a mocked transaction to ctx, as WithTx does.
func insertTxInMock(ctx context.Context, mock pgxmock.PgxPoolIface) context.Context {
	mock.ExpectBegin()
	tx, _ := mock.Begin(ctx)
	return withTx(ctx, tx)
}

func newMockRepository(mock pgxmock.PgxPoolIface) *postgresRepository {
	return New(zap.NewNop(), mock)
}
