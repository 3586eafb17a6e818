package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager runs work inside one database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
