package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/pos-ventas-api/internal/application/sales"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewTxRunner construye el runner con el pool. timeout <= 0 no limita la transacción.
func NewTxRunner(pool *pgxpool.Pool, timeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, timeout: timeout}
}

// RunSale inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Una transacción que supera el timeout se cancela y devuelve domain.ErrTimeout.
func (r *TxRunner) RunSale(ctx context.Context, fn func(ctx context.Context, repos repository.SalesRepos) error) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return txError(ctx, fmt.Errorf("begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	repos := repository.SalesRepos{
		Products:     NewProductRepository(tx),
		Customers:    NewCustomerRepository(tx),
		Sales:        NewSaleRepository(tx),
		Movements:    NewInventoryMovementRepository(tx),
		DebtPayments: NewDebtPaymentRepository(tx),
	}
	if err := fn(ctx, repos); err != nil {
		return txError(ctx, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return txError(ctx, fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
