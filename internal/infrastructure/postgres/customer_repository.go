package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	return r.get(ctx, `SELECT id, nombre, saldo_pendiente FROM clientes WHERE id = $1`, id)
}

// GetForUpdate obtiene el cliente bloqueando su fila.
func (r *CustomerRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Customer, error) {
	return r.get(ctx, `SELECT id, nombre, saldo_pendiente FROM clientes WHERE id = $1 FOR UPDATE`, id)
}

func (r *CustomerRepo) get(ctx context.Context, query string, id int64) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Nombre, &c.SaldoPendiente)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// AddBalance suma delta al saldo pendiente sin dejarlo negativo.
func (r *CustomerRepo) AddBalance(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.q.QueryRow(ctx,
		`UPDATE clientes SET saldo_pendiente = GREATEST(saldo_pendiente + $2, 0) WHERE id = $1 RETURNING saldo_pendiente`,
		id, delta,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("update customer balance: %w", err)
	}
	return balance, nil
}
