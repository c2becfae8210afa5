package repository

import (
	"context"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CustomerRepository define el puerto de persistencia de clientes (solo el saldo pendiente).
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	// GetForUpdate obtiene el cliente y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Customer, error)
	// AddBalance suma delta (positivo o negativo) a saldo_pendiente sin bajar de cero.
	// Devuelve el saldo resultante.
	AddBalance(ctx context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error)
}
