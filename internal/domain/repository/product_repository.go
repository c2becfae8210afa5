package repository

import (
	"context"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia de productos que usa el motor de ventas.
// Solo lectura y descuento de stock; el CRUD de productos vive en otro módulo.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// LockByIDs bloquea (SELECT FOR UPDATE) las filas indicadas en orden ascendente de id.
	// Devuelve los productos encontrados; los ids inexistentes simplemente no aparecen.
	LockByIDs(ctx context.Context, ids []int64) (map[int64]*entity.Product, error)
	// DecrementStock resta quantity solo si el stock resultante no queda negativo.
	// ok=false indica que no se aplicó (producto inexistente o stock insuficiente).
	DecrementStock(ctx context.Context, id int64, quantity decimal.Decimal) (newStock decimal.Decimal, ok bool, err error)
}
