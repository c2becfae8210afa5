package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO movimientos_inventario
			(transaction_id, producto_id, venta_id, tipo, cantidad, costo_unitario, costo_total, stock_resultante, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		m.TransactionID, m.ProductID, m.VentaID, m.Type, m.Quantity, m.UnitCost, m.TotalCost,
		m.StockAfter, m.CreatedAt, m.CreatedBy,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListBySale lista los movimientos generados por una venta.
func (r *InventoryMovementRepo) ListBySale(ctx context.Context, saleID int64) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, transaction_id::text, producto_id, venta_id, tipo, cantidad, costo_unitario, costo_total, stock_resultante, created_at, created_by
		FROM movimientos_inventario WHERE venta_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list movements by sale: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ProductID, &m.VentaID, &m.Type, &m.Quantity,
			&m.UnitCost, &m.TotalCost, &m.StockAfter, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
