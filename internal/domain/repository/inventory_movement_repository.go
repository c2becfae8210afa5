package repository

import (
	"context"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia del kardex.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListBySale(ctx context.Context, saleID int64) ([]*entity.InventoryMovement, error)
}
