package repository

import (
	"context"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
)

// DebtPaymentRepository define el puerto de persistencia de abonos a ventas.
type DebtPaymentRepository interface {
	Create(ctx context.Context, payment *entity.DebtPayment) error
	ListBySale(ctx context.Context, saleID int64) ([]*entity.DebtPayment, error)
}
