package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

var _ repository.DebtPaymentRepository = (*DebtPaymentRepo)(nil)

// DebtPaymentRepo historial de abonos (tabla abonos_venta).
type DebtPaymentRepo struct {
	q Querier
}

// NewDebtPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDebtPaymentRepository(q Querier) *DebtPaymentRepo {
	return &DebtPaymentRepo{q: q}
}

// Create persiste un abono.
func (r *DebtPaymentRepo) Create(ctx context.Context, p *entity.DebtPayment) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO abonos_venta
			(venta_id, cliente_id, monto_solicitado, monto_pagado, deuda_anterior, deuda_nueva, cliente_actualizado, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		p.VentaID, p.ClienteID, p.Requested, p.Paid, p.PreviousDebt, p.NewDebt, p.CustomerUpdated, p.UserID, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create debt payment: %w", err)
	}
	return nil
}

// ListBySale lista los abonos de una venta en orden de aplicación.
func (r *DebtPaymentRepo) ListBySale(ctx context.Context, saleID int64) ([]*entity.DebtPayment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, venta_id, cliente_id, monto_solicitado, monto_pagado, deuda_anterior, deuda_nueva, cliente_actualizado, user_id, created_at
		FROM abonos_venta WHERE venta_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list debt payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.DebtPayment
	for rows.Next() {
		var p entity.DebtPayment
		if err := rows.Scan(&p.ID, &p.VentaID, &p.ClienteID, &p.Requested, &p.Paid, &p.PreviousDebt,
			&p.NewDebt, &p.CustomerUpdated, &p.UserID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan debt payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
