package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

// HistoryUseCase expone el historial de abonos y el kardex de una venta, con la misma visibilidad del detalle.
type HistoryUseCase struct {
	sales     repository.SaleRepository
	payments  repository.DebtPaymentRepository
	movements repository.InventoryMovementRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(
	sales repository.SaleRepository,
	payments repository.DebtPaymentRepository,
	movements repository.InventoryMovementRepository,
) *HistoryUseCase {
	return &HistoryUseCase{sales: sales, payments: payments, movements: movements}
}

// ListPayments abonos de la venta en orden de registro. Venta inexistente o ajena: lista vacía.
func (uc *HistoryUseCase) ListPayments(ctx context.Context, caller entity.Caller, saleID int64) ([]dto.DebtPaymentDTO, error) {
	visible, err := uc.visible(ctx, caller, saleID)
	if err != nil || !visible {
		return []dto.DebtPaymentDTO{}, err
	}
	list, err := uc.payments.ListBySale(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("abonos venta %d: %w", saleID, err)
	}
	out := make([]dto.DebtPaymentDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.DebtPaymentDTO{
			ID:                 p.ID,
			VentaID:            p.VentaID,
			ClienteID:          p.ClienteID,
			MontoSolicitado:    p.Requested,
			MontoPagado:        p.Paid,
			DeudaAnterior:      p.PreviousDebt,
			DeudaNueva:         p.NewDebt,
			ClienteActualizado: p.CustomerUpdated,
			UserID:             p.UserID,
			CreatedAt:          p.CreatedAt,
		})
	}
	return out, nil
}

// ListMovements salidas de inventario que generó la venta. Venta inexistente o ajena: lista vacía.
func (uc *HistoryUseCase) ListMovements(ctx context.Context, caller entity.Caller, saleID int64) ([]dto.InventoryMovementDTO, error) {
	visible, err := uc.visible(ctx, caller, saleID)
	if err != nil || !visible {
		return []dto.InventoryMovementDTO{}, err
	}
	list, err := uc.movements.ListBySale(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("movimientos venta %d: %w", saleID, err)
	}
	out := make([]dto.InventoryMovementDTO, 0, len(list))
	for _, m := range list {
		out = append(out, dto.InventoryMovementDTO{
			ID:              m.ID,
			TransactionID:   m.TransactionID,
			ProductoID:      m.ProductID,
			Tipo:            m.Type,
			Cantidad:        m.Quantity,
			CostoUnitario:   m.UnitCost,
			CostoTotal:      m.TotalCost,
			StockResultante: m.StockAfter,
			CreatedAt:       m.CreatedAt,
			CreatedBy:       m.CreatedBy,
		})
	}
	return out, nil
}

func (uc *HistoryUseCase) visible(ctx context.Context, caller entity.Caller, saleID int64) (bool, error) {
	if saleID <= 0 {
		return false, domain.InvalidField("id", "debe ser un entero positivo")
	}
	if !caller.IsAdmin() && !caller.IsVendedor() {
		return false, domain.ErrUnknownRole
	}
	if !caller.Can(entity.CanViewSales) {
		return false, domain.ErrForbidden
	}
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return false, fmt.Errorf("obtener venta %d: %w", saleID, err)
	}
	if sale == nil {
		return false, nil
	}
	return caller.IsAdmin() || sale.UserID == caller.ID, nil
}
