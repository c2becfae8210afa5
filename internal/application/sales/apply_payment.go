package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
	domainsales "github.com/jhoicas/pos-ventas-api/internal/domain/sales"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
)

// ApplyPaymentUseCase aplica abonos a la deuda de una venta y los refleja en el saldo del cliente.
type ApplyPaymentUseCase struct {
	tx  TxRunner
	log *logger.Logger
	now func() time.Time
}

// NewApplyPaymentUseCase construye el caso de uso.
func NewApplyPaymentUseCase(tx TxRunner, log *logger.Logger) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{tx: tx, log: log, now: time.Now}
}

// ApplyPayment bloquea la venta (SELECT FOR UPDATE), recorta el abono a la deuda vigente y
// actualiza venta, cliente e historial de abonos en la misma transacción.
func (uc *ApplyPaymentUseCase) ApplyPayment(ctx context.Context, caller entity.Caller, saleID int64, in dto.PayDebtRequest) (*dto.PayDebtResponse, error) {
	if !caller.IsAdmin() && !caller.IsVendedor() {
		return nil, domain.ErrUnknownRole
	}
	if saleID <= 0 {
		return nil, domain.InvalidField("id", "debe ser un entero positivo")
	}
	if in.Monto == nil || !in.Monto.IsPositive() {
		return nil, domain.InvalidField("monto", "debe ser mayor que cero")
	}
	if !domainsales.IsMoney(*in.Monto) {
		return nil, domain.InvalidField("monto", "admite máximo dos decimales")
	}
	amount := *in.Monto

	var res dto.PayDebtResponse
	var customerID *int64
	err := uc.tx.RunSale(ctx, func(ctx context.Context, repos repository.SalesRepos) error {
		sale, err := repos.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return fmt.Errorf("bloquear venta %d: %w", saleID, err)
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if !caller.IsAdmin() && sale.UserID != caller.ID {
			return domain.ErrForbidden
		}
		if !sale.Deuda.IsPositive() {
			return domain.ErrNoOutstandingDebt
		}

		paid, newDebt := domainsales.ClampPayment(sale.Deuda, amount)
		if err := repos.Sales.UpdateDebt(ctx, saleID, newDebt); err != nil {
			return fmt.Errorf("actualizar deuda venta %d: %w", saleID, err)
		}

		updated := false
		if sale.ClienteID != nil {
			updated, err = mirrorCustomerBalance(ctx, uc.log, repos, caller, *sale.ClienteID, paid.Neg(), saleID)
			if err != nil {
				return err
			}
		}

		payment := &entity.DebtPayment{
			VentaID:         saleID,
			ClienteID:       sale.ClienteID,
			Requested:       amount,
			Paid:            paid,
			PreviousDebt:    sale.Deuda,
			NewDebt:         newDebt,
			CustomerUpdated: updated,
			UserID:          caller.ID,
			CreatedAt:       uc.now(),
		}
		if err := repos.DebtPayments.Create(ctx, payment); err != nil {
			return fmt.Errorf("registrar abono venta %d: %w", saleID, err)
		}

		customerID = sale.ClienteID
		res = dto.PayDebtResponse{
			Success:            true,
			PagoRegistrado:     paid,
			DeudaAnterior:      sale.Deuda,
			DeudaActualizada:   newDebt,
			ClienteActualizado: updated,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := uc.log.Info().
		Int64("venta_id", saleID).
		Int64("user_id", caller.ID).
		Str("pagado", res.PagoRegistrado.String()).
		Str("deuda", res.DeudaActualizada.String())
	if customerID != nil {
		ev = ev.Int64("cliente_id", *customerID)
	}
	ev.Msg("abono aplicado")
	return &res, nil
}
