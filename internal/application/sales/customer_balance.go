package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// mirrorCustomerBalance aplica delta a saldo_pendiente del cliente.
// Cliente inexistente o usuario sin can_edit_customers no abortan la operación:
// se registra la advertencia y se devuelve false.
func mirrorCustomerBalance(
	ctx context.Context,
	log *logger.Logger,
	repos repository.SalesRepos,
	caller entity.Caller,
	customerID int64,
	delta decimal.Decimal,
	saleID int64,
) (bool, error) {
	customer, err := repos.Customers.GetForUpdate(ctx, customerID)
	if err != nil {
		return false, fmt.Errorf("leer cliente %d: %w", customerID, err)
	}
	if customer == nil {
		log.Warn().Int64("venta_id", saleID).Int64("cliente_id", customerID).
			Msg("cliente no existe; saldo del cliente no actualizado")
		return false, nil
	}
	if !caller.Can(entity.CanEditCustomers) {
		log.Warn().Int64("venta_id", saleID).Int64("cliente_id", customerID).Int64("user_id", caller.ID).
			Msg("usuario sin can_edit_customers; saldo del cliente no actualizado")
		return false, nil
	}
	if _, err := repos.Customers.AddBalance(ctx, customerID, delta); err != nil {
		return false, fmt.Errorf("actualizar saldo cliente %d: %w", customerID, err)
	}
	return true, nil
}
