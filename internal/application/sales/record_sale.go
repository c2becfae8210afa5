package sales

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/application/inventory"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
	domainsales "github.com/jhoicas/pos-ventas-api/internal/domain/sales"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// RecordSaleUseCase registra una venta completa en una sola transacción:
// cabecera, líneas, descuento de stock, kardex y deuda del cliente.
type RecordSaleUseCase struct {
	tx     TxRunner
	ledger *inventory.Ledger
	log    *logger.Logger
	now    func() time.Time
}

// NewRecordSaleUseCase construye el caso de uso.
func NewRecordSaleUseCase(tx TxRunner, ledger *inventory.Ledger, log *logger.Logger) *RecordSaleUseCase {
	return &RecordSaleUseCase{tx: tx, ledger: ledger, log: log, now: time.Now}
}

type saleInput struct {
	sale  entity.Sale
	items []entity.SaleLineItem
	debt  decimal.Decimal
}

// RecordSale valida la petición, verifica can_create_sales y ejecuta la transacción.
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, caller entity.Caller, in dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	if !caller.IsAdmin() && !caller.IsVendedor() {
		return nil, domain.ErrUnknownRole
	}
	if !caller.Can(entity.CanCreateSales) {
		return nil, domain.ErrForbidden
	}
	input, err := uc.validate(caller, in)
	if err != nil {
		return nil, err
	}

	var customerUpdated bool
	sale := input.sale
	err = uc.tx.RunSale(ctx, func(ctx context.Context, repos repository.SalesRepos) error {
		customerUpdated = false
		if err := repos.Sales.Create(ctx, &sale); err != nil {
			return fmt.Errorf("insertar venta: %w", err)
		}

		locked, err := repos.Products.LockByIDs(ctx, distinctProductIDs(input.items))
		if err != nil {
			return fmt.Errorf("bloquear productos: %w", err)
		}

		ref := inventory.OutRef{
			SaleID:        sale.ID,
			UserID:        sale.UserID,
			TransactionID: uuid.New().String(),
			At:            sale.Fecha,
		}
		for i := range input.items {
			item := input.items[i]
			product, ok := locked[item.ProductoID]
			if !ok {
				return &domain.ProductError{Err: domain.ErrNotFound, ProductID: item.ProductoID}
			}
			if product.Stock.LessThan(item.Cantidad) {
				return &domain.ProductError{Err: domain.ErrInsufficientStock, ProductID: product.ID, Name: product.Name}
			}
			item.VentaID = sale.ID
			item.PurchasePrice = product.PurchasePrice
			if err := repos.Sales.CreateLineItem(ctx, &item); err != nil {
				return fmt.Errorf("insertar línea producto %d: %w", item.ProductoID, err)
			}
			if _, err := uc.ledger.ApplyDecrementInTx(ctx, repos, product, item.Cantidad, ref); err != nil {
				return err
			}
		}

		if sale.ClienteID == nil || !input.debt.IsPositive() {
			return nil
		}
		updated, err := mirrorCustomerBalance(ctx, uc.log, repos, caller, *sale.ClienteID, input.debt, sale.ID)
		if err != nil {
			return err
		}
		customerUpdated = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("venta_id", sale.ID).
		Int64("user_id", sale.UserID).
		Str("total", sale.Total.String()).
		Str("deuda", sale.Deuda.String()).
		Int("lineas", len(input.items)).
		Msg("venta registrada")

	return &dto.CreateSaleResponse{
		Success:            true,
		VentaID:            sale.ID,
		DeudaGuardada:      sale.Deuda,
		ClienteActualizado: customerUpdated,
	}, nil
}

func (uc *RecordSaleUseCase) validate(caller entity.Caller, in dto.CreateSaleRequest) (*saleInput, error) {
	if in.Total == nil {
		return nil, domain.InvalidField("total", "es obligatorio")
	}
	if in.Recibido == nil {
		return nil, domain.InvalidField("recibido", "es obligatorio")
	}
	if in.Cambio == nil {
		return nil, domain.InvalidField("cambio", "es obligatorio")
	}
	if in.Total.IsNegative() {
		return nil, domain.InvalidField("total", "no puede ser negativo")
	}
	for _, m := range []struct {
		field string
		v     decimal.Decimal
	}{{"total", *in.Total}, {"recibido", *in.Recibido}, {"cambio", *in.Cambio}} {
		if !domainsales.IsMoney(m.v) {
			return nil, domain.InvalidField(m.field, "admite máximo dos decimales")
		}
	}
	metodo := strings.TrimSpace(in.MetodoPago)
	if metodo == "" {
		return nil, domain.InvalidField("metodo_pago", "es obligatorio")
	}

	userID := caller.ID
	if in.UserID != nil {
		if *in.UserID <= 0 {
			return nil, domain.InvalidField("user_id", "debe ser un entero positivo")
		}
		if *in.UserID != caller.ID && !caller.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		userID = *in.UserID
	}

	debt := decimal.Zero
	if in.Deuda != nil {
		debt = *in.Deuda
	}
	if debt.IsNegative() {
		return nil, domain.InvalidField("deuda", "no puede ser negativa")
	}
	if !domainsales.IsMoney(debt) {
		return nil, domain.InvalidField("deuda", "admite máximo dos decimales")
	}
	if debt.GreaterThan(*in.Total) {
		return nil, domain.InvalidField("deuda", "no puede superar el total")
	}

	items := make([]entity.SaleLineItem, 0, len(in.Items))
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if it.ProductoID <= 0 {
			return nil, domain.InvalidField(field+".producto_id", "debe ser un entero positivo")
		}
		if it.Cantidad == nil || !it.Cantidad.IsPositive() {
			return nil, domain.InvalidField(field+".cantidad", "debe ser mayor que cero")
		}
		if !domainsales.IsQuantity(*it.Cantidad) {
			return nil, domain.InvalidField(field+".cantidad", "admite máximo tres decimales")
		}
		if it.Precio == nil || it.Precio.IsNegative() {
			return nil, domain.InvalidField(field+".precio", "es obligatorio y no negativo")
		}
		if !domainsales.IsMoney(*it.Precio) {
			return nil, domain.InvalidField(field+".precio", "admite máximo dos decimales")
		}
		items = append(items, entity.SaleLineItem{
			ProductoID: it.ProductoID,
			Cantidad:   *it.Cantidad,
			Precio:     *it.Precio,
		})
	}

	sale := entity.Sale{
		Total:      *in.Total,
		Recibido:   *in.Recibido,
		Cambio:     *in.Cambio,
		MetodoPago: metodo,
		ClienteID:  in.ClienteID.Value,
		Deuda:      debt,
		UserID:     userID,
		Fecha:      uc.now(),
	}
	if in.Transfer != nil {
		sale.TitularTransferencia = optionalString(in.Transfer.Titular)
		sale.BancoTransferencia = optionalString(in.Transfer.Banco)
	}
	return &saleInput{sale: sale, items: items, debt: debt}, nil
}

// distinctProductIDs ids sin repetir en orden ascendente (orden de bloqueo).
func distinctProductIDs(items []entity.SaleLineItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductoID]; ok {
			continue
		}
		seen[it.ProductoID] = struct{}{}
		ids = append(ids, it.ProductoID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
