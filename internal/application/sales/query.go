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
)

// QueryUseCase consultas de ventas con visibilidad por rol: el vendedor solo ve lo suyo.
type QueryUseCase struct {
	sales repository.SaleRepository
	loc   *time.Location
	now   func() time.Time
}

// NewQueryUseCase construye el caso de uso. loc es la zona de los filtros de fecha.
func NewQueryUseCase(sales repository.SaleRepository, loc *time.Location) *QueryUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &QueryUseCase{sales: sales, loc: loc, now: time.Now}
}

// ListSales lista las ventas visibles del período, más recientes primero.
func (uc *QueryUseCase) ListSales(ctx context.Context, caller entity.Caller, filtro string) ([]dto.SaleDTO, error) {
	filter, _, err := uc.filterFor(caller, filtro)
	if err != nil {
		return nil, err
	}
	list, err := uc.sales.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	out := make([]dto.SaleDTO, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleDTO(s))
	}
	return out, nil
}

// GetSaleDetail devuelve las líneas de la venta. Venta inexistente o ajena (vendedor): lista vacía.
func (uc *QueryUseCase) GetSaleDetail(ctx context.Context, caller entity.Caller, saleID int64) ([]dto.SaleLineDTO, error) {
	if saleID <= 0 {
		return nil, domain.InvalidField("id", "debe ser un entero positivo")
	}
	filter, _, err := uc.filterFor(caller, "")
	if err != nil {
		return nil, err
	}
	lines, err := uc.sales.ListLineDetails(ctx, saleID, filter)
	if err != nil {
		return nil, fmt.Errorf("detalle venta %d: %w", saleID, err)
	}
	out := make([]dto.SaleLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.SaleLineDTO{
			ID:            l.ID,
			ProductoID:    l.ProductoID,
			ProductName:   l.ProductName,
			ProductSKU:    l.ProductSKU,
			StockUnit:     l.StockUnit,
			Cantidad:      l.Cantidad,
			Precio:        l.Precio,
			PurchasePrice: l.PurchasePrice,
			Subtotal:      l.Subtotal(),
		})
	}
	return out, nil
}

// Summary agrega ventas del período (ingresos, costo, margen, deuda) y la deuda total visible.
// Las dos consultas van en paralelo.
func (uc *QueryUseCase) Summary(ctx context.Context, caller entity.Caller, filtro string) (*dto.SalesSummaryDTO, error) {
	filter, period, err := uc.filterFor(caller, filtro)
	if err != nil {
		return nil, err
	}
	allTime := repository.SaleFilter{UserID: filter.UserID}

	type result struct {
		summary *repository.SalesSummary
		err     error
	}
	periodCh := make(chan result, 1)
	totalCh := make(chan result, 1)

	go func() {
		s, err := uc.sales.Summarize(ctx, filter)
		periodCh <- result{s, err}
	}()
	go func() {
		s, err := uc.sales.Summarize(ctx, allTime)
		totalCh <- result{s, err}
	}()

	inPeriod := <-periodCh
	total := <-totalCh
	if inPeriod.err != nil {
		return nil, fmt.Errorf("resumen: período: %w", inPeriod.err)
	}
	if total.err != nil {
		return nil, fmt.Errorf("resumen: deuda total: %w", total.err)
	}

	s := inPeriod.summary
	return &dto.SalesSummaryDTO{
		Filtro:               string(period),
		From:                 filter.From,
		To:                   filter.To,
		SalesCount:           s.SalesCount,
		Revenue:              s.Revenue.Round(2),
		Cost:                 s.Cost.Round(2),
		Margin:               s.Revenue.Sub(s.Cost).Round(2),
		OutstandingDebt:      s.OutstandingDebt.Round(2),
		TotalOutstandingDebt: total.summary.OutstandingDebt.Round(2),
	}, nil
}

// filterFor aplica el permiso can_view_sales, la visibilidad por rol y la ventana de fechas.
func (uc *QueryUseCase) filterFor(caller entity.Caller, filtro string) (repository.SaleFilter, domainsales.Period, error) {
	var f repository.SaleFilter
	if !caller.IsAdmin() && !caller.IsVendedor() {
		return f, "", domain.ErrUnknownRole
	}
	if !caller.Can(entity.CanViewSales) {
		return f, "", domain.ErrForbidden
	}
	period, err := domainsales.ParsePeriod(filtro)
	if err != nil {
		return f, "", err
	}
	if !caller.IsAdmin() {
		id := caller.ID
		f.UserID = &id
	}
	if start, end, ok := domainsales.Window(period, uc.now(), uc.loc); ok {
		f.From = &start
		f.To = &end
	}
	return f, period, nil
}

func toSaleDTO(s *entity.Sale) dto.SaleDTO {
	return dto.SaleDTO{
		ID:                   s.ID,
		Total:                s.Total,
		Recibido:             s.Recibido,
		Cambio:               s.Cambio,
		MetodoPago:           s.MetodoPago,
		ClienteID:            s.ClienteID,
		ClienteNombre:        s.ClienteNombre,
		Deuda:                s.Deuda,
		UserID:               s.UserID,
		TitularTransferencia: s.TitularTransferencia,
		BancoTransferencia:   s.BancoTransferencia,
		Fecha:                s.Fecha,
	}
}
