package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.ProductRepository           = (*productRepo)(nil)
	_ repository.CustomerRepository          = (*customerRepo)(nil)
	_ repository.SaleRepository              = (*saleRepo)(nil)
	_ repository.SaleRepository              = (*lockedSaleRepo)(nil)
	_ repository.InventoryMovementRepository = (*movementRepo)(nil)
	_ repository.DebtPaymentRepository       = (*debtPaymentRepo)(nil)
	_ repository.PermissionRepository        = (*permissionRepo)(nil)
)

// ── productos ────────────────────────────────────────────────────────────────

type productRepo struct{ st *state }

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) LockByIDs(_ context.Context, ids []int64) (map[int64]*entity.Product, error) {
	out := make(map[int64]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.st.products[id]; ok {
			out[id] = &p
		}
	}
	return out, nil
}

func (r *productRepo) DecrementStock(_ context.Context, id int64, quantity decimal.Decimal) (decimal.Decimal, bool, error) {
	p, ok := r.st.products[id]
	if !ok || p.Stock.LessThan(quantity) {
		return decimal.Zero, false, nil
	}
	p.Stock = p.Stock.Sub(quantity)
	r.st.products[id] = p
	return p.Stock, true, nil
}

// ── clientes ─────────────────────────────────────────────────────────────────

type customerRepo struct{ st *state }

func (r *customerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	c, ok := r.st.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *customerRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *customerRepo) AddBalance(_ context.Context, id int64, delta decimal.Decimal) (decimal.Decimal, error) {
	c, ok := r.st.customers[id]
	if !ok {
		return decimal.Zero, nil
	}
	c.SaldoPendiente = decimal.Max(decimal.Zero, c.SaldoPendiente.Add(delta))
	r.st.customers[id] = c
	return c.SaldoPendiente, nil
}

// ── ventas ───────────────────────────────────────────────────────────────────

type saleRepo struct{ st *state }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	sale.ID = r.st.next("ventas")
	stored := *sale
	stored.ClienteNombre = ""
	r.st.sales[sale.ID] = stored
	return nil
}

func (r *saleRepo) CreateLineItem(_ context.Context, item *entity.SaleLineItem) error {
	item.ID = r.st.next("venta_detalles")
	r.st.lines = append(r.st.lines, *item)
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	s, ok := r.st.sales[id]
	if !ok {
		return nil, nil
	}
	if s.ClienteID != nil {
		s.ClienteNombre = r.st.customers[*s.ClienteID].Nombre
	}
	return &s, nil
}

func (r *saleRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *saleRepo) UpdateDebt(_ context.Context, id int64, debt decimal.Decimal) error {
	s, ok := r.st.sales[id]
	if !ok {
		return nil
	}
	s.Deuda = debt
	r.st.sales[id] = s
	return nil
}

func (r *saleRepo) List(_ context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for _, s := range r.st.sales {
		if !matches(s, filter) {
			continue
		}
		if s.ClienteID != nil {
			s.ClienteNombre = r.st.customers[*s.ClienteID].Nombre
		}
		list = append(list, &s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Fecha.Equal(list[j].Fecha) {
			return list[i].ID > list[j].ID
		}
		return list[i].Fecha.After(list[j].Fecha)
	})
	return list, nil
}

func (r *saleRepo) ListLineDetails(_ context.Context, saleID int64, filter repository.SaleFilter) ([]*entity.SaleLineDetail, error) {
	s, ok := r.st.sales[saleID]
	if !ok || !matches(s, filter) {
		return []*entity.SaleLineDetail{}, nil
	}
	out := []*entity.SaleLineDetail{}
	for _, l := range r.st.lines {
		if l.VentaID != saleID {
			continue
		}
		p := r.st.products[l.ProductoID]
		out = append(out, &entity.SaleLineDetail{
			SaleLineItem: l,
			ProductName:  p.Name,
			ProductSKU:   p.SKU,
			StockUnit:    p.StockUnit,
		})
	}
	return out, nil
}

func (r *saleRepo) Summarize(_ context.Context, filter repository.SaleFilter) (*repository.SalesSummary, error) {
	sum := &repository.SalesSummary{Revenue: decimal.Zero, Cost: decimal.Zero, OutstandingDebt: decimal.Zero}
	included := map[int64]bool{}
	for id, s := range r.st.sales {
		if !matches(s, filter) {
			continue
		}
		included[id] = true
		sum.SalesCount++
		sum.Revenue = sum.Revenue.Add(s.Total)
		sum.OutstandingDebt = sum.OutstandingDebt.Add(s.Deuda)
	}
	for _, l := range r.st.lines {
		if included[l.VentaID] {
			sum.Cost = sum.Cost.Add(l.Cantidad.Mul(l.PurchasePrice))
		}
	}
	return sum, nil
}

func matches(s entity.Sale, f repository.SaleFilter) bool {
	if f.UserID != nil && s.UserID != *f.UserID {
		return false
	}
	if f.From != nil && s.Fecha.Before(*f.From) {
		return false
	}
	if f.To != nil && !s.Fecha.Before(*f.To) {
		return false
	}
	return true
}

// lockedSaleRepo consultas fuera de transacción.
type lockedSaleRepo struct{ s *Store }

func (r *lockedSaleRepo) with(fn func(*saleRepo) error) error {
	var err error
	r.s.locked(func(st *state) { err = fn(&saleRepo{st: st}) })
	return err
}

func (r *lockedSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return r.with(func(sr *saleRepo) error { return sr.Create(ctx, sale) })
}

func (r *lockedSaleRepo) CreateLineItem(ctx context.Context, item *entity.SaleLineItem) error {
	return r.with(func(sr *saleRepo) error { return sr.CreateLineItem(ctx, item) })
}

func (r *lockedSaleRepo) GetByID(ctx context.Context, id int64) (out *entity.Sale, err error) {
	err = r.with(func(sr *saleRepo) error { out, err = sr.GetByID(ctx, id); return err })
	return out, err
}

func (r *lockedSaleRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *lockedSaleRepo) UpdateDebt(ctx context.Context, id int64, debt decimal.Decimal) error {
	return r.with(func(sr *saleRepo) error { return sr.UpdateDebt(ctx, id, debt) })
}

func (r *lockedSaleRepo) List(ctx context.Context, filter repository.SaleFilter) (out []*entity.Sale, err error) {
	err = r.with(func(sr *saleRepo) error { out, err = sr.List(ctx, filter); return err })
	return out, err
}

func (r *lockedSaleRepo) ListLineDetails(ctx context.Context, saleID int64, filter repository.SaleFilter) (out []*entity.SaleLineDetail, err error) {
	err = r.with(func(sr *saleRepo) error { out, err = sr.ListLineDetails(ctx, saleID, filter); return err })
	return out, err
}

func (r *lockedSaleRepo) Summarize(ctx context.Context, filter repository.SaleFilter) (out *repository.SalesSummary, err error) {
	err = r.with(func(sr *saleRepo) error { out, err = sr.Summarize(ctx, filter); return err })
	return out, err
}

// ── kardex y abonos ──────────────────────────────────────────────────────────

type movementRepo struct{ st *state }

func (r *movementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	m.ID = r.st.next("movimientos_inventario")
	r.st.movements = append(r.st.movements, *m)
	return nil
}

func (r *movementRepo) ListBySale(_ context.Context, saleID int64) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.st.movements {
		if m.VentaID != nil && *m.VentaID == saleID {
			out = append(out, &m)
		}
	}
	return out, nil
}

type lockedMovementRepo struct{ s *Store }

func (r *lockedMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) (err error) {
	r.s.locked(func(st *state) { err = (&movementRepo{st: st}).Create(ctx, m) })
	return err
}

func (r *lockedMovementRepo) ListBySale(ctx context.Context, saleID int64) (out []*entity.InventoryMovement, err error) {
	r.s.locked(func(st *state) { out, err = (&movementRepo{st: st}).ListBySale(ctx, saleID) })
	return out, err
}

type debtPaymentRepo struct{ st *state }

func (r *debtPaymentRepo) Create(_ context.Context, p *entity.DebtPayment) error {
	p.ID = r.st.next("abonos_venta")
	r.st.payments = append(r.st.payments, *p)
	return nil
}

func (r *debtPaymentRepo) ListBySale(_ context.Context, saleID int64) ([]*entity.DebtPayment, error) {
	var out []*entity.DebtPayment
	for _, p := range r.st.payments {
		if p.VentaID == saleID {
			out = append(out, &p)
		}
	}
	return out, nil
}

type lockedDebtPaymentRepo struct{ s *Store }

func (r *lockedDebtPaymentRepo) Create(ctx context.Context, p *entity.DebtPayment) (err error) {
	r.s.locked(func(st *state) { err = (&debtPaymentRepo{st: st}).Create(ctx, p) })
	return err
}

func (r *lockedDebtPaymentRepo) ListBySale(ctx context.Context, saleID int64) (out []*entity.DebtPayment, err error) {
	r.s.locked(func(st *state) { out, err = (&debtPaymentRepo{st: st}).ListBySale(ctx, saleID) })
	return out, err
}

// ── permisos ─────────────────────────────────────────────────────────────────

type permissionRepo struct{ s *Store }

func (r *permissionRepo) GetByUserID(_ context.Context, userID int64) (out *entity.PermissionSet, err error) {
	r.s.locked(func(st *state) {
		if p, ok := st.perms[userID]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *permissionRepo) Upsert(_ context.Context, userID int64, perms entity.PermissionSet) error {
	r.s.locked(func(st *state) { st.perms[userID] = perms })
	return nil
}
