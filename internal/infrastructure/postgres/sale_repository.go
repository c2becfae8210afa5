package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y líneas de venta (tablas ventas, venta_detalles).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y asigna sale.ID.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO ventas
			(total, recibido, cambio, metodo_pago, cliente_id, deuda, user_id, titular_transferencia, banco_transferencia, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		sale.Total, sale.Recibido, sale.Cambio, sale.MetodoPago, sale.ClienteID, sale.Deuda, sale.UserID,
		sale.TitularTransferencia, sale.BancoTransferencia, sale.Fecha,
	).Scan(&sale.ID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLineItem inserta una línea y asigna item.ID.
func (r *SaleRepo) CreateLineItem(ctx context.Context, item *entity.SaleLineItem) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO venta_detalles (venta_id, producto_id, cantidad, precio, purchase_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		item.VentaID, item.ProductoID, item.Cantidad, item.Precio, item.PurchasePrice,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// GetByID obtiene la venta con el nombre del cliente.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `
		SELECT v.id, v.total, v.recibido, v.cambio, v.metodo_pago, v.cliente_id, v.deuda, v.user_id,
		       v.titular_transferencia, v.banco_transferencia, v.fecha, COALESCE(c.nombre, '')
		FROM ventas v LEFT JOIN clientes c ON c.id = v.cliente_id
		WHERE v.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene la venta bloqueando su fila; los abonos concurrentes esperan aquí.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `
		SELECT id, total, recibido, cambio, metodo_pago, cliente_id, deuda, user_id,
		       titular_transferencia, banco_transferencia, fecha, ''
		FROM ventas WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock sale: %w", err)
	}
	return s, nil
}

// UpdateDebt fija la deuda de la venta.
func (r *SaleRepo) UpdateDebt(ctx context.Context, id int64, debt decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE ventas SET deuda = $2 WHERE id = $1`, id, debt)
	if err != nil {
		return fmt.Errorf("update sale debt: %w", err)
	}
	return nil
}

// List ventas que cumplen el filtro, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	where, args := saleWhere(filter, "v", 1)
	rows, err := r.q.Query(ctx, `
		SELECT v.id, v.total, v.recibido, v.cambio, v.metodo_pago, v.cliente_id, v.deuda, v.user_id,
		       v.titular_transferencia, v.banco_transferencia, v.fecha, COALESCE(c.nombre, '')
		FROM ventas v LEFT JOIN clientes c ON c.id = v.cliente_id
		WHERE TRUE`+where+`
		ORDER BY v.fecha DESC, v.id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := []*entity.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ListLineDetails líneas de la venta con nombre, sku y unidad del producto.
// Si la venta no existe o el filtro la excluye devuelve lista vacía.
func (r *SaleRepo) ListLineDetails(ctx context.Context, saleID int64, filter repository.SaleFilter) ([]*entity.SaleLineDetail, error) {
	where, args := saleWhere(filter, "v", 2)
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.venta_id, d.producto_id, d.cantidad, d.precio, d.purchase_price,
		       COALESCE(p.name, ''), COALESCE(p.sku, ''), COALESCE(p.stock_unit, '')
		FROM venta_detalles d
		JOIN ventas v ON v.id = d.venta_id
		LEFT JOIN productos p ON p.id = d.producto_id
		WHERE d.venta_id = $1`+where+`
		ORDER BY d.id`, append([]any{saleID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	list := []*entity.SaleLineDetail{}
	for rows.Next() {
		var l entity.SaleLineDetail
		if err := rows.Scan(&l.ID, &l.VentaID, &l.ProductoID, &l.Cantidad, &l.Precio, &l.PurchasePrice,
			&l.ProductName, &l.ProductSKU, &l.StockUnit); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Summarize agrega ventas del filtro. El costo sale del purchase_price guardado en cada línea.
func (r *SaleRepo) Summarize(ctx context.Context, filter repository.SaleFilter) (*repository.SalesSummary, error) {
	where, args := saleWhere(filter, "v", 1)
	var s repository.SalesSummary
	err := r.q.QueryRow(ctx, `
		WITH sel AS (
			SELECT v.id, v.total, v.deuda FROM ventas v WHERE TRUE`+where+`
		)
		SELECT
			(SELECT COUNT(*) FROM sel),
			(SELECT COALESCE(SUM(total), 0) FROM sel),
			(SELECT COALESCE(SUM(d.cantidad * d.purchase_price), 0) FROM venta_detalles d JOIN sel ON sel.id = d.venta_id),
			(SELECT COALESCE(SUM(deuda), 0) FROM sel)`, args...,
	).Scan(&s.SalesCount, &s.Revenue, &s.Cost, &s.OutstandingDebt)
	if err != nil {
		return nil, fmt.Errorf("summarize sales: %w", err)
	}
	return &s, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.Total, &s.Recibido, &s.Cambio, &s.MetodoPago, &s.ClienteID, &s.Deuda, &s.UserID,
		&s.TitularTransferencia, &s.BancoTransferencia, &s.Fecha, &s.ClienteNombre); err != nil {
		return nil, err
	}
	return &s, nil
}

// saleWhere arma las condiciones AND del filtro empezando en el placeholder $pos.
func saleWhere(f repository.SaleFilter, alias string, pos int) (string, []any) {
	var where string
	var args []any
	if f.UserID != nil {
		where += fmt.Sprintf(" AND %s.user_id = $%d", alias, pos)
		args = append(args, *f.UserID)
		pos++
	}
	if f.From != nil {
		where += fmt.Sprintf(" AND %s.fecha >= $%d", alias, pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		where += fmt.Sprintf(" AND %s.fecha < $%d", alias, pos)
		args = append(args, *f.To)
	}
	return where, args
}
