package repository

// SalesRepos agrupa los repositorios atados a una misma transacción de venta.
type SalesRepos struct {
	Products     ProductRepository
	Customers    CustomerRepository
	Sales        SaleRepository
	Movements    InventoryMovementRepository
	DebtPayments DebtPaymentRepository
}
