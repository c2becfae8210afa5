// Package memory implementa los puertos del motor de ventas en memoria (tests y demos).
// Todas las transacciones se serializan con un único mutex; un error en la
// transacción restaura la foto tomada al inicio.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

// Store base de datos en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

type state struct {
	seq       map[string]int64
	products  map[int64]entity.Product
	customers map[int64]entity.Customer
	sales     map[int64]entity.Sale
	lines     []entity.SaleLineItem
	perms     map[int64]entity.PermissionSet
	movements []entity.InventoryMovement
	payments  []entity.DebtPayment
}

func newState() *state {
	return &state{
		seq:       map[string]int64{},
		products:  map[int64]entity.Product{},
		customers: map[int64]entity.Customer{},
		sales:     map[int64]entity.Sale{},
		perms:     map[int64]entity.PermissionSet{},
	}
}

func (s *state) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *state) clone() *state {
	c := &state{
		seq:       make(map[string]int64, len(s.seq)),
		products:  make(map[int64]entity.Product, len(s.products)),
		customers: make(map[int64]entity.Customer, len(s.customers)),
		sales:     make(map[int64]entity.Sale, len(s.sales)),
		lines:     append([]entity.SaleLineItem(nil), s.lines...),
		perms:     make(map[int64]entity.PermissionSet, len(s.perms)),
		movements: append([]entity.InventoryMovement(nil), s.movements...),
		payments:  append([]entity.DebtPayment(nil), s.payments...),
	}
	for k, v := range s.seq {
		c.seq[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.perms {
		c.perms[k] = v
	}
	return c
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// RunSale ejecuta fn con acceso exclusivo al store. Si fn falla o el contexto vence, nada queda aplicado.
func (s *Store) RunSale(ctx context.Context, fn func(ctx context.Context, repos repository.SalesRepos) error) error {
	if err := ctx.Err(); err != nil {
		return txError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(ctx, reposFor(s.st)); err != nil {
		s.st = snapshot
		return err
	}
	if err := ctx.Err(); err != nil {
		s.st = snapshot
		return txError(err)
	}
	return nil
}

func txError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return err
}

func reposFor(st *state) repository.SalesRepos {
	return repository.SalesRepos{
		Products:     &productRepo{st: st},
		Customers:    &customerRepo{st: st},
		Sales:        &saleRepo{st: st},
		Movements:    &movementRepo{st: st},
		DebtPayments: &debtPaymentRepo{st: st},
	}
}

// Sales repositorio de ventas fuera de transacción (consultas).
func (s *Store) Sales() repository.SaleRepository {
	return &lockedSaleRepo{s: s}
}

// Permissions repositorio de permisos.
func (s *Store) Permissions() repository.PermissionRepository {
	return &permissionRepo{s: s}
}

// Movements repositorio del kardex fuera de transacción.
func (s *Store) Movements() repository.InventoryMovementRepository {
	return &lockedMovementRepo{s: s}
}

// DebtPayments repositorio de abonos fuera de transacción.
func (s *Store) DebtPayments() repository.DebtPaymentRepository {
	return &lockedDebtPaymentRepo{s: s}
}

// Ping siempre responde; existe para el health check.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) locked(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}
