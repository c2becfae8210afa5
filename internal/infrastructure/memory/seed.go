package memory

import (
	"time"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
)

// AddProduct inserta o reemplaza un producto. ID cero asigna uno nuevo.
func (s *Store) AddProduct(p entity.Product) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.st.next("productos")
	} else if p.ID > s.st.seq["productos"] {
		s.st.seq["productos"] = p.ID
	}
	s.st.products[p.ID] = p
	return p
}

// AddCustomer inserta o reemplaza un cliente. ID cero asigna uno nuevo.
func (s *Store) AddCustomer(c entity.Customer) entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.st.next("clientes")
	} else if c.ID > s.st.seq["clientes"] {
		s.st.seq["clientes"] = c.ID
	}
	s.st.customers[c.ID] = c
	return c
}

// Product devuelve una copia del producto.
func (s *Store) Product(id int64) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.st.products[id]
	return p, ok
}

// Customer devuelve una copia del cliente.
func (s *Store) Customer(id int64) (entity.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.st.customers[id]
	return c, ok
}

// Sale devuelve una copia de la venta.
func (s *Store) Sale(id int64) (entity.Sale, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.st.sales[id]
	return v, ok
}

// Counts número de ventas y líneas guardadas.
func (s *Store) Counts() (sales, lines int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.sales), len(s.st.lines)
}

// SetSaleDate cambia la fecha de una venta ya guardada.
func (s *Store) SetSaleDate(id int64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.st.sales[id]; ok {
		v.Fecha = at
		s.st.sales[id] = v
	}
}
