// Package sales contiene los casos de uso del motor de ventas: registro, abonos y consultas.
package sales

import (
	"context"

	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// fn recibe el contexto de la transacción (con su límite de tiempo) y debe usarlo en cada consulta.
// Si fn devuelve error se hace Rollback de todo; si no, Commit.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(ctx context.Context, repos repository.SalesRepos) error) error
}
