package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
)

// isQueryCanceled verifica si Postgres canceló la sentencia (57014) o no obtuvo el lock (55P03).
func isQueryCanceled(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "57014" || pgErr.Code == "55P03"
	}
	return false
}

// txError marca como domain.ErrTimeout los fallos provocados por el vencimiento del contexto.
// Los errores de negocio pasan sin cambios.
func txError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) &&
		(errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) || isQueryCanceled(err)) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return err
}
