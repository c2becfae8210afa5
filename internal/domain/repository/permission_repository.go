package repository

import (
	"context"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
)

// PermissionRepository define el puerto de persistencia de user_permissions.
type PermissionRepository interface {
	// GetByUserID devuelve nil (sin error) si el usuario no tiene fila guardada.
	GetByUserID(ctx context.Context, userID int64) (*entity.PermissionSet, error)
	Upsert(ctx context.Context, userID int64, perms entity.PermissionSet) error
}
