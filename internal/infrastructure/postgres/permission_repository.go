package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo permisos por usuario (tabla user_permissions, columna JSONB).
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

// GetByUserID lee los permisos guardados. Claves desconocidas o no booleanas se ignoran;
// las ausentes conservan el valor por defecto del vendedor.
func (r *PermissionRepo) GetByUserID(ctx context.Context, userID int64) (*entity.PermissionSet, error) {
	var raw []byte
	err := r.q.QueryRow(ctx, `SELECT permissions FROM user_permissions WHERE user_id = $1`, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user permissions: %w", err)
	}
	perms, err := decodePermissions(raw)
	if err != nil {
		return nil, fmt.Errorf("decode user permissions %d: %w", userID, err)
	}
	return &perms, nil
}

// Upsert guarda el conjunto completo del usuario.
func (r *PermissionRepo) Upsert(ctx context.Context, userID int64, perms entity.PermissionSet) error {
	raw, err := json.Marshal(perms)
	if err != nil {
		return fmt.Errorf("encode user permissions: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO user_permissions (user_id, permissions, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET permissions = EXCLUDED.permissions, updated_at = now()`,
		userID, raw,
	)
	if err != nil {
		return fmt.Errorf("upsert user permissions: %w", err)
	}
	return nil
}

func decodePermissions(raw []byte) (entity.PermissionSet, error) {
	perms := entity.DefaultVendedorPermissions()
	if len(raw) == 0 {
		return perms, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return perms, err
	}
	for k, v := range m {
		if b, ok := v.(bool); ok {
			perms.Set(entity.Capability(k), b)
		}
	}
	return perms, nil
}
