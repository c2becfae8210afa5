package dto

import "github.com/jhoicas/pos-ventas-api/internal/domain/entity"

// PermissionsResponse permisos efectivos de un usuario.
type PermissionsResponse struct {
	UserID      int64                `json:"user_id"`
	Role        string               `json:"role"`
	Permissions entity.PermissionSet `json:"permissions"`
}
