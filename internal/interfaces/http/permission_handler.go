package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/application/permission"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
)

// PermissionHandler consulta y administra permisos por usuario.
type PermissionHandler struct {
	resolver *permission.Resolver
	log      *logger.Logger
}

// NewPermissionHandler construye el handler.
func NewPermissionHandler(resolver *permission.Resolver, log *logger.Logger) *PermissionHandler {
	return &PermissionHandler{resolver: resolver, log: log}
}

// Me devuelve los permisos efectivos del usuario del token.
// GET /api/permissions/me
func (h *PermissionHandler) Me(c *fiber.Ctx) error {
	caller, ok := GetCaller(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	return c.JSON(dto.PermissionsResponse{UserID: caller.ID, Role: caller.Role, Permissions: caller.Permissions})
}

// Update reemplaza los permisos guardados de un vendedor. Claves ausentes toman el valor por defecto.
// PUT /api/permissions/:userId (solo admin)
func (h *PermissionHandler) Update(c *fiber.Ctx) error {
	caller, ok := GetCaller(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	userID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		return writeError(c, h.log, domain.InvalidField("userId", "debe ser un entero positivo"))
	}
	perms := entity.DefaultVendedorPermissions()
	if err := c.BodyParser(&perms); err != nil {
		return invalidBody(c)
	}
	if err := h.resolver.Update(c.Context(), caller, userID, perms); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.PermissionsResponse{UserID: userID, Role: entity.RoleVendedor, Permissions: perms})
}
