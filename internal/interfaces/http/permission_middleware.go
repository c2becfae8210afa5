package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
)

// LocalCaller key del usuario con permisos resueltos.
const LocalCaller = "caller"

// callerResolver es el contrato mínimo que necesita el middleware. Lo implementa *permission.Resolver.
type callerResolver interface {
	Caller(ctx context.Context, p entity.Principal) (entity.Caller, error)
}

// ResolvePermissions resuelve una sola vez por petición los permisos del usuario y los deja en c.Locals.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 Forbidden → rol no reconocido.
//   - 500 Internal  → fallo al leer user_permissions (distinto de una denegación).
func ResolvePermissions(resolver callerResolver, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p.ID <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		caller, err := resolver.Caller(c.Context(), p)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownRole) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code:    "UNKNOWN_ROLE",
					Message: "rol '" + p.Role + "' no reconocido",
				})
			}
			log.Error().Err(err).Int64("user_id", p.ID).Str("path", c.Path()).Msg("resolver permisos")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code:    "INTERNAL",
				Message: "no se pudieron verificar los permisos",
			})
		}

		c.Locals(LocalCaller, caller)
		return c.Next()
	}
}

// GetCaller devuelve el usuario con permisos (después de ResolvePermissions).
func GetCaller(c *fiber.Ctx) (entity.Caller, bool) {
	caller, ok := c.Locals(LocalCaller).(entity.Caller)
	return caller, ok
}
