package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
)

// pinger lo implementan *pgxpool.Pool y el store en memoria.
type pinger interface {
	Ping(ctx context.Context) error
}

// Health responde el estado del servicio y de la base de datos.
func Health(service string, db pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "degraded", Service: service, Database: "down"})
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Service: service, Database: "up"})
	}
}
