package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
)

// writeError traduce errores de dominio a respuestas HTTP. Los errores internos se registran
// completos y al cliente solo le llega un mensaje genérico.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var fieldErr *domain.FieldError
	var productErr *domain.ProductError

	switch {
	case errors.As(err, &fieldErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: fieldErr.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrUnknownRole):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "UNKNOWN_ROLE", Message: "rol no reconocido"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.As(err, &productErr):
		code := "INSUFFICIENT_STOCK"
		if errors.Is(productErr.Err, domain.ErrNotFound) {
			code = "PRODUCT_NOT_FOUND"
		}
		log.Warn().Err(err).Int64("producto_id", productErr.ProductID).Str("path", c.Path()).Msg("venta rechazada")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: code, Message: productErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrNoOutstandingDebt):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_OUTSTANDING_DEBT", Message: domain.ErrNoOutstandingDebt.Error()})
	case errors.Is(err, domain.ErrTimeout):
		log.Error().Err(err).Int64("user_id", GetUserID(c)).Str("path", c.Path()).Msg("transacción vencida")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TX_TIMEOUT", Message: domain.ErrTimeout.Error()})
	}

	log.Error().Err(err).
		Int64("user_id", GetUserID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
