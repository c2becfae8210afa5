package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/application/sales"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
)

// SaleHistoryHandler expone los abonos y el kardex de una venta.
type SaleHistoryHandler struct {
	history *sales.HistoryUseCase
	log     *logger.Logger
}

// NewSaleHistoryHandler construye el handler.
func NewSaleHistoryHandler(history *sales.HistoryUseCase, log *logger.Logger) *SaleHistoryHandler {
	return &SaleHistoryHandler{history: history, log: log}
}

// Payments godoc
// @Summary      Abonos de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {array}   dto.DebtPaymentDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/payments [get]
func (h *SaleHistoryHandler) Payments(c *fiber.Ctx) error {
	caller, ok := GetCaller(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	saleID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return writeError(c, h.log, domain.InvalidField("id", "debe ser un entero positivo"))
	}
	list, err := h.history.ListPayments(c.Context(), caller, saleID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Movements godoc
// @Summary      Kardex de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {array}   dto.InventoryMovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/movements [get]
func (h *SaleHistoryHandler) Movements(c *fiber.Ctx) error {
	caller, ok := GetCaller(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	saleID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return writeError(c, h.log, domain.InvalidField("id", "debe ser un entero positivo"))
	}
	list, err := h.history.ListMovements(c.Context(), caller, saleID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}
