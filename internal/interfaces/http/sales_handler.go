package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/application/sales"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
)

// SalesHandler maneja las peticiones HTTP del motor de ventas (protegido).
type SalesHandler struct {
	record  *sales.RecordSaleUseCase
	payment *sales.ApplyPaymentUseCase
	query   *sales.QueryUseCase
	log     *logger.Logger
}

// NewSalesHandler construye el handler.
func NewSalesHandler(record *sales.RecordSaleUseCase, payment *sales.ApplyPaymentUseCase, query *sales.QueryUseCase, log *logger.Logger) *SalesHandler {
	return &SalesHandler{record: record, payment: payment, query: query, log: log}
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "total, recibido, cambio, metodo_pago, items, cliente_id, deuda"
// @Success      201   {object}  dto.CreateSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	caller, ok := GetCaller(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.record.RecordSale(c.Context(), caller, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// PayDebt godoc
// @Summary      Abonar a la deuda de una venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID de la venta"
// @Param        body  body  dto.PayDebtRequest  true  "monto"
// @Success      200   {object}  dto.PayDebtResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/pay-debt [post]
func (h *SalesHandler) PayDebt(c *fiber.Ctx) error {
	caller, ok := GetCaller(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	saleID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return writeError(c, h.log, domain.InvalidField("id", "debe ser un entero positivo"))
	}
	var in dto.PayDebtRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.payment.ApplyPayment(c.Context(), caller, saleID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(res)
}

// List devuelve las ventas visibles para el usuario.
// GET /api/sales?filtro=today|week|month|year
func (h *SalesHandler) List(c *fiber.Ctx) error {
	caller, ok := GetCaller(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.query.ListSales(c.Context(), caller, c.Query("filtro"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Detail devuelve las líneas de una venta. Venta inexistente o ajena: [].
// GET /api/sales/:id/detail
func (h *SalesHandler) Detail(c *fiber.Ctx) error {
	caller, ok := GetCaller(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	saleID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return writeError(c, h.log, domain.InvalidField("id", "debe ser un entero positivo"))
	}
	lines, err := h.query.GetSaleDetail(c.Context(), caller, saleID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(lines)
}

// Summary resumen de ingresos, costo, margen y deuda del período.
// GET /api/sales/summary?filtro=today|week|month|year
func (h *SalesHandler) Summary(c *fiber.Ctx) error {
	caller, ok := GetCaller(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	summary, err := h.query.Summary(c.Context(), caller, c.Query("filtro"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(summary)
}
