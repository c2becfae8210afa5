package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-ventas-api/internal/application/permission"
	"github.com/jhoicas/pos-ventas-api/internal/application/sales"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RecordSale   *sales.RecordSaleUseCase
	ApplyPayment *sales.ApplyPaymentUseCase
	SalesQuery   *sales.QueryUseCase
	SalesHistory *sales.HistoryUseCase
	Permissions  *permission.Resolver
	DB           pinger
	ServiceName  string
	JWTSecret    string
	Logger       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.ServiceName, deps.DB))

	api := app.Group("/api")

	// Rutas protegidas: JWT + permisos resueltos una vez por petición
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), ResolvePermissions(deps.Permissions, deps.Logger))

	salesHandler := NewSalesHandler(deps.RecordSale, deps.ApplyPayment, deps.SalesQuery, deps.Logger)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/summary", salesHandler.Summary)
	salesGroup.Get("/:id/detail", salesHandler.Detail)
	salesGroup.Post("/:id/pay-debt", salesHandler.PayDebt)

	historyHandler := NewSaleHistoryHandler(deps.SalesHistory, deps.Logger)
	salesGroup.Get("/:id/payments", historyHandler.Payments)
	salesGroup.Get("/:id/movements", historyHandler.Movements)

	permHandler := NewPermissionHandler(deps.Permissions, deps.Logger)
	perms := protected.Group("/permissions")
	perms.Get("/me", permHandler.Me)
	perms.Put("/:userId", RequireRole(entity.RoleAdmin), permHandler.Update)
}
