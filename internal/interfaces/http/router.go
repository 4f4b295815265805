package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Customers-api/internal/application/auth"
	"github.com/jhoicas/Customers-api/internal/application/composer"
	"github.com/jhoicas/Customers-api/internal/application/ports"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Customers composer.UseCases
	Report    ports.CustomerReportGenerator
	AuthUC    *auth.AuthUseCase // nil deshabilita /api/auth
	JWTSecret string            // vacío deja las rutas de clientes públicas
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	val := NewValidator()
	api := app.Group("/api")

	// Auth (público)
	if deps.AuthUC != nil {
		authGroup := api.Group("/auth")
		authHandler := NewAuthHandler(deps.AuthUC, val, log)
		authGroup.Post("/register", authHandler.Register)
		authGroup.Post("/login", authHandler.Login)
	}

	// Customers: protegido solo si hay JWT_SECRET
	var customers fiber.Router
	adminOnly := func(c *fiber.Ctx) error { return c.Next() }
	if deps.JWTSecret != "" {
		customers = api.Group("/customers", AuthMiddleware(deps.JWTSecret))
		adminOnly = RequireRole(entity.RoleAdmin)
	} else {
		customers = api.Group("/customers")
	}
	customerHandler := NewCustomerHandler(deps.Customers, deps.Report, val, log)
	customers.Get("/", customerHandler.List)
	customers.Get("/report.pdf", customerHandler.Report)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", customerHandler.Create)
	customers.Put("/:id", customerHandler.Update)
	customers.Patch("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)
}
