package main

import (
	"strings"

	"github.com/richardamare/cloudfarmsales/internal/auth"
	"github.com/richardamare/cloudfarmsales/internal/config"
	"github.com/richardamare/cloudfarmsales/internal/customer"
	"github.com/richardamare/cloudfarmsales/internal/database"
	"github.com/richardamare/cloudfarmsales/internal/reports"
	"github.com/richardamare/cloudfarmsales/internal/sale"
	"github.com/richardamare/cloudfarmsales/internal/webhook"
	"github.com/richardamare/cloudfarmsales/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	cfg := config.Load()
	database.Init(cfg)

	serverLog := logger.Named(log, "server")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			serverLog.Error("unexpected error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// identity provider webhook, the only unauthenticated route
	api.Post("/external/identity", webhook.IdentityEventHandler(serverLog))

	// everything else requires an active provisioned user
	protected := api.Group("")
	protected.Use(auth.Middleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// customers
	protected.Post("/customers", customer.CreateCustomerHandler(serverLog))
	protected.Get("/customers", customer.ListCustomersHandler(serverLog))
	protected.Get("/customers/:code", customer.GetCustomerHandler(serverLog))
	protected.Put("/customers/:id", customer.UpdateCustomerHandler(serverLog))
	protected.Delete("/customers/:id", customer.DeleteCustomerHandler(serverLog))

	// sales
	protected.Post("/sales", sale.CreateSaleHandler(serverLog))
	protected.Get("/sales", sale.ListSalesHandler(serverLog))
	protected.Get("/sales/:id", sale.GetSaleHandler(serverLog))
	protected.Put("/sales/:id", sale.UpdateSaleHandler(serverLog))
	protected.Delete("/sales/:id", sale.DeleteSaleHandler(serverLog))

	// dashboard
	protected.Get("/reports/dashboard", reports.DashboardHandler(serverLog))
	protected.Get("/reports/yearly-sales", reports.YearlySalesHandler(serverLog))

	log.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
