package handler

import (
	"go-caixa-pos/internal/middleware"
	"go-caixa-pos/internal/service"
	"go-caixa-pos/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Services groups everything the HTTP layer talks to.
type Services struct {
	Auth      service.AuthService
	Caixa     service.CaixaService
	Inventory service.InventoryService
	Cart      service.CartService
	Checkout  service.CheckoutService
	Reports   service.ReportService
}

// Register mounts the API under /api/v1 and the websocket on /ws.
func Register(app *fiber.App, svc Services, hub *ws.Hub) {
	authHandler := NewAuthHandler(svc.Auth)
	caixaHandler := NewCaixaHandler(svc.Caixa, svc.Reports)
	invHandler := NewInventoryHandler(svc.Inventory)
	cartHandler := NewCartHandler(svc.Cart, svc.Checkout)
	reportHandler := NewReportHandler(svc.Reports)

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "ws_clients": hub.ClientCount()})
	})

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(svc.Auth))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Cash drawer
	protected.Get("/caixa", caixaHandler.GetCaixa)
	protected.Post("/caixa/open", caixaHandler.Open)
	protected.Post("/caixa/movements", caixaHandler.RecordMovement)
	protected.Post("/caixa/close", caixaHandler.Close)
	protected.Get("/caixa/history", caixaHandler.History)

	// Catalog
	protected.Get("/products", invHandler.GetProducts)
	protected.Get("/products/low-stock", invHandler.GetLowStock)
	protected.Post("/products", invHandler.CreateProduct)
	protected.Put("/products/:id", invHandler.UpdateProduct)
	protected.Delete("/products/:id", invHandler.DeleteProduct)
	protected.Get("/categories", invHandler.GetCategories)
	protected.Put("/categories/:id", invHandler.UpdateCategory)

	// Cart and checkout
	protected.Get("/cart", cartHandler.GetCart)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Put("/cart/items/:id", cartHandler.SetQuantity)
	protected.Delete("/cart/items/:id", cartHandler.RemoveItem)
	protected.Delete("/cart", cartHandler.ClearCart)
	protected.Post("/cart/checkout", cartHandler.Checkout)

	// Sales and reports
	protected.Get("/sales", reportHandler.GetSales)
	protected.Get("/reports/summary", reportHandler.GetSummary)
	protected.Get("/reports/export", reportHandler.Export)
	protected.Get("/dashboard", reportHandler.GetDashboard)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
