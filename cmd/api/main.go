package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-retail-pos/internal/handler"
	"go-retail-pos/internal/middleware"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/service"
	"go-retail-pos/internal/ws"
	"go-retail-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Product{}, &model.Category{},
		&model.Invoice{}, &model.InvoiceItem{},
		&model.Quotation{}, &model.QuotationItem{},
		&model.Customer{}, &model.Supplier{},
		&model.Purchase{}, &model.Payment{}, &model.Expense{},
		&model.Counter{}, &model.Settings{}, &model.User{},
	)

	// 3. Seed categories, settings, and the admin user
	seedDefaults(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	quotationRepo := repository.NewQuotationRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	counterRepo := repository.NewCounterRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	userRepo := repository.NewUserRepo(db)
	reportRepo := repository.NewReportRepo(db)

	cartService := service.NewCartService(productRepo)
	saleService := service.NewSaleService(db, cartService, productRepo, invoiceRepo, customerRepo, counterRepo, wsHub)
	quotationService := service.NewQuotationService(db, cartService, quotationRepo, counterRepo)
	stockService := service.NewStockService(db, productRepo, purchaseRepo, supplierRepo, wsHub)
	accountsService := service.NewAccountsService(invoiceRepo, purchaseRepo, paymentRepo, customerRepo, supplierRepo)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, wsHub)
	partyService := service.NewPartyService(customerRepo, supplierRepo, invoiceRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	reportService := service.NewReportService(reportRepo, invoiceRepo, productRepo, expenseRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	backupService := service.NewBackupService(db)

	posHandler := handler.NewPOSHandler(cartService, saleService, quotationService)
	invoiceHandler := handler.NewInvoiceHandler(saleService, quotationService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	partyHandler := handler.NewPartyHandler(partyService)
	stockHandler := handler.NewStockHandler(stockService)
	accountsHandler := handler.NewAccountsHandler(accountsService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	reportHandler := handler.NewReportHandler(reportService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	backupHandler := handler.NewBackupHandler(backupService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Retail POS v1.0",
	})

	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/change-password", authHandler.ChangePassword)

	// POS terminal: cart + checkout + quotation
	protected.Get("/cart", posHandler.GetCart)
	protected.Post("/cart/items", posHandler.AddToCart)
	protected.Patch("/cart/items/:productId/qty", posHandler.ChangeQty)
	protected.Patch("/cart/items/:productId/price", posHandler.ChangePrice)
	protected.Patch("/cart/items/:productId/meta", posHandler.SetLineMeta)
	protected.Delete("/cart/items/:productId", posHandler.RemoveFromCart)
	protected.Delete("/cart", posHandler.ClearCart)
	protected.Post("/cart/totals", posHandler.CartTotals)
	protected.Post("/checkout", posHandler.Checkout)
	protected.Post("/quotations", posHandler.CreateQuotation)

	// Invoices & quotations
	protected.Get("/invoices", invoiceHandler.List)
	protected.Get("/invoices/:id", invoiceHandler.Get)
	protected.Put("/invoices/:id", middleware.RequireRole(model.RoleAdmin), invoiceHandler.Update)
	protected.Delete("/invoices/:id", middleware.RequireRole(model.RoleAdmin), invoiceHandler.Delete)
	protected.Get("/quotations", invoiceHandler.ListQuotations)
	protected.Get("/quotations/:id", invoiceHandler.GetQuotation)
	protected.Delete("/quotations/:id", invoiceHandler.DeleteQuotation)

	// Catalog
	protected.Get("/products", catalogHandler.ListProducts)
	protected.Get("/products/low-stock", catalogHandler.ListLowStock)
	protected.Get("/products/barcode/:barcode", catalogHandler.GetProductByBarcode)
	protected.Get("/products/:id", catalogHandler.GetProduct)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Put("/products/:id", catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireRole(model.RoleAdmin), catalogHandler.DeleteProduct)
	protected.Get("/categories", catalogHandler.ListCategories)
	protected.Post("/categories", catalogHandler.AddCategory)
	protected.Delete("/categories/:name", catalogHandler.DeleteCategory)

	// Stock inflow
	protected.Post("/products/:id/stock", stockHandler.AddStock)
	protected.Get("/purchases", stockHandler.ListPurchases)
	protected.Post("/purchases", stockHandler.RecordPurchase)
	protected.Delete("/purchases/:id", middleware.RequireRole(model.RoleAdmin), stockHandler.DeletePurchase)

	// Parties
	protected.Get("/customers", partyHandler.ListCustomers)
	protected.Get("/customers/:id", partyHandler.GetCustomer)
	protected.Get("/customers/:id/history", partyHandler.CustomerHistory)
	protected.Post("/customers", partyHandler.CreateCustomer)
	protected.Put("/customers/:id", partyHandler.UpdateCustomer)
	protected.Delete("/customers/:id", middleware.RequireRole(model.RoleAdmin), partyHandler.DeleteCustomer)
	protected.Get("/suppliers", partyHandler.ListSuppliers)
	protected.Get("/suppliers/:id", partyHandler.GetSupplier)
	protected.Post("/suppliers", partyHandler.CreateSupplier)
	protected.Put("/suppliers/:id", partyHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", middleware.RequireRole(model.RoleAdmin), partyHandler.DeleteSupplier)

	// Accounts ledger
	protected.Get("/accounts/receivables", accountsHandler.Receivables)
	protected.Get("/accounts/payables", accountsHandler.Payables)
	protected.Get("/accounts/payments", accountsHandler.ListPayments)
	protected.Post("/accounts/payments", accountsHandler.RecordPayment)
	protected.Delete("/accounts/payments/:id", middleware.RequireRole(model.RoleAdmin), accountsHandler.DeletePayment)
	protected.Get("/accounts/history/:entityId", accountsHandler.PaymentHistory)

	// Expenses
	protected.Get("/expenses", expenseHandler.List)
	protected.Post("/expenses", expenseHandler.Create)
	protected.Delete("/expenses/:id", middleware.RequireRole(model.RoleAdmin), expenseHandler.Delete)

	// Reports & dashboard
	protected.Get("/dashboard", reportHandler.Dashboard)
	protected.Get("/reports/sales", reportHandler.Sales)
	protected.Get("/reports/stock", reportHandler.Stock)
	protected.Get("/reports/profit", middleware.RequireRole(model.RoleAdmin), reportHandler.Profit)

	// Settings, backup, users (admin only)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", middleware.RequireRole(model.RoleAdmin), settingsHandler.Update)
	protected.Get("/backup/export", middleware.RequireRole(model.RoleAdmin), backupHandler.Export)
	protected.Post("/backup/import", middleware.RequireRole(model.RoleAdmin), backupHandler.Import)
	protected.Get("/users", middleware.RequireRole(model.RoleAdmin), userHandler.List)
	protected.Get("/users/:id", middleware.RequireRole(model.RoleAdmin), userHandler.Get)
	protected.Post("/users", middleware.RequireRole(model.RoleAdmin), userHandler.Create)
	protected.Put("/users/:id", middleware.RequireRole(model.RoleAdmin), userHandler.Update)
	protected.Delete("/users/:id", middleware.RequireRole(model.RoleAdmin), userHandler.Delete)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaults creates the default categories, the settings row, and the
// initial admin account on first start.
func seedDefaults(db *gorm.DB) {
	categoryRepo := repository.NewCategoryRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	userRepo := repository.NewUserRepo(db)

	if err := categoryRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed categories: %v", err)
	}
	if err := settingsRepo.SeedDefault(); err != nil {
		log.Printf("Warning: Failed to seed settings: %v", err)
	}

	if _, err := userRepo.FindByUsername("admin"); err == nil {
		return
	}

	admin := &model.User{
		Username: "admin",
		Name:     "Administrator",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("⚠️  Using default admin password; change it after first login")
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Println("✅ Default admin user created (username: admin)")
}
